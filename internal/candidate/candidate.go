// Package candidate contains the data types that flow through the text
// extraction pipeline.
package candidate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/SophiaFrassetto/TransROM-IA/internal/stats"
	"golang.org/x/text/language"
)

// previewSize is the number of bytes shown in a hex preview.
const previewSize = 16

// Chunk is a fixed size slice of the input data. It is immutable once
// created by the chunkifier.
type Chunk struct {
	Offset int
	Data   []byte
}

// TextScore returns the fraction of printable bytes in the chunk.
func (c Chunk) TextScore() float64 {
	return stats.PrintableDensity(c.Data)
}

// TextCandidate is a contiguous byte span that probably contains natural
// language text. The filter chain sets the quality score, the perplexity
// stage optionally sets the perplexity.
type TextCandidate struct {
	Start int
	End   int
	Raw   []byte

	QualityScore float64
	Language     language.Tag // language.Und if unset
	Perplexity   *float64     // nil until the perplexity stage evaluated the candidate
}

// New returns a candidate that owns a copy of the raw bytes.
func New(start, end int, raw []byte) *TextCandidate {
	if end < start {
		end = start
	}
	return &TextCandidate{
		Start: start,
		End:   end,
		Raw:   bytes.Clone(raw),
	}
}

// Size returns the size of the candidate in bytes.
func (c *TextCandidate) Size() int {
	return c.End - c.Start
}

// Text returns the best effort ASCII decoding of the raw bytes. Bytes that
// are not valid ASCII are dropped.
func (c *TextCandidate) Text() string {
	var sb strings.Builder
	sb.Grow(len(c.Raw))
	for _, b := range c.Raw {
		if b < 0x80 {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// HexPreview returns the first 16 bytes as space separated hex values.
func (c *TextCandidate) HexPreview() string {
	raw := c.Raw
	if len(raw) > previewSize {
		raw = raw[:previewSize]
	}

	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

// SetPerplexity stores the perplexity value of the candidate.
func (c *TextCandidate) SetPerplexity(value float64) {
	c.Perplexity = &value
}

// HasLanguage returns whether a language tag was set.
func (c *TextCandidate) HasLanguage() bool {
	return c.Language != language.Und
}

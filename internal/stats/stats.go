// Package stats provides the byte level statistics used to judge whether
// binary data looks like embedded text.
package stats

import (
	"bytes"
	"math"

	"github.com/klauspost/compress/zlib"
	"github.com/retroenv/retrogolib/set"
)

// printableASCII contains digits, ASCII letters, punctuation and the
// whitespace bytes space, \t, \n, \r, \v and \f.
var printableASCII = newPrintableSet()

func newPrintableSet() set.Set[byte] {
	s := set.New[byte]()
	for b := byte('!'); b <= '~'; b++ {
		s.Add(b)
	}
	for _, b := range []byte(" \t\n\r\v\f") {
		s.Add(b)
	}
	return s
}

// IsPrintable returns whether the byte belongs to the printable ASCII set.
func IsPrintable(b byte) bool {
	return printableASCII.Contains(b)
}

// ShannonEntropy returns the entropy of the byte histogram in bits per byte.
// The result is in the range [0, 8] and 0 for empty input.
func ShannonEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0.0
	}

	var histogram [256]int
	for _, b := range data {
		histogram[b]++
	}

	total := float64(len(data))
	var entropy float64
	for _, count := range histogram {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}
	// a single symbol yields -0 which should print as 0
	return math.Abs(entropy)
}

// CompressionRatio returns the zlib compressed size divided by the input size.
// Structured data compresses well and results in a small ratio, random or
// already compressed data stays close to or above 1. Empty input returns 0.
func CompressionRatio(data []byte) float64 {
	if len(data) == 0 {
		return 0.0
	}

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return 1.0
	}
	if err := w.Close(); err != nil {
		return 1.0
	}
	return float64(buf.Len()) / float64(len(data))
}

// PrintableDensity returns the fraction of bytes that are printable ASCII.
func PrintableDensity(data []byte) float64 {
	if len(data) == 0 {
		return 0.0
	}

	printable := 0
	for _, b := range data {
		if IsPrintable(b) {
			printable++
		}
	}
	return float64(printable) / float64(len(data))
}

// Package region describes semantically meaningful byte regions of ROM images
// and the layouts that group them.
package region

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

var (
	errOutOfBounds         = errors.New("region exceeds data bounds")
	errUnsupportedEncoding = errors.New("unsupported encoding")
)

// padding bytes that are ignored when matching or decoding fixed size fields.
const padding = "\x00 "

// MappedDefaultValue is a known raw byte pattern with a human meaning.
type MappedDefaultValue struct {
	ID         string
	Raw        []byte
	Meaning    string
	Origin     Origin
	Confidence float64 // 0.0 - 1.0
}

// Region identifies a span of bytes inside a layout. The offset is relative
// to the address space of the owning layout.
type Region struct {
	ID           string
	Name         string
	Kind         Kind
	Origin       Origin
	Offset       int
	Size         int
	Required     bool
	Encoding     Encoding
	ByteOrder    ByteOrder
	AddressSpace string
	Bank         *int
	Tags         []Tag

	DefaultValues []MappedDefaultValue

	Confidence float64 // 0.0 - 1.0
	Notes      string
}

// End returns the offset of the first byte after the region.
func (r Region) End() int {
	return r.Offset + r.Size
}

// WithOffsetDelta returns a copy of the region with the offset shifted by
// delta. All other fields are unchanged and no memory is shared with the
// source region.
func (r Region) WithOffsetDelta(delta int) Region {
	c := r
	c.Offset += delta
	c.Tags = slices.Clone(r.Tags)
	if r.Bank != nil {
		bank := *r.Bank
		c.Bank = &bank
	}
	if r.DefaultValues != nil {
		c.DefaultValues = make([]MappedDefaultValue, len(r.DefaultValues))
		for i, v := range r.DefaultValues {
			v.Raw = bytes.Clone(v.Raw)
			c.DefaultValues[i] = v
		}
	}
	return c
}

// Validate checks the invariants of the region.
func (r Region) Validate() error {
	if r.ID == "" {
		return errors.New("region id is empty")
	}
	if r.Size < 0 {
		return fmt.Errorf("region '%s' has negative size %d", r.ID, r.Size)
	}
	if r.Offset < 0 {
		return fmt.Errorf("region '%s' has negative offset %d", r.ID, r.Offset)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("region '%s' has confidence %.2f outside of [0,1]", r.ID, r.Confidence)
	}
	for _, v := range r.DefaultValues {
		if v.Confidence < 0 || v.Confidence > 1 {
			return fmt.Errorf("region '%s' default value '%s' has invalid confidence", r.ID, v.Meaning)
		}
	}
	return nil
}

// Read returns the bytes of the region from a ROM image. The offset is
// interpreted as a file offset.
func (r Region) Read(data []byte) ([]byte, error) {
	if r.Offset < 0 || r.Size < 0 || r.End() > len(data) {
		return nil, fmt.Errorf("reading region '%s' at 0x%X size %d: %w", r.ID, r.Offset, r.Size, errOutOfBounds)
	}
	return data[r.Offset:r.End()], nil
}

// Decode converts the raw bytes of a text region to a string using the
// encoding of the region. Trailing padding is removed. Multi byte
// encodings are trimmed after decoding so that code units stay intact.
func (r Region) Decode(raw []byte) (string, error) {
	switch r.Encoding {
	case EncodingASCII:
		raw = bytes.TrimRight(raw, padding)
		buf := make([]byte, 0, len(raw))
		for _, b := range raw {
			if b < 0x80 {
				buf = append(buf, b)
			}
		}
		return string(buf), nil

	case EncodingUTF8:
		raw = bytes.TrimRight(raw, padding)
		return strings.ToValidUTF8(string(raw), ""), nil

	case EncodingUTF16:
		endianness := unicode.LittleEndian
		if r.ByteOrder == ByteOrderBig {
			endianness = unicode.BigEndian
		}
		return decodeWith(unicode.UTF16(endianness, unicode.IgnoreBOM), raw)

	case EncodingShiftJIS:
		return decodeWith(japanese.ShiftJIS, bytes.TrimRight(raw, padding))

	default:
		return "", fmt.Errorf("decoding region '%s' with encoding '%s': %w", r.ID, r.Encoding, errUnsupportedEncoding)
	}
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding bytes: %w", err)
	}
	return strings.TrimRight(string(decoded), "\x00 "), nil
}

// Interpret matches raw bytes against the known default values of the
// region. Exact matches take precedence over matches that ignore trailing
// padding.
func (r Region) Interpret(raw []byte) (MappedDefaultValue, bool) {
	for _, v := range r.DefaultValues {
		if bytes.Equal(raw, v.Raw) {
			return v, true
		}
	}

	trimmed := bytes.TrimRight(raw, padding)
	for _, v := range r.DefaultValues {
		if bytes.Equal(trimmed, bytes.TrimRight(v.Raw, padding)) {
			return v, true
		}
	}
	return MappedDefaultValue{}, false
}

package stats

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	testifyassert "github.com/stretchr/testify/assert"
)

func TestShannonEntropy(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  float64
	}{
		{name: "empty input", input: nil, want: 0.0},
		{name: "single byte", input: []byte{0x41}, want: 0.0},
		{name: "identical bytes", input: bytes.Repeat([]byte{0xff}, 128), want: 0.0},
		{name: "two symbols evenly", input: []byte("ABABABAB"), want: 1.0},
		{name: "four symbols evenly", input: []byte("ABCDABCD"), want: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testifyassert.InDelta(t, tt.want, ShannonEntropy(tt.input), 1e-9)
		})
	}
}

func TestShannonEntropyRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := range 50 {
		data := make([]byte, 1+i*37)
		rng.Read(data)
		e := ShannonEntropy(data)
		assert.True(t, e >= 0.0 && e <= 8.0, "entropy out of range")
	}
}

func TestShannonEntropyUniform(t *testing.T) {
	data := make([]byte, 256*64)
	for i := range data {
		data[i] = byte(i)
	}
	testifyassert.InDelta(t, 8.0, ShannonEntropy(data), 1e-9)

	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 1<<16)
	rng.Read(random)
	testifyassert.InDelta(t, 8.0, ShannonEntropy(random), 0.01)
}

func TestCompressionRatio(t *testing.T) {
	assert.Equal(t, 0.0, CompressionRatio(nil))

	repetitive := bytes.Repeat([]byte("hello world "), 100)
	assert.True(t, CompressionRatio(repetitive) < 0.1)

	rng := rand.New(rand.NewSource(7))
	random := make([]byte, 4096)
	rng.Read(random)
	assert.True(t, CompressionRatio(random) > 0.95)
}

func TestPrintableDensity(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  float64
	}{
		{name: "empty input", input: nil, want: 0.0},
		{name: "all printable", input: []byte("Hello, World!\n"), want: 1.0},
		{name: "no printable", input: []byte{0x00, 0x01, 0x80, 0xff}, want: 0.0},
		{name: "half printable", input: []byte{'a', 0x00, 'b', 0x80}, want: 0.5},
		{name: "vertical tab and form feed", input: []byte{'\v', '\f'}, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testifyassert.InDelta(t, tt.want, PrintableDensity(tt.input), 1e-9)
		})
	}
}

func TestIsPrintable(t *testing.T) {
	assert.True(t, IsPrintable('~'))
	assert.True(t, IsPrintable(' '))
	assert.False(t, IsPrintable(0x7f))
	assert.False(t, IsPrintable(0x1f))
	assert.False(t, IsPrintable(0xa0))
}

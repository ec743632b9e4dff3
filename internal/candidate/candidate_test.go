package candidate

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"golang.org/x/text/language"
)

func TestChunkTextScore(t *testing.T) {
	assert.Equal(t, 1.0, Chunk{Data: []byte("Hello")}.TextScore())
	assert.Equal(t, 0.5, Chunk{Data: []byte{'A', 0x00}}.TextScore())
	assert.Equal(t, 0.0, Chunk{}.TextScore())
}

func TestNewCopiesRaw(t *testing.T) {
	raw := []byte("HELLO")
	c := New(10, 15, raw)
	raw[0] = 'J'

	assert.Equal(t, "HELLO", c.Text())
	assert.Equal(t, 5, c.Size())
	assert.Equal(t, 0.0, c.QualityScore)
	assert.Nil(t, c.Perplexity)
	assert.False(t, c.HasLanguage())
}

func TestNewClampsEnd(t *testing.T) {
	c := New(10, 5, nil)
	assert.Equal(t, 0, c.Size())
}

func TestText(t *testing.T) {
	c := New(0, 6, []byte{'H', 'i', 0xFF, 0x80, '!', '\n'})
	assert.Equal(t, "Hi!\n", c.Text())
}

func TestHexPreview(t *testing.T) {
	c := New(0, 3, []byte{0x00, 0xAB, 0x10})
	assert.Equal(t, "00 AB 10", c.HexPreview())

	long := New(0, 20, make([]byte, 20))
	assert.Equal(t, 16*3-1, len(long.HexPreview()))
}

func TestSetPerplexityAndLanguage(t *testing.T) {
	c := New(0, 1, []byte("a"))
	c.SetPerplexity(42.5)
	c.Language = language.English

	assert.NotNil(t, c.Perplexity)
	assert.Equal(t, 42.5, *c.Perplexity)
	assert.True(t, c.HasLanguage())
}

func TestParseQualityLevel(t *testing.T) {
	tests := []struct {
		input     string
		want      QualityLevel
		threshold float64
	}{
		{"low", QualityLow, 1.0},
		{"MEDIUM", QualityMedium, 2.0},
		{"High", QualityHigh, 3.0},
		{" ultra ", QualityUltra, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseQualityLevel(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, level)
			assert.Equal(t, tt.threshold, level.Threshold())
		})
	}

	_, err := ParseQualityLevel("extreme")
	assert.ErrorContains(t, err, "unsupported quality level")
	assert.Equal(t, "medium", QualityMedium.String())
}

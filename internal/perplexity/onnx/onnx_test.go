package onnx

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/SophiaFrassetto/TransROM-IA/internal/perplexity"
	"github.com/retroenv/retrogolib/assert"
	testifyassert "github.com/stretchr/testify/assert"
)

func TestPerplexityUniform(t *testing.T) {
	// equal logits predict every token with probability 1/vocab
	const vocab = 4
	logits := make([]float32, 3*vocab)

	got, err := Perplexity(logits, []int{0, 1, 2}, vocab)
	assert.NoError(t, err)
	testifyassert.InDelta(t, 4.0, got, 1e-9)
}

func TestPerplexityConfident(t *testing.T) {
	const vocab = 3
	logits := []float32{
		0, 20, 0, // predicts token 1
		0, 0, 20, // predicts token 2
		0, 0, 0,
	}

	got, err := Perplexity(logits, []int{0, 1, 2}, vocab)
	assert.NoError(t, err)
	testifyassert.InDelta(t, 1.0, got, 1e-6)
}

func TestPerplexityErrors(t *testing.T) {
	_, err := Perplexity(nil, []int{1}, 4)
	assert.Error(t, err)

	_, err = Perplexity(make([]float32, 4), []int{0, 1}, 4)
	assert.ErrorContains(t, err, "does not match")

	_, err = Perplexity(make([]float32, 8), []int{0, 7}, 4)
	assert.ErrorContains(t, err, "outside of vocabulary")
}

func TestLogSoftmax(t *testing.T) {
	row := []float32{1, 1}
	testifyassert.InDelta(t, math.Log(0.5), logSoftmax(row, 0), 1e-9)
}

func TestLoadMissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(Config{
		ModelPath:     filepath.Join(dir, "model.onnx"),
		TokenizerPath: filepath.Join(dir, "tokenizer.json"),
	})
	assert.True(t, errors.Is(err, perplexity.ErrModelUnavailable))
}

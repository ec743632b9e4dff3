package options

import (
	"testing"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/SophiaFrassetto/TransROM-IA/internal/perplexity"
	"github.com/SophiaFrassetto/TransROM-IA/internal/scanner"
	"github.com/retroenv/retrogolib/assert"
)

func TestProgramDefaultsMatchExtraction(t *testing.T) {
	got, err := NewProgram().Extraction()
	assert.NoError(t, err)

	want := NewExtraction()
	assert.Equal(t, want.Quality, got.Quality)
	assert.Equal(t, want.Scanner.Strategy, got.Scanner.Strategy)
	assert.Equal(t, want.Scanner.ChunkSize, got.Scanner.ChunkSize)
	assert.Equal(t, want.Thresholds, got.Thresholds)
	assert.Equal(t, want.Workers, got.Workers)
	assert.Equal(t, want.Model, got.Model)
	assert.Equal(t, want.Perplexity, got.Perplexity)
	assert.False(t, got.NLP)
}

func TestProgramExtraction(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(p *Program)
		wantErr string
		check   func(t *testing.T, e Extraction)
	}{
		{
			name: "ultra quality window strategy",
			modify: func(p *Program) {
				p.Quality = "ULTRA"
				p.Strategy = "window"
				p.Workers = 0
			},
			check: func(t *testing.T, e Extraction) {
				t.Helper()
				assert.Equal(t, candidate.QualityUltra, e.Quality)
				assert.Equal(t, scanner.StrategyWindow, e.Scanner.Strategy)
				assert.Equal(t, 1, e.Workers)
			},
		},
		{
			name: "nlp options",
			modify: func(p *Program) {
				p.Enabled = true
				p.Aggregation = "max"
				p.Threshold = 80
				p.Strict = true
			},
			check: func(t *testing.T, e Extraction) {
				t.Helper()
				assert.True(t, e.NLP)
				assert.Equal(t, perplexity.AggregationMax, e.Perplexity.Aggregation)
				assert.Equal(t, 80.0, e.Perplexity.Threshold)
				assert.True(t, e.Perplexity.Strict)
			},
		},
		{
			name:    "invalid quality",
			modify:  func(p *Program) { p.Quality = "best" },
			wantErr: "parsing quality",
		},
		{
			name:    "invalid strategy",
			modify:  func(p *Program) { p.Strategy = "grep" },
			wantErr: "parsing strategy",
		},
		{
			name:    "invalid aggregation",
			modify:  func(p *Program) { p.Aggregation = "median" },
			wantErr: "parsing aggregation",
		},
		{
			name: "inverted entropy bounds",
			modify: func(p *Program) {
				p.MinEntropy = 7
				p.MaxEntropy = 3
			},
			wantErr: "minimum entropy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgram()
			tt.modify(&p)

			got, err := p.Extraction()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			tt.check(t, got)
		})
	}
}

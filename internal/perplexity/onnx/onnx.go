// Package onnx implements a perplexity scorer backed by a causal language
// model exported to ONNX and a Hugging Face tokenizer.
package onnx

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/SophiaFrassetto/TransROM-IA/internal/perplexity"
	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Default model parameters matching GPT-2 style models.
const (
	DefaultContextSize = 1024
	DefaultVocabSize   = 50257
)

var (
	inputNames  = []string{"input_ids", "attention_mask"}
	outputNames = []string{"logits"}
)

// Config contains the model files and the runtime library location.
type Config struct {
	ModelID           string
	ModelPath         string // ONNX model file
	TokenizerPath     string // tokenizer.json
	SharedLibraryPath string // onnxruntime shared library, empty to use the system default
	ContextSize       int
	VocabSize         int
}

// Scorer computes perplexities with an ONNX causal language model.
type Scorer struct {
	cfg       Config
	tokenizer *tokenizer.Tokenizer
	session   *ort.DynamicAdvancedSession

	mu sync.Mutex // the session is not used concurrently
}

var initOnce struct {
	sync.Once
	err error
}

// Load loads the tokenizer and the model. All failures wrap
// perplexity.ErrModelUnavailable so that callers can skip the stage.
func Load(cfg Config) (*Scorer, error) {
	if cfg.ContextSize <= 0 {
		cfg.ContextSize = DefaultContextSize
	}
	if cfg.VocabSize <= 0 {
		cfg.VocabSize = DefaultVocabSize
	}
	if cfg.ModelID == "" {
		cfg.ModelID = filepath.Base(filepath.Dir(cfg.ModelPath))
	}

	for _, path := range []string{cfg.ModelPath, cfg.TokenizerPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("checking model file '%s': %w: %w", path, perplexity.ErrModelUnavailable, err)
		}
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer: %w: %w", perplexity.ErrModelUnavailable, err)
	}

	if err := initialize(cfg.SharedLibraryPath); err != nil {
		return nil, fmt.Errorf("initializing onnxruntime: %w: %w", perplexity.ErrModelUnavailable, err)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, inputNames, outputNames, nil)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w: %w", perplexity.ErrModelUnavailable, err)
	}

	return &Scorer{
		cfg:       cfg,
		tokenizer: tk,
		session:   session,
	}, nil
}

func initialize(libraryPath string) error {
	initOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		initOnce.err = ort.InitializeEnvironment()
	})
	return initOnce.err
}

// Tokenize implements perplexity.Scorer.
func (s *Scorer) Tokenize(text string) ([]int, error) {
	encoding, err := s.tokenizer.EncodeSingle(text, false)
	if err != nil {
		return nil, fmt.Errorf("encoding text: %w", err)
	}
	return encoding.Ids, nil
}

// ContextSize implements perplexity.Scorer.
func (s *Scorer) ContextSize() int {
	return s.cfg.ContextSize
}

// ModelID implements perplexity.Scorer.
func (s *Scorer) ModelID() string {
	return s.cfg.ModelID
}

// Perplexity implements perplexity.Scorer. It returns exp of the mean
// negative log likelihood of every token given its predecessors.
func (s *Scorer) Perplexity(ctx context.Context, tokens []int) (float64, error) {
	if len(tokens) < 2 {
		return 0, errors.New("at least 2 tokens are required")
	}
	if len(tokens) > s.cfg.ContextSize {
		tokens = tokens[:s.cfg.ContextSize]
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("scoring tokens: %w", err)
	}

	logits, err := s.run(tokens)
	if err != nil {
		return 0, err
	}
	return Perplexity(logits, tokens, s.cfg.VocabSize)
}

func (s *Scorer) run(tokens []int) ([]float32, error) {
	seqLen := int64(len(tokens))
	ids := make([]int64, len(tokens))
	mask := make([]int64, len(tokens))
	for i, t := range tokens {
		ids[i] = int64(t)
		mask[i] = 1
	}

	idsTensor, err := ort.NewTensor(ort.NewShape(1, seqLen), ids)
	if err != nil {
		return nil, fmt.Errorf("creating input tensor: %w", err)
	}
	defer func() { _ = idsTensor.Destroy() }()

	maskTensor, err := ort.NewTensor(ort.NewShape(1, seqLen), mask)
	if err != nil {
		return nil, fmt.Errorf("creating mask tensor: %w", err)
	}
	defer func() { _ = maskTensor.Destroy() }()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, seqLen, int64(s.cfg.VocabSize)))
	if err != nil {
		return nil, fmt.Errorf("creating output tensor: %w", err)
	}
	defer func() { _ = output.Destroy() }()

	s.mu.Lock()
	err = s.session.Run([]ort.Value{idsTensor, maskTensor}, []ort.Value{output})
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("running model: %w", err)
	}

	data := output.GetData()
	logits := make([]float32, len(data))
	copy(logits, data)
	return logits, nil
}

// Perplexity computes the perplexity from logits of shape [len(tokens),
// vocabSize]. The logits at position i predict token i+1.
func Perplexity(logits []float32, tokens []int, vocabSize int) (float64, error) {
	if len(tokens) < 2 {
		return 0, errors.New("at least 2 tokens are required")
	}
	if len(logits) < len(tokens)*vocabSize {
		return 0, fmt.Errorf("logits size %d does not match %d tokens", len(logits), len(tokens))
	}

	var nll float64
	for i := range len(tokens) - 1 {
		next := tokens[i+1]
		if next < 0 || next >= vocabSize {
			return 0, fmt.Errorf("token %d outside of vocabulary", next)
		}
		row := logits[i*vocabSize : (i+1)*vocabSize]
		nll -= logSoftmax(row, next)
	}
	return math.Exp(nll / float64(len(tokens)-1)), nil
}

func logSoftmax(row []float32, index int) float64 {
	maxLogit := math.Inf(-1)
	for _, v := range row {
		maxLogit = max(maxLogit, float64(v))
	}

	var sum float64
	for _, v := range row {
		sum += math.Exp(float64(v) - maxLogit)
	}
	return float64(row[index]) - maxLogit - math.Log(sum)
}

// Close releases the session.
func (s *Scorer) Close() error {
	if s == nil || s.session == nil {
		return nil
	}
	if err := s.session.Destroy(); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	s.session = nil
	return nil
}

var _ perplexity.Scorer = (*Scorer)(nil)

package filter

import (
	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/SophiaFrassetto/TransROM-IA/internal/stats"
)

// Thresholds contains the configurable thresholds of the statistical
// filters.
type Thresholds struct {
	MinEntropy     float64
	MaxEntropy     float64
	MinPrintable   float64
	MaxCompression float64
}

// DefaultThresholds returns the default filter thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinEntropy:     4.0,
		MaxEntropy:     6.5,
		MinPrintable:   0.9,
		MaxCompression: 0.75,
	}
}

// New returns all quality filters configured with the given thresholds.
func New(th Thresholds) []Filter {
	return []Filter{
		Entropy{Min: th.MinEntropy, Max: th.MaxEntropy},
		PrintableDensity{MinDensity: th.MinPrintable, Bonus: 1.0},
		NewLetterRatio(),
		WordStructure{},
		Stutter{},
		NewLinearSequence(),
		NewRepeatedBlock(),
		NewLowDiversity(),
		NewDictionaryWord(),
		CompressionRatio{Max: th.MaxCompression},
	}
}

// Entropy rewards data whose Shannon entropy is typical for text.
type Entropy struct {
	Min float64
	Max float64
}

// NewEntropy returns the entropy filter with default bounds.
func NewEntropy() Entropy {
	th := DefaultThresholds()
	return Entropy{Min: th.MinEntropy, Max: th.MaxEntropy}
}

// Name implements the Filter interface.
func (f Entropy) Name() string { return "entropy" }

// Score returns 1.0 if the entropy is strictly between the bounds.
func (f Entropy) Score(c *candidate.TextCandidate) float64 {
	h := stats.ShannonEntropy(c.Raw)
	if h > f.Min && h < f.Max {
		return 1.0
	}
	return 0.0
}

// PrintableDensity rewards data that consists mostly of printable bytes.
type PrintableDensity struct {
	MinDensity float64
	Bonus      float64
	Inclusive  bool // accept a density equal to MinDensity
}

// NewPrintableDensity returns the printable density filter with default
// threshold and a full bonus.
func NewPrintableDensity() PrintableDensity {
	return PrintableDensity{MinDensity: DefaultThresholds().MinPrintable, Bonus: 1.0}
}

// SoftPrintableDensity returns the softer variant of the printable density
// filter that adds a small bonus for a density of at least 0.7.
func SoftPrintableDensity() PrintableDensity {
	return PrintableDensity{MinDensity: 0.7, Bonus: 0.1, Inclusive: true}
}

// Name implements the Filter interface.
func (f PrintableDensity) Name() string { return "printable_density" }

// Score returns the bonus if the printable density passes the threshold.
func (f PrintableDensity) Score(c *candidate.TextCandidate) float64 {
	density := stats.PrintableDensity(c.Raw)
	if density > f.MinDensity || (f.Inclusive && density == f.MinDensity) {
		return f.Bonus
	}
	return 0.0
}

// CompressionRatio rewards data that compresses well.
type CompressionRatio struct {
	Max float64
}

// NewCompressionRatio returns the compression ratio filter with the default
// maximum ratio.
func NewCompressionRatio() CompressionRatio {
	return CompressionRatio{Max: DefaultThresholds().MaxCompression}
}

// Name implements the Filter interface.
func (f CompressionRatio) Name() string { return "compression_ratio" }

// Score returns 1.0 if the compression ratio is below the maximum.
func (f CompressionRatio) Score(c *candidate.TextCandidate) float64 {
	if stats.CompressionRatio(c.Raw) < f.Max {
		return 1.0
	}
	return 0.0
}

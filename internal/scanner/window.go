package scanner

import (
	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
	"github.com/SophiaFrassetto/TransROM-IA/internal/stats"
)

// Window scans data with a sliding window that advances one byte at a time.
// A window score crossing the threshold starts a candidate, a score below
// the threshold ends it.
type Window struct {
	size         int
	threshold    float64
	minBlockSize int
}

// NewWindow creates a sliding window scanner. Parameters that are not
// positive are replaced by the defaults.
func NewWindow(size int, threshold float64, minBlockSize int) *Window {
	if size <= 0 {
		size = DefaultWindowSize
	}
	if threshold <= 0 {
		threshold = DefaultWindowThreshold
	}
	if minBlockSize <= 0 {
		minBlockSize = DefaultMinBlockSize
	}
	return &Window{size: size, threshold: threshold, minBlockSize: minBlockSize}
}

// Scan implements the Scanner interface. Windows never run past the end of
// the data, a candidate that is still open at the end of the data is
// flushed with the data length as end offset.
func (w *Window) Scan(data []byte) []*candidate.TextCandidate {
	var candidates []*candidate.TextCandidate
	inBlock := false
	start := 0

	emit := func(end int) {
		if end-start >= w.minBlockSize {
			candidates = append(candidates, candidate.New(start, end, data[start:end]))
		}
	}

	for i := 0; i < len(data)-w.size; i++ {
		score := stats.PrintableDensity(data[i : i+w.size])

		switch {
		case !inBlock && score >= w.threshold:
			inBlock = true
			start = i
		case inBlock && score < w.threshold:
			inBlock = false
			emit(i)
		}
	}

	if inBlock {
		emit(len(data))
	}
	return candidates
}

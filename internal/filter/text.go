package filter

import (
	"strings"

	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
)

// LetterRatio rewards text that consists mostly of ASCII letters.
type LetterRatio struct {
	MinRatio float64
}

// NewLetterRatio returns the letter ratio filter with default threshold.
func NewLetterRatio() LetterRatio {
	return LetterRatio{MinRatio: 0.7}
}

// Name implements the Filter interface.
func (f LetterRatio) Name() string { return "letter_ratio" }

// Score compares the letters of the raw data with the length of the
// trimmed text.
func (f LetterRatio) Score(c *candidate.TextCandidate) float64 {
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return 0.0
	}

	var letters int
	for _, b := range c.Raw {
		if isLetter(b) {
			letters++
		}
	}
	if float64(letters)/float64(len(text)) > f.MinRatio {
		return 1.0
	}
	return 0.0
}

// WordStructure rewards text with multiple words of a reasonable length.
type WordStructure struct{}

// Name implements the Filter interface.
func (WordStructure) Name() string { return "word_structure" }

// Score returns 0.5 for multiple words and another 0.5 if the mean word
// length is between 2 and 12.
func (WordStructure) Score(c *candidate.TextCandidate) float64 {
	words := strings.Fields(c.Text())
	if len(words) <= 1 {
		return 0.0
	}

	var total int
	for _, w := range words {
		total += len(w)
	}

	score := 0.5
	if mean := float64(total) / float64(len(words)); mean > 2 && mean < 12 {
		score += 0.5
	}
	return score
}

// Stutter penalizes three identical characters in a row. Spaces are
// ignored.
type Stutter struct{}

// Name implements the Filter interface.
func (Stutter) Name() string { return "stutter" }

// Score returns -1.0 if a stutter is found.
func (Stutter) Score(c *candidate.TextCandidate) float64 {
	text := c.Text()
	for i := 0; i+2 < len(text); i++ {
		if text[i] != ' ' && text[i] == text[i+1] && text[i] == text[i+2] {
			return -1.0
		}
	}
	return 0.0
}

// LinearSequence penalizes text where most consecutive characters have the
// same distance, like "ABCDE" or "12345".
type LinearSequence struct {
	MaxRatio float64
}

// NewLinearSequence returns the linear sequence filter with default
// threshold.
func NewLinearSequence() LinearSequence {
	return LinearSequence{MaxRatio: 0.7}
}

// Name implements the Filter interface.
func (f LinearSequence) Name() string { return "linear_sequence" }

// Score returns -1.0 if the most common delta exceeds the maximum ratio.
// Texts shorter than 5 characters are not checked.
func (f LinearSequence) Score(c *candidate.TextCandidate) float64 {
	text := c.Text()
	if len(text) < 5 {
		return 0.0
	}

	counts := make(map[int]int)
	var best int
	for i := 0; i+1 < len(text); i++ {
		delta := int(text[i+1]) - int(text[i])
		counts[delta]++
		best = max(best, counts[delta])
	}
	if float64(best)/float64(len(text)-1) > f.MaxRatio {
		return -1.0
	}
	return 0.0
}

// RepeatedBlock penalizes text made of a repeating block like "ABABAB".
type RepeatedBlock struct {
	MinRepeats int
	MaxRatio   float64
	MinSize    int
	MaxSize    int
}

// NewRepeatedBlock returns the repeated block filter with defaults.
func NewRepeatedBlock() RepeatedBlock {
	return RepeatedBlock{MinRepeats: 3, MaxRatio: 0.6, MinSize: 2, MaxSize: 8}
}

// Name implements the Filter interface.
func (f RepeatedBlock) Name() string { return "repeated_block" }

// Score splits the text into non overlapping blocks for every block size
// and returns -1.0 if the most frequent block repeats at least MinRepeats
// times and covers more than MaxRatio of the text.
func (f RepeatedBlock) Score(c *candidate.TextCandidate) float64 {
	text := c.Text()
	n := len(text)

	for size := f.MinSize; size <= min(f.MaxSize, n/2); size++ {
		counts := make(map[string]int)
		var best int
		for i := 0; i < n; i += size {
			block := text[i:min(i+size, n)]
			counts[block]++
			best = max(best, counts[block])
		}
		if best >= f.MinRepeats && float64(best*size)/float64(n) > f.MaxRatio {
			return -1.0
		}
	}
	return 0.0
}

// LowDiversity penalizes text that uses only a few distinct characters.
type LowDiversity struct {
	MinUniqueRatio float64
}

// NewLowDiversity returns the low diversity filter with default threshold.
func NewLowDiversity() LowDiversity {
	return LowDiversity{MinUniqueRatio: 0.15}
}

// Name implements the Filter interface.
func (f LowDiversity) Name() string { return "low_diversity" }

// Score returns -1.0 if the ratio of unique characters is below the
// minimum. Texts shorter than 10 characters are not checked.
func (f LowDiversity) Score(c *candidate.TextCandidate) float64 {
	text := c.Text()
	if len(text) < 10 {
		return 0.0
	}

	var seen [128]bool
	var unique int
	for i := range len(text) {
		if !seen[text[i]] {
			seen[text[i]] = true
			unique++
		}
	}
	if float64(unique)/float64(len(text)) < f.MinUniqueRatio {
		return -1.0
	}
	return 0.0
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

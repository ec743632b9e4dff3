package scanner

import (
	"github.com/SophiaFrassetto/TransROM-IA/internal/candidate"
)

// Chunk scans data by splitting it into fixed size chunks and stitching
// consecutive chunks that look like text.
type Chunk struct {
	size      int
	threshold float64
}

// NewChunk creates a chunk scanner. A size or threshold that is not
// positive is replaced by the default.
func NewChunk(size int, threshold float64) *Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if threshold <= 0 {
		threshold = DefaultChunkThreshold
	}
	return &Chunk{size: size, threshold: threshold}
}

// Scan implements the Scanner interface.
func (c *Chunk) Scan(data []byte) []*candidate.TextCandidate {
	return Stitch(Chunkify(data, c.size), c.threshold)
}

// Chunkify splits data into chunks of the given size. The last chunk can be
// shorter. The chunks reference the input data.
func Chunkify(data []byte, size int) []candidate.Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}

	chunks := make([]candidate.Chunk, 0, (len(data)+size-1)/size)
	for offset := 0; offset < len(data); offset += size {
		end := min(offset+size, len(data))
		chunks = append(chunks, candidate.Chunk{
			Offset: offset,
			Data:   data[offset:end],
		})
	}
	return chunks
}

// Stitch merges runs of consecutive chunks with a text score of at least
// the threshold into candidates. A chunk below the threshold ends the
// current candidate.
func Stitch(chunks []candidate.Chunk, threshold float64) []*candidate.TextCandidate {
	var candidates []*candidate.TextCandidate

	for i := 0; i < len(chunks); {
		if chunks[i].TextScore() < threshold {
			i++
			continue
		}

		start := chunks[i].Offset
		var raw []byte
		j := i
		for ; j < len(chunks) && chunks[j].TextScore() >= threshold; j++ {
			raw = append(raw, chunks[j].Data...)
		}

		candidates = append(candidates, &candidate.TextCandidate{
			Start: start,
			End:   start + len(raw),
			Raw:   raw,
		})
		i = j
	}
	return candidates
}

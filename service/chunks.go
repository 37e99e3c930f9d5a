package service

import (
	"math/rand"
	"strings"
)

// FilterChunks keeps only the playable .mp4 keys from a bucket
// listing.
func FilterChunks(keys []string) []string {
	chunks := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasSuffix(k, ".mp4") {
			chunks = append(chunks, k)
		}
	}

	return chunks
}

// ShuffleChunks returns a uniformly random permutation of chunks. The
// input slice is left untouched.
func ShuffleChunks(chunks []string) []string {
	out := make([]string, len(chunks))
	copy(out, chunks)

	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	return out
}

// ChunkCycle walks a chunk list in shuffled order and reshuffles on
// wraparound, so a full cycle never repeats a chunk before all others
// have been shown and each cycle's order is independent of the last.
type ChunkCycle struct {
	chunks []string
	order  []string
	idx    int
}

func NewChunkCycle(chunks []string) *ChunkCycle {
	return &ChunkCycle{
		chunks: chunks,
		order:  ShuffleChunks(chunks),
	}
}

// Next returns the next chunk in the current cycle, starting a fresh
// independently shuffled cycle once the previous one is exhausted.
// Returns "" for an empty cycle.
func (c *ChunkCycle) Next() string {
	if len(c.order) == 0 {
		return ""
	}

	if c.idx == len(c.order) {
		c.order = ShuffleChunks(c.chunks)
		c.idx = 0
	}

	chunk := c.order[c.idx]
	c.idx++

	return chunk
}

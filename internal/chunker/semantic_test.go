package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkSemantic_TwoParagraphs(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		paraLen    int
		wantChunks int
	}{
		{"combined under threshold", 300, 1},
		{"combined exactly at threshold", 324, 1},
		{"combined over threshold", 325, 2},
		{"combined well over threshold", 340, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1 := strings.Repeat("a", tt.paraLen)
			p2 := strings.Repeat("b", tt.paraLen)

			chunks := chunkSemantic(p1+"\n\n"+p2, cfg)

			require.Len(t, chunks, tt.wantChunks)
			if tt.wantChunks == 1 {
				assert.Equal(t, p1+"\n\n"+p2, chunks[0])
			} else {
				assert.Equal(t, []string{p1, p2}, chunks)
			}
		})
	}
}

func TestChunkSemantic_LinesFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetSize = 20
	cfg.Tolerance = 0

	chunks := chunkSemantic("first line\nsecond line\nthird", cfg)

	assert.Equal(t, []string{"first line", "second line\n\nthird"}, chunks)
}

func TestChunkSemantic_SentenceFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetSize = 10
	cfg.Tolerance = 0.5

	chunks := chunkSemantic("One two. Three four. Five.", cfg)

	assert.Equal(t, []string{"One two.", "Three four.", "Five"}, chunks)
}

func TestChunkSemantic_OversizedUnitStandsAlone(t *testing.T) {
	cfg := DefaultConfig()
	big := strings.Repeat("z", 900)

	chunks := chunkSemantic("small intro\n\n"+big+"\n\nsmall outro", cfg)

	assert.Equal(t, []string{"small intro", big, "small outro"}, chunks)
}

func TestGroupBySize_Empty(t *testing.T) {
	assert.Empty(t, groupBySize(nil, 500, 0.3))
}

package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhole(t *testing.T) {
	w := Whole{}

	assert.Equal(t, []string{"one. two. three."}, w.Chunk("one. two. three."))
	assert.Equal(t, []string{""}, w.Chunk(""))
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name     string
		perChunk int
		text     string
		want     []string
	}{
		{
			name:     "groups sentences",
			perChunk: 2,
			text:     "One. Two! Three? Four.",
			want:     []string{"One. Two!", "Three? Four."},
		},
		{
			name:     "remainder forms final chunk",
			perChunk: 2,
			text:     "One. Two. Three.",
			want:     []string{"One. Two.", "Three."},
		},
		{
			name:     "text without boundaries is one unit",
			perChunk: 3,
			text:     "no terminal punctuation here",
			want:     []string{"no terminal punctuation here"},
		},
		{
			name:     "empty text yields one empty unit",
			perChunk: 3,
			text:     "",
			want:     []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSentences(tt.perChunk)
			assert.Equal(t, tt.want, s.Chunk(tt.text))
		})
	}
}

func TestNewSentences_DefaultSize(t *testing.T) {
	s := NewSentences(0)
	assert.Equal(t, 5, s.SentencesPerChunk)
}

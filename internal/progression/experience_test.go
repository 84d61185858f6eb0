package progression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/calmkeys/internal/model"
)

func TestExperiencePoints(t *testing.T) {
	tests := []struct {
		name  string
		score model.SessionScore
		want  int
	}{
		{"perfect short session", model.SessionScore{Accuracy: 100, WordsTyped: 5, MistakeCount: 0}, 90},
		{"word bonus capped", model.SessionScore{Accuracy: 100, WordsTyped: 40, MistakeCount: 0}, 130},
		{"ninety five tier", model.SessionScore{Accuracy: 95, WordsTyped: 10, MistakeCount: 1}, 60},
		{"ninety tier", model.SessionScore{Accuracy: 90, WordsTyped: 10, MistakeCount: 3}, 45},
		{"eighty five tier", model.SessionScore{Accuracy: 85, WordsTyped: 10, MistakeCount: 2}, 50},
		{"eighty tier", model.SessionScore{Accuracy: 80, WordsTyped: 0, MistakeCount: 5}, 15},
		{"below tiers", model.SessionScore{Accuracy: 79.9, WordsTyped: 1, MistakeCount: 9}, 12},
		{"huge word count does not overflow", model.SessionScore{Accuracy: 100, WordsTyped: math.MaxInt, MistakeCount: 0}, 130},
		{"near perfect is not perfect", model.SessionScore{Accuracy: 99.9, WordsTyped: 25, MistakeCount: 0}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExperiencePoints(tt.score))
		})
	}
}

package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/calmkeys/internal/model"
)

func repeat(m model.TypingMistake, n int) []model.TypingMistake {
	out := make([]model.TypingMistake, n)
	for i := range out {
		out[i] = m
	}
	return out
}

func TestLetterAnalysis(t *testing.T) {
	perf := session(0, 90)
	perf.Mistakes = append(perf.Mistakes, repeat(mistake("a", "s"), 3)...)
	perf.Mistakes = append(perf.Mistakes, mistake("A", "a"))
	perf.Mistakes = append(perf.Mistakes, repeat(mistake("b", "v"), 2)...)
	perf.Mistakes = append(perf.Mistakes,
		mistake("c", "x"),
		mistake("1", "2"),
		mistake(".", ","),
		mistake(" ", "x"),
	)

	m := Compute([]model.SessionPerformance{perf})

	assert.Equal(t, []string{"a", "b", ".", "1", "c"}, m.WeakLetters)
	assert.Equal(t, []string{"c", "d", "e", "f", "g"}, m.StrongLetters)
	assert.Equal(t, []model.MistakePair{
		{Expected: "a", Typed: "s", Count: 3},
		{Expected: "b", Typed: "v", Count: 2},
		{Expected: " ", Typed: "x", Count: 1},
		{Expected: ".", Typed: ",", Count: 1},
		{Expected: "1", Typed: "2", Count: 1},
	}, m.CommonMistakes)
	assert.False(t, m.StrugglesWithCapitals)
	assert.False(t, m.StrugglesWithNumbers)
	assert.False(t, m.StrugglesWithPunctuation)
}

func TestStruggleFlagsNeedMoreThanThirtyPercent(t *testing.T) {
	exactly := session(0, 90)
	exactly.Mistakes = append(repeat(mistake("T", "t"), 3), repeat(mistake("e", "r"), 7)...)
	m := Compute([]model.SessionPerformance{exactly})
	assert.False(t, m.StrugglesWithCapitals)

	over := session(0, 90)
	over.Mistakes = []model.TypingMistake{
		mistake("T", "t"), mistake("H", "h"),
		mistake("7", "8"), mistake("?", "/"),
	}
	m = Compute([]model.SessionPerformance{over})
	assert.True(t, m.StrugglesWithCapitals)
	assert.False(t, m.StrugglesWithNumbers)
	assert.False(t, m.StrugglesWithPunctuation)

	digits := session(0, 90)
	digits.Mistakes = []model.TypingMistake{mistake("4", "5"), mistake("9", "0"), mistake("k", "l")}
	m = Compute([]model.SessionPerformance{digits})
	assert.True(t, m.StrugglesWithNumbers)
}

func TestImprovementRateComparesFirstAndLastTen(t *testing.T) {
	history := make([]model.SessionPerformance, 0, 20)
	for i := 0; i < 10; i++ {
		history = append(history, session(i, 50))
	}
	for i := 10; i < 20; i++ {
		history = append(history, session(i, 75))
	}
	m := Compute(history)
	assert.Equal(t, 50.0, m.ImprovementRate)
	assert.Equal(t, 75.0, m.AverageAccuracy)
	assert.Equal(t, 20, m.SessionsCompleted)
	assert.Equal(t, 200, m.TotalWordsTyped)
}

func TestImprovementRateZeroWhenEarliestIsZero(t *testing.T) {
	history := []model.SessionPerformance{session(0, 0), session(1, 80)}
	m := Compute(history)
	assert.Zero(t, m.ImprovementRate)
}

func TestConsistencyUsesRecentWindowAndFloorsAtZero(t *testing.T) {
	history := []model.SessionPerformance{session(0, 80), session(1, 100)}
	m := Compute(history)
	assert.Equal(t, 90.0, m.ConsistencyScore)

	wild := make([]model.SessionPerformance, 0, 30)
	for i := 0; i < 20; i++ {
		wild = append(wild, session(i, 0))
	}
	for i := 20; i < 30; i++ {
		wild = append(wild, session(i, 95))
	}
	// Only the last ten sessions count, and they are identical.
	assert.Equal(t, 100.0, Compute(wild).ConsistencyScore)
}

func TestAverageSpeedUsesRecentWindow(t *testing.T) {
	history := make([]model.SessionPerformance, 0, 12)
	for i := 0; i < 12; i++ {
		s := session(i, 90)
		s.Speed = float64(i)
		history = append(history, s)
	}
	// Sessions 2..11 -> mean 6.5.
	assert.Equal(t, 6.5, Compute(history).AverageSpeed)
}

func TestSentenceCount(t *testing.T) {
	words := session(0, 90)
	sentences := session(1, 90)
	sentences.ContentType = model.ContentSentences
	story := session(2, 90)
	story.ContentType = model.ContentStories
	m := Compute([]model.SessionPerformance{words, sentences, story})
	assert.Equal(t, 2, m.TotalSentencesTyped)
}

func TestFocusAreasPriorityAndCap(t *testing.T) {
	perf := session(0, 70)
	perf.Mistakes = []model.TypingMistake{mistake("T", "t"), mistake("S", "s"), mistake("e", "w")}
	m := Compute([]model.SessionPerformance{perf})
	assert.Equal(t, []string{
		"Practice these letters: e, s, t",
		"Slow down and focus on accuracy",
		"Practice capital letters with Shift",
	}, m.NextFocusAreas)
}

func TestFocusAreasContentProgression(t *testing.T) {
	var history []model.SessionPerformance
	for i := 0; i < 3; i++ {
		s := session(i, 92)
		s.ContentType = model.ContentSentences
		history = append(history, s)
	}
	assert.Equal(t, []string{"Ready to try short stories"}, Compute(history).NextFocusAreas)

	fast := []model.SessionPerformance{session(0, 97)}
	fast[0].ContentType = model.ContentStories
	assert.Equal(t, []string{"Try to increase your typing speed"}, Compute(fast).NextFocusAreas)

	steady := []model.SessionPerformance{session(0, 82)}
	assert.Equal(t, []string{fallbackFocusArea}, Compute(steady).NextFocusAreas)
}

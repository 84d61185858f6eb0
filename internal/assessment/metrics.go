package assessment

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/calmkeys/internal/model"
)

const (
	topLetters       = 5
	topMistakes      = 5
	maxFocusAreas    = 3
	strongMaxErrors  = 2
	struggleFraction = 0.30

	readyAccuracy    = 85.0
	readySessions    = 5
	readyConsistency = 70.0
)

// DefaultFocusAreas are suggested before any session is recorded.
var DefaultFocusAreas = []string{"Start with simple words", "Focus on accuracy first"}

const fallbackFocusArea = "Keep practicing at your own pace"

// Compute derives metrics from history, oldest session first. It does not
// modify history and returns the same output for the same input.
func Compute(history []model.SessionPerformance) model.SkillMetrics {
	if len(history) == 0 {
		return model.SkillMetrics{
			WeakLetters:    []string{},
			StrongLetters:  []string{},
			CommonMistakes: []model.MistakePair{},
			NextFocusAreas: append([]string(nil), DefaultFocusAreas...),
		}
	}

	recent := lastN(history, RecentWindow)
	earliest := history[:min(RecentWindow, len(history))]

	recentAcc := accuracies(recent)
	avgAcc := mean(recentAcc)
	earliestAvg := mean(accuracies(earliest))

	var speedSum float64
	for _, s := range recent {
		speedSum += s.Speed
	}

	m := model.SkillMetrics{
		AverageAccuracy:   avgAcc,
		AverageSpeed:      speedSum / float64(len(recent)),
		SessionsCompleted: len(history),
		ConsistencyScore:  math.Max(0, 100-stdDev(recentAcc)),
	}
	for _, s := range history {
		m.TotalWordsTyped += s.WordsTyped
		if s.ContentType == model.ContentSentences || s.ContentType == model.ContentStories {
			m.TotalSentencesTyped++
		}
	}
	if earliestAvg != 0 {
		m.ImprovementRate = (avgAcc - earliestAvg) / earliestAvg * 100
	}

	letters := analyzeMistakes(history)
	m.WeakLetters = letters.weak
	m.StrongLetters = letters.strong
	m.CommonMistakes = letters.pairs
	m.StrugglesWithCapitals = letters.exceeds(letters.capitals)
	m.StrugglesWithNumbers = letters.exceeds(letters.numbers)
	m.StrugglesWithPunctuation = letters.exceeds(letters.punctuation)

	m.ReadyForNextLevel = avgAcc >= readyAccuracy &&
		len(recent) >= readySessions &&
		m.ConsistencyScore >= readyConsistency
	m.NextFocusAreas = focusAreas(m, recent)
	return m
}

type letterAnalysis struct {
	weak        []string
	strong      []string
	pairs       []model.MistakePair
	total       int
	capitals    int
	numbers     int
	punctuation int
}

func (a letterAnalysis) exceeds(count int) bool {
	if a.total == 0 {
		return false
	}
	return float64(count) > float64(a.total)*struggleFraction
}

func analyzeMistakes(history []model.SessionPerformance) letterAnalysis {
	var a letterAnalysis
	perLetter := map[string]int{}
	perPair := map[[2]string]int{}

	for _, s := range history {
		for _, mk := range s.Mistakes {
			a.total++
			r, _ := utf8.DecodeRuneInString(mk.Expected)
			switch {
			case unicode.IsUpper(r):
				a.capitals++
			case unicode.IsDigit(r):
				a.numbers++
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				a.punctuation++
			}
			perPair[[2]string{mk.Expected, mk.Typed}]++
			letter := strings.ToLower(mk.Expected)
			if strings.TrimSpace(letter) == "" {
				continue
			}
			perLetter[letter]++
		}
	}

	type letterCount struct {
		letter string
		count  int
	}
	counts := make([]letterCount, 0, len(perLetter))
	for l, c := range perLetter {
		counts = append(counts, letterCount{letter: l, count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count == counts[j].count {
			return counts[i].letter < counts[j].letter
		}
		return counts[i].count > counts[j].count
	})
	a.weak = make([]string, 0, topLetters)
	for i := 0; i < len(counts) && i < topLetters; i++ {
		a.weak = append(a.weak, counts[i].letter)
	}

	a.strong = make([]string, 0, topLetters)
	for r := 'a'; r <= 'z' && len(a.strong) < topLetters; r++ {
		if perLetter[string(r)] < strongMaxErrors {
			a.strong = append(a.strong, string(r))
		}
	}

	pairs := make([]model.MistakePair, 0, len(perPair))
	for k, c := range perPair {
		pairs = append(pairs, model.MistakePair{Expected: k[0], Typed: k[1], Count: c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		if pairs[i].Expected != pairs[j].Expected {
			return pairs[i].Expected < pairs[j].Expected
		}
		return pairs[i].Typed < pairs[j].Typed
	})
	if len(pairs) > topMistakes {
		pairs = pairs[:topMistakes]
	}
	a.pairs = pairs
	return a
}

func focusAreas(m model.SkillMetrics, recent []model.SessionPerformance) []string {
	areas := make([]string, 0, maxFocusAreas)
	if len(m.WeakLetters) > 0 {
		letters := m.WeakLetters[:min(3, len(m.WeakLetters))]
		areas = append(areas, "Practice these letters: "+strings.Join(letters, ", "))
	}
	switch {
	case m.AverageAccuracy < 80:
		areas = append(areas, "Slow down and focus on accuracy")
	case m.AverageAccuracy >= 95:
		areas = append(areas, "Try to increase your typing speed")
	}
	if m.StrugglesWithCapitals {
		areas = append(areas, "Practice capital letters with Shift")
	}

	var hasSentences, hasStories bool
	for _, s := range recent {
		switch s.ContentType {
		case model.ContentSentences:
			hasSentences = true
		case model.ContentStories:
			hasStories = true
		}
	}
	switch {
	case !hasSentences && !hasStories && m.AverageAccuracy >= 85:
		areas = append(areas, "Ready to try sentences")
	case hasSentences && !hasStories && m.AverageAccuracy >= 90:
		areas = append(areas, "Ready to try short stories")
	}

	if len(areas) > maxFocusAreas {
		areas = areas[:maxFocusAreas]
	}
	if len(areas) == 0 {
		areas = append(areas, fallbackFocusArea)
	}
	return areas
}

func lastN(history []model.SessionPerformance, n int) []model.SessionPerformance {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func accuracies(sessions []model.SessionPerformance) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		out[i] = s.Accuracy
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := mean(values)
	var sq float64
	for _, v := range values {
		d := v - avg
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

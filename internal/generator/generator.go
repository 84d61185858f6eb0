// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/calmkeys/internal/model"
	"github.com/verte-zerg/calmkeys/internal/wordlist"
)

const defaultPunctSet = ".,!?"

// Request describes the text to generate.
type Request struct {
	ContentType model.ContentType
	Difficulty  model.Difficulty
	// Words is the target length for words and sentences content.
	Words       int
	Focus       []string
	FocusFactor float64
}

// Generator produces practice text from a bank.
type Generator struct {
	rnd  *rand.Rand
	bank wordlist.Bank
}

// New returns a Generator seeded with the current time.
func New(bank wordlist.Bank) *Generator {
	return NewWithSeed(bank, time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(bank wordlist.Bank, seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed)), bank: bank}
}

// Generate returns practice text for req.
func (g *Generator) Generate(req Request) string {
	if req.Words <= 0 {
		req.Words = 1
	}
	switch req.ContentType {
	case model.ContentStories:
		if text := g.story(req.Difficulty); text != "" {
			return text
		}
	case model.ContentSentences:
		if text := g.sentences(req.Difficulty, req.Words); text != "" {
			return text
		}
	}
	return strings.Join(g.words(req), " ")
}

func (g *Generator) story(d model.Difficulty) string {
	stories := g.bank.Stories[d]
	if len(stories) == 0 {
		return ""
	}
	return stories[g.rnd.Intn(len(stories))]
}

func (g *Generator) sentences(d model.Difficulty, minWords int) string {
	pool := g.bank.Sentences[d]
	if len(pool) == 0 {
		return ""
	}
	var out []string
	count := 0
	for count < minWords {
		s := pool[g.rnd.Intn(len(pool))]
		out = append(out, s)
		count += len(strings.Fields(s))
	}
	return strings.Join(out, " ")
}

func (g *Generator) words(req Request) []string {
	pool := wordlist.Apply(g.bank.Words, wordlist.MaxLength(maxWordLength(req.Difficulty)))
	if len(pool) == 0 {
		pool = g.bank.Words
	}
	if len(pool) == 0 {
		return nil
	}
	capsPct, punctPct := decoration(req.Difficulty)
	weights := focusWeights(pool, req.Focus, req.FocusFactor)

	result := make([]string, 0, req.Words)
	for i := 0; i < req.Words; i++ {
		word := pool[g.pick(weights, len(pool))]
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, []rune(defaultPunctSet))
		result = append(result, word)
	}
	return result
}

func maxWordLength(d model.Difficulty) int {
	switch d {
	case model.DifficultyEasy:
		return 4
	case model.DifficultyMedium:
		return 7
	default:
		return 0
	}
}

func decoration(d model.Difficulty) (capsPct, punctPct float64) {
	switch d {
	case model.DifficultyMedium:
		return 0.2, 0
	case model.DifficultyHard:
		return 0.4, 0.3
	default:
		return 0, 0
	}
}

// focusWeights biases selection toward words containing focus letters.
// It returns nil when no bias applies.
func focusWeights(words []string, focus []string, factor float64) []float64 {
	if len(focus) == 0 || factor <= 0 {
		return nil
	}
	set := map[rune]struct{}{}
	for _, f := range focus {
		for _, r := range strings.ToLower(f) {
			set[r] = struct{}{}
		}
	}
	weights := make([]float64, len(words))
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := set[unicode.ToLower(r)]; ok {
				weakCount++
			}
		}
		weights[i] = 1.0 + float64(weakCount)*factor
	}
	return weights
}

func (g *Generator) pick(weights []float64, n int) int {
	if weights == nil {
		return g.rnd.Intn(n)
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := g.rnd.Float64() * total
	acc := 0.0
	for j, w := range weights {
		acc += w
		if r <= acc {
			return j
		}
	}
	return len(weights) - 1
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}

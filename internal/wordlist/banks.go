package wordlist

import (
	"embed"
	"fmt"
	"strings"

	"github.com/verte-zerg/calmkeys/internal/model"
)

//go:embed data/*.txt
var bankFS embed.FS

// Bank holds built-in practice material.
type Bank struct {
	Words     []string
	Sentences map[model.Difficulty][]string
	Stories   map[model.Difficulty][]string
}

var difficulties = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}

// Builtin loads the embedded word, sentence and story banks.
func Builtin() (Bank, error) {
	words, err := readLines("data/words.txt")
	if err != nil {
		return Bank{}, err
	}
	b := Bank{
		Words:     words,
		Sentences: map[model.Difficulty][]string{},
		Stories:   map[model.Difficulty][]string{},
	}
	for _, d := range difficulties {
		sentences, err := readLines(fmt.Sprintf("data/sentences_%s.txt", d))
		if err != nil {
			return Bank{}, err
		}
		b.Sentences[d] = sentences
		stories, err := readParagraphs(fmt.Sprintf("data/stories_%s.txt", d))
		if err != nil {
			return Bank{}, err
		}
		b.Stories[d] = stories
	}
	return b, nil
}

func readLines(name string) ([]string, error) {
	raw, err := bankFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	var out []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s is empty", name)
	}
	return out, nil
}

// readParagraphs splits on blank lines and joins wrapped lines with a space.
func readParagraphs(name string) ([]string, error) {
	raw, err := bankFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	var out []string
	for _, block := range strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n\n") {
		text := strings.Join(strings.Fields(block), " ")
		if text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s is empty", name)
	}
	return out, nil
}

package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/calmkeys/internal/model"
)

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	if !filter("hello") {
		t.Fatalf("expected hello to pass english filter")
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op", "Hello"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestApplyMaxLength(t *testing.T) {
	got := Apply([]string{"cat", "river", "sun", "window"}, MaxLength(4))
	if len(got) != 2 || got[0] != "cat" || got[1] != "sun" {
		t.Fatalf("unexpected filtered words: %v", got)
	}
	if len(Apply([]string{"window"}, MaxLength(0))) != 1 {
		t.Fatalf("expected MaxLength(0) to keep everything")
	}
}

func TestLoadWordsFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("calm\n\nCo-op\nkite\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := LoadWords(path, FilterForLang("en"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 2 || words[0] != "calm" || words[1] != "kite" {
		t.Fatalf("unexpected words: %v", words)
	}
	if _, err := LoadWords(path, func(string) bool { return false }); err == nil {
		t.Fatalf("expected error for empty result")
	}
}

func TestBuiltinBanks(t *testing.T) {
	b, err := Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	if len(b.Words) < 100 {
		t.Fatalf("expected a sizeable word bank, got %d", len(b.Words))
	}
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		if len(b.Sentences[d]) == 0 {
			t.Fatalf("no sentences for %s", d)
		}
		if len(b.Stories[d]) < 3 {
			t.Fatalf("expected at least 3 stories for %s, got %d", d, len(b.Stories[d]))
		}
		for _, s := range b.Stories[d] {
			if s == "" {
				t.Fatalf("empty story for %s", d)
			}
		}
	}
	for _, w := range b.Words {
		if !filterEnglishASCII(w) {
			t.Fatalf("builtin word %q is not plain lowercase ascii", w)
		}
	}
}

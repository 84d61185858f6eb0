package tui

import "testing"

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")
	cursorIndex := len(input)

	runes := buildStyledRunes(brightPalette, target, input, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != brightPalette.correct.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != brightPalette.pending.Underline(true).Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	target := []rune("a")
	input := []rune("a")
	cursorIndex := -1

	runes := buildStyledRunes(brightPalette, target, input, cursorIndex)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != brightPalette.correct.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	target := []rune("ab")
	input := []rune("ax")
	cursorIndex := len(input)

	runes := buildStyledRunes(brightPalette, target, input, cursorIndex)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != brightPalette.correct.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != brightPalette.incorrect.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	target := []rune("one two")
	input := []rune("o")
	cursorIndex := len(input)

	runes := buildStyledRunes(brightPalette, target, input, cursorIndex)
	if runes[0].s != brightPalette.correct.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[1].s != brightPalette.current.Render("n") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[2].s != brightPalette.current.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != brightPalette.pending.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
	if runes[6].s != brightPalette.pending.Render("o") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	target := []rune("a b")
	input := []rune("ax")
	cursorIndex := len(input)

	runes := buildStyledRunes(brightPalette, target, input, cursorIndex)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != brightPalette.incorrect.Render(string(wrongSpace)) {
		t.Fatalf("expected marker for wrong space")
	}
}

func TestWordAt(t *testing.T) {
	target := []rune("calm keys")
	if got := wordAt(target, 1); got != "calm" {
		t.Fatalf("expected calm, got %q", got)
	}
	if got := wordAt(target, 7); got != "keys" {
		t.Fatalf("expected keys, got %q", got)
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	var runes []styledRune
	for _, r := range "one two three" {
		runes = append(runes, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	got := wrapStyledRunes(runes, 8)
	if got != "one two\nthree" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestCalmPaletteSoftensMistakes(t *testing.T) {
	if paletteFor(true).incorrect.GetForeground() == brightPalette.incorrect.GetForeground() {
		t.Fatalf("calm palette should not reuse the bright mistake color")
	}
	if paletteFor(false).barFill != brightPalette.barFill {
		t.Fatalf("expected bright palette when calm is off")
	}
}

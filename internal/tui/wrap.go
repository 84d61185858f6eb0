package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// wrongSpace is shown in place of a space that was typed as something else.
const wrongSpace = '·'

// palette holds the text styles for one color scheme.
type palette struct {
	correct   lipgloss.Style
	incorrect lipgloss.Style
	pending   lipgloss.Style
	current   lipgloss.Style
	footer    lipgloss.Style
	celebrate lipgloss.Style
	barFill   string
}

// calmPalette avoids red and high contrast. Mistakes are a soft sand tone.
var calmPalette = palette{
	correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("#B8C4CE")),
	incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#C9B38A")),
	pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6F7A84")),
	current:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9FB7C9")),
	footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5F6770")),
	celebrate: lipgloss.NewStyle().Foreground(lipgloss.Color("#A7C4A0")),
	barFill:   "#7F9C8A",
}

var brightPalette = palette{
	correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
	incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
	pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	current:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
	footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
	celebrate: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A")),
	barFill:   "#52C41A",
}

func paletteFor(calm bool) palette {
	if calm {
		return calmPalette
	}
	return brightPalette
}

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func buildStyledRunes(p palette, targetRunes, inputRunes []rune, cursorIndex int) []styledRune {
	currentWord := wordForCursor(findWords(targetRunes), cursorIndex)

	out := make([]styledRune, 0, len(targetRunes))
	for i, target := range targetRunes {
		displayed := target
		style := p.pending
		if i < len(inputRunes) {
			switch {
			case target == ' ' && inputRunes[i] != ' ':
				displayed = wrongSpace
				style = p.incorrect
			case inputRunes[i] == target:
				style = p.correct
			default:
				style = p.incorrect
			}
		} else if target != ' ' && currentWord != nil && currentWord.contains(i) {
			style = p.current
		}
		if i == cursorIndex && i >= len(inputRunes) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func (w wordRange) contains(i int) bool {
	return i >= w.start && i < w.end
}

func findWords(targetRunes []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range targetRunes {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

// wordForCursor returns the word under the cursor, or the next word when
// the cursor sits on a space.
func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	if cursorIndex < 0 {
		return &words[0]
	}
	for i, w := range words {
		if w.contains(cursorIndex) || cursorIndex < w.start {
			return &words[i]
		}
	}
	return &words[len(words)-1]
}

// wordAt returns the text of the word containing pos.
func wordAt(targetRunes []rune, pos int) string {
	w := wordForCursor(findWords(targetRunes), pos)
	if w == nil {
		return ""
	}
	return string(targetRunes[w.start:w.end])
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits in width.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
			} else {
				out.WriteString(renderStyledRunes(line))
				line = line[:0]
			}
			out.WriteRune('\n')
			lineWidth, lastSpaceIdx = measure(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func measure(line []styledRune) (width, lastSpace int) {
	lastSpace = -1
	for i, item := range line {
		width += item.width
		if item.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}

package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/calmkeys/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A9CCE3"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8FBC8F"))
)

// Report contains precomputed data for the progress report.
type Report struct {
	Level    model.Level
	Next     *model.Level
	Progress model.UserProgress
	Metrics  model.SkillMetrics
	Check    model.AdvancementCheck
	Percent  int
	History  []model.SessionPerformance
}

type printer struct {
	w     io.Writer
	color bool
	err   error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// RenderReport prints the level, metrics and advancement status.
func RenderReport(w io.Writer, r Report, cfg model.ReportConfig) error {
	p := &printer{w: w, color: cfg.Color}

	p.line("%s", p.style(titleStyle, fmt.Sprintf("%s Level %d: %s", r.Level.Icon, r.Level.ID, r.Level.Title)))
	p.line("%s", p.style(mutedStyle, r.Level.Description))
	if r.Next != nil {
		p.line("Experience: %d / %d   Progress to %s: %d%%", r.Progress.Experience, r.Progress.ExperienceToNextLevel, r.Next.Title, r.Percent)
	} else {
		p.line("Experience: %d   All levels complete", r.Progress.Experience)
	}
	p.line("")

	m := r.Metrics
	if m.SessionsCompleted == 0 {
		p.line("No sessions yet.")
	} else {
		p.line("Sessions: %d   Words typed: %d   Sentences: %d", m.SessionsCompleted, m.TotalWordsTyped, m.TotalSentencesTyped)
		p.line("Avg accuracy: %.1f%%   Avg speed: %.1f WPM   Consistency: %.1f", m.AverageAccuracy, m.AverageSpeed, m.ConsistencyScore)
		p.line("Improvement: %+.1f%%", m.ImprovementRate)
		if len(m.WeakLetters) > 0 {
			p.line("Letters to practice: %s", strings.Join(m.WeakLetters, " "))
		}
		if len(m.CommonMistakes) > 0 {
			pairs := make([]string, len(m.CommonMistakes))
			for i, pair := range m.CommonMistakes {
				pairs[i] = fmt.Sprintf("%s (%d)", pair, pair.Count)
			}
			p.line("Common mix-ups: %s", strings.Join(pairs, ", "))
		}
		if len(r.History) > 1 {
			acc := make([]float64, len(r.History))
			for i, s := range r.History {
				acc[i] = s.Accuracy
			}
			acc = MovingAverage(acc, cfg.CurveWindow)
			if cfg.Width > 0 {
				acc = Tail(acc, cfg.Width)
			}
			p.line("Accuracy trend: [%s]", Sparkline(acc))
		}
	}
	p.line("")

	switch {
	case r.Check.Message != "":
		p.line("%s", p.style(goodStyle, r.Check.Message))
	case r.Check.CanAdvance:
		p.line("%s", p.style(goodStyle, "Ready for the next level!"))
	default:
		p.line("Still to do:")
		for _, missing := range r.Check.MissingRequirements {
			p.line("  - %s", missing)
		}
	}
	if len(m.NextFocusAreas) > 0 {
		p.line("Next focus:")
		for _, area := range m.NextFocusAreas {
			p.line("  - %s", area)
		}
	}
	return p.err
}

// RenderLevels prints the level catalog with the current level marked.
func RenderLevels(w io.Writer, levels []model.Level, current int) error {
	headers := []string{"", "Level", "Title", "Accuracy", "Sessions", "Words", "Consistency", "Content"}
	rows := make([][]string, 0, len(levels))
	for _, lvl := range levels {
		marker := ""
		switch {
		case lvl.ID == current:
			marker = ">"
		case lvl.ID > current:
			marker = "·"
		}
		types := make([]string, len(lvl.ContentFocus.Types))
		for i, ct := range lvl.ContentFocus.Types {
			types[i] = string(ct)
		}
		req := lvl.Requirements
		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%d", lvl.ID),
			lvl.Title,
			fmt.Sprintf("%.0f%%", req.MinAccuracy),
			fmt.Sprintf("%d", req.MinSessions),
			fmt.Sprintf("%d", req.MinWordsTyped),
			fmt.Sprintf("%.0f", req.MinConsistency),
			strings.Join(types, ","),
		})
	}
	rightAlign := map[int]bool{1: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/calmkeys/internal/coach"
	"github.com/verte-zerg/calmkeys/internal/generator"
	"github.com/verte-zerg/calmkeys/internal/model"
	"github.com/verte-zerg/calmkeys/internal/stats"
)

const progressBarWidth = 20

// Model implements the Bubble Tea typing UI.
type Model struct {
	config model.Config
	coach  *coach.Coach
	gen    *generator.Generator
	log    *zap.Logger
	now    func() time.Time
	pal    palette
	bar    progress.Model

	width  int
	height int

	exercise    coach.Exercise
	targetRunes []rune
	inputRunes  []rune

	started   bool
	startedAt time.Time

	correctNonSpace   int
	incorrectNonSpace int
	mistakes          []model.TypingMistake

	lastWPM float64
	lastAcc float64
	hasLast bool

	outcome     coach.Outcome
	celebration string
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// NewModel constructs a typing TUI model.
func NewModel(cfg model.Config, c *coach.Coach, gen *generator.Generator, log *zap.Logger, opts ...Option) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	pal := paletteFor(cfg.Calm)
	m := &Model{
		config: cfg,
		coach:  c,
		gen:    gen,
		log:    log,
		now:    time.Now,
		pal:    pal,
		bar: progress.New(
			progress.WithSolidFill(pal.barFill),
			progress.WithoutPercentage(),
			progress.WithWidth(progressBarWidth),
		),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.outcome = c.Snapshot()
	m.resetSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.targetRunes) == 0 {
		return ""
	}
	cursorIndex := -1
	if len(m.inputRunes) < len(m.targetRunes) {
		cursorIndex = len(m.inputRunes)
	}
	styledRunes := buildStyledRunes(m.pal, m.targetRunes, m.inputRunes, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return m.renderBanner() + renderStyledRunes(styledRunes)
	}
	contentWidth := max(int(float64(m.width)*0.70), 1)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapStyledRunes(styledRunes, contentWidth))
	if banner := m.renderBanner(); banner != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, banner, content)
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderBanner() string {
	if m.celebration == "" {
		return ""
	}
	return m.pal.celebrate.Render(m.celebration) + "\n\n"
}

func (m *Model) renderFooter() string {
	p := m.outcome.Progress
	lvl := m.exercise.Level
	segments := []string{fmt.Sprintf("%s %s", lvl.Icon, lvl.Title)}
	if p.ExperienceToNextLevel > 0 {
		segments = append(segments, fmt.Sprintf("XP %d/%d", p.Experience, p.ExperienceToNextLevel))
	} else {
		segments = append(segments, fmt.Sprintf("XP %d", p.Experience))
	}
	segments = append(segments, fmt.Sprintf("%s %d%%", m.bar.ViewAs(float64(m.outcome.Percent)/100), m.outcome.Percent))
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f%% · %.1f WPM", m.lastAcc, m.lastWPM))
	}
	return m.pal.footer.Render(strings.Join(segments, "  "))
}

func (m *Model) handleBackspace() {
	if len(m.inputRunes) == 0 {
		return
	}
	m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		if len(m.inputRunes) >= len(m.targetRunes) {
			return
		}
		if !m.started {
			m.started = true
			m.startedAt = m.now()
			m.celebration = ""
		}
		pos := len(m.inputRunes)
		expected := m.targetRunes[pos]
		m.inputRunes = append(m.inputRunes, r)
		m.updateStats(pos, expected, r)
		if len(m.inputRunes) == len(m.targetRunes) {
			m.finishSession()
			m.resetSession()
		}
	}
}

// updateStats counts non-space keystrokes and records each mistype.
func (m *Model) updateStats(pos int, expected, typed rune) {
	if expected == ' ' {
		return
	}
	if typed == expected {
		m.correctNonSpace++
		return
	}
	m.incorrectNonSpace++
	m.mistakes = append(m.mistakes, model.TypingMistake{
		Expected:  string(expected),
		Typed:     string(typed),
		Position:  pos,
		Timestamp: m.now(),
		Context:   wordAt(m.targetRunes, pos),
	})
}

func (m *Model) resetSession() {
	m.inputRunes = nil
	m.started = false
	m.startedAt = time.Time{}
	m.correctNonSpace = 0
	m.incorrectNonSpace = 0
	m.mistakes = nil

	m.exercise = m.coach.Plan()
	m.targetRunes = []rune(m.generateText())
}

func (m *Model) generateText() string {
	req := generator.Request{
		ContentType: m.exercise.ContentType,
		Difficulty:  m.exercise.Difficulty,
		Words:       m.config.Words,
	}
	if m.config.FocusWeak {
		req.Focus = m.exercise.FocusLetters
		req.FocusFactor = m.config.WeakFactor
	}
	return m.gen.Generate(req)
}

func (m *Model) finishSession() {
	if !m.started {
		return
	}
	endedAt := m.now()
	wpm, acc := stats.SessionSpeed(m.correctNonSpace, m.incorrectNonSpace, endedAt.Sub(m.startedAt))
	perf := model.SessionPerformance{
		ID:          uuid.NewString(),
		Timestamp:   endedAt,
		Accuracy:    acc,
		Speed:       wpm,
		WordsTyped:  len(strings.Fields(string(m.targetRunes))),
		Mistakes:    m.mistakes,
		ContentType: m.exercise.ContentType,
		Difficulty:  m.exercise.Difficulty,
	}
	m.lastWPM = wpm
	m.lastAcc = acc
	m.hasLast = true

	out, err := m.coach.Complete(context.Background(), perf)
	if err != nil {
		m.log.Warn("session not recorded", zap.String("session", perf.ID), zap.Error(err))
		return
	}
	m.outcome = out
	if out.Advance != nil && out.Advance.Success {
		m.celebration = fmt.Sprintf("%s %s", out.Advance.NewLevel.Icon, out.Advance.Message)
	}
}

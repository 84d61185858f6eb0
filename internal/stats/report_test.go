package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/calmkeys/internal/model"
	"github.com/verte-zerg/calmkeys/internal/progression"
)

func TestRenderReportNewUser(t *testing.T) {
	levels := progression.Levels()
	next := levels[1]
	r := Report{
		Level:    levels[0],
		Next:     &next,
		Progress: progression.DefaultProgress(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Metrics: model.SkillMetrics{
			NextFocusAreas: []string{"Start with simple words"},
		},
		Check: model.AdvancementCheck{MissingRequirements: []string{"Sessions: need 3, completed 0"}},
	}
	var buf bytes.Buffer
	if err := RenderReport(&buf, r, model.ReportConfig{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Level 1: First Keys",
		"Experience: 0 / 100",
		"No sessions yet.",
		"  - Sessions: need 3, completed 0",
		"  - Start with simple words",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape codes without color:\n%s", out)
	}
}

func TestRenderReportWithHistory(t *testing.T) {
	levels := progression.Levels()
	r := Report{
		Level: levels[len(levels)-1],
		Metrics: model.SkillMetrics{
			SessionsCompleted: 3,
			AverageAccuracy:   91.5,
			TotalWordsTyped:   30,
			WeakLetters:       []string{"q", "z"},
			CommonMistakes:    []model.MistakePair{{Expected: "q", Typed: "w", Count: 2}},
		},
		Check: model.AdvancementCheck{Message: "You have reached the highest level!"},
		History: []model.SessionPerformance{
			{Accuracy: 80}, {Accuracy: 90}, {Accuracy: 100},
		},
	}
	var buf bytes.Buffer
	if err := RenderReport(&buf, r, model.ReportConfig{CurveWindow: 1, Width: 2}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"All levels complete",
		"Avg accuracy: 91.5%",
		"Letters to practice: q z",
		"Common mix-ups: q→w (2)",
		"Accuracy trend: [ @]",
		"You have reached the highest level!",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestRenderLevelsMarksCurrent(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLevels(&buf, progression.Levels(), 2); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected header and 7 levels, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[2], ">") || !strings.Contains(lines[2], "Word Builder") {
		t.Fatalf("expected current level marker, got %q", lines[2])
	}
	if strings.HasPrefix(lines[1], ">") || strings.HasPrefix(lines[1], "·") {
		t.Fatalf("completed level should be unmarked, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "·") {
		t.Fatalf("expected locked marker, got %q", lines[3])
	}
}

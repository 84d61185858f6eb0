// Package coach connects session assessment with level progression.
package coach

import (
	"context"

	"go.uber.org/zap"

	"github.com/verte-zerg/calmkeys/internal/assessment"
	"github.com/verte-zerg/calmkeys/internal/model"
	"github.com/verte-zerg/calmkeys/internal/progression"
)

// Exercise describes what to practice next.
type Exercise struct {
	Level        model.Level
	ContentType  model.ContentType
	Difficulty   model.Difficulty
	FocusLetters []string
}

// Outcome is the result of completing a session.
type Outcome struct {
	Metrics    model.SkillMetrics
	Experience int
	Check      model.AdvancementCheck
	// Advance is nil when the gate did not pass.
	Advance  *model.AdvanceResult
	Progress model.UserProgress
	Percent  int
}

// Coach runs the record, score, gate and advance sequence.
type Coach struct {
	assess *assessment.Service
	levels *progression.System
	log    *zap.Logger
}

// New returns a Coach. A nil logger disables logging.
func New(assess *assessment.Service, levels *progression.System, log *zap.Logger) *Coach {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coach{assess: assess, levels: levels, log: log}
}

// Plan picks the next exercise from the current level and weak letters.
func (c *Coach) Plan() Exercise {
	metrics := c.assess.CalculateMetrics()
	return Exercise{
		Level:        c.levels.CurrentLevel(),
		ContentType:  c.levels.RecommendedContentType(),
		Difficulty:   c.levels.RecommendedDifficulty(),
		FocusLetters: metrics.WeakLetters,
	}
}

// Snapshot reports the current metrics and progress without recording.
func (c *Coach) Snapshot() Outcome {
	metrics := c.assess.CalculateMetrics()
	return Outcome{
		Metrics:  metrics,
		Check:    c.levels.CheckLevelAdvancement(metrics),
		Progress: c.levels.Progress(),
		Percent:  c.levels.ProgressPercentage(metrics),
	}
}

// Complete records perf and advances the level when the gate passes.
// Invalid sessions are returned as errors and change nothing.
func (c *Coach) Complete(ctx context.Context, perf model.SessionPerformance) (Outcome, error) {
	if err := c.assess.RecordSession(ctx, perf); err != nil {
		return Outcome{}, err
	}
	metrics := c.assess.CalculateMetrics()

	xp := c.levels.CalculateExperiencePoints(model.SessionScore{
		Accuracy:     perf.Accuracy,
		WordsTyped:   perf.WordsTyped,
		MistakeCount: len(perf.Mistakes),
	})
	c.levels.AddExperience(ctx, xp)

	out := Outcome{
		Metrics:    metrics,
		Experience: xp,
		Check:      c.levels.CheckLevelAdvancement(metrics),
	}
	if out.Check.CanAdvance {
		res := c.levels.AdvanceLevel(ctx)
		out.Advance = &res
	}
	out.Progress = c.levels.Progress()
	out.Percent = c.levels.ProgressPercentage(metrics)

	c.log.Debug("session completed",
		zap.Float64("accuracy", perf.Accuracy),
		zap.Float64("wpm", perf.Speed),
		zap.Int("xp", xp),
		zap.Int("level", out.Progress.CurrentLevel),
		zap.Bool("advanced", out.Advance != nil && out.Advance.Success),
	)
	return out, nil
}

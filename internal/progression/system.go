package progression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/calmkeys/internal/model"
	"github.com/verte-zerg/calmkeys/internal/store"
)

const finalLevelMessage = "You have reached the highest level!"

// System tracks the current level and gates advancement.
type System struct {
	mu       sync.Mutex
	kv       store.KV
	log      *zap.Logger
	now      func() time.Time
	progress model.UserProgress
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for storage failures.
func WithLogger(log *zap.Logger) Option {
	return func(s *System) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *System) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a System and loads progress from kv. Missing or unreadable
// progress starts at level 1.
func New(ctx context.Context, kv store.KV, opts ...Option) *System {
	s := &System{
		kv:  kv,
		log: zap.NewNop(),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.progress = s.load(ctx)
	return s
}

// DefaultProgress is the state of a new user.
func DefaultProgress(now time.Time) model.UserProgress {
	return model.UserProgress{
		CurrentLevel:            1,
		ExperienceToNextLevel:   experienceToNext(1),
		LevelsCompleted:         []int{},
		DateStartedCurrentLevel: now,
	}
}

func (s *System) load(ctx context.Context) model.UserProgress {
	raw, err := s.kv.Get(ctx, store.KeyProgress)
	if errors.Is(err, store.ErrNotFound) {
		return DefaultProgress(s.now())
	}
	if err != nil {
		s.log.Warn("failed to load progress", zap.String("key", store.KeyProgress), zap.Error(err))
		return DefaultProgress(s.now())
	}
	var p model.UserProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.Warn("failed to decode progress", zap.String("key", store.KeyProgress), zap.Error(err))
		return DefaultProgress(s.now())
	}
	if _, ok := LevelByID(p.CurrentLevel); !ok {
		s.log.Warn("stored progress has unknown level", zap.Int("level", p.CurrentLevel))
		return DefaultProgress(s.now())
	}
	if p.LevelsCompleted == nil {
		p.LevelsCompleted = []int{}
	}
	return p
}

func (s *System) save(ctx context.Context) {
	raw, err := json.Marshal(s.progress)
	if err != nil {
		s.log.Error("failed to encode progress", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, store.KeyProgress, raw); err != nil {
		s.log.Error("failed to save progress", zap.String("key", store.KeyProgress), zap.Error(err))
	}
}

// Progress returns a copy of the current progress.
func (s *System) Progress() model.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProgress(s.progress)
}

func copyProgress(p model.UserProgress) model.UserProgress {
	p.LevelsCompleted = append([]int{}, p.LevelsCompleted...)
	if p.LastLevelUpDate != nil {
		t := *p.LastLevelUpDate
		p.LastLevelUpDate = &t
	}
	return p
}

// CurrentLevel returns the catalog entry for the current level.
func (s *System) CurrentLevel() model.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLevel()
}

func (s *System) currentLevel() model.Level {
	lvl, _ := LevelByID(s.progress.CurrentLevel)
	return lvl
}

// NextLevel returns the level after the current one. The bool is false at
// the final level.
func (s *System) NextLevel() (model.Level, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LevelByID(s.progress.CurrentLevel + 1)
}

// AllLevels returns the whole catalog.
func (s *System) AllLevels() []model.Level {
	return Levels()
}

// CheckLevelAdvancement compares metrics with the current level's
// requirements. Those requirements gate leaving the level.
func (s *System) CheckLevelAdvancement(m model.SkillMetrics) model.AdvancementCheck {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := LevelByID(s.progress.CurrentLevel + 1); !ok {
		return model.AdvancementCheck{Message: finalLevelMessage}
	}
	req := s.currentLevel().Requirements
	var missing []string
	if m.AverageAccuracy < req.MinAccuracy {
		missing = append(missing, fmt.Sprintf("Accuracy: need %.0f%%, currently %.1f%%", req.MinAccuracy, m.AverageAccuracy))
	}
	if m.SessionsCompleted < req.MinSessions {
		missing = append(missing, fmt.Sprintf("Sessions: need %d, completed %d", req.MinSessions, m.SessionsCompleted))
	}
	if m.TotalWordsTyped < req.MinWordsTyped {
		missing = append(missing, fmt.Sprintf("Words typed: need %d, typed %d", req.MinWordsTyped, m.TotalWordsTyped))
	}
	if m.ConsistencyScore < req.MinConsistency {
		missing = append(missing, fmt.Sprintf("Consistency: need %.0f, currently %.1f", req.MinConsistency, m.ConsistencyScore))
	}
	return model.AdvancementCheck{
		CanAdvance:          len(missing) == 0,
		MissingRequirements: missing,
	}
}

// AdvanceLevel moves to the next level. At the final level it reports
// failure and changes nothing.
func (s *System) AdvanceLevel(ctx context.Context) model.AdvanceResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := LevelByID(s.progress.CurrentLevel + 1)
	if !ok {
		return model.AdvanceResult{
			NewLevel: s.currentLevel(),
			Message:  finalLevelMessage,
		}
	}
	now := s.now()
	s.progress.LevelsCompleted = append(s.progress.LevelsCompleted, s.progress.CurrentLevel)
	s.progress.CurrentLevel = next.ID
	s.progress.Experience = 0
	s.progress.ExperienceToNextLevel = experienceToNext(next.ID)
	s.progress.DateStartedCurrentLevel = now
	s.progress.LastLevelUpDate = &now
	s.save(ctx)

	s.log.Info("level up", zap.Int("level", next.ID), zap.String("title", next.Title))
	return model.AdvanceResult{
		Success:  true,
		NewLevel: next,
		Message:  next.Rewards.CelebrationMessage,
	}
}

// AddExperience adds points to the current level's experience.
func (s *System) AddExperience(ctx context.Context, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Experience += points
	s.save(ctx)
}

// CalculateExperiencePoints scores a single session.
func (s *System) CalculateExperiencePoints(score model.SessionScore) int {
	return ExperiencePoints(score)
}

// ProgressPercentage averages how close each metric is to the current
// level's requirement, each capped at 100%.
func (s *System) ProgressPercentage(m model.SkillMetrics) int {
	s.mu.Lock()
	req := s.currentLevel().Requirements
	s.mu.Unlock()

	parts := []float64{
		ratio(m.AverageAccuracy, req.MinAccuracy),
		ratio(float64(m.SessionsCompleted), float64(req.MinSessions)),
		ratio(float64(m.TotalWordsTyped), float64(req.MinWordsTyped)),
		ratio(m.ConsistencyScore, req.MinConsistency),
	}
	var sum float64
	for _, p := range parts {
		sum += p
	}
	return int(math.Round(sum / float64(len(parts)) * 100))
}

func ratio(value, required float64) float64 {
	if required <= 0 {
		return 1
	}
	return math.Min(1, math.Max(0, value/required))
}

// IsContentTypeUnlocked reports whether the current level allows ct.
func (s *System) IsContentTypeUnlocked(ct model.ContentType) bool {
	return slices.Contains(s.CurrentLevel().ContentFocus.Types, ct)
}

// IsDifficultyUnlocked reports whether the current level allows d.
func (s *System) IsDifficultyUnlocked(d model.Difficulty) bool {
	return slices.Contains(s.CurrentLevel().ContentFocus.Difficulty, d)
}

// RecommendedContentType prefers the most advanced unlocked type.
func (s *System) RecommendedContentType() model.ContentType {
	types := s.CurrentLevel().ContentFocus.Types
	for _, ct := range []model.ContentType{model.ContentStories, model.ContentSentences} {
		if slices.Contains(types, ct) {
			return ct
		}
	}
	return model.ContentWords
}

// RecommendedDifficulty returns the current level's recommended difficulty.
func (s *System) RecommendedDifficulty() model.Difficulty {
	return s.CurrentLevel().ContentFocus.RecommendedDifficulty
}

// Reset returns progress to the defaults and persists them.
func (s *System) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = DefaultProgress(s.now())
	s.save(ctx)
}

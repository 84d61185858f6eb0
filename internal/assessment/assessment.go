// Package assessment turns recorded typing sessions into skill metrics.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/verte-zerg/calmkeys/internal/model"
	"github.com/verte-zerg/calmkeys/internal/store"
)

const (
	// MaxHistory caps the number of stored sessions.
	MaxHistory = 50
	// RecentWindow is the number of sessions used for rolling averages.
	RecentWindow = 10
)

// ErrInvalidSession is returned when a session record fails range checks.
var ErrInvalidSession = errors.New("invalid session")

// Service keeps the session history and computes metrics from it.
type Service struct {
	mu       sync.Mutex
	kv       store.KV
	log      *zap.Logger
	validate *validator.Validate
	history  []model.SessionPerformance
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for storage failures.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Service and loads history from kv. Load failures are logged
// and leave the service with an empty history.
func New(ctx context.Context, kv store.KV, opts ...Option) *Service {
	s := &Service{
		kv:       kv,
		log:      zap.NewNop(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	if err := s.validate.RegisterValidation("finite", isFinite); err != nil {
		panic(err)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = s.load(ctx)
	return s
}

func (s *Service) load(ctx context.Context) []model.SessionPerformance {
	raw, err := s.kv.Get(ctx, store.KeyHistory)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("failed to load session history", zap.String("key", store.KeyHistory), zap.Error(err))
		return nil
	}
	var history []model.SessionPerformance
	if err := json.Unmarshal(raw, &history); err != nil {
		s.log.Warn("failed to decode session history", zap.String("key", store.KeyHistory), zap.Error(err))
		return nil
	}
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	return history
}

func (s *Service) save(ctx context.Context) {
	raw, err := json.Marshal(s.history)
	if err != nil {
		s.log.Error("failed to encode session history", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, store.KeyHistory, raw); err != nil {
		s.log.Error("failed to save session history", zap.String("key", store.KeyHistory), zap.Error(err))
	}
}

// RecordSession validates perf, appends it to the history and persists the
// history. The oldest sessions are evicted beyond MaxHistory.
func (s *Service) RecordSession(ctx context.Context, perf model.SessionPerformance) error {
	if err := s.Validate(perf); err != nil {
		return err
	}
	perf.Mistakes = append([]model.TypingMistake(nil), perf.Mistakes...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, perf)
	if over := len(s.history) - MaxHistory; over > 0 {
		s.history = append([]model.SessionPerformance(nil), s.history[over:]...)
	}
	s.save(ctx)
	return nil
}

// isFinite rejects NaN and infinities, which cannot be stored as JSON.
func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate checks the field ranges of a session record.
func (s *Service) Validate(perf model.SessionPerformance) error {
	err := s.validate.Struct(perf)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		fields = append(fields, fmt.Sprintf("%s must satisfy %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidSession, strings.Join(fields, "; "))
}

// History returns a copy of the stored sessions, oldest first.
func (s *Service) History() []model.SessionPerformance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SessionPerformance, len(s.history))
	copy(out, s.history)
	return out
}

// Reset clears the history in memory and in storage.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	if err := s.kv.Delete(ctx, store.KeyHistory); err != nil {
		s.log.Error("failed to delete session history", zap.String("key", store.KeyHistory), zap.Error(err))
	}
}

// CalculateMetrics computes metrics from the current history.
func (s *Service) CalculateMetrics() model.SkillMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Compute(s.history)
}

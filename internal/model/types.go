// Package model defines shared data structures.
package model

import "time"

// ContentType is the kind of practice text.
type ContentType string

// Content types, ordered from simplest to most advanced.
const (
	ContentWords     ContentType = "words"
	ContentSentences ContentType = "sentences"
	ContentStories   ContentType = "stories"
)

// Difficulty is the difficulty tier of practice text.
type Difficulty string

// Difficulty tiers.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Config defines practice settings.
type Config struct {
	Profile      string
	Words        int
	WordListPath string
	FocusWeak    bool
	WeakFactor   float64
	Calm         bool
}

// ReportConfig defines options for the progress report.
type ReportConfig struct {
	Profile     string
	CurveWindow int
	Width       int
	Color       bool
}

// TypingMistake records a single wrong keystroke.
type TypingMistake struct {
	Expected  string    `json:"expected" validate:"required"`
	Typed     string    `json:"typed"`
	Position  int       `json:"position" validate:"gte=0"`
	Timestamp time.Time `json:"timestamp"`
	Context   string    `json:"context,omitempty"`
}

// SessionPerformance summarizes one completed practice session.
type SessionPerformance struct {
	ID          string          `json:"id,omitempty"`
	Timestamp   time.Time       `json:"timestamp" validate:"required"`
	Accuracy    float64         `json:"accuracy" validate:"finite,gte=0,lte=100"`
	Speed       float64         `json:"speed" validate:"finite,gte=0"`
	WordsTyped  int             `json:"wordsTyped" validate:"gte=0"`
	Mistakes    []TypingMistake `json:"mistakes" validate:"dive"`
	ContentType ContentType     `json:"contentType" validate:"oneof=words sentences stories"`
	Difficulty  Difficulty      `json:"difficulty" validate:"oneof=easy medium hard"`
}

// MistakePair counts how often one character was typed in place of another.
type MistakePair struct {
	Expected string `json:"expected"`
	Typed    string `json:"typed"`
	Count    int    `json:"count"`
}

// String renders the pair as expected→typed.
func (p MistakePair) String() string {
	return p.Expected + "→" + p.Typed
}

// SkillMetrics is derived from session history.
type SkillMetrics struct {
	AverageAccuracy     float64 `json:"averageAccuracy"`
	AverageSpeed        float64 `json:"averageSpeed"`
	TotalWordsTyped     int     `json:"totalWordsTyped"`
	TotalSentencesTyped int     `json:"totalSentencesTyped"`
	SessionsCompleted   int     `json:"sessionsCompleted"`

	WeakLetters    []string      `json:"weakLetters"`
	StrongLetters  []string      `json:"strongLetters"`
	CommonMistakes []MistakePair `json:"commonMistakes"`

	StrugglesWithCapitals    bool `json:"strugglesWithCapitals"`
	StrugglesWithNumbers     bool `json:"strugglesWithNumbers"`
	StrugglesWithPunctuation bool `json:"strugglesWithPunctuation"`

	ImprovementRate  float64 `json:"improvementRate"`
	ConsistencyScore float64 `json:"consistencyScore"`

	NextFocusAreas    []string `json:"nextFocusAreas"`
	ReadyForNextLevel bool     `json:"readyForNextLevel"`
}

// LevelRequirements gate advancement out of a level.
type LevelRequirements struct {
	MinAccuracy    float64  `json:"minAccuracy"`
	MinSessions    int      `json:"minSessions"`
	MinWordsTyped  int      `json:"minWordsTyped"`
	MinConsistency float64  `json:"minConsistency"`
	SpecificSkills []string `json:"specificSkills,omitempty"`
}

// ContentFocus lists what a level unlocks and recommends.
type ContentFocus struct {
	Types                 []ContentType `json:"types"`
	Difficulty            []Difficulty  `json:"difficulty"`
	RecommendedDifficulty Difficulty    `json:"recommendedDifficulty"`
	FocusAreas            []string      `json:"focusAreas"`
}

// LevelRewards describes what reaching a level grants.
type LevelRewards struct {
	Badge              string   `json:"badge"`
	CelebrationMessage string   `json:"celebrationMessage"`
	Unlocks            []string `json:"unlocks,omitempty"`
}

// Level is one entry of the progression catalog.
type Level struct {
	ID           int               `json:"id"`
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Icon         string            `json:"icon"`
	Color        string            `json:"color"`
	Requirements LevelRequirements `json:"requirements"`
	ContentFocus ContentFocus      `json:"contentFocus"`
	Rewards      LevelRewards      `json:"rewards"`
}

// UserProgress is the persisted progression state.
type UserProgress struct {
	CurrentLevel            int        `json:"currentLevel"`
	Experience              int        `json:"experience"`
	ExperienceToNextLevel   int        `json:"experienceToNextLevel"`
	LevelsCompleted         []int      `json:"levelsCompleted"`
	DateStartedCurrentLevel time.Time  `json:"dateStartedCurrentLevel"`
	LastLevelUpDate         *time.Time `json:"lastLevelUpDate,omitempty"`
}

// AdvancementCheck is the result of evaluating the advancement gate.
type AdvancementCheck struct {
	CanAdvance          bool
	MissingRequirements []string
	// Message is set instead of MissingRequirements at the final level.
	Message string
}

// AdvanceResult reports a level transition attempt.
type AdvanceResult struct {
	Success  bool
	NewLevel Level
	Message  string
}

// SessionScore holds the inputs for experience scoring.
type SessionScore struct {
	Accuracy     float64
	WordsTyped   int
	MistakeCount int
}

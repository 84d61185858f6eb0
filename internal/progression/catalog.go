// Package progression owns the level catalog and the user's level state.
package progression

import (
	"slices"

	"github.com/verte-zerg/calmkeys/internal/model"
)

var (
	wordsOnly    = []model.ContentType{model.ContentWords}
	wordsAndSent = []model.ContentType{model.ContentWords, model.ContentSentences}
	allContent   = []model.ContentType{model.ContentWords, model.ContentSentences, model.ContentStories}

	easyOnly     = []model.Difficulty{model.DifficultyEasy}
	easyMedium   = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium}
	allDifficult = []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
)

// catalog is ordered by id, 1..7, with no gaps.
var catalog = []model.Level{
	{
		ID:          1,
		Name:        "first-keys",
		Title:       "First Keys",
		Description: "Getting comfortable with the home row and short words.",
		Icon:        "🌱",
		Color:       "#8FBC8F",
		Requirements: model.LevelRequirements{
			MinAccuracy:    70,
			MinSessions:    3,
			MinWordsTyped:  25,
			MinConsistency: 50,
		},
		ContentFocus: model.ContentFocus{
			Types:                 wordsOnly,
			Difficulty:            easyOnly,
			RecommendedDifficulty: model.DifficultyEasy,
			FocusAreas:            []string{"home row letters", "short words"},
		},
		Rewards: model.LevelRewards{
			Badge:              "Seedling",
			CelebrationMessage: "Welcome! Every key you press is a step forward.",
		},
	},
	{
		ID:          2,
		Name:        "word-builder",
		Title:       "Word Builder",
		Description: "Typing common words at a calm, steady pace.",
		Icon:        "🧱",
		Color:       "#7FB3D5",
		Requirements: model.LevelRequirements{
			MinAccuracy:    75,
			MinSessions:    5,
			MinWordsTyped:  100,
			MinConsistency: 60,
		},
		ContentFocus: model.ContentFocus{
			Types:                 wordsOnly,
			Difficulty:            easyMedium,
			RecommendedDifficulty: model.DifficultyEasy,
			FocusAreas:            []string{"common words", "steady rhythm"},
		},
		Rewards: model.LevelRewards{
			Badge:              "Builder",
			CelebrationMessage: "You are a Word Builder now. Nice and steady!",
			Unlocks:            []string{"medium words"},
		},
	},
	{
		ID:          3,
		Name:        "word-explorer",
		Title:       "Word Explorer",
		Description: "Longer words and your first short sentences.",
		Icon:        "🧭",
		Color:       "#A9CCE3",
		Requirements: model.LevelRequirements{
			MinAccuracy:    80,
			MinSessions:    8,
			MinWordsTyped:  250,
			MinConsistency: 65,
		},
		ContentFocus: model.ContentFocus{
			Types:                 wordsAndSent,
			Difficulty:            easyMedium,
			RecommendedDifficulty: model.DifficultyMedium,
			FocusAreas:            []string{"longer words", "spaces between words"},
		},
		Rewards: model.LevelRewards{
			Badge:              "Explorer",
			CelebrationMessage: "Sentences are open! Take them one word at a time.",
			Unlocks:            []string{"sentences"},
		},
	},
	{
		ID:          4,
		Name:        "sentence-maker",
		Title:       "Sentence Maker",
		Description: "Whole sentences with capital letters and full stops.",
		Icon:        "✏️",
		Color:       "#D7BDE2",
		Requirements: model.LevelRequirements{
			MinAccuracy:    85,
			MinSessions:    12,
			MinWordsTyped:  500,
			MinConsistency: 70,
		},
		ContentFocus: model.ContentFocus{
			Types:                 wordsAndSent,
			Difficulty:            allDifficult,
			RecommendedDifficulty: model.DifficultyMedium,
			FocusAreas:            []string{"capital letters", "punctuation"},
		},
		Rewards: model.LevelRewards{
			Badge:              "Sentence Maker",
			CelebrationMessage: "You can type full sentences. That is a big skill!",
			Unlocks:            []string{"hard difficulty"},
		},
	},
	{
		ID:          5,
		Name:        "story-starter",
		Title:       "Story Starter",
		Description: "Short, quiet stories to practice reading while typing.",
		Icon:        "📖",
		Color:       "#F5CBA7",
		Requirements: model.LevelRequirements{
			MinAccuracy:    88,
			MinSessions:    16,
			MinWordsTyped:  900,
			MinConsistency: 75,
		},
		ContentFocus: model.ContentFocus{
			Types:                 allContent,
			Difficulty:            allDifficult,
			RecommendedDifficulty: model.DifficultyMedium,
			FocusAreas:            []string{"reading flow", "longer passages"},
		},
		Rewards: model.LevelRewards{
			Badge:              "Storyteller",
			CelebrationMessage: "Stories are unlocked. Enjoy the calm of a longer read.",
			Unlocks:            []string{"stories"},
		},
	},
	{
		ID:          6,
		Name:        "smooth-typist",
		Title:       "Smooth Typist",
		Description: "Harder passages with numbers and punctuation.",
		Icon:        "🌊",
		Color:       "#A3E4D7",
		Requirements: model.LevelRequirements{
			MinAccuracy:    92,
			MinSessions:    20,
			MinWordsTyped:  1500,
			MinConsistency: 80,
		},
		ContentFocus: model.ContentFocus{
			Types:                 allContent,
			Difficulty:            allDifficult,
			RecommendedDifficulty: model.DifficultyHard,
			FocusAreas:            []string{"numbers", "symbols", "speed"},
		},
		Rewards: model.LevelRewards{
			Badge:              "Smooth Typist",
			CelebrationMessage: "Your typing flows smoothly. Wonderful work!",
		},
	},
	{
		ID:          7,
		Name:        "keyboard-master",
		Title:       "Keyboard Master",
		Description: "Everything is unlocked. Practice whatever you like.",
		Icon:        "🏆",
		Color:       "#F9E79F",
		Requirements: model.LevelRequirements{
			MinAccuracy:    95,
			MinSessions:    25,
			MinWordsTyped:  2500,
			MinConsistency: 85,
		},
		ContentFocus: model.ContentFocus{
			Types:                 allContent,
			Difficulty:            allDifficult,
			RecommendedDifficulty: model.DifficultyHard,
			FocusAreas:            []string{"free practice"},
		},
		Rewards: model.LevelRewards{
			Badge:              "Master",
			CelebrationMessage: "You reached the top level. You should be very proud!",
		},
	},
}

// Levels returns a copy of the catalog.
func Levels() []model.Level {
	out := make([]model.Level, len(catalog))
	for i, lvl := range catalog {
		out[i] = cloneLevel(lvl)
	}
	return out
}

// LevelByID looks up a catalog entry.
func LevelByID(id int) (model.Level, bool) {
	if id < 1 || id > len(catalog) {
		return model.Level{}, false
	}
	return cloneLevel(catalog[id-1]), true
}

// cloneLevel copies the slices so callers cannot modify the catalog.
func cloneLevel(lvl model.Level) model.Level {
	lvl.Requirements.SpecificSkills = slices.Clone(lvl.Requirements.SpecificSkills)
	lvl.ContentFocus.Types = slices.Clone(lvl.ContentFocus.Types)
	lvl.ContentFocus.Difficulty = slices.Clone(lvl.ContentFocus.Difficulty)
	lvl.ContentFocus.FocusAreas = slices.Clone(lvl.ContentFocus.FocusAreas)
	lvl.Rewards.Unlocks = slices.Clone(lvl.Rewards.Unlocks)
	return lvl
}

// FinalLevel is the id of the terminal level.
func FinalLevel() int {
	return catalog[len(catalog)-1].ID
}

func experienceToNext(levelID int) int {
	if levelID >= FinalLevel() {
		return 0
	}
	return levelID * 100
}

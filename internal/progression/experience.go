package progression

import "github.com/verte-zerg/calmkeys/internal/model"

const (
	baseExperience    = 10
	maxWordExperience = 50
	perfectBonus      = 30
)

// ExperiencePoints scores one session:
//
//	base 10
//	+20/+15/+10/+5 for accuracy >= 95/90/85/80
//	+min(words*2, 50)
//	+30 for exactly 100% accuracy
//	+20 for no mistakes, +10 for at most two
func ExperiencePoints(score model.SessionScore) int {
	points := baseExperience
	switch {
	case score.Accuracy >= 95:
		points += 20
	case score.Accuracy >= 90:
		points += 15
	case score.Accuracy >= 85:
		points += 10
	case score.Accuracy >= 80:
		points += 5
	}
	points += min(max(score.WordsTyped, 0), maxWordExperience/2) * 2
	if score.Accuracy == 100 {
		points += perfectBonus
	}
	switch {
	case score.MistakeCount == 0:
		points += 20
	case score.MistakeCount <= 2:
		points += 10
	}
	return points
}

package generator

import "github.com/engvoca/backend/internal/models"

// ResolveDifficulty maps a school level to the Korean difficulty word
// and grade range used in prompt templates. Unknown levels get the
// middle-school defaults.
func ResolveDifficulty(level models.SchoolLevel) (difficulty, gradeRange string) {
	switch level {
	case models.LevelElementary:
		return "쉬운", "1-6학년"
	case models.LevelMiddle:
		return "중간", "7-9학년"
	case models.LevelHigh:
		return "어려운", "10-12학년"
	default:
		return "중간", "전체"
	}
}

// LevelLabel returns the Korean display name for a school level.
func LevelLabel(level models.SchoolLevel) string {
	switch level {
	case models.LevelElementary:
		return "초등"
	case models.LevelMiddle:
		return "중등"
	case models.LevelHigh:
		return "고등"
	default:
		return "중등"
	}
}

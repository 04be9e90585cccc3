package generator

import (
	"testing"

	"github.com/engvoca/backend/internal/models"
)

func TestResolveDifficulty(t *testing.T) {
	tests := []struct {
		level      models.SchoolLevel
		difficulty string
		gradeRange string
	}{
		{models.LevelElementary, "쉬운", "1-6학년"},
		{models.LevelMiddle, "중간", "7-9학년"},
		{models.LevelHigh, "어려운", "10-12학년"},
		{models.SchoolLevel("college"), "중간", "전체"},
		{models.SchoolLevel(""), "중간", "전체"},
	}

	for _, tt := range tests {
		difficulty, gradeRange := ResolveDifficulty(tt.level)
		if difficulty != tt.difficulty || gradeRange != tt.gradeRange {
			t.Errorf("ResolveDifficulty(%q) = (%q, %q), want (%q, %q)",
				tt.level, difficulty, gradeRange, tt.difficulty, tt.gradeRange)
		}
	}
}

func TestLevelLabel(t *testing.T) {
	tests := []struct {
		level models.SchoolLevel
		want  string
	}{
		{models.LevelElementary, "초등"},
		{models.LevelMiddle, "중등"},
		{models.LevelHigh, "고등"},
		{models.SchoolLevel("college"), "중등"},
	}

	for _, tt := range tests {
		if got := LevelLabel(tt.level); got != tt.want {
			t.Errorf("LevelLabel(%q) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

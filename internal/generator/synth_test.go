package generator

import "testing"

func assertOptionSet(t *testing.T, options []string, meaning string) {
	t.Helper()
	if len(options) != 4 {
		t.Fatalf("expected 4 options, got %d: %v", len(options), options)
	}
	if options[0] != meaning {
		t.Errorf("expected %q first, got %q", meaning, options[0])
	}
	seen := map[string]bool{}
	for _, opt := range options {
		if opt == "" {
			t.Error("empty option in set")
		}
		if seen[opt] {
			t.Errorf("duplicate option %q in %v", opt, options)
		}
		seen[opt] = true
	}
}

func TestSynthesize_KnownMeaningShortcuts(t *testing.T) {
	s := NewSynthesizer()

	tests := []struct {
		meaning string
		want    []string
	}{
		{"중등", []string{"중등", "초등", "고등", "대학생"}},
		{"초등", []string{"초등", "중등", "고등", "유치원생"}},
		{"고등", []string{"고등", "중등", "대학생", "초등"}},
	}
	for _, tt := range tests {
		got := s.Synthesize(tt.meaning)
		if len(got) != 4 {
			t.Fatalf("Synthesize(%q): expected 4 options, got %v", tt.meaning, got)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Synthesize(%q)[%d] = %q, want %q", tt.meaning, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSynthesize_StudentAndCityPatterns(t *testing.T) {
	s := NewSynthesizer()

	got := s.Synthesize("대학생")
	assertOptionSet(t, got, "대학생")
	if got[1] != "선생님" || got[2] != "교수" || got[3] != "학부모" {
		t.Errorf("unexpected student distractors: %v", got)
	}

	got = s.Synthesize("대도시")
	assertOptionSet(t, got, "대도시")
	if got[1] != "시골" || got[2] != "마을" || got[3] != "농촌" {
		t.Errorf("unexpected city distractors: %v", got)
	}
}

func TestSynthesize_CategorySiblings(t *testing.T) {
	s := NewSynthesizer()

	got := s.Synthesize("사과")
	assertOptionSet(t, got, "사과")

	fruits := map[string]bool{"배": true, "포도": true, "오렌지": true, "바나나": true, "딸기": true, "키위": true}
	for _, opt := range got[1:] {
		if !fruits[opt] {
			t.Errorf("distractor %q is not a fruit sibling: %v", opt, got)
		}
	}
}

func TestSynthesize_UnknownMeaningUsesCommonPool(t *testing.T) {
	s := NewSynthesizer()

	got := s.Synthesize("번개")
	assertOptionSet(t, got, "번개")
}

func TestSynthesize_MeaningWithParenthesis(t *testing.T) {
	s := NewSynthesizer()

	// The full meaning stays in slot 0; the cleaned form drives filler
	// selection.
	got := s.Synthesize("중등 (middle)")
	assertOptionSet(t, got, "중등 (middle)")
	if got[1] != "초등" {
		t.Errorf("expected shortcut fillers for cleaned meaning, got %v", got)
	}
}

func TestComplete_TopsUpPartialSet(t *testing.T) {
	s := NewSynthesizer()

	got := s.Complete([]string{"바나나", "오렌지"}, "사과")
	assertOptionSet(t, got, "사과")
	if got[1] != "바나나" || got[2] != "오렌지" {
		t.Errorf("expected provided distractors kept in order, got %v", got)
	}
}

func TestComplete_DropsDuplicatesAndAnswerEcho(t *testing.T) {
	s := NewSynthesizer()

	got := s.Complete([]string{"사과", "바나나", "바나나", "오렌지", "포도", "키위"}, "사과")
	assertOptionSet(t, got, "사과")
}

func TestComplete_CustomCategoryRegistry(t *testing.T) {
	s := NewSynthesizerWithCategories(map[string][]string{
		"색깔": {"빨강", "파랑", "노랑", "초록"},
	})

	got := s.Synthesize("빨강")
	assertOptionSet(t, got, "빨강")

	colors := map[string]bool{"파랑": true, "노랑": true, "초록": true}
	for _, opt := range got[1:] {
		if !colors[opt] {
			t.Errorf("distractor %q is not from the custom category: %v", opt, got)
		}
	}
}

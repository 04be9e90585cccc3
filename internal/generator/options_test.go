package generator

import "testing"

func TestExtractOptions_CommaList(t *testing.T) {
	options := ExtractOptions("사과, 바나나, 오렌지, 포도", "사과")

	if len(options) != 4 {
		t.Fatalf("expected 4 options, got %d: %v", len(options), options)
	}
	if options[0] != "사과" {
		t.Errorf("expected answer first, got %q", options[0])
	}
	seen := map[string]bool{}
	for _, opt := range options {
		if seen[opt] {
			t.Errorf("duplicate option %q", opt)
		}
		seen[opt] = true
	}
}

func TestExtractOptions_AnswerAbsentFromReply(t *testing.T) {
	options := ExtractOptions("바나나, 오렌지, 포도, 키위", "사과")

	if len(options) != 4 {
		t.Fatalf("expected 4 options, got %d: %v", len(options), options)
	}
	if options[0] != "사과" {
		t.Errorf("expected answer inserted first, got %q", options[0])
	}
}

func TestExtractOptions_ThreeFragments(t *testing.T) {
	options := ExtractOptions("바나나, 오렌지, 포도", "사과")

	want := []string{"사과", "바나나", "오렌지", "포도"}
	if len(options) != len(want) {
		t.Fatalf("expected %v, got %v", want, options)
	}
	for i := range want {
		if options[i] != want[i] {
			t.Errorf("option %d: got %q, want %q", i, options[i], want[i])
		}
	}
}

func TestExtractOptions_LabelledLine(t *testing.T) {
	input := "다음은 선택지입니다.\n선택지: 바나나, 오렌지, 포도"

	options := ExtractOptions(input, "사과")
	if len(options) != 4 {
		t.Fatalf("expected 4 options, got %d: %v", len(options), options)
	}
	if options[0] != "사과" {
		t.Errorf("expected answer first, got %q", options[0])
	}
}

func TestExtractOptions_NumberedList(t *testing.T) {
	input := "1. 바나나\n2. 오렌지\n3. 포도"

	options := ExtractOptions(input, "사과")
	if len(options) == 0 {
		t.Fatal("expected options from numbered list")
	}
	if options[0] != "사과" {
		t.Errorf("expected answer first, got %q", options[0])
	}
	if len(options) > 4 {
		t.Errorf("expected at most 4 options, got %d", len(options))
	}
}

func TestExtractOptions_NumberedListCleanedToNothing(t *testing.T) {
	// English fragments are erased entirely by cleaning; the numbered
	// branch must not pass empty duplicates off as a full set.
	input := "1. apple\n2. banana\n3. cherry\n4. grape"

	if options := ExtractOptions(input, "사과"); options != nil {
		t.Errorf("expected nil so synthesis takes over, got %v", options)
	}
}

func TestExtractOptions_NumberedListDropsInvalidFragments(t *testing.T) {
	input := "1. 바나나\n2. banana\n3. 바나나\n4. 오렌지"

	options := ExtractOptions(input, "사과")
	if options == nil {
		t.Fatal("expected surviving fragments to be kept")
	}
	if options[0] != "사과" {
		t.Errorf("expected answer first, got %q", options[0])
	}
	seen := map[string]bool{}
	for _, opt := range options {
		if opt == "" {
			t.Errorf("empty option in %v", options)
		}
		if seen[opt] {
			t.Errorf("duplicate option %q in %v", opt, options)
		}
		seen[opt] = true
	}
}

func TestExtractOptions_NothingUsable(t *testing.T) {
	if options := ExtractOptions("죄송합니다", "사과"); options != nil {
		t.Errorf("expected nil, got %v", options)
	}
}

func TestCleanOption(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1. 바나나", "바나나"},
		{"* 오렌지", "오렌지"},
		{"포도 (grape)", "포도"},
		{"키위 - 녹색 과일", "키위"},
		{"banana 바나나", "바나나"},
		{"  딸기  ", "딸기"},
	}
	for _, tt := range tests {
		if got := cleanOption(tt.in); got != tt.want {
			t.Errorf("cleanOption(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidOption(t *testing.T) {
	if isValidOption("") {
		t.Error("empty option should be invalid")
	}
	if !isValidOption("바나나") {
		t.Error("short option should be valid")
	}
	long := "아주아주아주아주아주아주아주아주아주아주 긴 선택지"
	if isValidOption(long) {
		t.Error("20+ rune option should be invalid")
	}
}

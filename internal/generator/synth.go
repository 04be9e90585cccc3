package generator

import (
	"math/rand"
	"strings"
)

// Synthesizer fills out multiple-choice option sets when the model did
// not supply enough usable distractors. Distractors come from a
// category registry (words of the same kind as the answer), a pool of
// common school-life words, and template phrases as the last resort.
// Every produced set has the correct answer first and four pairwise
// distinct entries.
type Synthesizer struct {
	categories map[string][]string
	common     []string
	rnd        *rand.Rand
}

func NewSynthesizer() *Synthesizer {
	return NewSynthesizerWithCategories(defaultCategories())
}

func NewSynthesizerWithCategories(categories map[string][]string) *Synthesizer {
	return &Synthesizer{
		categories: categories,
		common: []string{
			"학교", "공부", "시험", "숙제", "책", "연필", "노트", "교실",
			"선생님", "학생", "친구", "가족", "집", "도시", "나라", "세계",
		},
		rnd: rand.New(rand.NewSource(rand.Int63())),
	}
}

func defaultCategories() map[string][]string {
	return map[string][]string{
		"과일": {"사과", "배", "포도", "오렌지", "바나나", "딸기", "키위"},
		"채소": {"당근", "양파", "감자", "배추", "시금치", "오이"},
		"동물": {"개", "고양이", "말", "소", "돼지", "토끼", "사자"},
	}
}

// Synthesize builds a complete four-entry option set for meaning from
// scratch.
func (s *Synthesizer) Synthesize(meaning string) []string {
	return s.Complete([]string{meaning}, meaning)
}

// Complete takes a partial option set, forces the correct answer into
// the first slot, and tops the set up to four distinct entries.
func (s *Synthesizer) Complete(options []string, meaning string) []string {
	out := make([]string, 0, 4)
	out = append(out, meaning)
	for _, opt := range options {
		if len(out) == 4 {
			break
		}
		if opt != meaning && !contains(out, opt) && opt != "" {
			out = append(out, opt)
		}
	}
	if len(out) == 4 {
		return out
	}

	meaningClean := strings.TrimSpace(strings.SplitN(meaning, "(", 2)[0])

	for _, filler := range s.fillers(meaning, meaningClean) {
		if len(out) == 4 {
			break
		}
		if filler != meaning && filler != meaningClean && !contains(out, filler) {
			out = append(out, filler)
		}
	}

	return out
}

// fillers returns candidate distractors for a meaning, best source
// first. Well-known meanings get hand-picked sets, members of a
// registered category get their siblings, everything else gets the
// common-word pool in random order and template phrases after that.
func (s *Synthesizer) fillers(meaning, meaningClean string) []string {
	var out []string

	switch {
	case meaningClean == "중등" || meaningClean == "중학생":
		out = append(out, "초등", "고등", "대학생")
	case meaningClean == "초등" || meaningClean == "초등학생":
		out = append(out, "중등", "고등", "유치원생")
	case meaningClean == "고등" || meaningClean == "고등학생":
		out = append(out, "중등", "대학생", "초등")
	case strings.Contains(meaningClean, "학생"):
		out = append(out, "선생님", "교수", "학부모")
	case strings.Contains(meaningClean, "도시"):
		out = append(out, "시골", "마을", "농촌")
	}

	if category := s.guessCategory(meaningClean); category != "" {
		out = append(out, s.categories[category]...)
	}

	shuffled := make([]string, len(s.common))
	copy(shuffled, s.common)
	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	out = append(out, shuffled...)

	out = append(out,
		"다른 "+meaningClean,
		"새로운 "+meaningClean,
		"특별한 "+meaningClean,
		"중요한 "+meaningClean,
	)

	return out
}

func (s *Synthesizer) guessCategory(word string) string {
	for category, words := range s.categories {
		if contains(words, word) {
			return category
		}
	}
	return ""
}

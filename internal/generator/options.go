package generator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	commaListRe    = regexp.MustCompile(`([^,\n]+)(,\s*[^,\n]+){3,}`)
	numberedItemRe = regexp.MustCompile(`\d+\.\s*([^\d\n]+)`)

	optPrefixRe = regexp.MustCompile(`^[0-9*\-•]+\.?\s*`)
	optParenRe  = regexp.MustCompile(`\([^)]*\)`)
	optDashRe   = regexp.MustCompile(`\s*-.*$`)
	optLatinRe  = regexp.MustCompile(`[a-zA-Z]{3,}`)
)

// cleanOption strips list markers, parenthesised asides, trailing dash
// commentary and embedded English words from a raw option fragment.
func cleanOption(option string) string {
	opt := strings.TrimSpace(option)
	opt = optPrefixRe.ReplaceAllString(opt, "")
	opt = optParenRe.ReplaceAllString(opt, "")
	opt = optDashRe.ReplaceAllString(opt, "")
	opt = optLatinRe.ReplaceAllString(opt, "")
	return strings.TrimSpace(opt)
}

func isValidOption(option string) bool {
	return option != "" && utf8.RuneCountInString(option) < 20
}

// ExtractOptions pulls answer options out of a model reply. The reply
// rarely comes back as the requested bare comma list, so extraction
// relaxes in stages: a run of four or more comma fragments anywhere in
// the text, then any line with at least three fragments, then a
// numbered list. The correct answer is placed first and the result is
// clamped to four entries. Returns nil when nothing usable was found.
func ExtractOptions(text, correctAnswer string) []string {
	var optionsText string

	if m := commaListRe.FindString(text); m != "" {
		optionsText = m
	} else {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			candidate := line
			if _, rest, found := strings.Cut(line, ":"); found {
				candidate = strings.TrimSpace(rest)
			}
			if strings.Count(candidate, ",") >= 2 {
				optionsText = candidate
				break
			}
		}
	}

	if optionsText == "" {
		numbered := numberedItemRe.FindAllStringSubmatch(text, -1)
		if len(numbered) < 3 {
			return nil
		}
		var opts []string
		for _, m := range numbered {
			if len(opts) == 4 {
				break
			}
			opt := cleanOption(m[1])
			if !isValidOption(opt) || opt == correctAnswer || contains(opts, opt) {
				continue
			}
			opts = append(opts, opt)
		}
		if len(opts) == 0 {
			return nil
		}
		return answerFirst(opts, correctAnswer)
	}

	var cleaned []string
	for _, raw := range strings.Split(optionsText, ",") {
		opt := cleanOption(raw)
		if !isValidOption(opt) || opt == correctAnswer || contains(cleaned, opt) {
			continue
		}
		cleaned = append(cleaned, opt)
	}

	return answerFirst(cleaned, correctAnswer)
}

// answerFirst moves the correct answer to index 0, evicting the last
// distractor when the set is already full, and clamps to four.
func answerFirst(options []string, correctAnswer string) []string {
	out := make([]string, 0, len(options)+1)
	for _, opt := range options {
		if opt != correctAnswer {
			out = append(out, opt)
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	out = append([]string{correctAnswer}, out...)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

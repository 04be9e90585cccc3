package generator

import (
	"regexp"
	"strings"

	"github.com/engvoca/backend/internal/models"
)

// Model replies arrive in several shapes depending on how well the
// model followed the prompt. Parsing tries the strict shapes first and
// relaxes until something matches.
var (
	numberedQuotedRe   = regexp.MustCompile(`(?i)(\d+)\.\s+Word:\s+"([^"]+)"\s+Meaning:\s+([^.]+)`)
	numberedUnquotedRe = regexp.MustCompile(`(\d+)\.\s+Word:\s+"?([^"\n]+)"?\s+Meaning:\s+([^.\n]+)`)
	parenRe            = regexp.MustCompile(`\(.*?\)`)
)

// CleanMeaning strips pronunciation hints in parentheses from a
// meaning.
func CleanMeaning(meaning string) string {
	return strings.TrimSpace(parenRe.ReplaceAllString(meaning, ""))
}

// ParseVocabulary extracts word/meaning pairs from a model reply.
// Strategies are tried in order: numbered entries with quoted words,
// labelled 단어:/의미: lines, then numbered entries without quotes.
// Returns an empty slice when nothing matched.
func ParseVocabulary(text string) []models.VocabularyItem {
	if items := parseNumbered(text, numberedQuotedRe); len(items) > 0 {
		return items
	}
	if items := parseLabelled(text); len(items) > 0 {
		return items
	}
	return parseNumbered(text, numberedUnquotedRe)
}

func parseNumbered(text string, re *regexp.Regexp) []models.VocabularyItem {
	var items []models.VocabularyItem
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		items = append(items, models.VocabularyItem{
			Word:    strings.TrimSpace(m[2]),
			Meaning: CleanMeaning(strings.TrimSpace(m[3])),
		})
	}
	return items
}

// parseLabelled handles the prompt's requested shape: blocks of
// 단어:/의미: lines (optionally 예문:) separated by blank lines. A new
// 단어: line also closes the previous block, so missing blank lines do
// not lose items.
func parseLabelled(text string) []models.VocabularyItem {
	var items []models.VocabularyItem
	var cur models.VocabularyItem
	var open bool

	flush := func() {
		if open && cur.Word != "" && cur.Meaning != "" {
			items = append(items, cur)
		}
		cur = models.VocabularyItem{}
		open = false
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "단어", "word":
			if open && cur.Word != "" && cur.Meaning != "" {
				flush()
			}
			value = strings.Trim(value, `"`)
			cur.Word = value
			open = true
		case "의미", "meaning":
			cur.Meaning = CleanMeaning(value)
			open = true
		case "예문", "example", "영어", "english":
			cur.Example = value
		case "선택지", "options":
			cur.Options = splitCommaOptions(value)
		}
	}
	flush()

	return items
}

// PairLines is the last-resort recovery for replies with no labels at
// all: consecutive line pairs are read as word then meaning.
func PairLines(text string) []models.VocabularyItem {
	lines := strings.Split(text, "\n")
	var items []models.VocabularyItem
	for i := 0; i+1 < len(lines); i += 2 {
		word := strings.TrimSpace(lines[i])
		meaning := strings.TrimSpace(lines[i+1])
		if word != "" && meaning != "" {
			items = append(items, models.VocabularyItem{Word: word, Meaning: meaning})
		}
	}
	return items
}

func splitCommaOptions(value string) []string {
	var opts []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			opts = append(opts, p)
		}
	}
	return opts
}

// Package generator turns model replies into fixed-shape vocabulary
// learning content: word/meaning lists, four-option multiple choice
// sets with the answer first, and roulette wheels.
package generator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/engvoca/backend/internal/commands"
	"github.com/engvoca/backend/internal/models"
	"github.com/engvoca/backend/internal/ollama"
)

// Service drives prompt rendering, model calls, reply parsing, and
// option synthesis for all generation endpoints.
type Service struct {
	llm   TextGenerator
	doc   *commands.Document
	synth *Synthesizer
}

func NewService(llm TextGenerator, doc *commands.Document) *Service {
	return &Service{
		llm:   llm,
		doc:   doc,
		synth: NewSynthesizer(),
	}
}

// ModelName reports which model the commands document selects.
func (s *Service) ModelName() string {
	return s.doc.Model.Name
}

func (s *Service) params() ollama.Params {
	return ollama.Params{
		Model:       s.doc.Model.Name,
		Temperature: s.doc.Model.Temperature,
		TopP:        s.doc.Model.TopP,
		MaxTokens:   s.doc.Model.MaxTokens,
	}
}

// GenerateWords produces up to req.Count word/meaning pairs. When the
// first reply parses short, one supplemental round asks for the
// shortfall; the rounds are concatenated and clamped to req.Count.
// Fewer items than requested is reported as *ShortDeliveryError with
// the partial result attached, so callers choose their own policy.
func (s *Service) GenerateWords(ctx context.Context, req models.GenerateWordsRequest) ([]models.VocabularyItem, error) {
	difficulty, gradeRange := ResolveDifficulty(req.SchoolLevel)
	params := map[string]interface{}{
		"count":        req.Count,
		"school_level": LevelLabel(req.SchoolLevel),
		"difficulty":   difficulty,
		"grade_range":  gradeRange,
		"voca_id":      req.VocaID,
	}

	prompt, err := s.doc.Render(commands.CmdGenerateVocabulary, params)
	if err != nil {
		return nil, fmt.Errorf("render vocabulary prompt: %w", err)
	}

	reply, err := s.llm.Generate(ctx, prompt, s.params())
	if err != nil {
		return nil, fmt.Errorf("generate vocabulary: %w", err)
	}

	items := ParseVocabulary(reply)
	if len(items) == 0 {
		log.Printf("WARN: [generator] no labelled items in reply, trying line pairing")
		items = PairLines(reply)
	}

	if len(items) < req.Count {
		items = s.supplement(ctx, items, req, params)
	}

	if len(items) > req.Count {
		items = items[:req.Count]
	}
	base := mockID()
	for i := range items {
		items[i].ID = base + i
		items[i].VocaID = req.VocaID
		items[i].SchoolLevel = req.SchoolLevel
	}

	if len(items) < req.Count {
		return items, &ShortDeliveryError{
			Requested: req.Count,
			Delivered: len(items),
			Items:     items,
		}
	}
	return items, nil
}

// supplement runs the single extra round for a short first reply.
// Its own failures only log: the first round's items are still worth
// delivering.
func (s *Service) supplement(ctx context.Context, items []models.VocabularyItem, req models.GenerateWordsRequest, params map[string]interface{}) []models.VocabularyItem {
	shortfall := req.Count - len(items)
	log.Printf("[generator] parsed %d of %d items, requesting %d more", len(items), req.Count, shortfall)

	params["count"] = shortfall
	prompt, err := s.doc.Render(commands.CmdSupplementVocabulary, params)
	if err != nil {
		log.Printf("WARN: [generator] render supplement prompt: %v", err)
		return items
	}

	reply, err := s.llm.Generate(ctx, prompt, s.params())
	if err != nil {
		log.Printf("WARN: [generator] supplemental round failed: %v", err)
		return items
	}

	return append(items, ParseVocabulary(reply)...)
}

// GenerateOne produces a single word/meaning pair.
func (s *Service) GenerateOne(ctx context.Context, req models.GenerateWordRequest) (models.VocabularyItem, error) {
	prompt, err := s.doc.Render(commands.CmdGenerateWord, map[string]interface{}{
		"voca_id": req.VocaID,
	})
	if err != nil {
		return models.VocabularyItem{}, fmt.Errorf("render word prompt: %w", err)
	}

	reply, err := s.llm.Generate(ctx, prompt, s.params())
	if err != nil {
		return models.VocabularyItem{}, fmt.Errorf("generate word: %w", err)
	}

	items := ParseVocabulary(reply)
	if len(items) == 0 {
		items = PairLines(reply)
	}
	if len(items) == 0 {
		return models.VocabularyItem{}, ErrParseExhausted
	}

	item := items[0]
	item.ID = mockID()
	item.VocaID = req.VocaID
	item.SchoolLevel = req.SchoolLevel
	return item, nil
}

// mockID gives generated items a client-side identifier before they
// are persisted.
func mockID() int {
	return 1000 + rand.Intn(9000)
}

// GenerateOptions returns the four-entry answer option set for a
// word/meaning pair: the meaning first, three distinct distractors
// after it. Distractors come from the model where usable and from the
// synthesizer otherwise.
func (s *Service) GenerateOptions(ctx context.Context, word, meaning string) ([]string, error) {
	prompt, err := s.doc.Render(commands.CmdGenerateOptions, map[string]interface{}{
		"word":    word,
		"meaning": meaning,
	})
	if err != nil {
		return nil, fmt.Errorf("render options prompt: %w", err)
	}

	reply, err := s.llm.Generate(ctx, prompt, s.params())
	if err != nil {
		return nil, fmt.Errorf("generate options for %q: %w", word, err)
	}

	options := ExtractOptions(reply, meaning)
	if len(options) < 4 {
		log.Printf("[generator] extracted %d options for %q, synthesizing the rest", len(options), word)
		options = s.synth.Complete(options, meaning)
	}
	if len(options) < 4 {
		return nil, fmt.Errorf("%w for %q", ErrInsufficientOptions, word)
	}
	return options[:4], nil
}

var roulettePalette = []string{
	"#FF6B6B", "#4ECDC4", "#FFD93D", "#95E1D3",
	"#F38181", "#6C5CE7", "#A8E6CF", "#FF8B94",
}

// BuildRoulette produces count wheel entries related to word. Colors
// cycle through a fixed palette and the integer percentages always sum
// to 100, the division remainder going to the first entry.
func (s *Service) BuildRoulette(ctx context.Context, req models.RouletteRequest) ([]models.RouletteItem, error) {
	count := req.Count
	if count <= 0 {
		count = 8
	}
	if count > 20 {
		count = 20
	}

	prompt, err := s.doc.Render(commands.CmdGenerateRoulette, map[string]interface{}{
		"word":  req.Word,
		"count": count,
	})
	if err != nil {
		return nil, fmt.Errorf("render roulette prompt: %w", err)
	}

	var names []string
	reply, err := s.llm.Generate(ctx, prompt, s.params())
	if err != nil {
		log.Printf("WARN: [generator] roulette generation failed, using fallback words: %v", err)
	} else {
		for _, raw := range splitCommaOptions(strings.ReplaceAll(reply, "\n", ",")) {
			name := cleanOption(raw)
			if isValidOption(name) && !contains(names, name) {
				names = append(names, name)
			}
			if len(names) == count {
				break
			}
		}
	}
	for _, filler := range s.synth.fillers(req.Word, req.Word) {
		if len(names) == count {
			break
		}
		if filler != req.Word && !contains(names, filler) {
			names = append(names, filler)
		}
	}

	if len(names) < count {
		count = len(names)
	}

	share := 100 / count
	remainder := 100 - share*count

	items := make([]models.RouletteItem, count)
	for i, name := range names {
		pct := share
		if i == 0 {
			pct += remainder
		}
		items[i] = models.RouletteItem{
			ID:         i + 1,
			Name:       name,
			Color:      roulettePalette[i%len(roulettePalette)],
			Percentage: pct,
		}
	}
	return items, nil
}

// Package vocabulary serves the vocabulary content endpoints: word
// generation, multiple-choice option generation, persistence, and the
// roulette wheel.
package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/engvoca/backend/internal/generator"
	"github.com/engvoca/backend/internal/models"
)

type Service struct {
	store *Store
	gen   *generator.Service
}

func NewService(store *Store, gen *generator.Service) *Service {
	return &Service{store: store, gen: gen}
}

// GenerateWords produces plain word/meaning items. A short delivery is
// passed through as *generator.ShortDeliveryError so the caller can
// accept the partial result.
func (s *Service) GenerateWords(ctx context.Context, req models.GenerateWordsRequest) ([]models.VocabularyItem, error) {
	start := time.Now()
	items, err := s.gen.GenerateWords(ctx, req)
	s.logRound("words", req.Count, len(items), start, err)
	return items, err
}

func (s *Service) GenerateOne(ctx context.Context, req models.GenerateWordRequest) (models.VocabularyItem, error) {
	start := time.Now()
	item, err := s.gen.GenerateOne(ctx, req)
	delivered := 0
	if err == nil {
		delivered = 1
	}
	s.logRound("word", 1, delivered, start, err)
	return item, err
}

// GenerateVocabulary produces a fixed-size vocabulary set. Unlike the
// plain word endpoint, under-delivery is an error here: sets are
// persisted as complete units. Options are filled later through
// GenerateOptions. When the request names an owner, the set is saved.
func (s *Service) GenerateVocabulary(ctx context.Context, req models.GenerateVocabularyRequest) ([]models.VocabularyItem, error) {
	count := req.Count
	if count <= 0 {
		count = 10
	}
	wordsReq := models.GenerateWordsRequest{
		Count:       count,
		VocaID:      numericVocaID(req.VocaID),
		SchoolLevel: req.SchoolLevel,
	}

	start := time.Now()
	items, err := s.gen.GenerateWords(ctx, wordsReq)
	s.logRound("vocabulary", count, len(items), start, err)
	if err != nil {
		return nil, fmt.Errorf("generate vocabulary words: %w", err)
	}

	if req.UserID != "" && req.VocaID != "" {
		if _, err := s.store.InsertItems(items, req.UserID, req.VocaID); err != nil {
			return nil, fmt.Errorf("save vocabulary set: %w", err)
		}
	}

	return items, nil
}

// GenerateOptions builds and persists option sets for caller-supplied
// word/meaning pairs. One failing pair aborts the whole batch so the
// stored set never ends up partially filled.
func (s *Service) GenerateOptions(ctx context.Context, req models.GenerateOptionsRequest) ([]models.VocabularyRecord, error) {
	items := make([]models.VocabularyItem, 0, len(req.Items))
	start := time.Now()
	for _, pair := range req.Items {
		options, err := s.gen.GenerateOptions(ctx, pair.Word, pair.Meaning)
		if err != nil {
			s.logRound("options", len(req.Items), len(items), start, err)
			return nil, err
		}
		items = append(items, models.VocabularyItem{
			Word:    pair.Word,
			Meaning: pair.Meaning,
			Options: options,
		})
	}
	s.logRound("options", len(req.Items), len(items), start, nil)

	records, err := s.store.InsertItems(items, req.UserID, req.VocaID)
	if err != nil {
		return nil, fmt.Errorf("save option sets: %w", err)
	}
	return records, nil
}

func (s *Service) ListItems(userID, vocaID string, limit, skip int) ([]models.VocabularyRecord, error) {
	return s.store.ListItems(userID, vocaID, limit, skip)
}

func (s *Service) BuildRoulette(ctx context.Context, req models.RouletteRequest) ([]models.RouletteItem, error) {
	return s.gen.BuildRoulette(ctx, req)
}

func (s *Service) logRound(kind string, requested, delivered int, start time.Time, genErr error) {
	errMsg := ""
	if genErr != nil {
		var short *generator.ShortDeliveryError
		if errors.As(genErr, &short) {
			errMsg = short.Error()
		} else {
			errMsg = genErr.Error()
		}
	}
	if err := s.store.LogGeneration(kind, s.gen.ModelName(), requested, delivered, time.Since(start).Milliseconds(), errMsg); err != nil {
		log.Printf("WARN: [vocabulary] log generation round: %v", err)
	}
}

// numericVocaID extracts the numeric level used in prompts from the
// client's set identifier, which is free-form.
func numericVocaID(vocaID string) int {
	if n, err := strconv.Atoi(vocaID); err == nil && n > 0 {
		return n
	}
	return 1
}

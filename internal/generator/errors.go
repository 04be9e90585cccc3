package generator

import (
	"errors"
	"fmt"

	"github.com/engvoca/backend/internal/models"
)

// ErrParseExhausted means no parsing strategy recovered a single
// word/meaning pair from the model reply.
var ErrParseExhausted = errors.New("no vocabulary items could be parsed from model reply")

// ErrInsufficientOptions means an option set could not be brought up to
// four entries even after synthesis.
var ErrInsufficientOptions = errors.New("could not assemble four answer options")

// ShortDeliveryError reports that fewer items than requested were
// produced even after the supplemental round. Items holds everything
// that was produced; callers decide whether partial delivery is
// acceptable.
type ShortDeliveryError struct {
	Requested int
	Delivered int
	Items     []models.VocabularyItem
}

func (e *ShortDeliveryError) Error() string {
	return fmt.Sprintf("generated %d of %d requested vocabulary items", e.Delivered, e.Requested)
}

package models

import "time"

type SchoolLevel string

const (
	LevelElementary SchoolLevel = "elementary"
	LevelMiddle     SchoolLevel = "middle"
	LevelHigh       SchoolLevel = "high"
)

var ValidSchoolLevels = map[SchoolLevel]bool{
	LevelElementary: true,
	LevelMiddle:     true,
	LevelHigh:       true,
}

// VocabularyItem is one generated word entry. Options is either empty
// (plain word generation) or exactly four entries with the correct
// meaning first (multiple-choice generation).
type VocabularyItem struct {
	ID          int         `json:"id,omitempty"`
	Word        string      `json:"word"`
	Meaning     string      `json:"meaning"`
	Example     string      `json:"example"`
	Options     []string    `json:"options,omitempty"`
	VocaID      int         `json:"vocaId,omitempty"`
	SchoolLevel SchoolLevel `json:"schoolLevel,omitempty"`
}

// VocabularyRecord is the persisted form of an option-bearing item.
type VocabularyRecord struct {
	ID          int64     `json:"id"`
	Word        string    `json:"word"`
	Meaning     string    `json:"meaning"`
	Example     string    `json:"example"`
	Options     []string  `json:"options"`
	UserID      string    `json:"userId"`
	VocaID      string    `json:"vocaId"`
	SchoolLevel string    `json:"schoolLevel,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ── Requests ────────────────────────────────────────────

type GenerateWordRequest struct {
	VocaID      int         `json:"vocaId"`
	SchoolLevel SchoolLevel `json:"schoolLevel"`
}

type GenerateWordsRequest struct {
	Count       int         `json:"count"`
	VocaID      int         `json:"vocaId"`
	SchoolLevel SchoolLevel `json:"schoolLevel"`
}

type GenerateVocabularyRequest struct {
	Count       int         `json:"count"`
	SchoolLevel SchoolLevel `json:"school_level"`
	UserID      string      `json:"userId"`
	VocaID      string      `json:"vocaId"`
}

type WordMeaningPair struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

type GenerateOptionsRequest struct {
	Items  []WordMeaningPair `json:"items"`
	UserID string            `json:"userId"`
	VocaID string            `json:"vocaId"`
}

type RouletteRequest struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// ── Responses ───────────────────────────────────────────

// DataResponse is the success envelope used by every content endpoint.
type DataResponse struct {
	Status string      `json:"status"`
	Count  int         `json:"count,omitempty"`
	Data   interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type RouletteItem struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Percentage int    `json:"percentage"`
}

package vocabulary

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/engvoca/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// InsertItems saves a batch of option-bearing items in one
// transaction. Either the whole batch lands or none of it does.
func (s *Store) InsertItems(items []models.VocabularyItem, userID, vocaID string) ([]models.VocabularyRecord, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	records := make([]models.VocabularyRecord, 0, len(items))
	for _, item := range items {
		var rec models.VocabularyRecord
		err := tx.QueryRow(
			`INSERT INTO vocabulary_items (word, meaning, example, options, user_id, voca_id, school_level)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, word, meaning, example, options, user_id, voca_id, COALESCE(school_level, ''), created_at`,
			item.Word, item.Meaning, item.Example, pq.Array(item.Options),
			userID, vocaID, string(item.SchoolLevel),
		).Scan(&rec.ID, &rec.Word, &rec.Meaning, &rec.Example, pq.Array(&rec.Options),
			&rec.UserID, &rec.VocaID, &rec.SchoolLevel, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert vocabulary item %q: %w", item.Word, err)
		}
		records = append(records, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert: %w", err)
	}
	return records, nil
}

// ListItems returns a user's saved items for one vocabulary set,
// newest first.
func (s *Store) ListItems(userID, vocaID string, limit, skip int) ([]models.VocabularyRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, word, meaning, example, options, user_id, voca_id, COALESCE(school_level, ''), created_at
		 FROM vocabulary_items
		 WHERE user_id = $1 AND voca_id = $2
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3 OFFSET $4`,
		userID, vocaID, limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary items: %w", err)
	}
	defer rows.Close()

	records := []models.VocabularyRecord{}
	for rows.Next() {
		var rec models.VocabularyRecord
		if err := rows.Scan(&rec.ID, &rec.Word, &rec.Meaning, &rec.Example, pq.Array(&rec.Options),
			&rec.UserID, &rec.VocaID, &rec.SchoolLevel, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vocabulary item: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LogGeneration records one generation round for later inspection.
// Logging failures are the caller's to ignore.
func (s *Store) LogGeneration(kind, modelUsed string, requested, delivered int, durationMs int64, errMsg string) error {
	var errVal sql.NullString
	if errMsg != "" {
		errVal = sql.NullString{String: errMsg, Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO generation_logs (kind, model_used, requested_count, delivered_count, duration_ms, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		kind, modelUsed, requested, delivered, durationMs, errVal,
	)
	return err
}

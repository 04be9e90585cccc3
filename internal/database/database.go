package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/engvoca/backend/internal/config"
)

func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS vocabulary_items (
		id           BIGSERIAL PRIMARY KEY,
		word         VARCHAR(100) NOT NULL,
		meaning      VARCHAR(255) NOT NULL,
		example      TEXT NOT NULL DEFAULT '',
		options      TEXT[] NOT NULL DEFAULT '{}',
		user_id      VARCHAR(100) NOT NULL,
		voca_id      VARCHAR(100) NOT NULL,
		school_level VARCHAR(20),
		created_at   TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_vocabulary_owner ON vocabulary_items(user_id, voca_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_vocabulary_word ON vocabulary_items(word);

	CREATE TABLE IF NOT EXISTS generation_logs (
		id              BIGSERIAL PRIMARY KEY,
		kind            VARCHAR(30) NOT NULL,
		model_used      VARCHAR(100),
		requested_count INT NOT NULL DEFAULT 0,
		delivered_count INT NOT NULL DEFAULT 0,
		duration_ms     INT,
		error_message   TEXT,
		created_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_genlogs_kind ON generation_logs(kind, created_at DESC);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Idempotent for databases created before these columns existed.
	alterStatements := []string{
		`ALTER TABLE vocabulary_items ADD COLUMN IF NOT EXISTS school_level VARCHAR(20)`,
		`ALTER TABLE generation_logs ADD COLUMN IF NOT EXISTS duration_ms INT`,
	}
	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	return nil
}

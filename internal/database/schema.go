package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is idempotent. The partial unique index keeps pending verification
// codes unique while allowing terminal requests to share a code; the spend
// index makes a second debit for the same request impossible.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		member_id  TEXT PRIMARY KEY,
		balance    BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
		version    INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS redemption_requests (
		id                TEXT PRIMARY KEY,
		member_id         TEXT NOT NULL,
		amount            BIGINT NOT NULL CHECK (amount > 0),
		verification_code TEXT NOT NULL,
		status            TEXT NOT NULL CHECK (status IN ('pending', 'confirmed', 'cancelled', 'expired')),
		created_at        TIMESTAMPTZ NOT NULL,
		expires_at        TIMESTAMPTZ NOT NULL,
		confirmed_by      TEXT,
		confirmed_at      TIMESTAMPTZ,
		cancelled_by      TEXT,
		cancelled_at      TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS redemption_requests_pending_code
		ON redemption_requests (verification_code) WHERE status = 'pending'`,
	`CREATE INDEX IF NOT EXISTS redemption_requests_member
		ON redemption_requests (member_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS point_transactions (
		seq                BIGSERIAL UNIQUE,
		id                 TEXT PRIMARY KEY,
		member_id          TEXT NOT NULL,
		type               TEXT NOT NULL CHECK (type IN ('earn', 'spend')),
		amount             BIGINT NOT NULL CHECK (amount > 0),
		description        TEXT NOT NULL DEFAULT '',
		related_request_id TEXT REFERENCES redemption_requests (id),
		created_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS point_transactions_one_spend_per_request
		ON point_transactions (related_request_id) WHERE type = 'spend'`,
	`CREATE INDEX IF NOT EXISTS point_transactions_member
		ON point_transactions (member_id, seq DESC)`,
}

// Migrate applies the schema in a single transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

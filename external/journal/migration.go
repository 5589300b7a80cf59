package journal

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`DO $$ BEGIN CREATE TYPE journal_event_kind AS ENUM ('achievement_granted', 'trivia_resolved', 'trivia_expired', 'daily_claimed', 'reminder_delivered'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`CREATE TABLE IF NOT EXISTS journal_events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		kind journal_event_kind NOT NULL,
		guild_id TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL DEFAULT '',
		subject_id TEXT NOT NULL DEFAULT '',
		points INTEGER NOT NULL DEFAULT 0,
		detail TEXT NOT NULL DEFAULT '',
		occurred_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_events_user ON journal_events (user_id, occurred_at)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_events_kind ON journal_events (kind, occurred_at)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

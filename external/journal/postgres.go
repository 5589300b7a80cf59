package journal

import (
	"context"

	"github.com/foxseedlab/runebot/internal/journal"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRecorder struct {
	pool *pgxpool.Pool
}

func NewPostgresRecorder(pool *pgxpool.Pool) journal.Recorder {
	return &PostgresRecorder{pool: pool}
}

func (r *PostgresRecorder) Record(ctx context.Context, e journal.Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO journal_events (kind, guild_id, user_id, subject_id, points, detail, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(e.Kind), e.GuildID, e.UserID, e.SubjectID, e.Points, e.Detail, e.OccurredAt)
	return err
}

func (r *PostgresRecorder) Close() {
	r.pool.Close()
}

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, journal.Event) error { return nil }

func (NoopRecorder) Close() {}

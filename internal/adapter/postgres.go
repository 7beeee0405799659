package adapter

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	m "traduco.dev/pkg/traduco/internal/model"
)

const submissionsSchema = `
create table if not exists submissions (
	id bigserial primary key,
	created_at timestamptz not null default now(),
	username text not null,
	source_text text not null default '',
	student_text text not null default '',
	reference_text text not null default '',
	scores jsonb not null default '{}',
	points int not null default 0,
	elapsed_ms bigint not null default 0
)`

// PostgresRecorder is the durable submission log, backed by a Postgres table
// with insert-only access.
type PostgresRecorder struct {
	db *sql.DB
}

// OpenPostgresRecorder opens a pooled connection for the given DSN, verifies
// it with a ping and ensures the submissions table exists.
func OpenPostgresRecorder(ctx context.Context, dsn string) (*PostgresRecorder, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, submissionsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure submissions schema: %w", err)
	}

	return &PostgresRecorder{db: db}, nil
}

// Append implements SubmissionRecorder.
func (r *PostgresRecorder) Append(ctx context.Context, sub m.Submission) error {
	scores, err := json.Marshal(sub.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	const q = `
insert into submissions(created_at, username, source_text, student_text, reference_text, scores, points, elapsed_ms)
values ($1,$2,$3,$4,$5,$6,$7,$8)`

	createdAt := sub.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, q,
		createdAt, sub.User, sub.Source, sub.Student, sub.Reference,
		scores, sub.Points, sub.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("append submission: %w", err)
	}

	return nil
}

// List implements SubmissionRecorder, returning submissions in append order.
func (r *PostgresRecorder) List(ctx context.Context) ([]m.Submission, error) {
	const q = `
select created_at, username, source_text, student_text, reference_text, scores, points, elapsed_ms
from submissions
order by created_at, id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []m.Submission

	for rows.Next() {
		var (
			sub       m.Submission
			scores    []byte
			elapsedMS int64
		)

		if err := rows.Scan(&sub.CreatedAt, &sub.User, &sub.Source, &sub.Student, &sub.Reference, &scores, &sub.Points, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}

		if err := json.Unmarshal(scores, &sub.Scores); err != nil {
			// A corrupt score blob loses only its metrics, not the row.
			sub.Scores = m.ScoreMap{}
		}

		sub.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	return subs, nil
}

// Close releases the connection pool.
func (r *PostgresRecorder) Close() error {
	return r.db.Close()
}

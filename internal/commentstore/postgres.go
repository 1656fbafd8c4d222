package commentstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"portfolio/internal/comments"

	"github.com/jackc/pgx/v5/pgxpool"
)

const createCommentsTable = `
	CREATE TABLE IF NOT EXISTS comments (
		id        BIGSERIAL PRIMARY KEY,
		name      TEXT        NOT NULL,
		message   TEXT        NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS comments_timestamp_idx ON comments (timestamp DESC);
`

// Postgres stores comments in a PostgreSQL table.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pool for databaseURL and creates the comments table if missing.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres comment store")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createCommentsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create comments table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) List(ctx context.Context) ([]comments.Comment, error) {
	const q = `
		SELECT id, name, message, timestamp
		FROM comments
		ORDER BY timestamp DESC
	`
	rows, err := p.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	out := []comments.Comment{}
	for rows.Next() {
		var (
			id int64
			c  comments.Comment
		)
		if err := rows.Scan(&id, &c.Name, &c.Message, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.ID = strconv.FormatInt(id, 10)
		c.Timestamp = c.Timestamp.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

func (p *Postgres) Insert(ctx context.Context, c comments.Comment) (comments.Comment, error) {
	const q = `
		INSERT INTO comments (name, message, timestamp)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	if err := p.pool.QueryRow(ctx, q, c.Name, c.Message, c.Timestamp).Scan(&id); err != nil {
		return comments.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	c.ID = strconv.FormatInt(id, 10)
	return c, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

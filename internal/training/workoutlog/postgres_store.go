package workoutlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/volleyfit/internal/telemetry/tracing"
)

const kvStoreSchema = `
CREATE TABLE IF NOT EXISTS kv_store
(
    key        TEXT PRIMARY KEY,
    value      JSONB       NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, kvStoreSchema); err != nil {
		return fmt.Errorf("create kv_store table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.postgres.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var value string
	err = s.db.QueryRow(
		ctx,
		`SELECT value::text FROM kv_store WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	} else if err != nil {
		return nil, fmt.Errorf("kv store [query row %s]: %w", key, err)
	}

	return []byte(value), nil
}

const upsertQuery = `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES ($1, $2::jsonb, now())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
`

// Set upserts the value. The value must be valid JSON (JSONB column).
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.postgres.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.db.Exec(ctx, upsertQuery, key, string(value))
	if err != nil {
		return fmt.Errorf("kv store [upsert %s]: %w", key, err)
	}
	return nil
}

// Update runs the read and the upsert in one transaction. A transaction level
// advisory lock on the key serializes writers, including the first insert of a
// key that has no row to lock yet.
func (s *PostgresStore) Update(ctx context.Context, key string, update UpdateFunc) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "kvstore.postgres.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("kv store [begin %s]: %w", key, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Errorf("kv store [rollback %s]: %s", key, rbErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("kv store [lock %s]: %w", key, err)
	}

	found := true
	var current string
	err = tx.QueryRow(
		ctx,
		`SELECT value::text FROM kv_store WHERE key = $1 FOR UPDATE`,
		key,
	).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		found = false
	} else if err != nil {
		return fmt.Errorf("kv store [select %s]: %w", key, err)
	}

	var currentBytes []byte
	if found {
		currentBytes = []byte(current)
	}
	value, err := update(currentBytes, found)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, upsertQuery, key, string(value)); err != nil {
		return fmt.Errorf("kv store [upsert %s]: %w", key, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("kv store [commit %s]: %w", key, err)
	}
	return nil
}

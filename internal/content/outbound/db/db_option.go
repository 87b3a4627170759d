package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/talentflow/internal/content/entity"
)

func (s *DB) GetOptions(ctx context.Context) (_ entity.Options, err error) {
	ctx, span := s.startSpan(ctx, "GetOptions")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `SELECT name, vals FROM options`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	opts := entity.Options{}
	for rows.Next() {
		var (
			name string
			vals []string
		)
		if err := rows.Scan(&name, &vals); err != nil {
			return nil, s.mapError(err)
		}
		opts[name] = vals
	}

	return opts, s.mapError(rows.Err())
}

func (s *DB) SaveOptions(ctx context.Context, opts entity.Options) (err error) {
	ctx, span := s.startSpan(ctx, "SaveOptions")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return s.mapError(err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	batch := &pgx.Batch{}
	for _, name := range entity.OptionNames {
		vals, ok := opts[name]
		if !ok {
			continue
		}
		batch.Queue(`
			INSERT INTO options (name, vals, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (name) DO UPDATE SET vals = EXCLUDED.vals, updated_at = now()`,
			name, vals,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}

package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/talentflow/internal/company/entity"
)

func (s *DB) ListRequests(ctx context.Context, companyID int64) (_ []entity.Request, err error) {
	ctx, span := s.startSpan(ctx, "ListRequests")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, company_id, team_name, description, location, start_date, end_date, created_at
		FROM company_requests
		WHERE company_id = $1
		ORDER BY created_at DESC, id DESC`,
		companyID,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	reqs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Request, error) {
		var r entity.Request
		err := row.Scan(&r.ID, &r.CompanyID, &r.TeamName, &r.Description, &r.Location, &r.StartDate, &r.EndDate, &r.CreatedAt)
		return r, err
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	if len(reqs) == 0 {
		return reqs, nil
	}

	ids := make([]int64, len(reqs))
	index := make(map[int64]int, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
		index[r.ID] = i
	}

	roleRows, err := s.conn.Query(ctx, `
		SELECT request_id, role, quantity, salary
		FROM company_request_roles
		WHERE request_id = ANY($1)
		ORDER BY request_id, position`,
		ids,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer roleRows.Close()

	for roleRows.Next() {
		var (
			requestID int64
			role      entity.RequestRole
		)
		if err := roleRows.Scan(&requestID, &role.Role, &role.Quantity, &role.Salary); err != nil {
			return nil, s.mapError(err)
		}
		i := index[requestID]
		reqs[i].Roles = append(reqs[i].Roles, role)
	}

	return reqs, s.mapError(roleRows.Err())
}

func (s *DB) CreateRequest(ctx context.Context, r entity.Request) (err error) {
	ctx, span := s.startSpan(ctx, "CreateRequest")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	if _, err := tx.Exec(ctx, `
		INSERT INTO company_requests (id, company_id, team_name, description, location, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.CompanyID, r.TeamName, r.Description, r.Location, r.StartDate, r.EndDate, r.CreatedAt,
	); err != nil {
		return s.mapError(err)
	}

	batch := &pgx.Batch{}
	for i, role := range r.Roles {
		batch.Queue(`
			INSERT INTO company_request_roles (request_id, position, role, quantity, salary)
			VALUES ($1, $2, $3, $4, $5)`,
			r.ID, i, role.Role, role.Quantity, role.Salary,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}

package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/talentflow/internal/pkg/display"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/staffing/entity"
)

const selectAdmins = `
	SELECT a.id, a.first_name, a.last_name, a.email,
		(SELECT COALESCE(SUM(rr.quantity), 0)::int
			FROM company_requests r
			JOIN company_request_roles rr ON rr.request_id = r.id
			WHERE r.admin_id = a.id) AS workforce_count,
		(SELECT COUNT(*)::int FROM company_requests r WHERE r.admin_id = a.id) AS request_count
	FROM accounts a
	WHERE a.user_type = 'admin' AND a.status = 2`

func scanAdmin(row pgx.Row) (entity.Admin, error) {
	var (
		a           entity.Admin
		first, last string
	)
	err := row.Scan(&a.ID, &first, &last, &a.Email, &a.WorkforceCount, &a.RequestCount)
	a.Name = display.Name(first, last)
	return a, err
}

func (s *DB) ListAdmins(ctx context.Context) (_ []entity.Admin, err error) {
	ctx, span := s.startSpan(ctx, "ListAdmins")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, selectAdmins+` ORDER BY a.first_name, a.last_name, a.id`)
	if err != nil {
		return nil, s.mapError(err)
	}

	admins, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Admin, error) {
		return scanAdmin(row)
	})

	return admins, s.mapError(err)
}

func (s *DB) GetAdmin(ctx context.Context, id int64) (_ *entity.Admin, err error) {
	ctx, span := s.startSpan(ctx, "GetAdmin")
	defer func() { s.endSpan(span, err) }()

	a, err := scanAdmin(s.conn.QueryRow(ctx, selectAdmins+` AND a.id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &a, nil
}

func (s *DB) GetRequest(ctx context.Context, id int64) (_ *entity.Request, err error) {
	ctx, span := s.startSpan(ctx, "GetRequest")
	defer func() { s.endSpan(span, err) }()

	var r entity.Request
	err = s.conn.QueryRow(ctx, `
		SELECT id, company_id, team_name, COALESCE(admin_id, 0)
		FROM company_requests WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.CompanyID, &r.TeamName, &r.AdminID)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &r, nil
}

func (s *DB) AssignAdmin(ctx context.Context, requestID, adminID int64) (err error) {
	ctx, span := s.startSpan(ctx, "AssignAdmin")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE company_requests SET admin_id = $2, updated_at = now()
		WHERE id = $1`,
		requestID, adminID,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

package db

import (
	"context"

	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

const selectProfile = `
	SELECT c.account_id, c.name, c.nif, a.email, c.phone, c.address, c.website,
		c.manager_name, c.manager_email, c.manager_phone, c.manager_position, c.updated_at
	FROM companies c
	JOIN accounts a ON a.id = c.account_id
	WHERE c.account_id = $1`

func (s *DB) GetProfile(ctx context.Context, companyID int64) (_ *entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "GetProfile")
	defer func() { s.endSpan(span, err) }()

	var p entity.Profile
	err = s.conn.QueryRow(ctx, selectProfile, companyID).Scan(
		&p.CompanyID, &p.Name, &p.NIF, &p.Email, &p.Phone, &p.Address, &p.Website,
		&p.Manager.Name, &p.Manager.Email, &p.Manager.Phone, &p.Manager.Position, &p.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}

func (s *DB) UpdateManager(ctx context.Context, companyID int64, m entity.Manager) (_ *entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "UpdateManager")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE companies
		SET manager_name = $2, manager_phone = $3, manager_position = $4, updated_at = now()
		WHERE account_id = $1`,
		companyID, m.Name, m.Phone, m.Position,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, goerror.ErrNotFound
	}

	return s.GetProfile(ctx, companyID)
}

func (s *DB) UpdateManagerEmail(ctx context.Context, companyID int64, email string) (_ *entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "UpdateManagerEmail")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE companies SET manager_email = $2, updated_at = now()
		WHERE account_id = $1`,
		companyID, email,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, goerror.ErrNotFound
	}

	return s.GetProfile(ctx, companyID)
}

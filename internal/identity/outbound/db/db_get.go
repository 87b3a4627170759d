package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/talentflow/internal/identity/entity"
)

const selectAccount = `
SELECT id, email, password, user_type, status, first_name, last_name
FROM accounts
`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var acc entity.Account
	if err := row.Scan(
		&acc.ID,
		&acc.Email,
		&acc.Password,
		&acc.UserType,
		&acc.Status,
		&acc.FirstName,
		&acc.LastName,
	); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	acc, err := scanAccount(s.conn.QueryRow(ctx, selectAccount+"WHERE lower(email) = lower($1)", email))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

func (s *DB) GetAccountByID(ctx context.Context, id int64) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByID")
	defer func() { s.endSpan(span, err) }()

	acc, err := scanAccount(s.conn.QueryRow(ctx, selectAccount+"WHERE id = $1", id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return acc, nil
}

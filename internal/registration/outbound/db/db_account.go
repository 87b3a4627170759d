package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/registration/entity"
)

// account status values shared with the identity module
const (
	statusPending int16 = 1
	statusActive  int16 = 2
)

func (s *DB) EmailExists(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "EmailExists")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE lower(email) = lower($1))`,
		email,
	).Scan(&exists)

	return exists, s.mapError(err)
}

func (s *DB) GetPendingAccount(ctx context.Context, email string) (_ *entity.PendingAccount, err error) {
	ctx, span := s.startSpan(ctx, "GetPendingAccount")
	defer func() { s.endSpan(span, err) }()

	var acc entity.PendingAccount
	err = s.conn.QueryRow(ctx, `
		SELECT id, email, first_name, last_name
		FROM accounts
		WHERE lower(email) = lower($1) AND user_type = 'employee' AND status = $2`,
		email, statusPending,
	).Scan(&acc.ID, &acc.Email, &acc.FirstName, &acc.LastName)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &acc, nil
}

func (s *DB) CreateEmployee(ctx context.Context, in entity.NewEmployee) (err error) {
	ctx, span := s.startSpan(ctx, "CreateEmployee")
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
		INSERT INTO accounts (id, email, password, user_type, status, first_name, last_name, phone, birth_date)
		VALUES ($1, $2, $3, 'employee', $4, $5, $6, $7, $8)`,
		in.ID, in.Email, in.PasswordHash, statusPending,
		in.Personal.FirstName, in.Personal.LastName, in.Personal.Phone, in.Personal.BirthDate,
	); err != nil {
		return s.mapError(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO employee_preferences (account_id, functions, competences, geo_areas, activity_sectors)
		VALUES ($1, $2, $3, $4, $5)`,
		in.ID, in.Preferences.Functions, in.Preferences.Competences, in.Preferences.GeoAreas, in.Preferences.ActivitySectors,
	); err != nil {
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}

func (s *DB) UpdatePendingAccount(ctx context.Context, accountID int64, in entity.AccountUpdate) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePendingAccount")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE accounts
		SET password = $2, first_name = $3, last_name = $4, phone = $5, birth_date = $6, updated_at = now()
		WHERE id = $1 AND status = $7`,
		accountID, in.PasswordHash,
		in.Personal.FirstName, in.Personal.LastName, in.Personal.Phone, in.Personal.BirthDate,
		statusPending,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdatePreferences(ctx context.Context, accountID int64, p entity.Preferences) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePreferences")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		UPDATE employee_preferences
		SET functions = $2, competences = $3, geo_areas = $4, activity_sectors = $5, updated_at = now()
		WHERE account_id = $1`,
		accountID, p.Functions, p.Competences, p.GeoAreas, p.ActivitySectors,
	)

	return s.mapError(err)
}

func (s *DB) ActivateAccount(ctx context.Context, email string) (err error) {
	ctx, span := s.startSpan(ctx, "ActivateAccount")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE accounts SET status = $2, updated_at = now()
		WHERE lower(email) = lower($1) AND status = $3`,
		email, statusActive, statusPending,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

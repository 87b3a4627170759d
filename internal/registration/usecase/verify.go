package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/talentflow/internal/pkg/display"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
)

type VerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,digits,len=6"`
}

// Verify activates a pending account with the emailed code.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) error {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return s.verifyAndActivate(ctx, in.Email, in.Code)
}

type ResendInput struct {
	Email string `validate:"required,email"`
}

// Resend issues a new code for a pending account. Unknown or already active
// emails succeed silently.
func (s *Usecase) Resend(ctx context.Context, in ResendInput) error {
	ctx, span := s.startSpan(ctx, "Resend")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	acc, err := s.repoDB.GetPendingAccount(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "resend for unknown pending account", "email", in.Email)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get pending account", "error", err)
		return goerror.NewServer(err)
	}

	return s.issueCode(ctx, acc.Email, display.Name(acc.FirstName, acc.LastName))
}

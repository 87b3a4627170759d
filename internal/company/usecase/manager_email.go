package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/pkg/session"
	"github.com/shandysiswandi/talentflow/internal/pkg/verification"
)

type EmailChangeOutput struct {
	ChangeID    string
	MaskedEmail string
	Focus       otpflow.Focus
	State       otpflow.State
}

func (s *Usecase) output(c *entity.EmailChange, focus otpflow.Focus) *EmailChangeOutput {
	return &EmailChangeOutput{
		ChangeID:    c.ID,
		MaskedEmail: otpflow.MaskEmail(c.Email),
		Focus:       focus,
		State:       c.Flow.State(),
	}
}

// issueCode sends a manager email code. Publishing failures are logged only.
func (s *Usecase) issueCode(ctx context.Context, email, name string) error {
	code, err := s.codes.Issue(ctx, verification.PurposeManagerEmail, email, entity.ManagerEmailCodeLength)
	if err != nil {
		if passthrough(err) {
			return err
		}
		slog.ErrorContext(ctx, "failed to issue manager email code", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishManagerEmailCode(ctx, ManagerEmailCodeEvent{
		Email:     email,
		Name:      name,
		Code:      code.Value,
		ExpiresAt: code.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish manager email code", "error", err)
	}

	return nil
}

func (s *Usecase) confirmEmail(companyID int64) otpflow.VerifyFunc {
	return func(ctx context.Context, email, code string) error {
		if err := s.codes.Verify(ctx, verification.PurposeManagerEmail, email, code); err != nil {
			if passthrough(err) {
				return err
			}
			slog.ErrorContext(ctx, "failed to verify manager email code", "error", err)
			return goerror.NewServer(err)
		}

		p, err := s.repoDB.UpdateManagerEmail(ctx, companyID, email)
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("Este email já está em uso.", goerror.CodeConflict)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo update manager email", "company_id", companyID, "error", err)
			return goerror.NewServer(err)
		}

		s.cacheProfile(ctx, p)
		slog.InfoContext(ctx, "manager email changed", "company_id", companyID)

		return nil
	}
}

type StartEmailChangeInput struct {
	Email string `validate:"required,email,max=254"`
}

// StartEmailChange sends a code to the new address and opens its prompt.
func (s *Usecase) StartEmailChange(ctx context.Context, in StartEmailChangeInput) (*EmailChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "StartEmailChange")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "company.profile", "write")
	if err != nil {
		return nil, err
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	p, err := s.repoDB.GetProfile(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProfileNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get company profile", "company_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if strings.EqualFold(p.Manager.Email, in.Email) {
		return nil, goerror.NewInvalidInput(nil, "email", "O novo email é igual ao atual.")
	}

	if err := s.issueCode(ctx, in.Email, p.Manager.Name); err != nil {
		return nil, err
	}

	name := p.Manager.Name
	flow, err := otpflow.New(otpflow.Config{
		Length:     entity.ManagerEmailCodeLength,
		Identifier: in.Email,
		Cooldown:   s.cooldown,
		NewTicker:  s.newTicker,
		Verify:     s.confirmEmail(clm.UserID),
		Resend: func(ctx context.Context, email string) error {
			return s.issueCode(ctx, email, name)
		},
	})
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	c := s.changes.CreateWith(func(id string) *entity.EmailChange {
		return &entity.EmailChange{ID: id, CompanyID: clm.UserID, Email: in.Email, Flow: flow}
	})

	return s.output(c, otpflow.Focus{}), nil
}

// change returns the open confirmation id when it belongs to the caller.
func (s *Usecase) change(ctx context.Context, id string) (*entity.EmailChange, error) {
	clm, err := s.authenticatedAndAuthorized(ctx, "company.profile", "write")
	if err != nil {
		return nil, err
	}

	c, err := s.changes.Get(id)
	if errors.Is(err, session.ErrNotFound) || (err == nil && c.CompanyID != clm.UserID) {
		return nil, errChangeNotFound
	}
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	return c, nil
}

type EmailDigitInput struct {
	ChangeID string
	Index    int
	Value    string
}

func (s *Usecase) EmailDigit(ctx context.Context, in EmailDigitInput) (*EmailChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "EmailDigit")
	defer span.End()

	c, err := s.change(ctx, in.ChangeID)
	if err != nil {
		return nil, err
	}

	return s.output(c, c.Flow.SetDigit(in.Index, in.Value)), nil
}

type EmailPasteInput struct {
	ChangeID string
	Text     string
}

func (s *Usecase) EmailPaste(ctx context.Context, in EmailPasteInput) (*EmailChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "EmailPaste")
	defer span.End()

	c, err := s.change(ctx, in.ChangeID)
	if err != nil {
		return nil, err
	}

	return s.output(c, c.Flow.HandlePaste(in.Text)), nil
}

type EmailKeyInput struct {
	ChangeID string
	Index    int
	Key      otpflow.Key
}

func (s *Usecase) EmailKey(ctx context.Context, in EmailKeyInput) (*EmailChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "EmailKey")
	defer span.End()

	c, err := s.change(ctx, in.ChangeID)
	if err != nil {
		return nil, err
	}

	return s.output(c, c.Flow.HandleKey(in.Index, in.Key)), nil
}

// SubmitEmailChange checks the typed code. On success the new email is saved
// and the confirmation is closed.
func (s *Usecase) SubmitEmailChange(ctx context.Context, id string) (*EmailChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitEmailChange")
	defer span.End()

	c, err := s.change(ctx, id)
	if err != nil {
		return nil, err
	}

	ok := c.Flow.Submit(ctx)
	out := s.output(c, otpflow.Focus{})
	if ok {
		s.changes.Delete(c.ID)
	}

	return out, nil
}

func (s *Usecase) ResendEmailChange(ctx context.Context, id string) (*EmailChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "ResendEmailChange")
	defer span.End()

	c, err := s.change(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Flow.Resend(ctx)

	return s.output(c, otpflow.Focus{}), nil
}

func (s *Usecase) CancelEmailChange(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "CancelEmailChange")
	defer span.End()

	c, err := s.change(ctx, id)
	if err != nil {
		return err
	}

	s.changes.Delete(c.ID)

	return nil
}


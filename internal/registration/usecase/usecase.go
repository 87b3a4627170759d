package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/display"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/hash"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/pkg/session"
	"github.com/shandysiswandi/talentflow/internal/pkg/uid"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"github.com/shandysiswandi/talentflow/internal/pkg/verification"
	"github.com/shandysiswandi/talentflow/internal/registration/entity"
	"go.opentelemetry.io/otel/trace"
)

var (
	errSessionNotFound = goerror.NewBusiness("Registration session not found", goerror.CodeNotFound)
	errStepLocked      = goerror.NewBusiness("Conclua o passo anterior primeiro.", goerror.CodeForbidden)
	errEmailTaken      = goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	errNoVerification  = goerror.NewBusiness("Verification has not started yet", goerror.CodeConflict)
	errAlreadyVerified = goerror.NewBusiness("Account already verified", goerror.CodeConflict)
)

type VerificationCodeIssuedEvent struct {
	Email     string
	Name      string
	Code      string
	ExpiresAt time.Time
}

type repoMessaging interface {
	PublishVerificationCodeIssued(ctx context.Context, msg VerificationCodeIssuedEvent) error
}

type repoDB interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	GetPendingAccount(ctx context.Context, email string) (*entity.PendingAccount, error)
	CreateEmployee(ctx context.Context, in entity.NewEmployee) error
	UpdatePendingAccount(ctx context.Context, accountID int64, in entity.AccountUpdate) error
	UpdatePreferences(ctx context.Context, accountID int64, p entity.Preferences) error
	ActivateAccount(ctx context.Context, email string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	codes         verification.Store
	sessions      *session.Registry[*entity.Session]
	validator     validator.Validator
	bcrypt        hash.Hash
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	cooldown      time.Duration
	newTicker     otpflow.TickerFactory
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Codes         verification.Store
	Sessions      *session.Registry[*entity.Session]
	Validator     validator.Validator
	Bcrypt        hash.Hash
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	// Cooldown between resends; zero uses the flow default.
	Cooldown time.Duration
	// NewTicker drives resend cooldowns; nil uses a real ticker.
	NewTicker otpflow.TickerFactory
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		codes:         dep.Codes,
		sessions:      dep.Sessions,
		validator:     dep.Validator,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		cooldown:      dep.Cooldown,
		newTicker:     dep.NewTicker,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("registration.usecase").Start(ctx, name)
}

func (s *Usecase) session(id string) (*entity.Session, error) {
	sess, err := s.sessions.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, errSessionNotFound
	}
	if err != nil {
		return nil, goerror.NewServer(err)
	}
	return sess, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueCode sends a fresh registration code to email. Publishing failures are
// logged only; the user can ask for another code.
func (s *Usecase) issueCode(ctx context.Context, email, name string) error {
	code, err := s.codes.Issue(ctx, verification.PurposeRegistration, email, entity.CodeLength)
	if err != nil {
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return err
		}
		slog.ErrorContext(ctx, "failed to issue verification code", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishVerificationCodeIssued(ctx, VerificationCodeIssuedEvent{
		Email:     email,
		Name:      name,
		Code:      code.Value,
		ExpiresAt: code.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish verification code issued", "error", err)
	}

	return nil
}

// verifyAndActivate consumes code and activates the pending account of email.
func (s *Usecase) verifyAndActivate(ctx context.Context, email, code string) error {
	if err := s.codes.Verify(ctx, verification.PurposeRegistration, email, code); err != nil {
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return err
		}
		slog.ErrorContext(ctx, "failed to verify code", "error", err)
		return goerror.NewServer(err)
	}

	err := s.repoDB.ActivateAccount(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no pending account for verified email", "email", email)
		return goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo activate account", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// syncPendingAccount writes revisited step 1 and 2 data to an account created
// by an earlier pass through step 3. It does nothing before that.
func (s *Usecase) syncPendingAccount(ctx context.Context, sess *entity.Session, in entity.AccountUpdate) error {
	id := sess.AccountID()
	if id == 0 {
		return nil
	}

	err := s.repoDB.UpdatePendingAccount(ctx, id, in)
	if errors.Is(err, goerror.ErrNotFound) {
		return errAlreadyVerified
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update pending account", "account_id", id, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func personalName(p entity.Personal) string {
	return display.Name(p.FirstName, p.LastName)
}

package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/talentflow/internal/identity/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/hash"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/rbac"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
}

type repoCache interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type Usecase struct {
	repoDB    repoDB
	repoCache repoCache
	validator validator.Validator
	bcrypt    hash.Hash
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
	enforcer  rbac.Enforcer
	tokenTTL  time.Duration
}

type Dependency struct {
	RepoDB     repoDB
	RepoCache  repoCache
	Validator  validator.Validator
	Bcrypt     hash.Hash
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Enforcer   rbac.Enforcer
	TokenTTL   time.Duration
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoCache: dep.RepoCache,
		validator: dep.Validator,
		bcrypt:    dep.Bcrypt,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
		enforcer:  dep.Enforcer,
		tokenTTL:  dep.TokenTTL,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) ensureAccountStatusAllowed(ctx context.Context, id int64, status entity.AccountStatus) error {
	switch status {
	case entity.AccountStatusActive:
		return nil

	case entity.AccountStatusPending:
		slog.WarnContext(ctx, "account email is not verified", "account_id", id)
		return goerror.NewBusiness("Email not verified", goerror.CodeForbidden)

	case entity.AccountStatusDisabled:
		slog.WarnContext(ctx, "account is disabled", "account_id", id)
		return goerror.NewBusiness("Account is disabled", goerror.CodeForbidden)

	default:
		slog.WarnContext(ctx, "account status is unrecognized", "account_id", id, "status", status)
		return goerror.NewBusiness("Account status is unrecognized", goerror.CodeForbidden)
	}
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.UserType, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

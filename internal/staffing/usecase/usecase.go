package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/idempotency"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/rbac"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"github.com/shandysiswandi/talentflow/internal/staffing/entity"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetRequest(ctx context.Context, id int64) (*entity.Request, error)
	ListAdmins(ctx context.Context) ([]entity.Admin, error)
	GetAdmin(ctx context.Context, id int64) (*entity.Admin, error)
	AssignAdmin(ctx context.Context, requestID, adminID int64) error
}

type Usecase struct {
	repoDB      repoDB
	idempotency idempotency.Idempotency
	validator   validator.Validator
	enforcer    rbac.Enforcer
	ins         instrument.Instrumentation
}

type Dependency struct {
	RepoDB      repoDB
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Enforcer    rbac.Enforcer
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:      dep.RepoDB,
		idempotency: dep.Idempotency,
		validator:   dep.Validator,
		enforcer:    dep.Enforcer,
		ins:         dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("staffing.usecase").Start(ctx, name)
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

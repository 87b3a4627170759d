package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/talentflow/internal/content/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/rbac"
	"github.com/shandysiswandi/talentflow/internal/pkg/storage"
	"github.com/shandysiswandi/talentflow/internal/pkg/uid"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	objContent = "content"

	actRead  = "read"
	actWrite = "write"
)

type repoDB interface {
	ListEntries(ctx context.Context, kind entity.Kind) ([]entity.Entry, error)
	GetEntry(ctx context.Context, kind entity.Kind, id int64) (*entity.Entry, error)
	CreateEntry(ctx context.Context, e entity.Entry) error
	UpdateEntry(ctx context.Context, e entity.Entry) error
	DeleteEntry(ctx context.Context, kind entity.Kind, id int64) error

	GetOptions(ctx context.Context) (entity.Options, error)
	SaveOptions(ctx context.Context, opts entity.Options) error
}

type Usecase struct {
	repoDB    repoDB
	storage   storage.Storage
	validator validator.Validator
	enforcer  rbac.Enforcer
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Storage    storage.Storage
	Validator  validator.Validator
	Enforcer   rbac.Enforcer
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		storage:   dep.Storage,
		validator: dep.Validator,
		enforcer:  dep.Enforcer,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("content.usecase").Start(ctx, name)
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

// GetMeta returns the labels and blank forms of the content panel.
func (s *Usecase) GetMeta(ctx context.Context) (*entity.Meta, error) {
	_, span := s.startSpan(ctx, "GetMeta")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, objContent, actRead); err != nil {
		return nil, err
	}

	meta := entity.NewMeta()
	return &meta, nil
}

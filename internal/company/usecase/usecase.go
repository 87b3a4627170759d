package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/otpflow"
	"github.com/shandysiswandi/talentflow/internal/pkg/rbac"
	"github.com/shandysiswandi/talentflow/internal/pkg/session"
	"github.com/shandysiswandi/talentflow/internal/pkg/uid"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"github.com/shandysiswandi/talentflow/internal/pkg/verification"
	"go.opentelemetry.io/otel/trace"
)

const msgProfileLoad = "Não foi possível carregar o perfil."

var (
	errProfileNotFound = goerror.NewBusiness("Company profile not found", goerror.CodeNotFound)
	errChangeNotFound  = goerror.NewBusiness("Email confirmation not found", goerror.CodeNotFound)
)

type ManagerEmailCodeEvent struct {
	Email     string
	Name      string
	Code      string
	ExpiresAt time.Time
}

type repoDB interface {
	GetProfile(ctx context.Context, companyID int64) (*entity.Profile, error)
	UpdateManager(ctx context.Context, companyID int64, m entity.Manager) (*entity.Profile, error)
	UpdateManagerEmail(ctx context.Context, companyID int64, email string) (*entity.Profile, error)
	ListRequests(ctx context.Context, companyID int64) ([]entity.Request, error)
	CreateRequest(ctx context.Context, r entity.Request) error
}

type repoCache interface {
	GetProfile(ctx context.Context, companyID int64) (*entity.Profile, error)
	SetProfile(ctx context.Context, p *entity.Profile) error
}

type repoMessaging interface {
	PublishManagerEmailCode(ctx context.Context, msg ManagerEmailCodeEvent) error
}

type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoMessaging repoMessaging
	codes         verification.Store
	changes       *session.Registry[*entity.EmailChange]
	validator     validator.Validator
	enforcer      rbac.Enforcer
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	cooldown      time.Duration
	newTicker     otpflow.TickerFactory
}

type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoMessaging repoMessaging
	Codes         verification.Store
	Changes       *session.Registry[*entity.EmailChange]
	Validator     validator.Validator
	Enforcer      rbac.Enforcer
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Cooldown      time.Duration
	NewTicker     otpflow.TickerFactory
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoMessaging: dep.RepoMessaging,
		codes:         dep.Codes,
		changes:       dep.Changes,
		validator:     dep.Validator,
		enforcer:      dep.Enforcer,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		cooldown:      dep.Cooldown,
		newTicker:     dep.NewTicker,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("company.usecase").Start(ctx, name)
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

// cacheProfile replaces the cached profile. Failures only cost a cache miss.
func (s *Usecase) cacheProfile(ctx context.Context, p *entity.Profile) {
	if err := s.repoCache.SetProfile(ctx, p); err != nil {
		slog.WarnContext(ctx, "failed to cache company profile", "company_id", p.CompanyID, "error", err)
	}
}

func passthrough(err error) bool {
	var gerr *goerror.Error
	return errors.As(err, &gerr)
}

package company

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/company/inbound"
	"github.com/shandysiswandi/talentflow/internal/company/outbound/cache"
	"github.com/shandysiswandi/talentflow/internal/company/outbound/db"
	"github.com/shandysiswandi/talentflow/internal/company/outbound/mq"
	"github.com/shandysiswandi/talentflow/internal/company/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/messaging"
	"github.com/shandysiswandi/talentflow/internal/pkg/rbac"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/pkg/session"
	"github.com/shandysiswandi/talentflow/internal/pkg/uid"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"github.com/shandysiswandi/talentflow/internal/pkg/verification"
)

type Dependency struct {
	DBConn     *pgxpool.Pool                          `validate:"required"`
	Redis      redis.UniversalClient                  `validate:"required"`
	Messaging  messaging.Publisher                    `validate:"required"`
	Codes      verification.Store                     `validate:"required"`
	Changes    *session.Registry[*entity.EmailChange] `validate:"required"`
	Router     *router.Router                         `validate:"required"`
	Instrument instrument.Instrumentation             `validate:"required"`
	Enforcer   rbac.Enforcer                          `validate:"required"`
	Validator  validator.Validator                    `validate:"required"`
	Clock      clock.Clocker                          `validate:"required"`
	UID        uid.NumberID                           `validate:"required"`
	ProfileTTL time.Duration                          `validate:"required"`
	// ResendCooldown is optional; zero keeps the prompt default.
	ResendCooldown time.Duration
}

// NewChanges builds the registry holding open manager email confirmations.
func NewChanges(ttl time.Duration, c clock.Clocker, id uid.StringID) *session.Registry[*entity.EmailChange] {
	return session.New[*entity.EmailChange](session.Config{
		Name:  "company.manager_email",
		TTL:   ttl,
		Clock: c,
		UUID:  id,
	})
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoCache:     cache.NewProfile(dep.Redis, dep.Instrument, dep.ProfileTTL),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Codes:         dep.Codes,
		Changes:       dep.Changes,
		Validator:     dep.Validator,
		Enforcer:      dep.Enforcer,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Cooldown:      dep.ResendCooldown,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

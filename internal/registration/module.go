package registration

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/hash"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/messaging"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/pkg/session"
	"github.com/shandysiswandi/talentflow/internal/pkg/uid"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"github.com/shandysiswandi/talentflow/internal/pkg/verification"
	"github.com/shandysiswandi/talentflow/internal/registration/entity"
	"github.com/shandysiswandi/talentflow/internal/registration/inbound"
	"github.com/shandysiswandi/talentflow/internal/registration/outbound/db"
	"github.com/shandysiswandi/talentflow/internal/registration/outbound/mq"
	"github.com/shandysiswandi/talentflow/internal/registration/usecase"
)

type Dependency struct {
	DBConn     *pgxpool.Pool                      `validate:"required"`
	Messaging  messaging.Publisher                `validate:"required"`
	Codes      verification.Store                 `validate:"required"`
	Sessions   *session.Registry[*entity.Session] `validate:"required"`
	Router     *router.Router                     `validate:"required"`
	Instrument instrument.Instrumentation         `validate:"required"`
	Bcrypt     hash.Hash                          `validate:"required"`
	UID        uid.NumberID                       `validate:"required"`
	Clock      clock.Clocker                      `validate:"required"`
	Validator  validator.Validator                `validate:"required"`
	// ResendCooldown is optional; zero keeps the prompt default.
	ResendCooldown time.Duration
}

// NewSessions builds the registry holding in-progress wizards.
func NewSessions(ttl time.Duration, c clock.Clocker, id uid.StringID) *session.Registry[*entity.Session] {
	return session.New[*entity.Session](session.Config{
		Name:  "registration",
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
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Codes:         dep.Codes,
		Sessions:      dep.Sessions,
		Validator:     dep.Validator,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Cooldown:      dep.ResendCooldown,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

package identity

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/talentflow/internal/identity/inbound"
	"github.com/shandysiswandi/talentflow/internal/identity/outbound/cache"
	"github.com/shandysiswandi/talentflow/internal/identity/outbound/db"
	"github.com/shandysiswandi/talentflow/internal/identity/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/hash"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/rbac"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Denylist   *cache.Denylist            `validate:"required"`
	Enforcer   rbac.Enforcer              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
	TokenTTL   time.Duration              `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		RepoCache:  dep.Denylist,
		Validator:  dep.Validator,
		Bcrypt:     dep.Bcrypt,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
		Enforcer:   dep.Enforcer,
		TokenTTL:   dep.TokenTTL,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

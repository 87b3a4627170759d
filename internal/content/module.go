package content

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/talentflow/internal/content/inbound"
	"github.com/shandysiswandi/talentflow/internal/content/outbound/db"
	"github.com/shandysiswandi/talentflow/internal/content/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/rbac"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/pkg/storage"
	"github.com/shandysiswandi/talentflow/internal/pkg/uid"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Enforcer   rbac.Enforcer              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		Storage:    dep.Storage,
		Validator:  dep.Validator,
		Enforcer:   dep.Enforcer,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/talentflow/internal/company"
	"github.com/shandysiswandi/talentflow/internal/content"
	"github.com/shandysiswandi/talentflow/internal/identity"
	"github.com/shandysiswandi/talentflow/internal/notification"
	"github.com/shandysiswandi/talentflow/internal/registration"
	"github.com/shandysiswandi/talentflow/internal/staffing"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		if err := identity.New(identity.Dependency{
			DBConn:     a.dbConn,
			Denylist:   a.denylist,
			Enforcer:   a.casbin,
			Router:     a.router,
			Instrument: a.ins,
			Bcrypt:     a.bcrypt,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
			TokenTTL:   a.config.GetMinute("jwt.ttl_minutes"),
		}); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.registration.enabled") {
		if err := registration.New(registration.Dependency{
			DBConn:         a.dbConn,
			Messaging:      a.messaging,
			Codes:          a.codes,
			Sessions:       a.registrations,
			Router:         a.router,
			Instrument:     a.ins,
			Bcrypt:         a.bcrypt,
			UID:            a.uid,
			Clock:          a.clock,
			Validator:      a.validator,
			ResendCooldown: a.config.GetSecond("verification.resend_cooldown_seconds"),
		}); err != nil {
			slog.Error("failed to init module registration", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.company.enabled") {
		if err := company.New(company.Dependency{
			DBConn:         a.dbConn,
			Redis:          a.cacheConn,
			Messaging:      a.messaging,
			Codes:          a.codes,
			Changes:        a.emailChanges,
			Router:         a.router,
			Instrument:     a.ins,
			Enforcer:       a.casbin,
			Validator:      a.validator,
			Clock:          a.clock,
			UID:            a.uid,
			ProfileTTL:     a.config.GetMinute("modules.company.profile_cache_ttl_minutes"),
			ResendCooldown: a.config.GetSecond("verification.resend_cooldown_seconds"),
		}); err != nil {
			slog.Error("failed to init module company", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.staffing.enabled") {
		if err := staffing.New(staffing.Dependency{
			DBConn:      a.dbConn,
			Idempotency: a.idemp,
			Router:      a.router,
			Instrument:  a.ins,
			Enforcer:    a.casbin,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module staffing", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.content.enabled") {
		if err := content.New(content.Dependency{
			DBConn:     a.dbConn,
			Storage:    a.storage,
			Router:     a.router,
			Instrument: a.ins,
			Enforcer:   a.casbin,
			Validator:  a.validator,
			Clock:      a.clock,
			UID:        a.uid,
		}); err != nil {
			slog.Error("failed to init module content", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Config:     a.config,
			Goroutine:  a.goroutine,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
			Instrument: a.ins,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}

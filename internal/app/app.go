package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	companyEntity "github.com/shandysiswandi/talentflow/internal/company/entity"
	"github.com/shandysiswandi/talentflow/internal/identity/outbound/cache"
	"github.com/shandysiswandi/talentflow/internal/pkg/clock"
	"github.com/shandysiswandi/talentflow/internal/pkg/config"
	"github.com/shandysiswandi/talentflow/internal/pkg/goroutine"
	"github.com/shandysiswandi/talentflow/internal/pkg/hash"
	"github.com/shandysiswandi/talentflow/internal/pkg/idempotency"
	"github.com/shandysiswandi/talentflow/internal/pkg/instrument"
	"github.com/shandysiswandi/talentflow/internal/pkg/jwt"
	"github.com/shandysiswandi/talentflow/internal/pkg/mail"
	"github.com/shandysiswandi/talentflow/internal/pkg/messaging"
	"github.com/shandysiswandi/talentflow/internal/pkg/otp"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/pkg/session"
	"github.com/shandysiswandi/talentflow/internal/pkg/storage"
	"github.com/shandysiswandi/talentflow/internal/pkg/uid"
	"github.com/shandysiswandi/talentflow/internal/pkg/validator"
	"github.com/shandysiswandi/talentflow/internal/pkg/verification"
	registrationEntity "github.com/shandysiswandi/talentflow/internal/registration/entity"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      *hash.HMACSHA256
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	hotp      otp.OTP
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	denylist  *cache.Denylist
	codes     verification.Store
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage
	casbin    *casbin.Enforcer

	// wizard state
	registrations *session.Registry[*registrationEntity.Session]
	emailChanges  *session.Registry[*companyEntity.EmailChange]

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initVerification()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initSessions()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}

// Package helphub is the data access surface the screens call into: accounts,
// report submission, triage and the report lifecycle.
package helphub

import (
	"context"
	"fmt"
	"time"

	"github.com/helphub/helphub-backend/internal/auth"
	"github.com/helphub/helphub-backend/internal/notifications"
	"github.com/helphub/helphub-backend/internal/reports"
	"github.com/helphub/helphub-backend/internal/users"
	"github.com/helphub/helphub-backend/internal/volunteers"
	"github.com/helphub/helphub-backend/pkg/config"
	"github.com/helphub/helphub-backend/pkg/db"
	pkgerrors "github.com/helphub/helphub-backend/pkg/errors"
	"github.com/helphub/helphub-backend/pkg/logger"
	"github.com/helphub/helphub-backend/pkg/metrics"
	"github.com/helphub/helphub-backend/pkg/migrate"
	"github.com/helphub/helphub-backend/pkg/redis"
	"github.com/helphub/helphub-backend/pkg/security"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	RegisterUserParams      = auth.RegisterUserRequest
	RegisterVolunteerParams = auth.RegisterVolunteerRequest
)

// Params wires a Module over an already opened store.
type Params struct {
	DB      *db.Client
	Config  config.Config
	Logger  *logger.Logger
	Metrics *metrics.ReportMetrics
	// Notifiers overrides the sinks built from Config.Notifications.
	Notifiers   []notifications.Notifier
	NoticeStore redis.NoticeStore
	Now         func() time.Time
}

// Module is the flat operation surface over the store.
type Module struct {
	client     *db.Client
	logg       *logger.Logger
	register   auth.RegisterService
	auth       auth.Service
	reports    reports.Service
	users      *users.Repository
	volunteers *volunteers.Repository
	dispatcher *notifications.Dispatcher
	registry   *prometheus.Registry
	closers    []func() error
}

// New builds a Module. The caller keeps ownership of Params.DB.
func New(params Params) (*Module, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	conn := params.DB.DB()
	userRepo := users.NewRepository(conn)
	volunteerRepo := volunteers.NewRepository(conn)

	registerSvc, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:     params.DB,
		Hasher: security.NewHasher(params.Config.Password),
		Logger: logg,
	})
	if err != nil {
		return nil, err
	}
	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:      userRepo,
		VolunteerRepo: volunteerRepo,
		Logger:        logg,
	})
	if err != nil {
		return nil, err
	}
	reportSvc, err := reports.NewService(reports.ServiceParams{
		DB:          params.DB,
		Logger:      logg,
		AllowReopen: params.Config.Reports.AllowReopen,
		Now:         params.Now,
	})
	if err != nil {
		return nil, err
	}

	notifiers := params.Notifiers
	if notifiers == nil {
		notifiers, err = notifications.NotifiersFromConfig(params.Config.Notifications, params.NoticeStore, logg)
		if err != nil {
			return nil, err
		}
	}
	dispatcher, err := notifications.NewDispatcher(notifications.DispatcherParams{
		Reports:       reports.NewRepository(conn),
		Users:         userRepo,
		Notifiers:     notifiers,
		Metrics:       params.Metrics,
		Logger:        logg,
		ExcerptLength: params.Config.Reports.ExcerptLength,
	})
	if err != nil {
		return nil, err
	}

	return &Module{
		client:     params.DB,
		logg:       logg,
		register:   registerSvc,
		auth:       authSvc,
		reports:    reportSvc,
		users:      userRepo,
		volunteers: volunteerRepo,
		dispatcher: dispatcher,
	}, nil
}

// Open connects to the configured store (and Redis when the redis sink is
// enabled) and builds a Module that owns those connections. Call Initialize
// before the first operation and Close when done.
func Open(ctx context.Context, cfg config.Config, logg *logger.Logger) (*Module, error) {
	if logg == nil {
		logg = logger.Nop()
	}
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open store")
	}
	closers := []func() error{client.Close}

	var noticeStore redis.NoticeStore
	if cfg.Notifications.HasSink(config.SinkRedis) {
		rdb, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			_ = client.Close()
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open redis")
		}
		noticeStore = rdb
		closers = append(closers, rdb.Close)
	}

	registry := prometheus.NewRegistry()
	m, err := New(Params{
		DB:          client,
		Config:      cfg,
		Logger:      logg,
		Metrics:     metrics.NewReportMetrics(registry, cfg.Metrics.Namespace),
		NoticeStore: noticeStore,
	})
	if err != nil {
		for _, closeFn := range closers {
			_ = closeFn()
		}
		return nil, err
	}
	m.registry = registry
	m.closers = closers
	return m, nil
}

// Initialize ensures the schema exists. It is idempotent.
func (m *Module) Initialize(ctx context.Context) error {
	if err := migrate.Initialize(ctx, m.client, m.logg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "initialize store")
	}
	return nil
}

// Metrics returns the registry filled by Open; nil for modules built with New.
func (m *Module) Metrics() prometheus.Gatherer {
	if m.registry == nil {
		return nil
	}
	return m.registry
}

// Close releases the connections opened by Open. Modules built with New leave
// the caller's client open.
func (m *Module) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/synctv-org/authd/internal/conf"
	"github.com/synctv-org/authd/internal/db"
	"github.com/synctv-org/authd/internal/identity"
	"github.com/synctv-org/authd/internal/metrics"
	"github.com/synctv-org/authd/internal/password"
	"github.com/synctv-org/authd/internal/provider"
	"github.com/synctv-org/authd/internal/provider/providers"
	"github.com/synctv-org/authd/internal/session"
	"github.com/synctv-org/authd/internal/sysnotify"
)

// App holds the process-wide dependencies. Each Init method is a bootstrap
// Func and only reads conf.Conf; nothing here is a package global.
type App struct {
	Store     *db.Store
	Redis     *redis.Client
	Backend   session.Backend
	Hasher    *password.Bcrypt
	Providers *provider.Registry
	Gatherer  prometheus.Gatherer
	Metrics   metrics.Recorder
	Resolver  *identity.Resolver
	Issuer    *session.Issuer
	Notify    *sysnotify.SysNotify
}

func NewApp() *App {
	return &App{
		Providers: provider.NewRegistry(),
		Metrics:   metrics.Nop{},
	}
}

func (a *App) InitSysNotify(ctx context.Context) error {
	a.Notify = sysnotify.New()
	return a.Notify.Register(0, sysnotify.NewTask("rotate log", sysnotify.NotifyTypeRELOAD, RotateLog))
}

func (a *App) onExit(priority int, name string, f func() error) {
	if a.Notify == nil {
		return
	}
	if err := a.Notify.Register(priority, sysnotify.NewTask(name, sysnotify.NotifyTypeEXIT, f)); err != nil {
		log.Warnf("register exit task %s: %v", name, err)
	}
}

func (a *App) InitDatabase(ctx context.Context) error {
	d, err := openDatabase(conf.Conf.Database)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(conf.Conf.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(conf.Conf.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(conf.Conf.Database.ConnMaxLifetime) * time.Second)

	a.Store = db.New(d)
	if err := a.Store.AutoMigrate(conf.Conf.Database.Type); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	a.onExit(100, "close database", func() error {
		a.Store.Close()
		return nil
	})
	return nil
}

func (a *App) InitSessionBackend(ctx context.Context) error {
	if !conf.Conf.Redis.Enable {
		log.Warn("redis disabled, sessions are kept in memory")
		mb := session.NewMemoryBackend(time.Minute)
		a.Backend = mb
		a.onExit(50, "close memory sessions", func() error {
			mb.Close()
			return nil
		})
		return nil
	}
	a.Redis = redis.NewClient(&redis.Options{
		Addr:     conf.Conf.Redis.Addr,
		Username: conf.Conf.Redis.Username,
		Password: conf.Conf.Redis.Password,
		DB:       conf.Conf.Redis.DB,
	})
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}
	log.Infof("redis session store: %s", conf.Conf.Redis.Addr)
	a.Backend = session.NewRedisBackend(a.Redis, conf.Conf.Redis.Prefix)
	a.onExit(50, "close redis", a.Redis.Close)
	return nil
}

func (a *App) InitPassword(ctx context.Context) error {
	a.Hasher = password.NewBcrypt(conf.Conf.Password.BcryptCost, conf.Conf.Password.Concurrency)
	return nil
}

func (a *App) InitProviders(ctx context.Context) error {
	if err := conf.Conf.OAuth2.Validate(); err != nil {
		return err
	}
	for p, pc := range conf.Conf.OAuth2.Providers {
		if !pc.Enable {
			continue
		}
		pi, err := providers.New(p, pc.Option())
		if err != nil {
			return err
		}
		a.Providers.Register(pi)
		log.Infof("oauth2 provider enabled: %s", p)
	}
	return nil
}

func (a *App) InitMetrics(ctx context.Context) error {
	if !conf.Conf.Server.Metrics {
		return nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Gatherer = reg
	a.Metrics = metrics.NewCollector(reg)
	return nil
}

func (a *App) InitIdentity(ctx context.Context) error {
	trust := identity.TrustVerifiedEmailFrom(conf.Conf.OAuth2.TrustedProviders()...)
	a.Resolver = identity.New(a.Store, a.Hasher,
		identity.WithEmailTrust(trust),
		identity.WithLogger(log.WithField("component", "identity")),
	)
	a.Issuer = session.NewIssuer(a.Backend,
		session.WithTTL(conf.Conf.Session.TTL),
		session.WithLogger(log.WithField("component", "session")),
	)
	return nil
}

// ShutdownHTTP registers the http server shutdown ahead of the stores it
// depends on.
func (a *App) ShutdownHTTP(f func() error) {
	a.onExit(0, "shutdown http server", f)
}

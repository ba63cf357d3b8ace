package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/synctv-org/authd/internal/bootstrap"
	"github.com/synctv-org/authd/internal/conf"
	"github.com/synctv-org/authd/server"
	"github.com/synctv-org/authd/server/middlewares"
	"github.com/synctv-org/authd/utils"
)

var app = bootstrap.NewApp()

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start authd server",
	Long:  `Start authd server`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.New(bootstrap.WithContext(cmd.Context())).Add(
			bootstrap.InitStdLog,
			bootstrap.InitConfig,
			bootstrap.InitLog,
			bootstrap.InitGinMode,
			app.InitSysNotify,
			app.InitDatabase,
			app.InitSessionBackend,
			app.InitPassword,
			app.InitProviders,
			app.InitMetrics,
			app.InitIdentity,
		).Run()
	},
	RunE: Server,
}

func Server(cmd *cobra.Command, args []string) error {
	e := server.New(server.Options{
		Resolver:  app.Resolver,
		Issuer:    app.Issuer,
		Providers: app.Providers,
		Cookies: middlewares.NewCookies(
			conf.Conf.Session.Secret,
			conf.Conf.Session.CookieName,
			conf.Conf.Session.TTL,
			conf.Conf.Session.Secure,
		),
		Metrics:     app.Metrics,
		Gatherer:    app.Gatherer,
		FrontendURL: conf.Conf.Server.FrontendURL,
		CorsOrigins: conf.Conf.Server.CorsOrigins,
	})

	addr := net.JoinHostPort(conf.Conf.Server.HTTP.Listen, fmt.Sprint(conf.Conf.Server.HTTP.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           e.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var err error
	certPath, keyPath := conf.Conf.Server.HTTP.CertPath, conf.Conf.Server.HTTP.KeyPath
	if certPath, err = utils.OptFilePath(certPath); err != nil {
		return err
	}
	if keyPath, err = utils.OptFilePath(keyPath); err != nil {
		return err
	}

	serve := func() error { return srv.ListenAndServe() }
	switch {
	case certPath != "" && keyPath != "":
		serve = func() error { return srv.ListenAndServeTLS(certPath, keyPath) }
		log.Infof("website run on https://%s", addr)
	case certPath == "" && keyPath == "":
		log.Infof("website run on http://%s", addr)
	default:
		return errors.New("cert and key must be both set")
	}

	go func() {
		if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()
	app.ShutdownHTTP(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})
	app.Notify.Wait()
	return nil
}

func init() {
	RootCmd.AddCommand(ServerCmd)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/synctv-org/authd/internal/identity"
	"github.com/synctv-org/authd/internal/metrics"
	"github.com/synctv-org/authd/internal/provider"
	"github.com/synctv-org/authd/internal/session"
	"github.com/synctv-org/authd/server/handlers"
	"github.com/synctv-org/authd/server/middlewares"
)

type Options struct {
	Resolver  *identity.Resolver
	Issuer    *session.Issuer
	Providers *provider.Registry
	Cookies   *middlewares.Cookies

	Metrics  metrics.Recorder
	Gatherer prometheus.Gatherer

	FrontendURL string
	CorsOrigins []string
}

func Init(e *gin.Engine, o Options) {
	middlewares.Init(e, o.CorsOrigins)

	e.GET("/healthz", func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	if o.Gatherer != nil {
		e.GET("/metrics", gin.WrapH(metrics.Handler(o.Gatherer)))
	}

	handlers.Init(e, handlers.New(
		o.Resolver,
		o.Issuer,
		o.Providers,
		o.Cookies,
		handlers.WithMetrics(o.Metrics),
		handlers.WithFrontendURL(o.FrontendURL),
	))
}

func New(o Options) *gin.Engine {
	e := gin.New()
	Init(e, o)
	return e
}

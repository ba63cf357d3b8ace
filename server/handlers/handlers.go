package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synctv-org/authd/internal/identity"
	"github.com/synctv-org/authd/internal/metrics"
	"github.com/synctv-org/authd/internal/provider"
	"github.com/synctv-org/authd/internal/session"
	"github.com/synctv-org/authd/server/middlewares"
	"github.com/synctv-org/authd/server/model"
)

var errInternal = errors.New("internal server error")

type Handlers struct {
	resolver    *identity.Resolver
	issuer      *session.Issuer
	providers   *provider.Registry
	cookies     *middlewares.Cookies
	metrics     metrics.Recorder
	frontendURL string
}

type Option func(*Handlers)

func WithMetrics(m metrics.Recorder) Option {
	return func(h *Handlers) {
		if m != nil {
			h.metrics = m
		}
	}
}

func WithFrontendURL(u string) Option {
	return func(h *Handlers) {
		h.frontendURL = u
	}
}

func New(
	resolver *identity.Resolver,
	issuer *session.Issuer,
	providers *provider.Registry,
	cookies *middlewares.Cookies,
	opts ...Option,
) *Handlers {
	h := &Handlers{
		resolver:    resolver,
		issuer:      issuer,
		providers:   providers,
		cookies:     cookies,
		metrics:     metrics.Nop{},
		frontendURL: "/",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func Init(e *gin.Engine, h *Handlers) {
	auth := e.Group("/auth", middlewares.AuthUser(h.cookies, h.issuer))
	needAuthUser := auth.Group("", middlewares.RequireUser)

	auth.POST("/signup", h.Signup)

	auth.POST("/login", h.Login)

	auth.POST("/logout", h.Logout)

	needAuthUser.GET("/me", h.Me)

	{
		oauth2 := auth.Group("/oauth2")

		oauth2.GET("", h.OAuth2Enabled)

		oauth2.GET("/:provider", h.OAuth2)

		oauth2.GET("/:provider/callback", h.OAuth2Callback)
	}
}

// fail writes the client view of err and records the attempt. Only
// rejections the caller can act on are described; anything else is logged
// and reported as a generic server error.
func (h *Handlers) fail(ctx *gin.Context, method string, err error) {
	var status int
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, identity.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, identity.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		middlewares.GetLogger(ctx).WithError(err).Errorf("%s failed", method)
		h.metrics.RecordAttempt(method, metrics.OutcomeError)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, model.NewApiErrorResp(errInternal))
		return
	}
	h.metrics.RecordAttempt(method, metrics.OutcomeRejected)
	ctx.AbortWithStatusJSON(status, model.NewApiErrorResp(err))
}

func (h *Handlers) badRequest(ctx *gin.Context, method string, err error) {
	h.metrics.RecordAttempt(method, metrics.OutcomeRejected)
	ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewApiErrorResp(err))
}

// startSession binds uid to the browser, rotating any other session the
// request carried.
func (h *Handlers) startSession(ctx *gin.Context, uid uint) error {
	current := middlewares.SessionID(ctx)
	if current == "" {
		current = h.cookies.SessionID(ctx.Request)
	}
	handle, err := h.issuer.Issue(ctx.Request.Context(), current, uid)
	if err != nil {
		return err
	}
	if err := h.cookies.SetSessionID(ctx.Writer, ctx.Request, handle.ID); err != nil {
		return err
	}
	ctx.Set("sid", handle.ID)
	ctx.Set("uid", handle.UserID)
	h.metrics.RecordSessionIssued()
	return nil
}

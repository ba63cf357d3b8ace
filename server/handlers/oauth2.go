package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/synctv-org/authd/internal/identity"
	"github.com/synctv-org/authd/internal/metrics"
	"github.com/synctv-org/authd/internal/provider"
	"github.com/synctv-org/authd/server/middlewares"
	"github.com/synctv-org/authd/server/model"
)

var errInvalidProvider = errors.New("invalid oauth2 provider")

// GET /auth/oauth2
func (h *Handlers) OAuth2Enabled(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, model.NewApiDataResp(gin.H{
		"enabled": h.providers.Enabled(),
	}))
}

// GET /auth/oauth2/:provider
func (h *Handlers) OAuth2(ctx *gin.Context) {
	pi, err := h.providers.Get(provider.OAuth2Provider(ctx.Param("provider")))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, model.NewApiErrorResp(errInvalidProvider))
		return
	}

	state, err := h.cookies.NewState(ctx.Writer, ctx.Request)
	if err != nil {
		h.fail(ctx, metrics.MethodOAuth2, err)
		return
	}
	u, err := pi.NewAuthURL(ctx.Request.Context(), state)
	if err != nil {
		h.fail(ctx, metrics.MethodOAuth2, err)
		return
	}
	ctx.Redirect(http.StatusFound, u)
}

// GET /auth/oauth2/:provider/callback
func (h *Handlers) OAuth2Callback(ctx *gin.Context) {
	pi, err := h.providers.Get(provider.OAuth2Provider(ctx.Param("provider")))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, model.NewApiErrorResp(errInvalidProvider))
		return
	}

	req := model.NewOAuth2CallbackReq(ctx)
	if req.Error != "" {
		h.badRequest(ctx, metrics.MethodOAuth2, errors.New("oauth2 authorization denied: "+req.Error))
		return
	}
	if err := req.Validate(); err != nil {
		h.badRequest(ctx, metrics.MethodOAuth2, err)
		return
	}
	ok, err := h.cookies.VerifyState(ctx.Writer, ctx.Request, req.State)
	if err != nil {
		middlewares.GetLogger(ctx).WithError(err).Warn("expire oauth2 state cookie")
	}
	if !ok {
		h.badRequest(ctx, metrics.MethodOAuth2, model.ErrInvalidOAuth2State)
		return
	}

	start := time.Now()
	ui, err := pi.GetUserInfo(ctx.Request.Context(), req.Code)
	h.metrics.RecordExchangeLatency(string(pi.Provider()), time.Since(start))
	if err != nil {
		middlewares.GetLogger(ctx).WithError(err).Warn("oauth2 exchange")
		h.fail(ctx, metrics.MethodOAuth2, err)
		return
	}

	user, err := h.resolver.ResolveProvider(ctx.Request.Context(), identity.ProviderIdentity{
		Provider:       pi.Provider(),
		ProviderUserID: ui.ProviderUserID,
		Name:           ui.Username,
		Email:          ui.Email,
		EmailVerified:  ui.EmailVerified,
	})
	if err != nil {
		h.fail(ctx, metrics.MethodOAuth2, err)
		return
	}
	if err := h.startSession(ctx, user.ID); err != nil {
		h.fail(ctx, metrics.MethodOAuth2, err)
		return
	}

	h.metrics.RecordAttempt(metrics.MethodOAuth2, metrics.OutcomeSuccess)
	ctx.Redirect(http.StatusFound, h.frontendURL)
}

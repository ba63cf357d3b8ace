package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synctv-org/authd/internal/metrics"
	"github.com/synctv-org/authd/server/middlewares"
	"github.com/synctv-org/authd/server/model"
)

func (h *Handlers) Signup(ctx *gin.Context) {
	var req model.SignupReq
	if err := model.Decode(ctx, &req); err != nil {
		h.badRequest(ctx, metrics.MethodSignup, err)
		return
	}

	user, err := h.resolver.SignUp(ctx.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.fail(ctx, metrics.MethodSignup, err)
		return
	}
	if err := h.startSession(ctx, user.ID); err != nil {
		h.fail(ctx, metrics.MethodSignup, err)
		return
	}

	h.metrics.RecordAttempt(metrics.MethodSignup, metrics.OutcomeSuccess)
	ctx.JSON(http.StatusCreated, model.NewApiDataResp(model.NewUserInfoResp(user, nil)))
}

func (h *Handlers) Login(ctx *gin.Context) {
	var req model.LoginReq
	if err := model.Decode(ctx, &req); err != nil {
		h.badRequest(ctx, metrics.MethodLogin, err)
		return
	}

	user, err := h.resolver.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(ctx, metrics.MethodLogin, err)
		return
	}
	if err := h.startSession(ctx, user.ID); err != nil {
		h.fail(ctx, metrics.MethodLogin, err)
		return
	}

	h.metrics.RecordAttempt(metrics.MethodLogin, metrics.OutcomeSuccess)
	links, err := h.resolver.ProviderLinks(ctx.Request.Context(), user.ID)
	if err != nil {
		middlewares.GetLogger(ctx).WithError(err).Warn("list provider links")
	}
	ctx.JSON(http.StatusOK, model.NewApiDataResp(model.NewUserInfoResp(user, links)))
}

// Logout succeeds whether or not the request carried a live session.
func (h *Handlers) Logout(ctx *gin.Context) {
	id := middlewares.SessionID(ctx)
	if id == "" {
		id = h.cookies.SessionID(ctx.Request)
	}
	if err := h.issuer.Destroy(ctx.Request.Context(), id); err != nil {
		h.fail(ctx, metrics.MethodLogout, err)
		return
	}
	if err := h.cookies.ClearSession(ctx.Writer, ctx.Request); err != nil {
		middlewares.GetLogger(ctx).WithError(err).Warn("clear session cookie")
	}
	h.metrics.RecordAttempt(metrics.MethodLogout, metrics.OutcomeSuccess)
	ctx.Status(http.StatusNoContent)
}

func (h *Handlers) Me(ctx *gin.Context) {
	uid, _ := middlewares.UserID(ctx)
	user, err := h.resolver.User(ctx.Request.Context(), uid)
	if err != nil {
		// The session outlived its user.
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, model.NewApiErrorResp(middlewares.ErrAuthFailed))
		return
	}
	links, err := h.resolver.ProviderLinks(ctx.Request.Context(), uid)
	if err != nil {
		h.fail(ctx, metrics.MethodSessionAuth, err)
		return
	}
	ctx.JSON(http.StatusOK, model.NewApiDataResp(model.NewUserInfoResp(user, links)))
}

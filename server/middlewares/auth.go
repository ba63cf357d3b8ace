package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synctv-org/authd/internal/session"
	"github.com/synctv-org/authd/server/model"
)

var ErrAuthFailed = errors.New("auth failed")

// AuthUser resolves the session cookie, if any, and renews both the
// session and the cookie. It never aborts; use RequireUser for that.
//
// The cookie is renewed when the response header goes out, and only if the
// handler did not set or clear the session cookie itself.
func AuthUser(cookies *Cookies, issuer *session.Issuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := cookies.SessionID(ctx.Request)
		if id == "" {
			ctx.Next()
			return
		}
		h, err := issuer.Resolve(ctx.Request.Context(), id)
		switch {
		case err == nil:
			ctx.Set("sid", h.ID)
			ctx.Set("uid", h.UserID)
			ctx.Writer = &renewWriter{
				ResponseWriter: ctx.Writer,
				renew: func(w http.ResponseWriter) {
					if cookies.written(w.Header()) {
						return
					}
					if err := cookies.SetSessionID(w, ctx.Request, h.ID); err != nil {
						GetLogger(ctx).WithError(err).Warn("renew session cookie")
					}
				},
			}
		case errors.Is(err, session.ErrNotFound):
		default:
			GetLogger(ctx).WithError(err).Error("resolve session")
		}
		ctx.Next()
	}
}

func RequireUser(ctx *gin.Context) {
	if _, ok := ctx.Get("uid"); !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, model.NewApiErrorResp(ErrAuthFailed))
		return
	}
	ctx.Next()
}

func UserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get("uid")
	if !ok {
		return 0, false
	}
	uid, ok := v.(uint)
	return uid, ok
}

// SessionID is the resolved session of the request, or "".
func SessionID(ctx *gin.Context) string {
	return ctx.GetString("sid")
}

type renewWriter struct {
	gin.ResponseWriter
	renew func(http.ResponseWriter)
	done  bool
}

func (w *renewWriter) before() {
	if !w.done {
		w.done = true
		w.renew(w.ResponseWriter)
	}
}

func (w *renewWriter) WriteHeader(code int) {
	w.before()
	w.ResponseWriter.WriteHeader(code)
}

func (w *renewWriter) WriteHeaderNow() {
	w.before()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *renewWriter) Write(b []byte) (int, error) {
	w.before()
	return w.ResponseWriter.Write(b)
}

func (w *renewWriter) WriteString(s string) (int, error) {
	w.before()
	return w.ResponseWriter.WriteString(s)
}

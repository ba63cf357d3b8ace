package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

// NewLog attaches a request scoped entry to the context and writes one
// access line per request.
func NewLog(l *logrus.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(RequestIDHeader)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		ctx.Header(RequestIDHeader, rid)
		entry := l.WithFields(logrus.Fields{
			"rid":    rid,
			"method": ctx.Request.Method,
			"path":   ctx.Request.URL.Path,
		})
		ctx.Set("log", entry)

		start := time.Now()
		ctx.Next()

		entry = entry.WithFields(logrus.Fields{
			"status":  ctx.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      ctx.ClientIP(),
		})
		if uid, ok := ctx.Get("uid"); ok {
			entry = entry.WithField("uid", uid)
		}
		switch status := ctx.Writer.Status(); {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

func GetLogger(ctx *gin.Context) *logrus.Entry {
	if l, ok := ctx.Get("log"); ok {
		return l.(*logrus.Entry)
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

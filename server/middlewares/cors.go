package middlewares

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCors allows credentialed requests from the given origins only.
func NewCors(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	config.AddAllowHeaders(RequestIDHeader)
	config.AddExposeHeaders(RequestIDHeader)

	return cors.New(config)
}

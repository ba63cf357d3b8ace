package middlewares

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func Init(e *gin.Engine, corsOrigins []string) {
	e.
		Use(gin.RecoveryWithWriter(log.StandardLogger().Out)).
		Use(NewLog(log.StandardLogger())).
		Use(NewCors(corsOrigins))
}

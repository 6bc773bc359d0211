package routers

import (
	"net/http"

	punchController "punch/controllers/punch"
	"punch/initialize/logger"
	"punch/middlewares"

	"github.com/gin-gonic/gin"
)

// Setup apiToken 为空时不注册 /api/punch 下的接口
func Setup(mode string, svc punchController.Service, apiToken string) *gin.Engine {
	if mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode) //设置为发布模式
	}
	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery(true))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	p := punchController.NewController(svc)
	if apiToken != "" {
		Punch := r.Group("/api/punch")
		Punch.Use(middlewares.ApiTokenMiddleware(apiToken))
		Punch.GET("status", p.GetStatus)
		Punch.POST("skip/:kind", p.Skip)
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"msg": "404",
		})
	})
	return r
}

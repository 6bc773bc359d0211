package middlewares

import (
	"crypto/subtle"

	"punch/global"
	"punch/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ApiTokenHeader = "X-Api-Token"

// ApiTokenMiddleware 写接口只认配置里的 app.api_token
func ApiTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.Request.Header.Get(ApiTokenHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			zap.L().Warn("api token 校验失败", zap.String("ip", c.ClientIP()), zap.String("path", c.Request.URL.Path))
			response.FailWithMessage(c, response.CodeInvalidToken, global.ErrorInvalidApiToken.Error())
			return
		}
		c.Set(global.CtxOperatorKey, c.ClientIP())
		c.Next()
	}
}

package global

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var ErrorInvalidApiToken = errors.New("api token 无效")
var ErrorCornTabNotGet = errors.New("定时任务获取失败")

const CtxOperatorKey = "operator"

// GetOperator 获取通过token校验的调用方
func GetOperator(c *gin.Context) string {
	return c.GetString(CtxOperatorKey)
}

package punch

import (
	"context"

	"punch/global"
	"punch/logic"
	"punch/model/punch"
	"punch/provider/pro104"
	"punch/response"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Service 由 logic.Reminder 实现
type Service interface {
	Status(ctx context.Context) (*punch.Record, error)
	Suppress(kind punch.Kind)
}

type StatusData struct {
	Date        string `json:"date"`
	IsHoliday   bool   `json:"is_holiday"`
	HolidayName string `json:"holiday_name,omitempty"`
	ClockIn     string `json:"clock_in,omitempty"`
	ClockOut    string `json:"clock_out,omitempty"`
	Text        string `json:"text"`
}

type Controller struct {
	svc Service
}

func NewController(svc Service) *Controller {
	return &Controller{svc: svc}
}

// GetStatus 查询今天的打卡状态
func (p *Controller) GetStatus(c *gin.Context) {
	rec, err := p.svc.Status(c.Request.Context())
	if err != nil {
		zap.L().Error("查询打卡状态失败", zap.Error(err))
		response.ResponseErrorWithMsg(c, statusErrorCode(err), err.Error())
		return
	}
	response.ResponseSuccess(c, &StatusData{
		Date:        rec.Date,
		IsHoliday:   rec.IsHoliday,
		HolidayName: rec.HolidayName,
		ClockIn:     rec.ClockInText(),
		ClockOut:    rec.ClockOutText(),
		Text:        punch.StatusText(rec),
	})
}

// statusErrorCode 104返回错误码或者cookie加载不到，都按cookie过期处理
func statusErrorCode(err error) response.ResCode {
	switch {
	case pro104.IsNotFound(err):
		return response.CodeNotFound
	case pro104.IsAPIError(err), errors.Is(err, logic.ErrLoadCookie):
		return response.CodeCookieExpired
	default:
		return response.CodeFetchFailed
	}
}

// Skip 和telegram上点"今天请假/已处理"一样
func (p *Controller) Skip(c *gin.Context) {
	var kind punch.Kind
	switch c.Param("kind") {
	case "in":
		kind = punch.ClockIn
	case "out":
		kind = punch.ClockOut
	default:
		zap.L().Warn("skip invalid kind", zap.String("kind", c.Param("kind")))
		response.ResponseError(c, response.CodeInvalidParam)
		return
	}
	p.svc.Suppress(kind)
	zap.L().Info("通过接口停止今日提醒", zap.Stringer("kind", kind), zap.String("operator", global.GetOperator(c)))
	response.ResponseSuccess(c, gin.H{"message": punch.SuppressedText(kind)})
}

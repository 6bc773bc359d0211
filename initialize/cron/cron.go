package cron

import (
	"context"

	"punch/global"
	"punch/model/common/localTime"
	"punch/settings"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitCorn 创建全局定时器，精确到秒，时间按台北时间算
func InitCorn() *cron.Cron {
	logger := zapLogger{}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(localTime.Loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	global.GLOAB_CORN = c
	return c
}

// PunchJobs 定时要做的三件事
type PunchJobs interface {
	CheckClockIn(ctx context.Context) bool
	CheckClockOut(ctx context.Context) bool
	CheckCredential(ctx context.Context) bool
}

// AddPunchTasks 把打卡检查注册到全局定时器上，返回的ID按上班、下班、cookie的顺序
func AddPunchTasks(ctx context.Context, jobs PunchJobs, cfg *settings.ScheduleConfig) ([]cron.EntryID, error) {
	if global.GLOAB_CORN == nil {
		return nil, global.ErrorCornTabNotGet
	}
	tasks := []struct {
		name string
		spec string
		run  func(ctx context.Context) bool
	}{
		{"上班打卡检查", cfg.CheckSpec, jobs.CheckClockIn},
		{"下班打卡检查", cfg.CheckSpec, jobs.CheckClockOut},
		{"Cookie检查", cfg.CookieCheckSpec, jobs.CheckCredential},
	}
	ids := make([]cron.EntryID, 0, len(tasks))
	for _, task := range tasks {
		task := task
		id, err := global.GLOAB_CORN.AddFunc(task.spec, func() {
			task.run(ctx)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "添加定时任务 %s 失败，规则：%s", task.name, task.spec)
		}
		zap.L().Info("添加定时任务", zap.String("name", task.name), zap.String("spec", task.spec), zap.Int("entry_id", int(id)))
		ids = append(ids, id)
	}
	return ids, nil
}

type zapLogger struct{}

func (zapLogger) Info(msg string, keysAndValues ...interface{}) {
	zap.S().Debugw("cron: "+msg, keysAndValues...)
}

func (zapLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	zap.S().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}

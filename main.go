package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"punch/global"
	"punch/initialize/cron"
	"punch/initialize/enter"
	"punch/initialize/viper"
	"punch/model/punch"
	"punch/robot/dingtalk"
	"punch/robot/telegram"
	"punch/routers"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.StringP("config", "c", "./config.yaml", "配置文件路径")
	once := pflag.Bool("once", false, "只检查一次今天的上班打卡，然后退出")
	pflag.Parse()

	if err := enter.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer zap.L().Sync()
	conf := viper.Conf

	reminder, err := enter.NewReminder(conf)
	if err != nil {
		zap.L().Fatal("创建提醒服务失败", zap.Error(err))
	}
	bot, err := telegram.NewBot(conf.TelegramConfig.Token, conf.TelegramConfig.ChatID, conf.TelegramConfig.Debug)
	if err != nil {
		zap.L().Fatal("初始化telegram失败", zap.Error(err))
	}
	bot.SetService(reminder)
	reminder.AddNotifier(bot)
	if conf.DingTalkConfig != nil && conf.DingTalkConfig.Token != "" {
		reminder.AddNotifier(dingtalk.NewRobot(conf.DingTalkConfig.Token, conf.DingTalkConfig.Secret))
		zap.L().Info("钉钉群通知已开启")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := reminder.CheckOnce(ctx); err != nil {
			zap.L().Sync()
			os.Exit(1)
		}
		return
	}

	if _, err = cron.AddPunchTasks(ctx, reminder, conf.ScheduleConfig); err != nil {
		zap.L().Fatal("添加定时任务失败", zap.Error(err))
	}
	global.GLOAB_CORN.Start()
	go bot.Run(ctx)

	var srv *http.Server
	if conf.App.Port != 0 {
		srv = &http.Server{
			Addr:    fmt.Sprintf(":%d", conf.App.Port),
			Handler: routers.Setup(conf.Mode, reminder, conf.App.ApiToken),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zap.L().Error("http服务启动失败", zap.Error(err))
			}
		}()
	}
	zap.L().Info("打卡提醒已启动", zap.Stringer("clock_in", reminder.Window(punch.ClockIn)), zap.Stringer("clock_out", reminder.Window(punch.ClockOut)))

	<-ctx.Done()
	zap.L().Info("Shutdown Server ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// 等正在跑的检查结束
	select {
	case <-global.GLOAB_CORN.Stop().Done():
	case <-shutdownCtx.Done():
	}
	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Server Shutdown", zap.Error(err))
		}
	}
	zap.L().Info("Server exiting")
}

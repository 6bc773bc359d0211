package enter

import (
	"time"

	"punch/dao/credential"
	"punch/initialize/cron"
	"punch/initialize/logger"
	"punch/initialize/validator"
	"punch/initialize/viper"
	"punch/logic"
	"punch/model/punch"
	"punch/provider/pro104"
	"punch/settings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Init 按顺序初始化 validator、viper、zap 和定时器
func Init(path string) (err error) {
	if err = validator.Init(); err != nil {
		return errors.Wrap(err, "init validator failed")
	}
	if err = viper.Init(path); err != nil {
		return errors.Wrap(err, "init viper failed")
	}
	if err = logger.Init(viper.Conf.LogConfig, viper.Conf.Mode); err != nil {
		return errors.Wrap(err, "init logger failed")
	}
	zap.L().Debug("zap init success...", zap.String("config", path))
	cron.InitCorn()
	return nil
}

// NewCredentialSource 根据 provider.cookie_source 选择cookie来源
func NewCredentialSource(cfg *settings.ProviderConfig, loginURL string) credential.Source {
	switch cfg.CookieSource {
	case "file":
		return &credential.FileSource{Path: cfg.CookieFile}
	case "browser":
		b := &credential.BrowserSource{URL: loginURL, Headless: true}
		if cfg.Browser != nil {
			b.UserDataDir = cfg.Browser.UserDataDir
			b.Headless = cfg.Browser.Headless
			b.Timeout = time.Duration(cfg.Browser.TimeoutSeconds) * time.Second
		}
		return b
	default:
		return credential.FuncSource(viper.Cookies)
	}
}

// NewReminder 用当前配置组装提醒服务，通知渠道由调用方再挂上
func NewReminder(conf *settings.AppConfig) (*logic.Reminder, error) {
	in, err := punch.ParseWindow(conf.ClockInFrom, conf.ClockInTo)
	if err != nil {
		return nil, errors.Wrap(err, "上班提醒时间段配置有误")
	}
	out, err := punch.ParseWindow(conf.ClockOutFrom, conf.ClockOutTo)
	if err != nil {
		return nil, errors.Wrap(err, "下班提醒时间段配置有误")
	}
	client := pro104.NewClient(conf.ProviderConfig.BaseURL, time.Duration(conf.ProviderConfig.TimeoutSeconds)*time.Second)
	source := NewCredentialSource(conf.ProviderConfig, client.AppURL())
	zap.L().Info("cookie来源", zap.String("source", conf.CookieSource))
	return logic.NewReminder(client, source, punch.NewReminderState(), logic.Options{
		ClockInWindow:  in,
		ClockOutWindow: out,
		CookieCheckAt:  conf.CookieCheckAt,
		LoginURL:       client.AppURL(),
		UpdateHint:     conf.UpdateHint,
	}), nil
}

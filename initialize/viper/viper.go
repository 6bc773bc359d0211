package viper

import (
	"sync/atomic"

	"punch/initialize/validator"
	"punch/provider/pro104"
	"punch/settings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var Conf = new(settings.AppConfig)

var cookies atomic.Value

// 环境变量和原来的 .env 保持一致
var envBindings = map[string]string{
	"telegram.token":   "TELEGRAM_BOT_TOKEN",
	"telegram.chat_id": "TELEGRAM_CHAT_ID",
	"provider.cookies": "COOKIES_104",
	"dingtalk.token":   "DINGTALK_TOKEN",
	"dingtalk.secret":  "DINGTALK_SECRET",
}

func Init(path string) (err error) {
	if e := godotenv.Load(); e != nil {
		zap.L().Debug("未找到 .env，只使用系统环境变量")
	}
	vp := viper.New()
	vp.SetConfigFile(path)
	setDefaults(vp)
	for key, env := range envBindings {
		if err = vp.BindEnv(key, env); err != nil {
			return
		}
	}
	if err = vp.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "读取配置文件 %s 失败", path)
	}
	conf, err := load(vp)
	if err != nil {
		return
	}
	Conf = conf
	cookies.Store(conf.ProviderConfig.Cookies)

	// 只有cookie支持热更新，其他配置改了要重启
	vp.WatchConfig()
	vp.OnConfigChange(func(in fsnotify.Event) {
		zap.L().Info("配置文件修改了", zap.String("file", in.Name), zap.String("op", in.Op.String()))
		conf, err := load(vp)
		if err != nil {
			zap.L().Error("重新加载配置失败，继续使用旧配置", zap.Error(err))
			return
		}
		cookies.Store(conf.ProviderConfig.Cookies)
	})
	return nil
}

func load(v *viper.Viper) (*settings.AppConfig, error) {
	conf := new(settings.AppConfig)
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "配置反序列化失败")
	}
	if err := validator.Struct(conf); err != nil {
		return nil, errors.Wrap(err, "配置校验失败")
	}
	return conf, nil
}

// Cookies 当前最新的cookie字符串
func Cookies() string {
	s, _ := cookies.Load().(string)
	return s
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "dev")
	v.SetDefault("app.name", "punch_reminder")
	v.SetDefault("app.port", 8889)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.filename", "./log/punch.log")
	v.SetDefault("log.max_size", 200)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("provider.base_url", pro104.DefaultBaseURL)
	v.SetDefault("provider.timeout_seconds", int(pro104.DefaultTimeout.Seconds()))
	v.SetDefault("provider.cookie_source", "config")
	v.SetDefault("provider.browser.headless", true)
	v.SetDefault("provider.browser.timeout_seconds", 60)
	v.SetDefault("schedule.clock_in_from", "10:20")
	v.SetDefault("schedule.clock_in_to", "12:00")
	v.SetDefault("schedule.clock_out_from", "19:20")
	v.SetDefault("schedule.clock_out_to", "22:00")
	v.SetDefault("schedule.check_spec", "0 * * * * *")
	v.SetDefault("schedule.cookie_check_spec", "0 0 21 * * *")
	v.SetDefault("schedule.cookie_check_at", "21:00")
}

package settings

type AppConfig struct {
	Mode            string `mapstructure:"mode" validate:"oneof=dev release"`
	*App            `mapstructure:"app" validate:"required"`
	*LogConfig      `mapstructure:"log" validate:"required"`
	*ProviderConfig `mapstructure:"provider" validate:"required"`
	*TelegramConfig `mapstructure:"telegram" validate:"required"`
	*DingTalkConfig `mapstructure:"dingtalk"`
	*ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

type App struct {
	Name     string `mapstructure:"name"`
	Port     int    `mapstructure:"port" validate:"gte=0,lte=65535"` // 0 表示不启动http服务
	ApiToken string `mapstructure:"api_token"`                       // 为空时不开放写接口
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename" validate:"required"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type ProviderConfig struct {
	BaseURL        string         `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int            `mapstructure:"timeout_seconds" validate:"gte=0"`
	CookieSource   string         `mapstructure:"cookie_source" validate:"oneof=config file browser"`
	Cookies        string         `mapstructure:"cookies"` // 环境变量 COOKIES_104
	CookieFile     string         `mapstructure:"cookie_file" validate:"required_if=CookieSource file"`
	Browser        *BrowserConfig `mapstructure:"browser"`
	UpdateHint     string         `mapstructure:"update_hint"` // cookie过期提醒里附带的更新命令
}

type BrowserConfig struct {
	UserDataDir    string `mapstructure:"user_data_dir"`
	Headless       bool   `mapstructure:"headless"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token" validate:"required"`   // TELEGRAM_BOT_TOKEN
	ChatID int64  `mapstructure:"chat_id" validate:"required"` // TELEGRAM_CHAT_ID，也是唯一有权限的用户
	Debug  bool   `mapstructure:"debug"`
}

// DingTalkConfig 可选，配置了token就把提醒同时推到钉钉群
type DingTalkConfig struct {
	Token  string `mapstructure:"token"`
	Secret string `mapstructure:"secret"`
}

type ScheduleConfig struct {
	ClockInFrom     string `mapstructure:"clock_in_from" validate:"clock"`
	ClockInTo       string `mapstructure:"clock_in_to" validate:"clock"`
	ClockOutFrom    string `mapstructure:"clock_out_from" validate:"clock"`
	ClockOutTo      string `mapstructure:"clock_out_to" validate:"clock"`
	CheckSpec       string `mapstructure:"check_spec" validate:"required"`
	CookieCheckSpec string `mapstructure:"cookie_check_spec" validate:"required"`
	CookieCheckAt   string `mapstructure:"cookie_check_at"` // 只用于/start的展示
}

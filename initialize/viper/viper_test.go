package viper

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYaml = `
mode: release
app:
  port: 0
log:
  filename: ./log/test.log
provider:
  cookies: "PSC2_SID=old"
telegram:
  token: "123:abc"
schedule:
  clock_out_to: "21:30"
`

func TestInit(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "987654")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(configYaml), 0600))

	require.NoError(t, Init(path))
	assert.Equal(t, "release", Conf.Mode)
	assert.Equal(t, int64(987654), Conf.TelegramConfig.ChatID)
	assert.Equal(t, "123:abc", Conf.TelegramConfig.Token)
	assert.Equal(t, "https://pro.104.com.tw", Conf.ProviderConfig.BaseURL)
	assert.Equal(t, 30, Conf.ProviderConfig.TimeoutSeconds)
	assert.Equal(t, "10:20", Conf.ScheduleConfig.ClockInFrom)
	assert.Equal(t, "21:30", Conf.ScheduleConfig.ClockOutTo)
	assert.Equal(t, "0 0 21 * * *", Conf.ScheduleConfig.CookieCheckSpec)
	assert.Equal(t, "PSC2_SID=old", Cookies())

	// 修改配置文件后cookie自动更新
	updated := strings.Replace(configYaml, "PSC2_SID=old", "PSC2_SID=new", 1)
	require.NoError(t, ioutil.WriteFile(path, []byte(updated), 0600))
	assert.Eventually(t, func() bool { return Cookies() == "PSC2_SID=new" }, 3*time.Second, 50*time.Millisecond)
}

func TestInit_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("schedule:\n  clock_in_from: \"9点\"\n"), 0600))

	err := Init(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "配置校验失败")
}

package enter

import (
	"testing"

	"punch/dao/credential"
	"punch/model/punch"
	"punch/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialSource(t *testing.T) {
	src := NewCredentialSource(&settings.ProviderConfig{CookieSource: "file", CookieFile: "/tmp/cookie"}, "")
	assert.Equal(t, &credential.FileSource{Path: "/tmp/cookie"}, src)

	src = NewCredentialSource(&settings.ProviderConfig{
		CookieSource: "browser",
		Browser:      &settings.BrowserConfig{UserDataDir: "/data/chrome", TimeoutSeconds: 30},
	}, "https://pro.104.com.tw/psc2")
	b, ok := src.(*credential.BrowserSource)
	require.True(t, ok)
	assert.Equal(t, "/data/chrome", b.UserDataDir)
	assert.Equal(t, "https://pro.104.com.tw/psc2", b.URL)
	assert.False(t, b.Headless)

	_, ok = NewCredentialSource(&settings.ProviderConfig{CookieSource: "config"}, "").(credential.FuncSource)
	assert.True(t, ok)
}

func newConf(inFrom string) *settings.AppConfig {
	return &settings.AppConfig{
		ProviderConfig: &settings.ProviderConfig{BaseURL: "https://pro.104.com.tw", CookieSource: "config"},
		ScheduleConfig: &settings.ScheduleConfig{
			ClockInFrom: inFrom, ClockInTo: "11:00",
			ClockOutFrom: "18:30", ClockOutTo: "21:00",
			CookieCheckAt: "21:00",
		},
	}
}

func TestNewReminder(t *testing.T) {
	r, err := NewReminder(newConf("09:30"))
	require.NoError(t, err)
	assert.Equal(t, punch.Window{From: 570, To: 660}, r.Window(punch.ClockIn))
	assert.Equal(t, punch.Window{From: 1110, To: 1260}, r.Window(punch.ClockOut))
	assert.Contains(t, r.HelpText(), "09:30-11:00")

	_, err = NewReminder(newConf("9:30am"))
	assert.Error(t, err)
}

package telegram

import (
	"context"
	"testing"
	"time"

	"punch/model/punch"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerID int64 = 42

type fakeAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	stopped  bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.stopped = true
}

type fakeService struct {
	suppressed []punch.Kind
}

func (f *fakeService) StatusText(context.Context) string { return "📅 2024-03-04" }
func (f *fakeService) Suppress(kind punch.Kind)          { f.suppressed = append(f.suppressed, kind) }
func (f *fakeService) HelpText() string                  { return "help" }

func newTestBot() (*Bot, *fakeAPI, *fakeService) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update)}
	svc := &fakeService{}
	b := &Bot{api: api, chatID: ownerID}
	b.SetService(svc)
	return b, api, svc
}

func command(fromID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 7,
		From:      &tgbotapi.User{ID: fromID},
		Chat:      &tgbotapi.Chat{ID: fromID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}}
}

func callback(fromID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb1",
		From: &tgbotapi.User{ID: fromID},
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: 99,
			Chat:      &tgbotapi.Chat{ID: ownerID},
		},
	}}
}

func TestBot_SendReminder(t *testing.T) {
	b, api, _ := newTestBot()
	require.NoError(t, b.SendReminder(context.Background(), punch.ClockOut, &punch.Record{Date: "2024-03-04"}))

	require.Len(t, api.sent, 1)
	msg := api.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, ownerID, msg.ChatID)
	assert.Contains(t, msg.Text, "你還沒打下班卡")
	markup := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	btn := markup.InlineKeyboard[0][0]
	assert.Equal(t, punch.SkipButtonText, btn.Text)
	assert.Equal(t, "skip_out", *btn.CallbackData)
}

func TestBot_StatusCommand(t *testing.T) {
	b, api, _ := newTestBot()

	b.HandleUpdate(context.Background(), command(ownerID, "/status"))
	require.Len(t, api.sent, 1)
	assert.Equal(t, "📅 2024-03-04", api.sent[0].(tgbotapi.MessageConfig).Text)

	// 别人发的直接忽略
	b.HandleUpdate(context.Background(), command(1000, "/status"))
	assert.Len(t, api.sent, 1)
}

func TestBot_StartCommand(t *testing.T) {
	b, api, _ := newTestBot()
	b.HandleUpdate(context.Background(), command(1000, "/start"))
	require.Len(t, api.sent, 1)
	assert.Equal(t, "help", api.sent[0].(tgbotapi.MessageConfig).Text)
}

func TestBot_Callback(t *testing.T) {
	b, api, svc := newTestBot()

	b.HandleUpdate(context.Background(), callback(ownerID, "skip_in"))
	assert.Equal(t, []punch.Kind{punch.ClockIn}, svc.suppressed)
	require.Len(t, api.requests, 1)
	assert.Empty(t, api.requests[0].(tgbotapi.CallbackConfig).Text)
	require.Len(t, api.sent, 1)
	edit := api.sent[0].(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, 99, edit.MessageID)
	assert.Equal(t, "✅ 已停止今日上班打卡提醒", edit.Text)
}

func TestBot_CallbackUnauthorized(t *testing.T) {
	b, api, svc := newTestBot()

	b.HandleUpdate(context.Background(), callback(1000, "skip_out"))
	assert.Empty(t, svc.suppressed)
	assert.Empty(t, api.sent)
	require.Len(t, api.requests, 1)
	assert.Equal(t, NoPermissionText, api.requests[0].(tgbotapi.CallbackConfig).Text)
}

func TestBot_Run(t *testing.T) {
	b, api, _ := newTestBot()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	api.updates <- command(ownerID, "/start")
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run 没有退出")
	}
	assert.True(t, api.stopped)
	assert.Len(t, api.sent, 1)
}

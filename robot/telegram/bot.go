package telegram

import (
	"context"

	"punch/model/punch"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const NoPermissionText = "無權限"

// botAPI 只用到的那几个方法，测试里替换成假的
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Service 机器人背后的业务，由 logic.Reminder 实现
type Service interface {
	StatusText(ctx context.Context) string
	Suppress(kind punch.Kind)
	HelpText() string
}

// Bot 只为一个用户服务，chatID 既是推送目标也是唯一有权限的用户
type Bot struct {
	api    botAPI
	chatID int64
	svc    Service
}

func NewBot(token string, chatID int64, debug bool) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "连接telegram失败")
	}
	api.Debug = debug
	zap.L().Info("telegram bot 已登录", zap.String("username", api.Self.UserName))
	return &Bot{api: api, chatID: chatID}, nil
}

// SetService 机器人先作为通知渠道创建，业务对象创建好之后再挂上来
func (b *Bot) SetService(svc Service) {
	b.svc = svc
}

func (b *Bot) SendReminder(_ context.Context, kind punch.Kind, rec *punch.Record) error {
	msg := tgbotapi.NewMessage(b.chatID, punch.ReminderText(kind, rec))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(punch.SkipButtonText, kind.CallbackData()),
		),
	)
	_, err := b.api.Send(msg)
	return errors.Wrap(err, "发送telegram提醒失败")
}

func (b *Bot) SendAlert(_ context.Context, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(b.chatID, text))
	return errors.Wrap(err, "发送telegram通知失败")
}

// Run 长轮询，直到ctx结束
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			zap.L().Info("telegram bot 已停止")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) authorized(u *tgbotapi.User) bool {
	return u != nil && u.ID == b.chatID
}

func (b *Bot) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	var text string
	switch m.Command() {
	case "start":
		text = b.svc.HelpText()
	case "status":
		if !b.authorized(m.From) {
			zap.L().Warn("未授权用户查询状态", zap.Int64("chat_id", m.Chat.ID))
			return
		}
		text = b.svc.StatusText(ctx)
	default:
		return
	}
	reply := tgbotapi.NewMessage(m.Chat.ID, text)
	reply.ReplyToMessageID = m.MessageID
	if _, err := b.api.Send(reply); err != nil {
		zap.L().Error("回复telegram消息失败", zap.String("command", m.Command()), zap.Error(err))
	}
}

func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) {
	if !b.authorized(q.From) {
		if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, NoPermissionText)); err != nil {
			zap.L().Error("回应按钮失败", zap.Error(err))
		}
		return
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		zap.L().Error("回应按钮失败", zap.Error(err))
	}
	kind, ok := punch.KindFromCallback(q.Data)
	if !ok {
		zap.L().Warn("未知的按钮数据", zap.String("data", q.Data))
		return
	}
	b.svc.Suppress(kind)
	if q.Message == nil {
		return
	}
	edit := tgbotapi.NewEditMessageText(q.Message.Chat.ID, q.Message.MessageID, punch.SuppressedText(kind))
	if _, err := b.api.Send(edit); err != nil {
		zap.L().Error("修改提醒消息失败", zap.Error(err))
	}
}

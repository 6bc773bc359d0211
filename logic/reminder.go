package logic

import (
	"context"
	"net/http"
	"time"

	"punch/dao/credential"
	"punch/model/common/localTime"
	"punch/model/punch"
	"punch/provider/pro104"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrLoadCookie = errors.New("載入 Cookie 失敗")

type AttendanceClient interface {
	FetchToday(ctx context.Context, now time.Time, cookies []*http.Cookie) (*punch.Record, error)
}

// Notifier 发消息的渠道，telegram必须有，钉钉群可选
type Notifier interface {
	// SendReminder 发打卡提醒，支持按钮的渠道要带上"今天请假/已处理"
	SendReminder(ctx context.Context, kind punch.Kind, rec *punch.Record) error
	// SendAlert 给操作人员的纯文本通知
	SendAlert(ctx context.Context, text string) error
}

type Options struct {
	ClockInWindow  punch.Window
	ClockOutWindow punch.Window
	CookieCheckAt  string
	LoginURL       string // cookie过期时提示去哪里登录
	UpdateHint     string
	Now            func() time.Time
}

// Reminder 定时检查打卡情况并提醒。
// 所有检查的错误都在这里消化掉，不会往外抛，也不会panic。
type Reminder struct {
	client    AttendanceClient
	source    credential.Source
	state     *punch.ReminderState
	notifiers []Notifier
	opts      Options
}

func NewReminder(client AttendanceClient, source credential.Source, state *punch.ReminderState, opts Options) *Reminder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ClockInWindow == (punch.Window{}) {
		opts.ClockInWindow = punch.DefaultClockInWindow
	}
	if opts.ClockOutWindow == (punch.Window{}) {
		opts.ClockOutWindow = punch.DefaultClockOutWindow
	}
	if state == nil {
		state = punch.NewReminderState()
	}
	return &Reminder{client: client, source: source, state: state, opts: opts}
}

// AddNotifier 要在定时任务启动前调用
func (r *Reminder) AddNotifier(n Notifier) {
	r.notifiers = append(r.notifiers, n)
}

func (r *Reminder) State() *punch.ReminderState {
	return r.state
}

func (r *Reminder) Window(kind punch.Kind) punch.Window {
	if kind == punch.ClockOut {
		return r.opts.ClockOutWindow
	}
	return r.opts.ClockInWindow
}

func (r *Reminder) CheckClockIn(ctx context.Context) bool {
	return r.check(ctx, punch.ClockIn)
}

func (r *Reminder) CheckClockOut(ctx context.Context) bool {
	return r.check(ctx, punch.ClockOut)
}

// check 返回是否发出了提醒
func (r *Reminder) check(ctx context.Context, kind punch.Kind) bool {
	now := r.opts.Now()
	w := r.Window(kind)
	if !w.Contains(now) {
		return false
	}
	if r.state.Suppressed(kind, localTime.DayKey(now)) {
		zap.L().Debug("今天已停止提醒", zap.Stringer("kind", kind))
		return false
	}
	rec, err := r.fetch(ctx, now)
	if err != nil {
		// 例行检查失败只记日志，避免104不稳定时刷屏
		zap.L().Error("检查打卡失败", zap.Stringer("kind", kind), zap.Error(err))
		return false
	}
	if !punch.ShouldRemind(kind, w, now, r.state, rec) {
		zap.L().Debug("无需提醒", zap.Stringer("kind", kind), zap.String("date", rec.Date),
			zap.Bool("holiday", rec.IsHoliday), zap.Bool("punched", rec.Punched(kind)))
		return false
	}
	sent := false
	for _, n := range r.notifiers {
		if err := n.SendReminder(ctx, kind, rec); err != nil {
			zap.L().Error("发送打卡提醒失败", zap.Stringer("kind", kind), zap.Error(err))
			continue
		}
		sent = true
	}
	zap.L().Info("发送打卡提醒", zap.Stringer("kind", kind), zap.String("date", rec.Date), zap.Bool("sent", sent))
	return sent
}

// CheckCredential 每天一次，用查询结果判断cookie是否还有效。
// 找不到今天的记录只说明数据缺失，不当作cookie过期。
func (r *Reminder) CheckCredential(ctx context.Context) bool {
	_, err := r.fetch(ctx, r.opts.Now())
	if err == nil {
		zap.L().Info("Cookie 检查通过")
		return false
	}
	if !pro104.IsCredentialFailure(err) && !errors.Is(err, ErrLoadCookie) {
		zap.L().Warn("Cookie 检查：本月数据中没有今天的记录", zap.Error(err))
		return false
	}
	zap.L().Warn("Cookie 检查失败", zap.Error(err),
		zap.Bool("api_error", pro104.IsAPIError(err)), zap.Bool("load_cookie", errors.Is(err, ErrLoadCookie)))
	r.alert(ctx, punch.CookieExpiredText(err, r.opts.LoginURL, r.opts.UpdateHint))
	return true
}

// CheckOnce 单次运行：不看时间段也不看跳过标记，查询失败也要通知
func (r *Reminder) CheckOnce(ctx context.Context) error {
	rec, err := r.fetch(ctx, r.opts.Now())
	if err != nil {
		zap.L().Error("打卡检查失败", zap.Error(err))
		r.alert(ctx, punch.CheckFailedText(err))
		return err
	}
	zap.L().Info("今日打卡状态", zap.String("date", rec.Date), zap.Bool("holiday", rec.IsHoliday),
		zap.String("clock_in", rec.ClockInText()), zap.String("clock_out", rec.ClockOutText()))
	if rec.IsHoliday || rec.ClockIn != nil {
		return nil
	}
	r.alert(ctx, punch.PlainReminderText(rec))
	return nil
}

// Status 查询今天的状态，错误原样返回给调用方展示
func (r *Reminder) Status(ctx context.Context) (*punch.Record, error) {
	return r.fetch(ctx, r.opts.Now())
}

func (r *Reminder) StatusText(ctx context.Context) string {
	rec, err := r.Status(ctx)
	if err != nil {
		return punch.StatusErrorText(err)
	}
	return punch.StatusText(rec)
}

// Suppress 用户点了"今天请假/已处理"
func (r *Reminder) Suppress(kind punch.Kind) {
	today := localTime.DayKey(r.opts.Now())
	r.state.Suppress(kind, today)
	zap.L().Info("停止今日提醒", zap.Stringer("kind", kind), zap.String("date", today))
}

func (r *Reminder) HelpText() string {
	return punch.HelpText(r.opts.ClockInWindow, r.opts.ClockOutWindow, r.opts.CookieCheckAt)
}

func (r *Reminder) fetch(ctx context.Context, now time.Time) (*punch.Record, error) {
	cookies, err := r.source.Load(ctx)
	if err != nil {
		return nil, errors.WithMessage(ErrLoadCookie, err.Error())
	}
	return r.client.FetchToday(ctx, now, cookies)
}

func (r *Reminder) alert(ctx context.Context, text string) {
	for _, n := range r.notifiers {
		if err := n.SendAlert(ctx, text); err != nil {
			zap.L().Error("发送通知失败", zap.Error(err))
		}
	}
}

package punch

import (
	"time"

	"punch/model/common/localTime"
)

// Window 提醒时间段，单位是当天的第几分钟，两端都包含
type Window struct {
	From int
	To   int
}

var (
	DefaultClockInWindow  = Window{From: 10*60 + 20, To: 12 * 60}
	DefaultClockOutWindow = Window{From: 19*60 + 20, To: 22 * 60}
)

// ParseWindow "10:20","12:00" => Window
func ParseWindow(from, to string) (w Window, err error) {
	if w.From, err = localTime.ParseClock(from); err != nil {
		return
	}
	if w.To, err = localTime.ParseClock(to); err != nil {
		return
	}
	return
}

func (w Window) Contains(now time.Time) bool {
	m := localTime.MinuteOfDay(now)
	return m >= w.From && m <= w.To
}

func (w Window) String() string {
	return localTime.FormatClock(w.From) + "-" + localTime.FormatClock(w.To)
}

// ShouldRemind 判断现在要不要发提醒：
// 不在时间段内、用户已经点了跳过、今天是假日、已经打过卡，都不提醒
func ShouldRemind(kind Kind, w Window, now time.Time, state *ReminderState, rec *Record) bool {
	if !w.Contains(now) {
		return false
	}
	if state.Suppressed(kind, localTime.DayKey(now)) {
		return false
	}
	if rec == nil || rec.IsHoliday {
		return false
	}
	return !rec.Punched(kind)
}

func ShouldRemindClockIn(now time.Time, state *ReminderState, rec *Record) bool {
	return ShouldRemind(ClockIn, DefaultClockInWindow, now, state, rec)
}

func ShouldRemindClockOut(now time.Time, state *ReminderState, rec *Record) bool {
	return ShouldRemind(ClockOut, DefaultClockOutWindow, now, state, rec)
}

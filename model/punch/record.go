package punch

import (
	"time"

	"punch/model/common/localTime"
)

// Kind 提醒类型
type Kind int

const (
	ClockIn Kind = iota + 1
	ClockOut
)

// 按钮回调里携带的数据
const (
	CallbackSkipIn  = "skip_in"
	CallbackSkipOut = "skip_out"
)

func (k Kind) String() string {
	switch k {
	case ClockIn:
		return "clock_in"
	case ClockOut:
		return "clock_out"
	}
	return "unknown"
}

// Label 给用户看的名字
func (k Kind) Label() string {
	if k == ClockOut {
		return "下班"
	}
	return "上班"
}

func (k Kind) CallbackData() string {
	if k == ClockOut {
		return CallbackSkipOut
	}
	return CallbackSkipIn
}

// KindFromCallback 根据按钮数据解析提醒类型，不认识的返回false
func KindFromCallback(data string) (Kind, bool) {
	switch data {
	case CallbackSkipIn:
		return ClockIn, true
	case CallbackSkipOut:
		return ClockOut, true
	}
	return 0, false
}

// Record 某一天的打卡情况
type Record struct {
	Date        string     `json:"date"`
	IsHoliday   bool       `json:"is_holiday"`
	HolidayName string     `json:"holiday_name,omitempty"`
	ClockIn     *time.Time `json:"clock_in,omitempty"`
	ClockOut    *time.Time `json:"clock_out,omitempty"`
}

// Punched 是否已经打过该类型的卡
func (r *Record) Punched(kind Kind) bool {
	if kind == ClockOut {
		return r.ClockOut != nil
	}
	return r.ClockIn != nil
}

func (r *Record) ClockInText() string {
	return clockText(r.ClockIn)
}

func (r *Record) ClockOutText() string {
	return clockText(r.ClockOut)
}

func clockText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(localTime.Loc).Format(localTime.ClockLayout)
}

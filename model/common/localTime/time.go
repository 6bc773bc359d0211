package localTime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Loc 104 的日历接口全部按台北时间（UTC+8）计算
var Loc = time.FixedZone("UTC+8", 8*60*60)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
	FullLayout  = "2006-01-02 15:04:05"
)

var ErrInvalidClock = errors.New("时间格式错误，应为HH:MM")

// MonthRange 返回now所在月份的起止时间，结束时间为下个月第一秒减一秒
func MonthRange(now time.Time) (start, end time.Time) {
	t := now.In(Loc)
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, Loc)
	// time.Date 会把 13 月归一化成下一年的 1 月
	end = time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, Loc).Add(-time.Second)
	return
}

// StartOfDay 当天零点
func StartOfDay(now time.Time) time.Time {
	t := now.In(Loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Loc)
}

// DayKey 用作每日状态的日期标识
func DayKey(now time.Time) string {
	return now.In(Loc).Format(DateLayout)
}

// MinuteOfDay 当天的第几分钟，10:20 => 620
func MinuteOfDay(now time.Time) int {
	t := now.In(Loc)
	return t.Hour()*60 + t.Minute()
}

func StampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).In(Loc)
}

func StampToString(ms int64) string {
	return StampToTime(ms).Format(FullLayout)
}

// ParseClock 把 "10:20" 转成分钟数
func ParseClock(s string) (int, error) {
	split := strings.Split(strings.TrimSpace(s), ":")
	if len(split) != 2 {
		return 0, errors.Wrap(ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(split[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, errors.Wrap(ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(split[1])
	if err != nil || minute < 0 || minute > 59 || len(split[1]) != 2 {
		return 0, errors.Wrap(ErrInvalidClock, s)
	}
	return hour*60 + minute, nil
}

func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

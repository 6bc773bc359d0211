package punch

import "fmt"

const SkipButtonText = "✅ 今天請假/已處理"

func ReminderText(kind Kind, rec *Record) string {
	return fmt.Sprintf("⏰ %s打卡提醒\n\n📅 %s\n❌ 你還沒打%s卡！", kind.Label(), rec.Date, kind.Label())
}

// PlainReminderText 一次性检查用的提醒，没有按钮
func PlainReminderText(rec *Record) string {
	return fmt.Sprintf("⏰ 打卡提醒\n\n📅 %s\n❌ 你還沒打卡！\n\n回覆「請假」可停止今日提醒", rec.Date)
}

func SuppressedText(kind Kind) string {
	return fmt.Sprintf("✅ 已停止今日%s打卡提醒", kind.Label())
}

func StatusText(rec *Record) string {
	if rec.IsHoliday {
		name := rec.HolidayName
		if name == "" {
			name = "假日"
		}
		return fmt.Sprintf("📅 %s\n🎉 今天是 %s，不用打卡", rec.Date, name)
	}
	return fmt.Sprintf("📅 %s\n上班: %s\n下班: %s", rec.Date, punchedText(rec.ClockInText()), punchedText(rec.ClockOutText()))
}

func punchedText(clock string) string {
	if clock == "" {
		return "❌ 未打卡"
	}
	return "✅ " + clock
}

func StatusErrorText(err error) string {
	return fmt.Sprintf("❌ 查詢失敗: %v", err)
}

func CheckFailedText(err error) string {
	return fmt.Sprintf("⚠️ 打卡檢查失敗\n%v", err)
}

// CookieExpiredText loginURL 是104的登录页，updateHint 是更新cookie的命令提示，可以为空
func CookieExpiredText(err error, loginURL, updateHint string) string {
	s := fmt.Sprintf("⚠️ 104 Cookie 已過期！\n\n錯誤：%v\n\n請執行以下步驟更新：\n1. 登入 %s\n2. F12 → Network → 複製 Cookie\n", err, loginURL)
	if updateHint != "" {
		s += "3. " + updateHint
	}
	return s
}

func HelpText(in, out Window, cookieCheckAt string) string {
	return fmt.Sprintf("🕐 104 打卡提醒 Bot\n\n指令：\n/status - 查看今日打卡狀態\n\n自動提醒時間：\n• 上班：%s 每分鐘\n• 下班：%s 每分鐘\n• Cookie 檢查：%s",
		in, out, cookieCheckAt)
}

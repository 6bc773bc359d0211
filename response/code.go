package response

type ResCode int64

const (
	CodeSuccess      ResCode = 200
	CodeInvalidParam ResCode = 400
	CodeInvalidToken ResCode = 401
	CodeServerBusy   ResCode = 500
	CodeFetchFailed   ResCode = 1001
	CodeCookieExpired ResCode = 1002
	CodeNotFound      ResCode = 1003
)

var codeMsgMap = map[ResCode]string{
	CodeSuccess:       "success",
	CodeInvalidParam:  "请求参数错误",
	CodeInvalidToken:  "无效的token",
	CodeServerBusy:    "系统繁忙",
	CodeFetchFailed:   "查询104打卡记录失败",
	CodeCookieExpired: "104 Cookie 已过期",
	CodeNotFound:      "找不到今天的记录",
}

func (c ResCode) Msg() string {
	msg, ok := codeMsgMap[c]
	if !ok {
		msg = codeMsgMap[CodeServerBusy]
	}
	return msg
}

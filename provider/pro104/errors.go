package pro104

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound 本月数据里没有今天这一条，属于数据问题，不代表cookie失效
var ErrNotFound = errors.New("找不到今天的紀錄")

// TransportError 网络错误、超时、返回内容不是JSON
type TransportError struct {
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "請求失敗: " + e.Detail
	}
	return fmt.Sprintf("請求失敗: %s: %v", e.Detail, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError 104返回的code不是200
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API 錯誤 (code=%d)", e.Code)
	}
	return e.Message
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCredentialFailure 每日cookie检查用：网络错误和API错误都当作cookie过期，找不到记录不算
func IsCredentialFailure(err error) bool {
	if err == nil || IsNotFound(err) {
		return false
	}
	return IsTransport(err) || IsAPIError(err)
}

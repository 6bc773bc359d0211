package credential

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var ErrEmpty = errors.New("未設定 104 Cookie")

// Source 每次查询前都重新加载一遍cookie，这样更新cookie不用重启
type Source interface {
	Load(ctx context.Context) ([]*http.Cookie, error)
}

// ParseCookieHeader 解析浏览器复制出来的 "a=1; b=2" 格式，没有等号的段直接忽略
func ParseCookieHeader(s string) []*http.Cookie {
	cookies := make([]*http.Cookie, 0)
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		idx := strings.Index(item, "=")
		if idx <= 0 {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:  strings.TrimSpace(item[:idx]),
			Value: strings.TrimSpace(item[idx+1:]),
		})
	}
	return cookies
}

// StaticSource 固定的cookie，测试和一次性运行用
type StaticSource string

func (s StaticSource) Load(_ context.Context) ([]*http.Cookie, error) {
	return nonEmpty(ParseCookieHeader(string(s)))
}

// FuncSource 每次调用getter取最新的cookie字符串，配合viper热更新使用
type FuncSource func() string

func (f FuncSource) Load(_ context.Context) ([]*http.Cookie, error) {
	return nonEmpty(ParseCookieHeader(f()))
}

// FileSource 每次都重新读文件，update_cookie.sh 直接覆盖这个文件即可
type FileSource struct {
	Path string
}

func (f *FileSource) Load(_ context.Context) ([]*http.Cookie, error) {
	b, err := ioutil.ReadFile(f.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "讀取cookie檔案 %s 失敗", f.Path)
	}
	return nonEmpty(ParseCookieHeader(string(b)))
}

func nonEmpty(cookies []*http.Cookie) ([]*http.Cookie, error) {
	if len(cookies) == 0 {
		return nil, ErrEmpty
	}
	return cookies, nil
}

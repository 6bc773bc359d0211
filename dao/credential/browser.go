package credential

import (
	"context"
	"net/http"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BrowserSource 从一个已经登录过104的Chrome用户目录里读cookie，
// 浏览器里的会话会自己续期，比手动复制cookie省事
type BrowserSource struct {
	UserDataDir string
	URL         string // 打开哪个页面，一般是 https://pro.104.com.tw/psc2
	Timeout     time.Duration
	Headless    bool
}

func (b *BrowserSource) Load(ctx context.Context) ([]*http.Cookie, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.UserDataDir(b.UserDataDir),
		chromedp.Flag("headless", b.Headless),
		chromedp.Flag("disable-extensions", true),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	taskCtx, cancel = context.WithTimeout(taskCtx, timeout)
	defer cancel()

	var raw []*network.Cookie
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(b.URL),
		chromedp.ActionFunc(func(ctx context.Context) (err error) {
			raw, err = network.GetCookies().WithUrls([]string{b.URL}).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "透過瀏覽器取得cookie失敗")
	}
	zap.L().Debug("从浏览器读取cookie", zap.Int("count", len(raw)))
	return nonEmpty(convertCookies(raw))
}

func convertCookies(raw []*network.Cookie) []*http.Cookie {
	cookies := make([]*http.Cookie, 0, len(raw))
	for _, c := range raw {
		if c == nil || c.Name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		})
	}
	return cookies
}

package pro104

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"punch/model/common/localTime"
	"punch/model/punch"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://pro.104.com.tw"
	DefaultTimeout = 30 * time.Second
	UserAgent      = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) AppleWebKit/537.36"

	// 正常一个月的日历不到100KB
	maxBodySize = 4 << 20

	codeSuccess      = 200
	eventTypeHoliday = 2
)

// Client 104企业大师的日历接口，每次调用只发一次请求，不重试
type Client struct {
	BaseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// AppURL 104打卡的网页入口，同时也是Referer
func (c *Client) AppURL() string {
	return c.BaseURL + "/psc2"
}

// CalendarURL /psc2/api/home/newCalendar/{startMs}/{endMs}
func (c *Client) CalendarURL(start, end time.Time) string {
	return fmt.Sprintf("%s/psc2/api/home/newCalendar/%d/%d", c.BaseURL, start.UnixMilli(), end.UnixMilli())
}

type calendarResponse struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Data    []calendarDay `json:"data"`
}

type calendarDay struct {
	Date   int64 `json:"date"` // 当天零点的毫秒时间戳
	Events []struct {
		Type  int    `json:"type"` // 2为假日
		Title string `json:"title"`
	} `json:"events"`
	ClockIn struct {
		Start int64 `json:"start"` // 上班卡
		End   int64 `json:"end"`   // 下班卡
	} `json:"clockIn"`
}

// FetchToday 查本月日历，找出今天的打卡记录
func (c *Client) FetchToday(ctx context.Context, now time.Time, cookies []*http.Cookie) (*punch.Record, error) {
	start, end := localTime.MonthRange(now)
	URL := c.CalendarURL(start, end)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, &TransportError{Detail: "建立請求失敗", Err: err}
	}
	c.setHeaders(request)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	zap.L().Debug("查询104日历", zap.String("url", URL), zap.Int("cookies", len(cookies)))

	resp, err := c.client.Do(request)
	if err != nil {
		return nil, &TransportError{Detail: "GET newCalendar", Err: err}
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{Detail: "讀取回應失敗", Err: err}
	}

	r := calendarResponse{}
	if err = json.Unmarshal(body, &r); err != nil {
		return nil, &TransportError{Detail: describeBody(resp.StatusCode, body), Err: err}
	}
	if resp.StatusCode/100 != 2 && r.Code == 0 {
		return nil, &TransportError{Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	if r.Code != codeSuccess {
		return nil, &APIError{Code: r.Code, Message: r.Message}
	}

	today := localTime.StartOfDay(now).UnixMilli()
	for _, day := range r.Data {
		if day.Date == today {
			zap.L().Debug("找到今天的记录", zap.String("day", localTime.StampToString(day.Date)))
			return day.record(), nil
		}
	}
	return nil, ErrNotFound
}

func (c *Client) setHeaders(request *http.Request) {
	request.Header.Set("User-Agent", UserAgent)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Request", "JSON")
	request.Header.Set("X-Requested-With", "XMLHttpRequest")
	request.Header.Set("Referer", c.AppURL())
}

func (d *calendarDay) record() *punch.Record {
	rec := &punch.Record{Date: localTime.StampToTime(d.Date).Format(localTime.DateLayout)}
	for _, event := range d.Events {
		if event.Type == eventTypeHoliday {
			rec.IsHoliday = true
			rec.HolidayName = event.Title
			break
		}
	}
	if d.ClockIn.Start != 0 {
		t := localTime.StampToTime(d.ClockIn.Start)
		rec.ClockIn = &t
	}
	if d.ClockIn.End != 0 {
		t := localTime.StampToTime(d.ClockIn.End)
		rec.ClockOut = &t
	}
	return rec
}

// describeBody cookie过期时104会跳到登录页，把页面标题带上方便排查
func describeBody(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fmt.Sprintf("HTTP %d 空白回應", status)
	}
	if trimmed[0] == '<' {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(trimmed))
		if err == nil {
			if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
				return fmt.Sprintf("HTTP %d 回傳網頁「%s」", status, title)
			}
		}
		return fmt.Sprintf("HTTP %d 回傳網頁", status)
	}
	return fmt.Sprintf("HTTP %d 回傳非JSON內容: %s", status, snippet(trimmed, 80))
}

func snippet(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	b = b[:max]
	for len(b) > 0 && !utf8.Valid(b) {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}

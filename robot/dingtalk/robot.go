package dingtalk

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"punch/model/punch"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://oapi.dingtalk.com/robot/send"

type ResponseSendMessage struct {
	Errcode int    `json:"errcode"`
	Errmsg  string `json:"errmsg"`
}

// Robot 钉钉群的自定义机器人，只能推消息，没有按钮回调
type Robot struct {
	Token   string
	Secret  string // 加签，为空就不签名
	BaseURL string
	Client  *http.Client
	Now     func() time.Time
}

func NewRobot(token, secret string) *Robot {
	return &Robot{
		Token:   token,
		Secret:  secret,
		BaseURL: DefaultBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Now:     time.Now,
	}
}

func (t *Robot) SendReminder(ctx context.Context, kind punch.Kind, rec *punch.Record) error {
	return t.SendText(ctx, punch.ReminderText(kind, rec))
}

func (t *Robot) SendAlert(ctx context.Context, text string) error {
	return t.SendText(ctx, text)
}

func (t *Robot) SendText(ctx context.Context, content string) error {
	msg := map[string]interface{}{
		"msgtype": "text",
		"text": map[string]string{
			"content": content,
		},
		"at": map[string]interface{}{
			"isAtAll": false,
		},
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.getURL(), bytes.NewBuffer(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := t.Client.Do(req)
	if err != nil {
		return errors.Wrap(err, "发送钉钉消息失败")
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	r := ResponseSendMessage{}
	if err = json.Unmarshal(data, &r); err != nil {
		return errors.Wrapf(err, "钉钉返回无法解析 (HTTP %d)", resp.StatusCode)
	}
	if r.Errcode != 0 {
		return errors.Errorf("钉钉返回错误 errcode=%d: %s", r.Errcode, r.Errmsg)
	}
	zap.L().Debug("钉钉消息发送成功")
	return nil
}

func (t *Robot) hmacSha256(stringToSign string, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func (t *Robot) getURL() string {
	u := t.BaseURL + "?access_token=" + url.QueryEscape(t.Token)
	if t.Secret == "" {
		return u
	}
	timestamp := t.Now().UnixNano() / 1e6 //毫秒
	stringToSign := fmt.Sprintf("%d\n%s", timestamp, t.Secret)
	sign := t.hmacSha256(stringToSign, t.Secret)
	return fmt.Sprintf("%s&timestamp=%d&sign=%s", u, timestamp, url.QueryEscape(sign))
}

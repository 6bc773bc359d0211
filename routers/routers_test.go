package routers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"punch/logic"
	"punch/model/common/localTime"
	"punch/model/punch"
	"punch/provider/pro104"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	rec        *punch.Record
	err        error
	suppressed []punch.Kind
}

func (f *fakeService) Status(context.Context) (*punch.Record, error) { return f.rec, f.err }
func (f *fakeService) Suppress(kind punch.Kind)                     { f.suppressed = append(f.suppressed, kind) }

type body struct {
	Code int                    `json:"code"`
	Msg  string                 `json:"msg"`
	Data map[string]interface{} `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, token string) body {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("X-Api-Token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var b body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPing(t *testing.T) {
	r := Setup("test", &fakeService{}, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", w.Body.String())
}

func TestStatus(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 3, 0, 0, localTime.Loc)
	r := Setup("test", &fakeService{rec: &punch.Record{Date: "2024-03-04", ClockIn: &in}}, "secret")

	b := do(t, r, http.MethodGet, "/api/punch/status", "secret")
	assert.Equal(t, 200, b.Code)
	assert.Equal(t, "2024-03-04", b.Data["date"])
	assert.Equal(t, "09:03", b.Data["clock_in"])
	assert.Nil(t, b.Data["clock_out"])
}

func TestStatus_Error(t *testing.T) {
	svc := &fakeService{err: &pro104.APIError{Code: 401, Message: "invalid session"}}
	r := Setup("test", svc, "secret")
	b := do(t, r, http.MethodGet, "/api/punch/status", "secret")
	assert.Equal(t, 1002, b.Code)
	assert.Equal(t, "invalid session", b.Msg)

	svc.err = errors.WithMessage(logic.ErrLoadCookie, "未設定 104 Cookie")
	b = do(t, r, http.MethodGet, "/api/punch/status", "secret")
	assert.Equal(t, 1002, b.Code)

	svc.err = &pro104.TransportError{Detail: "GET newCalendar"}
	b = do(t, r, http.MethodGet, "/api/punch/status", "secret")
	assert.Equal(t, 1001, b.Code)

	svc.err = pro104.ErrNotFound
	b = do(t, r, http.MethodGet, "/api/punch/status", "secret")
	assert.Equal(t, 1003, b.Code)
}

func TestStatus_RequiresToken(t *testing.T) {
	r := Setup("test", &fakeService{rec: &punch.Record{Date: "2024-03-04"}}, "secret")

	b := do(t, r, http.MethodGet, "/api/punch/status", "")
	assert.Equal(t, 401, b.Code)
	assert.Nil(t, b.Data)

	b = do(t, r, http.MethodGet, "/api/punch/status", "wrong")
	assert.Equal(t, 401, b.Code)
	assert.Nil(t, b.Data)
}

func TestSkip(t *testing.T) {
	svc := &fakeService{}
	r := Setup("test", svc, "secret")

	b := do(t, r, http.MethodPost, "/api/punch/skip/out", "secret")
	assert.Equal(t, 200, b.Code)
	assert.Equal(t, []punch.Kind{punch.ClockOut}, svc.suppressed)

	b = do(t, r, http.MethodPost, "/api/punch/skip/lunch", "secret")
	assert.Equal(t, 400, b.Code)

	b = do(t, r, http.MethodPost, "/api/punch/skip/in", "wrong")
	assert.Equal(t, 401, b.Code)
	b = do(t, r, http.MethodPost, "/api/punch/skip/in", "")
	assert.Equal(t, 401, b.Code)
	assert.Len(t, svc.suppressed, 1)
}

func TestPunchRoutes_NotRegisteredWithoutToken(t *testing.T) {
	svc := &fakeService{rec: &punch.Record{Date: "2024-03-04"}}
	r := Setup("test", svc, "")
	b := do(t, r, http.MethodPost, "/api/punch/skip/in", "")
	assert.Equal(t, "404", b.Msg)
	assert.Empty(t, svc.suppressed)

	b = do(t, r, http.MethodGet, "/api/punch/status", "")
	assert.Equal(t, "404", b.Msg)
	assert.Nil(t, b.Data)
}

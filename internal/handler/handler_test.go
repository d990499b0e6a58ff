package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"petledger/internal/handler"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := handler.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, body)
	return c, w
}

func jsonContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := newContext(method, target, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// envelope decodes the standard response with a typed data payload.
type envelope[T any] struct {
	Success bool              `json:"success"`
	Data    T                 `json:"data"`
	Error   *handler.APIError `json:"error"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var resp envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

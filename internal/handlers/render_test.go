package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clamood/console/internal/gateway"
	"clamood/console/internal/models"
	"clamood/console/internal/notice"
	"clamood/console/internal/session"
)

func failWith(err error) (*httptest.ResponseRecorder, *notice.Center) {
	gin.SetMode(gin.TestMode)
	notices := notice.NewCenter(0, zerolog.Nop())
	h := HandlerSet{log: zerolog.Nop(), notices: notices}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/members", nil)
	h.fail(c, err)
	c.Writer.WriteHeaderNow()
	return rec, notices
}

func TestFailStatuses(t *testing.T) {
	cases := map[gateway.Class]int{
		gateway.ClassForbidden: http.StatusForbidden,
		gateway.ClassNotFound:  http.StatusNotFound,
		gateway.ClassServer:    http.StatusBadGateway,
		gateway.ClassHTTP:      http.StatusBadGateway,
		gateway.ClassNetwork:   http.StatusGatewayTimeout,
		gateway.ClassRequest:   http.StatusInternalServerError,
		gateway.ClassCanceled:  http.StatusRequestTimeout,
	}
	for class, status := range cases {
		rec, notices := failWith(&gateway.Error{Class: class})
		assert.Equal(t, status, rec.Code, class)
		assert.Empty(t, notices.Drain(), "gateway failures are announced by the gateway")
	}
}

func TestFailValidation(t *testing.T) {
	rec, _ := failWith(&gateway.Error{
		Class:  gateway.ClassValidation,
		Fields: gateway.FieldErrors{"name": {"Required."}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":{"name":["Required."]}}`, rec.Body.String())
}

func TestFailUnauthorizedWritesNothing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := HandlerSet{log: zerolog.Nop(), notices: notice.NewCenter(0, zerolog.Nop())}
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/members", nil)

	h.fail(c, &gateway.Error{Class: gateway.ClassUnauthorized})
	assert.False(t, c.Writer.Written())
	assert.True(t, c.IsAborted())
}

func TestFailUnauthorizedWithLiveSessionRenders401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(session.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, sessions.Set(context.Background(), "newer", models.UserProfile{ID: 1, Username: "admin"}))
	h := HandlerSet{log: zerolog.Nop(), notices: notice.NewCenter(0, zerolog.Nop()), sessions: sessions}
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/members/5", nil)

	h.fail(c, &gateway.Error{Class: gateway.ClassUnauthorized})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
}

func TestFailLocalErrorNotifies(t *testing.T) {
	rec, notices := failWith(errors.New("persist session: disk full"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, notices.Drain(), 1)
}

func TestBindingErrorsMalformed(t *testing.T) {
	fields := bindingErrors(errors.New("unexpected EOF"))
	assert.Contains(t, fields, "non_field_errors")
}

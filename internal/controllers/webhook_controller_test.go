package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"payee-server/internal/logics"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWebhookController_ChallengeEcho(t *testing.T) {
	e := echo.New()
	body := `{"challenge":"abc-123"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/monday", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	controller := NewWebhookController(logics.NewWebhookService(nil, zap.NewNop()))
	err := controller.Handle(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	// challenge 값은 받은 그대로 돌려줘야 합니다.
	assert.JSONEq(t, `{"challenge":"abc-123"}`, rec.Body.String())
}

func TestWebhookController_BadRequestBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/monday", strings.NewReader(`{invalid`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	controller := NewWebhookController(logics.NewWebhookService(nil, zap.NewNop()))
	err := controller.Handle(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

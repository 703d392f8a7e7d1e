package controllers

import (
	"net/http"

	"payee-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// WebhookController handles Monday.com webhook callbacks.
type WebhookController struct {
	webhookService *logics.WebhookService
}

// NewWebhookController creates and returns a new WebhookController instance.
func NewWebhookController(webhookService *logics.WebhookService) *WebhookController {
	return &WebhookController{webhookService: webhookService}
}

// Handle handles POST /api/v1/webhooks/monday requests.
// challenge 핸드셰이크는 받은 값을 그대로 돌려주고,
// 이벤트 요청은 이메일을 추출해 비활성 회원을 생성합니다.
func (wc *WebhookController) Handle(c echo.Context) error {
	event := new(logics.MondayWebhookEvent)
	if err := c.Bind(event); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "요청 형식이 올바르지 않습니다."})
	}

	if event.Challenge != "" {
		return c.JSON(http.StatusOK, map[string]string{"challenge": event.Challenge})
	}

	outcome, err := wc.webhookService.Handle(c.Request().Context(), event)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "웹훅 처리 중 오류가 발생했습니다."})
	}

	return c.JSON(http.StatusOK, map[string]string{"result": outcome})
}

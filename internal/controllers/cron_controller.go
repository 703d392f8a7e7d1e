package controllers

import (
	"net/http"

	"payee-server/internal/logics"

	"github.com/labstack/echo/v4"
)

// CronController exposes the batch jobs as cron-triggered endpoints.
// 외부 스케줄러가 비밀 헤더와 함께 호출합니다.
type CronController struct {
	mergeService  *logics.MergeService
	expiryService *logics.ExpiryService
}

// NewCronController creates and returns a new CronController instance.
func NewCronController(mergeService *logics.MergeService, expiryService *logics.ExpiryService) *CronController {
	return &CronController{mergeService: mergeService, expiryService: expiryService}
}

// MergeRequests handles POST /api/v1/cron/payee-requests/merge requests.
// 미소비 지급 요청 로그를 병합해 Monday.com 아이템을 생성합니다.
func (cc *CronController) MergeRequests(c echo.Context) error {
	results, err := cc.mergeService.Run(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "병합 작업 실행에 실패했습니다."})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

// NotifyExpiry handles POST /api/v1/cron/payee-requests/notify-expiry requests.
// 동의 만료가 임박한 수취인에게 이메일/알림톡을 발송합니다.
func (cc *CronController) NotifyExpiry(c echo.Context) error {
	results, err := cc.expiryService.Run(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "만료 알림 작업 실행에 실패했습니다."})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"count":   len(results),
		"results": results,
	})
}

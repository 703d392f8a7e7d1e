package middlewares

import (
	"crypto/subtle"
	"net/http"

	"payee-server/configs"

	"github.com/labstack/echo/v4"
)

// 크론 트리거 요청이 실어 보내는 비밀 헤더
const cronSecretHeader = "X-Cron-Secret"

// CronSecretRequired는 외부 스케줄러가 호출하는 배치 엔드포인트를 보호합니다.
func CronSecretRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret := c.Request().Header.Get(cronSecretHeader)
		expected := configs.Configs.Secrets.CronSecret
		if expected == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) != 1 {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "인증되지 않은 요청입니다."})
		}
		return next(c)
	}
}

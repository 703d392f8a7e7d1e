package httpEngine

import (
	"net/http"
	"time"

	"payee-server/configs"
	"payee-server/internal/clients"
	"payee-server/internal/controllers"
	"payee-server/internal/logics"
	"payee-server/internal/middlewares"
	"payee-server/internal/repositories"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes는 서버의 모든 라우트를 등록합니다.
func RegisterRoutes(e *echo.Echo) {
	// 기본 헬스 체크 엔드포인트
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, from Payee Server!")
	})

	// 외부 연동 클라이언트 초기화
	mondayClient := clients.NewMondayClient(
		configs.Configs.Monday.ApiURL,
		configs.Configs.Monday.Token,
		configs.Logger,
	)
	nhnClient := clients.NewNhnClient(clients.NhnClientConfig{
		EmailBaseURL:      configs.Configs.Nhn.EmailBaseURL,
		EmailAppKey:       configs.Configs.Nhn.EmailAppKey,
		EmailSecretKey:    configs.Configs.Nhn.EmailSecretKey,
		SenderAddress:     configs.Configs.Nhn.SenderAddress,
		AlimtalkBaseURL:   configs.Configs.Nhn.AlimtalkBaseURL,
		AlimtalkAppKey:    configs.Configs.Nhn.AlimtalkAppKey,
		AlimtalkSecretKey: configs.Configs.Nhn.AlimtalkSecretKey,
		SenderKey:         configs.Configs.Nhn.SenderKey,
	}, configs.Logger)
	notionClient := clients.NewNotionClient(
		configs.Configs.Notion.BaseURL,
		configs.Configs.Notion.Token,
		configs.Configs.Notion.Version,
		configs.Logger,
	)

	// 서비스 초기화
	memberService := logics.NewMemberService(repositories.DBS.Postgres)
	fileService := logics.NewFileService(repositories.DBS.S3, configs.Configs.S3.BucketName)
	payeeService := logics.NewPayeeService(repositories.DBS.Postgres, fileService)
	webhookService := logics.NewWebhookService(repositories.DBS.Postgres, configs.Logger)
	notionService := logics.NewNotionService(
		repositories.DBS.Redis,
		notionClient,
		time.Duration(configs.Configs.Notion.CacheTtl)*time.Second,
		configs.Logger,
	)

	// 배치 작업 초기화
	requestStore := repositories.NewPayeeRequestStore(repositories.DBS.Postgres)
	mergeService := logics.NewMergeService(requestStore, mondayClient, logics.MergeConfig{
		BoardID:             configs.Configs.Monday.RequestBoard,
		EmailColumn:         configs.Configs.Monday.EmailColumn,
		PhoneColumn:         configs.Configs.Monday.PhoneColumn,
		TaskIdsColumn:       configs.Configs.Monday.TaskIdsColumn,
		SettlementIdsColumn: configs.Configs.Monday.SettlementIdsColumn,
	}, configs.Logger)
	expiryService := logics.NewExpiryService(requestStore, nhnClient, mondayClient, logics.ExpiryConfig{
		BoardID:           configs.Configs.Monday.ExpiryBoard,
		EmailColumn:       configs.Configs.Monday.EmailColumn,
		PhoneColumn:       configs.Configs.Monday.PhoneColumn,
		StatusColumn:      configs.Configs.Monday.StatusColumn,
		EmailTemplateID:   configs.Configs.Nhn.ExpiryTemplateID,
		KakaoTemplateCode: configs.Configs.Nhn.ExpiryTemplateCode,
	}, configs.Logger)

	// 컨트롤러 초기화 - 필요한 서비스 주입
	memberController := controllers.NewMemberController(memberService)
	payeeController := controllers.NewPayeeController(payeeService, memberService)
	cronController := controllers.NewCronController(mergeService, expiryService)
	webhookController := controllers.NewWebhookController(webhookService)
	pageController := controllers.NewPageController(notionService)

	apiV1 := e.Group("/api/v1")

	// 회원 관련 엔드포인트
	members := apiV1.Group("/members")
	members.POST("/register", memberController.Register)
	members.POST("/login", memberController.Login)
	members.POST("/logout", memberController.Logout)
	members.GET("/status", memberController.Status)
	members.GET("/check-code", memberController.CheckCode)
	members.GET("/check-uuid", memberController.CheckUUID)

	// 수취인 정보 엔드포인트 (세션 필수)
	payee := apiV1.Group("/payee-info")
	payee.Use(middlewares.SessionRequired)
	payee.GET("", payeeController.GetPayeeInfo)
	payee.POST("", payeeController.UpdatePayeeInfo)

	// 배치 트리거 엔드포인트 (크론 비밀 헤더 필수)
	cron := apiV1.Group("/cron")
	cron.Use(middlewares.CronSecretRequired)
	cron.POST("/payee-requests/merge", cronController.MergeRequests)
	cron.POST("/payee-requests/notify-expiry", cronController.NotifyExpiry)

	// Monday.com 웹훅 엔드포인트
	apiV1.POST("/webhooks/monday", webhookController.Handle)

	// Notion 안내 페이지 프록시
	apiV1.GET("/pages/:id", pageController.GetPage)
}

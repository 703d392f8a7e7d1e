package logics

import (
	"context"
	"encoding/json"
	"time"

	"payee-server/internal/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// 알림톡 발송에 필요한 최소 전화번호 자릿수
const minTelDigits = 10

// Notifier abstracts the NHN Cloud notification channels.
type Notifier interface {
	SendEmail(ctx context.Context, to, templateID string, params map[string]string) error
	SendAlimtalk(ctx context.Context, to, templateCode string, params map[string]string) error
}

// ExpiryStore abstracts the DB operations of the expiry notification job.
type ExpiryStore interface {
	// FindExpiring은 동의 만료가 until 이전인 최신 수취인 행들을 조회합니다.
	FindExpiring(ctx context.Context, until time.Time) ([]models.MemberPayee, error)
	// SaveNotification은 요청 행과 발송 로그를 한 트랜잭션으로 저장합니다.
	SaveNotification(ctx context.Context, req *models.PayeeRequest, sendLogs []models.SendLog) error
}

// ExpiryConfig 만료 알림 작업 설정
type ExpiryConfig struct {
	BoardID           string
	EmailColumn       string
	PhoneColumn       string
	StatusColumn      string
	EmailTemplateID   string
	KakaoTemplateCode string
}

// ExpiryResult 수취인 한 명의 처리 결과
type ExpiryResult struct {
	PayeeIdx     uint   `json:"payee_idx"`
	Email        string `json:"email"`
	EmailStatus  string `json:"email_status"`
	KakaoStatus  string `json:"kakao_status"`
	MondayItemID string `json:"monday_item_id,omitempty"`
	Error        string `json:"error,omitempty"`
}

// ExpiryService는 동의 만료가 임박한 수취인에게 이메일/알림톡을 보내고
// Monday.com 아이템과 요청/발송 기록을 남기는 배치 작업입니다.
type ExpiryService struct {
	store    ExpiryStore
	notifier Notifier
	monday   MondayAPI
	config   ExpiryConfig
	logger   *zap.Logger
}

// NewExpiryService creates a new ExpiryService instance.
func NewExpiryService(store ExpiryStore, notifier Notifier, monday MondayAPI, config ExpiryConfig, logger *zap.Logger) *ExpiryService {
	return &ExpiryService{
		store:    store,
		notifier: notifier,
		monday:   monday,
		config:   config,
		logger:   logger,
	}
}

// countDigits는 문자열의 숫자 개수를 셉니다. 하이픈 등 구분자는 무시합니다.
func countDigits(tel string) int {
	n := 0
	for _, r := range tel {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// Run은 하루 안에 동의가 만료되는 수취인을 순차 처리합니다.
// 이메일 결과가 처리 상태의 기준이며, 이메일 실패가 이후 단계를 중단시키지 않습니다.
func (s *ExpiryService) Run(ctx context.Context) ([]ExpiryResult, error) {
	payees, err := s.store.FindExpiring(ctx, time.Now().Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	results := make([]ExpiryResult, 0, len(payees))
	for _, payee := range payees {
		results = append(results, s.processPayee(ctx, &payee))
	}
	return results, nil
}

func (s *ExpiryService) processPayee(ctx context.Context, payee *models.MemberPayee) ExpiryResult {
	result := ExpiryResult{PayeeIdx: payee.Idx, Email: payee.Email}

	params := map[string]string{
		"name": payee.RecipientName,
	}
	if payee.ConsentExpireAt != nil {
		params["expire_date"] = payee.ConsentExpireAt.Format("2006-01-02")
	}

	// 1. 이메일 발송 (실패해도 계속 진행)
	emailStatus := models.SendStatusSuccess
	emailErr := s.notifier.SendEmail(ctx, payee.Email, s.config.EmailTemplateID, params)
	if emailErr != nil {
		emailStatus = models.SendStatusFail
		s.logger.Warn("consent expiry: email send failed",
			zap.String("email", payee.Email), zap.Error(emailErr))
	}
	result.EmailStatus = emailStatus

	// 2. 전화번호가 충분히 길 때만 알림톡 발송
	kakaoStatus := models.SendStatusSkipped
	var kakaoErr error
	if countDigits(payee.Tel) >= minTelDigits {
		kakaoStatus = models.SendStatusSuccess
		kakaoErr = s.notifier.SendAlimtalk(ctx, payee.Tel, s.config.KakaoTemplateCode, params)
		if kakaoErr != nil {
			kakaoStatus = models.SendStatusFail
			s.logger.Warn("consent expiry: alimtalk send failed",
				zap.String("tel", payee.Tel), zap.Error(kakaoErr))
		}
	}
	result.KakaoStatus = kakaoStatus

	// 3. Monday.com 아이템 생성. 처리 상태는 이메일 결과를 기준으로 합니다.
	statusLabel := "메일발송완료"
	if emailStatus == models.SendStatusFail {
		statusLabel = "메일발송실패"
	}
	columnValues := map[string]any{
		s.config.EmailColumn:  map[string]string{"email": payee.Email, "text": payee.Email},
		s.config.StatusColumn: map[string]string{"label": statusLabel},
	}
	if payee.Tel != "" {
		columnValues[s.config.PhoneColumn] = payee.Tel
	}

	itemID, mondayErr := s.monday.CreateItem(ctx, s.config.BoardID, payee.Email, columnValues)
	if mondayErr != nil {
		s.logger.Error("consent expiry: monday item creation failed",
			zap.String("email", payee.Email), zap.Error(mondayErr))
		result.Error = mondayErr.Error()
	}
	result.MondayItemID = itemID

	// 4. 요청 행 + 발송 로그 저장 (한 트랜잭션)
	snapshot, _ := json.Marshal(columnValues)
	req := &models.PayeeRequest{
		RequestType:  models.RequestTypeExpiry,
		Email:        payee.Email,
		Tel:          payee.Tel,
		MondayItemID: itemID,
		EmailStatus:  emailStatus,
		KakaoStatus:  kakaoStatus,
		ColumnValues: datatypes.JSON(snapshot),
	}

	sendLogs := []models.SendLog{
		{
			RefTableName: models.PayeeRequest{}.TableName(),
			Channel:      models.SendChannelEmail,
			Recipient:    payee.Email,
			TemplateCode: s.config.EmailTemplateID,
			Status:       emailStatus,
			ResultMsg:    errMsg(emailErr),
		},
	}
	if kakaoStatus != models.SendStatusSkipped {
		sendLogs = append(sendLogs, models.SendLog{
			RefTableName: models.PayeeRequest{}.TableName(),
			Channel:      models.SendChannelKakao,
			Recipient:    payee.Tel,
			TemplateCode: s.config.KakaoTemplateCode,
			Status:       kakaoStatus,
			ResultMsg:    errMsg(kakaoErr),
		})
	}

	if err := s.store.SaveNotification(ctx, req, sendLogs); err != nil {
		s.logger.Error("consent expiry: failed to persist notification records",
			zap.String("email", payee.Email), zap.Error(err))
		result.Error = err.Error()
	}
	return result
}

func errMsg(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

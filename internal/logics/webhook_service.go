package logics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"payee-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 웹훅 처리 결과
const (
	WebhookOutcomeCreated = "created"
	WebhookOutcomeExists  = "already_exists"
	WebhookOutcomeNoEmail = "no_email"
)

// MondayWebhookEvent Monday.com 웹훅 요청 본문.
// challenge 핸드셰이크 요청과 이벤트 요청이 같은 엔드포인트로 들어옵니다.
type MondayWebhookEvent struct {
	Challenge string `json:"challenge,omitempty"`
	Event     *struct {
		BoardID int64           `json:"boardId"`
		PulseID int64           `json:"pulseId"`
		Value   json.RawMessage `json:"value"`
	} `json:"event,omitempty"`
}

// WebhookService는 Monday.com 웹훅에서 이메일을 추출해 비활성 회원 행을 만듭니다.
type WebhookService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewWebhookService creates a new WebhookService instance.
func NewWebhookService(db *gorm.DB, logger *zap.Logger) *WebhookService {
	return &WebhookService{db: db, logger: logger}
}

// extractEmail은 느슨하게 타입이 정해진 컬럼 값에서 이메일을 꺼냅니다.
// 값은 문자열이거나 {email, text} 형태의 객체일 수 있습니다.
func extractEmail(value json.RawMessage) string {
	if len(value) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(value, &asString); err == nil {
		return asString
	}

	var asObject struct {
		Email string `json:"email"`
		Text  string `json:"text"`
	}
	if err := json.Unmarshal(value, &asObject); err == nil {
		if asObject.Email != "" {
			return asObject.Email
		}
		return asObject.Text
	}
	return ""
}

// Handle은 웹훅 이벤트 한 건을 처리하고 결과를 반환합니다.
// 같은 이메일로 두 번 호출해도 회원 행은 한 건만 생깁니다.
func (s *WebhookService) Handle(ctx context.Context, event *MondayWebhookEvent) (string, error) {
	if event.Event == nil {
		return WebhookOutcomeNoEmail, nil
	}

	email := extractEmail(event.Event.Value)
	if email == "" {
		s.logger.Info("monday webhook: no email in payload",
			zap.Int64("pulse_id", event.Event.PulseID))
		return WebhookOutcomeNoEmail, nil
	}

	var existing models.Member
	err := s.db.WithContext(ctx).First(&existing, "email = ?", email).Error
	if err == nil {
		s.logger.Info("monday webhook: member already exists", zap.String("email", email))
		return WebhookOutcomeExists, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to check existing member: %w", err)
	}

	member := models.Member{
		UserID:       uuid.NewString(),
		Email:        email,
		ActiveStatus: models.MemberStatusInactive,
	}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return "", fmt.Errorf("failed to create inactive member: %w", err)
	}

	s.logger.Info("monday webhook: inactive member created",
		zap.String("email", email), zap.Uint("member_idx", member.Idx))
	return WebhookOutcomeCreated, nil
}

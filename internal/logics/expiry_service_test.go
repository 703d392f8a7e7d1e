package logics

import (
	"context"
	"errors"
	"testing"
	"time"

	"payee-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockExpiryStore is a mock implementation of ExpiryStore
type MockExpiryStore struct {
	mock.Mock
}

func (m *MockExpiryStore) FindExpiring(ctx context.Context, until time.Time) ([]models.MemberPayee, error) {
	args := m.Called(ctx, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MemberPayee), args.Error(1)
}

func (m *MockExpiryStore) SaveNotification(ctx context.Context, req *models.PayeeRequest, sendLogs []models.SendLog) error {
	args := m.Called(ctx, req, sendLogs)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendEmail(ctx context.Context, to, templateID string, params map[string]string) error {
	args := m.Called(ctx, to, templateID, params)
	return args.Error(0)
}

func (m *MockNotifier) SendAlimtalk(ctx context.Context, to, templateCode string, params map[string]string) error {
	args := m.Called(ctx, to, templateCode, params)
	return args.Error(0)
}

func TestCountDigits(t *testing.T) {
	tests := []struct {
		tel  string
		want int
	}{
		{"010-1234-5678", 11},
		{"02-123", 5},
		{"", 0},
		{"+82 10 1234 5678", 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, countDigits(tt.tel), tt.tel)
	}
}

func TestExpiryService_Run(t *testing.T) {
	logger := zap.NewNop()
	config := ExpiryConfig{
		BoardID:           "expiry-board",
		EmailColumn:       "email_col",
		PhoneColumn:       "phone_col",
		StatusColumn:      "status_col",
		EmailTemplateID:   "expiry-email",
		KakaoTemplateCode: "expiry-kakao",
	}
	expireAt := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("both channels sent when tel is long enough", func(t *testing.T) {
		store := new(MockExpiryStore)
		notifier := new(MockNotifier)
		monday := new(MockMondayAPI)
		store.On("FindExpiring", mock.Anything, mock.Anything).Return([]models.MemberPayee{
			{Idx: 1, Email: "a@test.com", Tel: "010-1234-5678", RecipientName: "홍길동", ConsentExpireAt: &expireAt},
		}, nil)
		notifier.On("SendEmail", mock.Anything, "a@test.com", "expiry-email", mock.Anything).Return(nil)
		notifier.On("SendAlimtalk", mock.Anything, "010-1234-5678", "expiry-kakao", mock.Anything).Return(nil)
		monday.On("CreateItem", mock.Anything, "expiry-board", "a@test.com", mock.Anything).Return("item-1", nil)
		store.On("SaveNotification", mock.Anything, mock.MatchedBy(func(req *models.PayeeRequest) bool {
			return req.RequestType == models.RequestTypeExpiry &&
				req.EmailStatus == models.SendStatusSuccess &&
				req.KakaoStatus == models.SendStatusSuccess
		}), mock.MatchedBy(func(logs []models.SendLog) bool {
			return len(logs) == 2
		})).Return(nil)

		service := NewExpiryService(store, notifier, monday, config, logger)
		results, err := service.Run(context.Background())

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, models.SendStatusSuccess, results[0].EmailStatus)
		assert.Equal(t, models.SendStatusSuccess, results[0].KakaoStatus)
		store.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("short tel skips alimtalk and logs only the email attempt", func(t *testing.T) {
		store := new(MockExpiryStore)
		notifier := new(MockNotifier)
		monday := new(MockMondayAPI)
		store.On("FindExpiring", mock.Anything, mock.Anything).Return([]models.MemberPayee{
			{Idx: 2, Email: "b@test.com", Tel: "02-123", ConsentExpireAt: &expireAt},
		}, nil)
		notifier.On("SendEmail", mock.Anything, "b@test.com", "expiry-email", mock.Anything).Return(nil)
		monday.On("CreateItem", mock.Anything, "expiry-board", "b@test.com", mock.Anything).Return("item-2", nil)
		store.On("SaveNotification", mock.Anything, mock.MatchedBy(func(req *models.PayeeRequest) bool {
			return req.KakaoStatus == models.SendStatusSkipped
		}), mock.MatchedBy(func(logs []models.SendLog) bool {
			return len(logs) == 1 && logs[0].Channel == models.SendChannelEmail
		})).Return(nil)

		service := NewExpiryService(store, notifier, monday, config, logger)
		results, err := service.Run(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, models.SendStatusSkipped, results[0].KakaoStatus)
		notifier.AssertNotCalled(t, "SendAlimtalk", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.AssertExpectations(t)
	})

	t.Run("email failure still creates the monday item and persists records", func(t *testing.T) {
		store := new(MockExpiryStore)
		notifier := new(MockNotifier)
		monday := new(MockMondayAPI)
		store.On("FindExpiring", mock.Anything, mock.Anything).Return([]models.MemberPayee{
			{Idx: 3, Email: "c@test.com", Tel: "010-1234-5678", ConsentExpireAt: &expireAt},
		}, nil)
		notifier.On("SendEmail", mock.Anything, "c@test.com", "expiry-email", mock.Anything).
			Return(errors.New("smtp rejected"))
		notifier.On("SendAlimtalk", mock.Anything, "010-1234-5678", "expiry-kakao", mock.Anything).Return(nil)
		// 처리 상태 라벨은 이메일 결과를 따릅니다.
		monday.On("CreateItem", mock.Anything, "expiry-board", "c@test.com", mock.MatchedBy(func(cv map[string]any) bool {
			status, ok := cv["status_col"].(map[string]string)
			return ok && status["label"] == "메일발송실패"
		})).Return("item-3", nil)
		store.On("SaveNotification", mock.Anything, mock.MatchedBy(func(req *models.PayeeRequest) bool {
			return req.EmailStatus == models.SendStatusFail && req.MondayItemID == "item-3"
		}), mock.Anything).Return(nil)

		service := NewExpiryService(store, notifier, monday, config, logger)
		results, err := service.Run(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, models.SendStatusFail, results[0].EmailStatus)
		assert.Equal(t, "item-3", results[0].MondayItemID)
		monday.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("find failure aborts the run", func(t *testing.T) {
		store := new(MockExpiryStore)
		notifier := new(MockNotifier)
		monday := new(MockMondayAPI)
		store.On("FindExpiring", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		service := NewExpiryService(store, notifier, monday, config, logger)
		results, err := service.Run(context.Background())

		assert.Error(t, err)
		assert.Nil(t, results)
	})
}

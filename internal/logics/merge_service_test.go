package logics

import (
	"context"
	"errors"
	"testing"

	"payee-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockMergeStore is a mock implementation of MergeStore
type MockMergeStore struct {
	mock.Mock
}

func (m *MockMergeStore) ClaimLogs(ctx context.Context) ([]models.PayeeRequestLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PayeeRequestLog), args.Error(1)
}

func (m *MockMergeStore) MarkLogs(ctx context.Context, idxs []uint, isUse string) error {
	args := m.Called(ctx, idxs, isUse)
	return args.Error(0)
}

func (m *MockMergeStore) CreateRequest(ctx context.Context, req *models.PayeeRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockMondayAPI is a mock implementation of MondayAPI
type MockMondayAPI struct {
	mock.Mock
}

func (m *MockMondayAPI) CreateItem(ctx context.Context, boardID, itemName string, columnValues map[string]any) (string, error) {
	args := m.Called(ctx, boardID, itemName, columnValues)
	return args.String(0), args.Error(1)
}

func TestGroupLogs(t *testing.T) {
	tests := []struct {
		name string
		logs []models.PayeeRequestLog
		want []logGroup
	}{
		{
			name: "same email and tel with a missing tel row merge into one group",
			logs: []models.PayeeRequestLog{
				{Idx: 1, Email: "a@test.com", Tel: "010-1111-2222"},
				{Idx: 2, Email: "a@test.com", Tel: "010-1111-2222"},
				{Idx: 3, Email: "a@test.com", Tel: ""},
			},
			want: []logGroup{
				{Email: "a@test.com", Tel: "010-1111-2222", Logs: []models.PayeeRequestLog{
					{Idx: 1, Email: "a@test.com", Tel: "010-1111-2222"},
					{Idx: 2, Email: "a@test.com", Tel: "010-1111-2222"},
					{Idx: 3, Email: "a@test.com", Tel: ""},
				}},
			},
		},
		{
			name: "email with only missing tels stays one group with empty tel",
			logs: []models.PayeeRequestLog{
				{Idx: 1, Email: "b@test.com", Tel: ""},
				{Idx: 2, Email: "b@test.com", Tel: ""},
			},
			want: []logGroup{
				{Email: "b@test.com", Tel: "", Logs: []models.PayeeRequestLog{
					{Idx: 1, Email: "b@test.com", Tel: ""},
					{Idx: 2, Email: "b@test.com", Tel: ""},
				}},
			},
		},
		{
			name: "different tels under one email split into separate groups",
			logs: []models.PayeeRequestLog{
				{Idx: 1, Email: "c@test.com", Tel: "010-1111-2222"},
				{Idx: 2, Email: "c@test.com", Tel: "010-3333-4444"},
			},
			want: []logGroup{
				{Email: "c@test.com", Tel: "010-1111-2222", Logs: []models.PayeeRequestLog{
					{Idx: 1, Email: "c@test.com", Tel: "010-1111-2222"},
				}},
				{Email: "c@test.com", Tel: "010-3333-4444", Logs: []models.PayeeRequestLog{
					{Idx: 2, Email: "c@test.com", Tel: "010-3333-4444"},
				}},
			},
		},
		{
			name: "emails keep insertion order",
			logs: []models.PayeeRequestLog{
				{Idx: 1, Email: "z@test.com", Tel: "010-1"},
				{Idx: 2, Email: "a@test.com", Tel: "010-2"},
				{Idx: 3, Email: "z@test.com", Tel: "010-1"},
			},
			want: []logGroup{
				{Email: "z@test.com", Tel: "010-1", Logs: []models.PayeeRequestLog{
					{Idx: 1, Email: "z@test.com", Tel: "010-1"},
					{Idx: 3, Email: "z@test.com", Tel: "010-1"},
				}},
				{Email: "a@test.com", Tel: "010-2", Logs: []models.PayeeRequestLog{
					{Idx: 2, Email: "a@test.com", Tel: "010-2"},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupLogs(tt.logs)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDedupIDs(t *testing.T) {
	tests := []struct {
		name  string
		lists []string
		want  []string
	}{
		{
			name:  "duplicates across lists removed keeping first-seen order",
			lists: []string{"5,6,6", "6,7"},
			want:  []string{"5", "6", "7"},
		},
		{
			name:  "whitespace and empty entries ignored",
			lists: []string{" 1 , ,2", "2 ,3"},
			want:  []string{"1", "2", "3"},
		},
		{
			name:  "empty input yields nil",
			lists: []string{""},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dedupIDs(tt.lists...))
		})
	}
}

func TestMergeService_Run(t *testing.T) {
	logger := zap.NewNop()
	config := MergeConfig{
		BoardID:             "board-1",
		EmailColumn:         "email_col",
		PhoneColumn:         "phone_col",
		TaskIdsColumn:       "task_col",
		SettlementIdsColumn: "settlement_col",
	}

	t.Run("no unused logs returns empty result", func(t *testing.T) {
		store := new(MockMergeStore)
		monday := new(MockMondayAPI)
		store.On("ClaimLogs", mock.Anything).Return([]models.PayeeRequestLog{}, nil)

		service := NewMergeService(store, monday, config, logger)
		results, err := service.Run(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, results)
		monday.AssertNotCalled(t, "CreateItem")
	})

	t.Run("claim failure aborts the run", func(t *testing.T) {
		store := new(MockMergeStore)
		monday := new(MockMondayAPI)
		store.On("ClaimLogs", mock.Anything).Return(nil, errors.New("db down"))

		service := NewMergeService(store, monday, config, logger)
		results, err := service.Run(context.Background())

		assert.Error(t, err)
		assert.Nil(t, results)
	})

	t.Run("successful group marks logs consumed with deduped task and settlement ids", func(t *testing.T) {
		store := new(MockMergeStore)
		monday := new(MockMondayAPI)
		store.On("ClaimLogs", mock.Anything).Return([]models.PayeeRequestLog{
			{Idx: 1, Email: "a@test.com", Tel: "010-1111-2222", TaskIdx: "5,6", SettlementIdx: "100,101"},
			{Idx: 2, Email: "a@test.com", Tel: "010-1111-2222", TaskIdx: "6,7", SettlementIdx: "101,102"},
		}, nil)
		monday.On("CreateItem", mock.Anything, "board-1", "a@test.com", mock.MatchedBy(func(cv map[string]any) bool {
			return cv["task_col"] == "5,6,7" && cv["settlement_col"] == "100,101,102"
		})).Return("item-1", nil)
		store.On("CreateRequest", mock.Anything, mock.MatchedBy(func(req *models.PayeeRequest) bool {
			return req.RequestType == models.RequestTypeMerge &&
				req.Email == "a@test.com" &&
				req.MondayItemID == "item-1" &&
				req.TaskIds == "5,6,7" &&
				req.SettlementIds == "100,101,102"
		})).Return(nil)
		store.On("MarkLogs", mock.Anything, []uint{1, 2}, models.LogUseYes).Return(nil)

		service := NewMergeService(store, monday, config, logger)
		results, err := service.Run(context.Background())

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "item-1", results[0].MondayItemID)
		assert.Equal(t, 2, results[0].LogCount)
		assert.Empty(t, results[0].Error)
		store.AssertExpectations(t)
		monday.AssertExpectations(t)
	})

	t.Run("monday failure releases the group and continues with the next", func(t *testing.T) {
		store := new(MockMergeStore)
		monday := new(MockMondayAPI)
		store.On("ClaimLogs", mock.Anything).Return([]models.PayeeRequestLog{
			{Idx: 1, Email: "fail@test.com", Tel: "010-1", TaskIdx: "1"},
			{Idx: 2, Email: "ok@test.com", Tel: "010-2", TaskIdx: "2"},
		}, nil)
		monday.On("CreateItem", mock.Anything, "board-1", "fail@test.com", mock.Anything).
			Return("", errors.New("monday unavailable"))
		monday.On("CreateItem", mock.Anything, "board-1", "ok@test.com", mock.Anything).
			Return("item-2", nil)
		// 실패한 그룹의 행은 재시도를 위해 N으로 되돌립니다.
		store.On("MarkLogs", mock.Anything, []uint{1}, models.LogUseNo).Return(nil)
		store.On("CreateRequest", mock.Anything, mock.Anything).Return(nil)
		store.On("MarkLogs", mock.Anything, []uint{2}, models.LogUseYes).Return(nil)

		service := NewMergeService(store, monday, config, logger)
		results, err := service.Run(context.Background())

		assert.NoError(t, err)
		assert.Len(t, results, 2)
		assert.NotEmpty(t, results[0].Error)
		assert.Empty(t, results[0].MondayItemID)
		assert.Equal(t, "item-2", results[1].MondayItemID)
		store.AssertExpectations(t)
	})

	t.Run("request row insert failure releases logs for retry", func(t *testing.T) {
		store := new(MockMergeStore)
		monday := new(MockMondayAPI)
		store.On("ClaimLogs", mock.Anything).Return([]models.PayeeRequestLog{
			{Idx: 7, Email: "a@test.com", Tel: "010-1", TaskIdx: "1"},
		}, nil)
		monday.On("CreateItem", mock.Anything, "board-1", "a@test.com", mock.Anything).
			Return("item-9", nil)
		store.On("CreateRequest", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
		store.On("MarkLogs", mock.Anything, []uint{7}, models.LogUseNo).Return(nil)

		service := NewMergeService(store, monday, config, logger)
		results, err := service.Run(context.Background())

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.NotEmpty(t, results[0].Error)
		store.AssertExpectations(t)
	})
}

package logics

import (
	"context"
	"encoding/json"
	"strings"

	"payee-server/internal/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// MondayAPI abstracts the Monday.com item creation used by the batch jobs.
type MondayAPI interface {
	CreateItem(ctx context.Context, boardID, itemName string, columnValues map[string]any) (string, error)
}

// MergeStore abstracts the DB operations of the merge job.
type MergeStore interface {
	// ClaimLogs는 미소비(is_use='N') 로그 행을 잠금 하에 선점하고 P 상태로 표시합니다.
	ClaimLogs(ctx context.Context) ([]models.PayeeRequestLog, error)
	// MarkLogs는 선점한 행들의 소비 상태를 갱신합니다.
	MarkLogs(ctx context.Context, idxs []uint, isUse string) error
	CreateRequest(ctx context.Context, req *models.PayeeRequest) error
}

// MergeConfig Monday.com 보드/컬럼 식별자
type MergeConfig struct {
	BoardID             string
	EmailColumn         string
	PhoneColumn         string
	TaskIdsColumn       string
	SettlementIdsColumn string
}

// MergeResult 그룹 하나의 처리 결과
type MergeResult struct {
	Email        string `json:"email"`
	Tel          string `json:"tel"`
	LogCount     int    `json:"log_count"`
	MondayItemID string `json:"monday_item_id,omitempty"`
	Error        string `json:"error,omitempty"`
}

// MergeService는 지급 요청 로그를 (이메일, 전화번호) 그룹으로 병합해
// Monday.com 아이템과 payee_requests 행을 만드는 배치 작업입니다.
type MergeService struct {
	store  MergeStore
	monday MondayAPI
	config MergeConfig
	logger *zap.Logger
}

// NewMergeService creates a new MergeService instance.
func NewMergeService(store MergeStore, monday MondayAPI, config MergeConfig, logger *zap.Logger) *MergeService {
	return &MergeService{
		store:  store,
		monday: monday,
		config: config,
		logger: logger,
	}
}

// logGroup 같은 (이메일, 전화번호)로 묶인 로그 행 묶음
type logGroup struct {
	Email string
	Tel   string
	Logs  []models.PayeeRequestLog
}

// groupLogs는 로그 행을 이메일별로 묶은 뒤 전화번호 단위 그룹으로 나눕니다.
// 전화번호가 없는 행은 해당 이메일의 첫 전화번호 그룹에 합치고,
// 전화번호 그룹이 하나도 없으면 (이메일, "") 그룹으로 남깁니다.
func groupLogs(logs []models.PayeeRequestLog) []logGroup {
	emailOrder := make([]string, 0)
	byEmail := make(map[string][]models.PayeeRequestLog)
	for _, row := range logs {
		if _, ok := byEmail[row.Email]; !ok {
			emailOrder = append(emailOrder, row.Email)
		}
		byEmail[row.Email] = append(byEmail[row.Email], row)
	}

	var groups []logGroup
	for _, email := range emailOrder {
		rows := byEmail[email]

		telOrder := make([]string, 0)
		byTel := make(map[string][]models.PayeeRequestLog)
		var noTel []models.PayeeRequestLog
		for _, row := range rows {
			if row.Tel == "" {
				noTel = append(noTel, row)
				continue
			}
			if _, ok := byTel[row.Tel]; !ok {
				telOrder = append(telOrder, row.Tel)
			}
			byTel[row.Tel] = append(byTel[row.Tel], row)
		}

		if len(telOrder) == 0 {
			groups = append(groups, logGroup{Email: email, Tel: "", Logs: noTel})
			continue
		}
		// 전화번호 없는 행은 첫 전화번호 그룹으로 흡수
		byTel[telOrder[0]] = append(byTel[telOrder[0]], noTel...)
		for _, tel := range telOrder {
			groups = append(groups, logGroup{Email: email, Tel: tel, Logs: byTel[tel]})
		}
	}
	return groups
}

// dedupIDs는 쉼표로 연결된 id 목록들을 합쳐 중복을 제거합니다.
// 처음 등장한 순서를 유지합니다.
func dedupIDs(lists ...string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, list := range lists {
		for _, raw := range strings.Split(list, ",") {
			id := strings.TrimSpace(raw)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Run은 미소비 로그를 선점해 그룹별로 처리합니다.
// 그룹 하나의 실패는 기록하고 다음 그룹으로 넘어가며,
// 실패한 그룹의 로그 행은 N으로 되돌려 다음 주기에 재시도합니다.
func (s *MergeService) Run(ctx context.Context) ([]MergeResult, error) {
	logs, err := s.store.ClaimLogs(ctx)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return []MergeResult{}, nil
	}

	groups := groupLogs(logs)
	results := make([]MergeResult, 0, len(groups))

	for _, group := range groups {
		result := MergeResult{Email: group.Email, Tel: group.Tel, LogCount: len(group.Logs)}

		idxs := make([]uint, 0, len(group.Logs))
		taskLists := make([]string, 0, len(group.Logs))
		settlementLists := make([]string, 0, len(group.Logs))
		for _, row := range group.Logs {
			idxs = append(idxs, row.Idx)
			taskLists = append(taskLists, row.TaskIdx)
			settlementLists = append(settlementLists, row.SettlementIdx)
		}
		taskIds := strings.Join(dedupIDs(taskLists...), ",")
		settlementIds := strings.Join(dedupIDs(settlementLists...), ",")

		columnValues := map[string]any{
			s.config.EmailColumn:         map[string]string{"email": group.Email, "text": group.Email},
			s.config.TaskIdsColumn:       taskIds,
			s.config.SettlementIdsColumn: settlementIds,
		}
		if group.Tel != "" {
			columnValues[s.config.PhoneColumn] = group.Tel
		}

		itemID, err := s.monday.CreateItem(ctx, s.config.BoardID, group.Email, columnValues)
		if err != nil {
			s.logger.Error("payee request merge: monday item creation failed",
				zap.String("email", group.Email), zap.Error(err))
			result.Error = err.Error()
			results = append(results, result)
			s.releaseLogs(ctx, idxs)
			continue
		}
		result.MondayItemID = itemID

		snapshot, _ := json.Marshal(columnValues)
		req := &models.PayeeRequest{
			RequestType:   models.RequestTypeMerge,
			Email:         group.Email,
			Tel:           group.Tel,
			MondayItemID:  itemID,
			TaskIds:       taskIds,
			SettlementIds: settlementIds,
			ColumnValues:  datatypes.JSON(snapshot),
		}
		if err := s.store.CreateRequest(ctx, req); err != nil {
			// 이미 만들어진 Monday 아이템은 되돌리지 않습니다. 로그 행만 재시도 대상으로 되돌립니다.
			s.logger.Error("payee request merge: request row insert failed, monday item left orphaned",
				zap.String("email", group.Email),
				zap.String("monday_item_id", itemID),
				zap.Error(err))
			result.Error = err.Error()
			results = append(results, result)
			s.releaseLogs(ctx, idxs)
			continue
		}

		if err := s.store.MarkLogs(ctx, idxs, models.LogUseYes); err != nil {
			s.logger.Error("payee request merge: failed to mark logs consumed",
				zap.String("email", group.Email), zap.Error(err))
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *MergeService) releaseLogs(ctx context.Context, idxs []uint) {
	if err := s.store.MarkLogs(ctx, idxs, models.LogUseNo); err != nil {
		s.logger.Error("payee request merge: failed to release claimed logs", zap.Error(err))
	}
}

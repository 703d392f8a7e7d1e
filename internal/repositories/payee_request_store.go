package repositories

import (
	"context"
	"fmt"
	"time"

	"payee-server/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayeeRequestStore는 병합/만료 배치 작업이 쓰는 DB 연산 모음입니다.
// logics.MergeStore와 logics.ExpiryStore를 구현합니다.
type PayeeRequestStore struct {
	db *gorm.DB
}

// NewPayeeRequestStore creates a new PayeeRequestStore instance.
func NewPayeeRequestStore(db *gorm.DB) *PayeeRequestStore {
	return &PayeeRequestStore{db: db}
}

// ClaimLogs는 미소비 로그 행을 행 잠금으로 선점합니다.
// 같은 트랜잭션 안에서 P 상태로 표시하므로 병렬 실행돼도 같은 행을
// 두 번 처리하지 않습니다.
func (r *PayeeRequestStore) ClaimLogs(ctx context.Context) ([]models.PayeeRequestLog, error) {
	var logs []models.PayeeRequestLog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("is_use = ?", models.LogUseNo).
			Order("idx ASC").
			Find(&logs).Error; err != nil {
			return fmt.Errorf("failed to select unused logs: %w", err)
		}
		if len(logs) == 0 {
			return nil
		}

		idxs := make([]uint, 0, len(logs))
		for _, row := range logs {
			idxs = append(idxs, row.Idx)
		}
		if err := tx.Model(&models.PayeeRequestLog{}).
			Where("idx IN ?", idxs).
			Update("is_use", models.LogUseProcessing).Error; err != nil {
			return fmt.Errorf("failed to claim logs: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// MarkLogs는 선점한 행들의 소비 상태를 갱신합니다.
func (r *PayeeRequestStore) MarkLogs(ctx context.Context, idxs []uint, isUse string) error {
	if len(idxs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&models.PayeeRequestLog{}).
		Where("idx IN ?", idxs).
		Update("is_use", isUse).Error; err != nil {
		return fmt.Errorf("failed to mark logs: %w", err)
	}
	return nil
}

// CreateRequest는 payee_requests 행 하나를 저장합니다.
func (r *PayeeRequestStore) CreateRequest(ctx context.Context, req *models.PayeeRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create payee request: %w", err)
	}
	return nil
}

// FindExpiring은 동의 만료가 until 이전으로 다가온 수취인 행을 조회합니다.
// 회원별 최신 행만 대상으로 합니다.
func (r *PayeeRequestStore) FindExpiring(ctx context.Context, until time.Time) ([]models.MemberPayee, error) {
	var payees []models.MemberPayee
	err := r.db.WithContext(ctx).
		Where("consent_expire_at > ? AND consent_expire_at <= ?", time.Now(), until).
		Where("idx IN (?)", r.db.Model(&models.MemberPayee{}).
			Select("MAX(idx)").
			Group("member_idx")).
		Find(&payees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find expiring payees: %w", err)
	}
	return payees, nil
}

// SaveNotification은 요청 행과 발송 로그를 한 트랜잭션으로 저장합니다.
func (r *PayeeRequestStore) SaveNotification(ctx context.Context, req *models.PayeeRequest, sendLogs []models.SendLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return fmt.Errorf("failed to create payee request: %w", err)
		}
		for i := range sendLogs {
			sendLogs[i].RefTableIdx = req.Idx
		}
		if len(sendLogs) > 0 {
			if err := tx.Create(&sendLogs).Error; err != nil {
				return fmt.Errorf("failed to create send logs: %w", err)
			}
		}
		return nil
	})
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// 로그 행 소비 상태. 병합 작업이 행을 선점(claim)할 때 P로 바꾸고,
// 그룹 처리에 성공하면 Y, 실패하면 N으로 되돌려 다음 주기에 재시도합니다.
const (
	LogUseNo         = "N"
	LogUseProcessing = "P"
	LogUseYes        = "Y"
)

// PayeeRequestLog is a raw inbound row (one per task/settlement reference)
// later grouped and consumed by the merge job.
type PayeeRequestLog struct {
	Idx   uint   `gorm:"primaryKey;autoIncrement" json:"idx"`
	Email string `gorm:"size:250;not null;index" json:"email"`
	Tel   string `gorm:"size:50" json:"tel"`

	TaskIdx       string `gorm:"size:500" json:"task_idx"`       // 쉼표로 연결된 태스크 idx 목록
	SettlementIdx string `gorm:"size:500" json:"settlement_idx"` // 쉼표로 연결된 정산 idx 목록

	IsUse string `gorm:"size:1;not null;default:'N';index" json:"is_use"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PayeeRequestLog) TableName() string {
	return "payee_request_logs"
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 요청 유형
const (
	RequestTypeMerge  = "merge"  // 신규 지급 요청 병합
	RequestTypeExpiry = "expiry" // 동의 만료 재동의 요청
)

// 채널별 발송 상태
const (
	SendStatusSuccess = "Y"
	SendStatusFail    = "N"
	SendStatusSkipped = "-"
)

// PayeeRequest is a denormalized snapshot row created per merge/notification cycle,
// carrying the Monday.com item id and per-channel send state.
type PayeeRequest struct {
	Idx         uint   `gorm:"primaryKey;autoIncrement" json:"idx"`
	RequestType string `gorm:"size:20;not null" json:"request_type"`
	Email       string `gorm:"size:250;not null;index" json:"email"`
	Tel         string `gorm:"size:50" json:"tel"`

	MondayItemID  string `gorm:"size:50" json:"monday_item_id"`
	TaskIds       string `gorm:"size:1000" json:"task_ids"`       // 중복 제거된 태스크 idx 목록(쉼표 구분)
	SettlementIds string `gorm:"size:1000" json:"settlement_ids"` // 중복 제거된 정산 idx 목록(쉼표 구분)

	EmailStatus string `gorm:"size:1;default:'-'" json:"email_status"`
	KakaoStatus string `gorm:"size:1;default:'-'" json:"kakao_status"`

	// Monday.com 아이템 생성에 사용한 컬럼 값 스냅샷
	ColumnValues datatypes.JSON `gorm:"type:jsonb" json:"column_values,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PayeeRequest) TableName() string {
	return "payee_requests"
}

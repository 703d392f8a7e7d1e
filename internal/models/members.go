package models

import (
	"time"

	"gorm.io/gorm"
)

// 회원 활성화 상태
const (
	MemberStatusInactive = "inactive"
	MemberStatusActive   = "active"
)

// Member represents a payee account holder.
// 회원은 Monday.com 웹훅 또는 초대 과정에서 비활성 상태로 먼저 생성되고,
// 초대 코드 검증을 거쳐 비밀번호 등록과 함께 활성화됩니다.
type Member struct {
	Idx           uint       `gorm:"primaryKey;autoIncrement" json:"idx"`
	UserID        string     `gorm:"size:100;not null;uniqueIndex" json:"user_id"` // 초대 코드(uuid)
	LoginID       string     `gorm:"size:100" json:"login_id"`                     // 활성화 시 생성되는 로그인 식별자
	Email         string     `gorm:"size:250;not null;uniqueIndex" json:"email"`
	Password      string     `gorm:"size:250" json:"-"` // Hashed password
	Hash          string     `gorm:"size:250" json:"-"` // Salt value
	Name          string     `gorm:"size:100" json:"name"`
	Tel           string     `gorm:"size:50" json:"tel"`
	ActiveStatus  string     `gorm:"size:20;not null;default:'inactive'" json:"active_status"`
	PrivacyAgree  string     `gorm:"size:1;default:'N'" json:"privacy_agree"`
	PrivacyAgreeAt *time.Time `json:"privacy_agree_at,omitempty"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`

	Payees []MemberPayee `gorm:"foreignKey:MemberIdx;references:Idx" json:"payees,omitempty"`

	// 공통 메타 필드
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

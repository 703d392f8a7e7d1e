package models

import (
	"time"

	"gorm.io/gorm"
)

// 사업자 유형
const (
	BusinessTypePersonal  = "personal"  // 국내 개인
	BusinessTypeForeign   = "foreign"   // 해외 개인
	BusinessTypeCorporate = "corporate" // 사업자
)

// MemberPayee holds the payout/tax/banking profile of a member.
// 한 회원에 대해 이력 행이 여러 개 존재할 수 있으며, 조회 시에는
// created_at 기준 최신 행을 유효한 정보로 취급합니다.
type MemberPayee struct {
	Idx       uint `gorm:"primaryKey;autoIncrement" json:"idx"`
	MemberIdx uint `gorm:"not null;index" json:"member_idx"`

	BusinessType string `gorm:"size:20;not null;default:'personal'" json:"business_type"`

	// 수취인 식별 정보
	RecipientName  string `gorm:"size:100" json:"recipient_name"`
	ResidentNumber string `gorm:"size:50" json:"resident_number"` // 주민등록번호 또는 사업자등록번호
	Nationality    string `gorm:"size:50" json:"nationality"`     // 해외 개인만 사용
	Address        string `gorm:"size:500" json:"address"`
	Email          string `gorm:"size:250" json:"email"`
	Tel            string `gorm:"size:50" json:"tel"`

	// 계좌 정보
	BankName      string `gorm:"size:100" json:"bank_name"`
	BankAccount   string `gorm:"size:100" json:"bank_account"`
	AccountHolder string `gorm:"size:100" json:"account_holder"`
	SwiftCode     string `gorm:"size:50" json:"swift_code"` // 해외 계좌만 사용

	// 세무 정보
	TaxType     string `gorm:"size:50" json:"tax_type"`
	CompanyName string `gorm:"size:250" json:"company_name"` // 사업자만 사용

	// 개인정보 수집 동의
	ConsentAt       *time.Time `json:"consent_at,omitempty"`
	ConsentExpireAt *time.Time `gorm:"index" json:"consent_expire_at,omitempty"`

	Member *Member `gorm:"foreignKey:MemberIdx;references:Idx" json:"member,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MemberPayee) TableName() string {
	return "member_payees"
}

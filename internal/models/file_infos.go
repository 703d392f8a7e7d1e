package models

import (
	"time"

	"gorm.io/gorm"
)

// 첨부 파일 태그. 수정 시 같은 태그의 기존 행을 지우고 새 행을 넣습니다.
const (
	FileTagBankbook = "bankbook" // 통장 사본
	FileTagIDCard   = "id_card"  // 신분증 사본
	FileTagBizCert  = "biz_cert" // 사업자등록증 사본
)

// FileInfo is a polymorphic attachment row keyed by (ref_table_name, ref_table_idx, tag),
// pointing at an S3 object key.
type FileInfo struct {
	Idx          uint   `gorm:"primaryKey;autoIncrement" json:"idx"`
	RefTableName string `gorm:"size:100;not null;index:idx_file_ref" json:"ref_table_name"`
	RefTableIdx  uint   `gorm:"not null;index:idx_file_ref" json:"ref_table_idx"`
	Tag          string `gorm:"size:50;not null" json:"tag"`
	FileKey      string `gorm:"size:500;not null" json:"file_key"` // S3 object key
	FileName     string `gorm:"size:255;not null" json:"file_name"`
	FileSize     int64  `json:"file_size"`
	ContentType  string `gorm:"size:255" json:"content_type"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FileInfo) TableName() string {
	return "file_infos"
}

package models

import (
	"time"
)

// 발송 채널
const (
	SendChannelEmail = "email"
	SendChannelKakao = "kakao"
)

// SendLog is an append-only audit row per notification attempt,
// referencing a PayeeRequest by polymorphic (ref_table_name, ref_table_idx).
type SendLog struct {
	Idx          uint   `gorm:"primaryKey;autoIncrement" json:"idx"`
	RefTableName string `gorm:"size:100;not null;index:idx_send_ref" json:"ref_table_name"`
	RefTableIdx  uint   `gorm:"not null;index:idx_send_ref" json:"ref_table_idx"`

	Channel      string `gorm:"size:20;not null" json:"channel"`
	Recipient    string `gorm:"size:250;not null" json:"recipient"`
	TemplateCode string `gorm:"size:100" json:"template_code"`
	Status       string `gorm:"size:1;not null" json:"status"`
	ResultMsg    string `gorm:"size:1000" json:"result_msg"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SendLog) TableName() string {
	return "send_logs"
}

package configs

// MondayConfig Monday.com 연동 설정. 컬럼 ID는 보드마다 고정된 식별자입니다.
type MondayConfig struct {
	ApiURL        string `yaml:"api_url"`
	Token         string `yaml:"token"`
	RequestBoard  string `yaml:"request_board"`
	ExpiryBoard   string `yaml:"expiry_board"`
	EmailColumn         string `yaml:"email_column"`
	PhoneColumn         string `yaml:"phone_column"`
	StatusColumn        string `yaml:"status_column"`
	TaskIdsColumn       string `yaml:"task_ids_column"`
	SettlementIdsColumn string `yaml:"settlement_ids_column"`
}

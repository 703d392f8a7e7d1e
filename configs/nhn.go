package configs

// NhnConfig NHN Cloud 알림 채널(Email, 알림톡) 설정
type NhnConfig struct {
	EmailBaseURL       string `yaml:"email_base_url"`
	EmailAppKey        string `yaml:"email_app_key"`
	EmailSecretKey     string `yaml:"email_secret_key"`
	SenderAddress      string `yaml:"sender_address"`
	ExpiryTemplateID   string `yaml:"expiry_template_id"`
	AlimtalkBaseURL    string `yaml:"alimtalk_base_url"`
	AlimtalkAppKey     string `yaml:"alimtalk_app_key"`
	AlimtalkSecretKey  string `yaml:"alimtalk_secret_key"`
	SenderKey          string `yaml:"sender_key"`
	ExpiryTemplateCode string `yaml:"expiry_template_code"`
}

package configs

type ServiceConfig struct {
	HttpPort     string   `yaml:"http_port"`
	ServiceName  string   `yaml:"service_name"`
	BaseURL      string   `yaml:"base_url"`
	AllowOrigins []string `yaml:"allow_origins"` // CORS 허용 출처
}

type LogsConfig struct {
	LogLevel   string `yaml:"log_level"`
	LogPath    string `yaml:"log_path"`
	StdoutOnly bool   `yaml:"stdout_only"`
}

package configs

type NotionConfig struct {
	BaseURL  string `yaml:"base_url"`
	Token    string `yaml:"token"`
	Version  string `yaml:"version"`
	CacheTtl int    `yaml:"cache_ttl"` // 초 단위
}

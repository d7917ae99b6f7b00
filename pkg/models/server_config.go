package models

// ServerConfig is the optional on-disk configuration file.
// Any field left empty keeps its default.
type ServerConfig struct {
	Port                 string   `yaml:"port" toml:"port" json:"port"`
	RootPath             string   `yaml:"root_path" toml:"root_path" json:"root_path"`
	ArticlesPath         string   `yaml:"articles_path" toml:"articles_path" json:"articles_path"`
	ImagesPath           string   `yaml:"images_path" toml:"images_path" json:"images_path"`
	BuildPath            string   `yaml:"build_path" toml:"build_path" json:"build_path"`
	PublicPath           string   `yaml:"public_path" toml:"public_path" json:"public_path"`
	CORSOrigins          []string `yaml:"cors_origins" toml:"cors_origins" json:"cors_origins"`
	ScanConcurrency      int      `yaml:"scan_concurrency" toml:"scan_concurrency" json:"scan_concurrency"`
	IsolateEntryFailures *bool    `yaml:"isolate_entry_failures" toml:"isolate_entry_failures" json:"isolate_entry_failures"`
	SSLRedirect          *bool    `yaml:"ssl_redirect" toml:"ssl_redirect" json:"ssl_redirect"`
}

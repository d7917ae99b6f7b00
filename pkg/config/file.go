package config

import (
	"article-server/pkg/models"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a server config file. The format is chosen by extension.
func LoadFile(path string) (*models.ServerConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(content, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

func ParseFile(content []byte, format string) (*models.ServerConfig, error) {
	var cfg models.ServerConfig
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case "json":
		if err := json.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return &cfg, nil
}

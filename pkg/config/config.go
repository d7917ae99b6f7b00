package config

import (
	"article-server/pkg/models"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	Port = "5000"

	RootPath     = "."
	ArticlesPath = "articles"
	ImagesPath   = "images"

	// SPA bundle and extra static assets
	BuildPath  = "build"
	PublicPath = "public"

	CORSOrigins = []string{"*"}
	SSLRedirect = false

	// Scan settings
	ScanConcurrency      = 20
	IsolateEntryFailures = false
)

func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it.")
	}

	var fileCfg models.ServerConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		cfg, err := LoadFile(path)
		if err != nil {
			log.Printf("Failed to load config file %s: %v", path, err)
		} else {
			fileCfg = *cfg
		}
	}

	Apply(fileCfg, os.Getenv)
}

// Apply sets every setting from lookup (usually os.Getenv), then from the
// config file, then from the built-in default, in that order of precedence.
func Apply(file models.ServerConfig, lookup func(string) string) {
	get := func(key, fromFile, fallback string) string {
		if v := lookup(key); v != "" {
			return v
		}
		if fromFile != "" {
			return fromFile
		}
		return fallback
	}

	Port = get("PORT", file.Port, "5000")

	RootPath = get("ROOT_PATH", file.RootPath, ".")
	ArticlesPath = get("ARTICLES_PATH", file.ArticlesPath, filepath.Join(RootPath, "articles"))
	ImagesPath = get("IMAGES_PATH", file.ImagesPath, filepath.Join(RootPath, "images"))
	BuildPath = get("BUILD_PATH", file.BuildPath, filepath.Join(RootPath, "build"))
	PublicPath = get("PUBLIC_PATH", file.PublicPath, filepath.Join(RootPath, "public"))

	CORSOrigins = []string{"*"}
	if len(file.CORSOrigins) > 0 {
		CORSOrigins = file.CORSOrigins
	}
	if v := lookup("CORS_ORIGINS"); v != "" {
		CORSOrigins = splitList(v)
	}

	ScanConcurrency = 20
	if file.ScanConcurrency > 0 {
		ScanConcurrency = file.ScanConcurrency
	}
	if v := lookup("SCAN_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ScanConcurrency = n
		}
	}

	IsolateEntryFailures = getBool(lookup, "ISOLATE_ENTRY_FAILURES", file.IsolateEntryFailures)
	SSLRedirect = getBool(lookup, "SSL_REDIRECT", file.SSLRedirect)
}

func getBool(lookup func(string) string, key string, fromFile *bool) bool {
	if v := lookup(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	if fromFile != nil {
		return *fromFile
	}
	return false
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package server

import (
	"article-server/pkg/config"
	"article-server/pkg/handlers"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// New builds the engine from the current config values.
func New() *gin.Engine {
	r := gin.Default()

	if err := r.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		log.Printf("Failed to set trusted proxies: %v", err)
	}

	r.Use(secure.New(secureConfig()))
	r.Use(cors.New(corsConfig()))

	r.GET("/api/articles", handlers.ListArticles)
	r.HEAD("/api/articles", handlers.ListArticles)

	// SPA entry and static assets from the build and public roots
	r.GET("/", handlers.ServeIndex)
	r.NoRoute(handlers.ServeApp)

	return r
}

func secureConfig() secure.Config {
	cfg := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	if config.SSLRedirect {
		cfg.SSLRedirect = true
		cfg.STSSeconds = 31536000
		cfg.STSIncludeSubdomains = true
	}
	return cfg
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{
		http.MethodGet, http.MethodHead, http.MethodPut,
		http.MethodPatch, http.MethodPost, http.MethodDelete,
	}

	origins := config.CORSOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Run blocks serving on the configured port.
func Run() error {
	addr := ":" + config.Port
	log.Printf("Server is running on port %s", config.Port)
	return New().Run(addr)
}

package handlers

import (
	"article-server/pkg/config"
	"article-server/pkg/services"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// ServeApp handles every route not claimed by the API. Files in the build
// root win over the public root; anything else gets the SPA entry document.
func ServeApp(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}

	if path := findAsset(c.Request.URL.Path); path != "" {
		c.File(path)
		return
	}
	ServeIndex(c)
}

func ServeIndex(c *gin.Context) {
	c.File(filepath.Join(config.BuildPath, "index.html"))
}

// findAsset looks for urlPath as a file, or as a directory holding
// index.html, under each static root in turn.
func findAsset(urlPath string) string {
	for _, root := range []string{config.BuildPath, config.PublicPath} {
		fullPath := services.SafeJoin(root, urlPath)
		info, err := os.Stat(fullPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			fullPath = filepath.Join(fullPath, "index.html")
			if info, err = os.Stat(fullPath); err != nil {
				continue
			}
		}
		if info.Mode().IsRegular() {
			return fullPath
		}
	}
	return ""
}

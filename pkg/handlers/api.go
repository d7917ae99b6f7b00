package handlers

import (
	"article-server/pkg/services"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ListArticles(c *gin.Context) {
	articles, err := services.NewScanner().Scan()
	if err != nil {
		log.Printf("Failed to read articles directory: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read articles directory"})
		return
	}

	log.Printf("Articles fetched: %d", len(articles))
	c.JSON(http.StatusOK, articles)
}

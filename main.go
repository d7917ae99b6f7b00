package main

import (
	"article-server/pkg/config"
	"article-server/pkg/server"
	"log"
)

func main() {
	// Initialize config
	config.Init()

	if err := server.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

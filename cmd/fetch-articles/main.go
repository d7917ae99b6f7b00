package main

import (
	"article-server/pkg/config"
	"article-server/pkg/scraper"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	config.Init()

	urlsFile := flag.String("urls", "urls.txt", "file with one article URL per line")
	articlesDir := flag.String("articles", config.ArticlesPath, "directory for article HTML files")
	imagesDir := flag.String("images", config.ImagesPath, "directory for per-article image folders")
	concurrency := flag.Int("concurrency", 4, "pages fetched in parallel")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP timeout per request")
	flag.Parse()

	if _, err := os.Stat(*urlsFile); err != nil {
		log.Fatalf("File %s does not exist. Please create the file with the list of URLs.", *urlsFile)
	}
	urls, err := scraper.ReadURLs(*urlsFile)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *urlsFile, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := scraper.NewFetcher(*timeout)
	writer := &scraper.Writer{ArticlesDir: *articlesDir, ImagesDir: *imagesDir, Fetcher: fetcher}

	var g errgroup.Group
	g.SetLimit(max(*concurrency, 1))
	for _, u := range urls {
		u := u
		g.Go(func() error {
			page, err := fetcher.Fetch(ctx, u)
			if err != nil {
				log.Printf("Error scraping %s: %v", u, err)
				return nil
			}
			path, err := writer.Save(ctx, page)
			if err != nil {
				log.Printf("Error saving %s: %v", u, err)
				return nil
			}
			log.Printf("Saved: %s", path)
			return nil
		})
	}
	g.Wait()

	log.Println("All articles have been processed.")
}

package services

import (
	"article-server/pkg/config"
	"article-server/pkg/models"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/sync/errgroup"
)

// ErrDirectoryUnreadable means the articles directory itself could not be listed.
var ErrDirectoryUnreadable = errors.New("articles directory unreadable")

// EntryError is a failure confined to one article file.
type EntryError struct {
	Filename string
	Err      error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("article %s: %v", e.Filename, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Captures stop at the first closing tag and never cross a line terminator.
var (
	titlePattern = regexp.MustCompile(`<h1>([^\n\r\x{2028}\x{2029}]*?)</h1>`)
	briefPattern = regexp.MustCompile(`<p>([^\n\r\x{2028}\x{2029}]*?)</p>`)
)

func ExtractTitle(content string) string {
	return firstMatch(titlePattern, content, models.NoTitle)
}

func ExtractBrief(content string) string {
	return firstMatch(briefPattern, content, models.NoBrief)
}

func firstMatch(re *regexp.Regexp, content, fallback string) string {
	if m := re.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return fallback
}

// Scanner builds the article catalog from disk. It holds no state between
// scans; every call re-reads the directories.
type Scanner struct {
	ArticlesDir string
	ImagesDir   string
	Concurrency int

	// IsolateFailures drops unreadable entries (logging them) instead of
	// failing the whole scan.
	IsolateFailures bool
}

func NewScanner() *Scanner {
	return &Scanner{
		ArticlesDir:     config.ArticlesPath,
		ImagesDir:       config.ImagesPath,
		Concurrency:     config.ScanConcurrency,
		IsolateFailures: config.IsolateEntryFailures,
	}
}

// BuildCatalog scans articlesDir with default settings.
func BuildCatalog(articlesDir, imagesDir string) ([]models.Article, error) {
	s := &Scanner{ArticlesDir: articlesDir, ImagesDir: imagesDir, Concurrency: 1}
	return s.Scan()
}

type entryResult struct {
	article models.Article
	err     error
}

// Scan returns one Article per directory entry, in listing order.
func (s *Scanner) Scan() ([]models.Article, error) {
	entries, err := os.ReadDir(s.ArticlesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirectoryUnreadable, err)
	}

	results := make([]entryResult, len(entries))
	var g errgroup.Group
	g.SetLimit(max(s.Concurrency, 1))

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			article, err := s.extract(entry.Name())
			if err != nil {
				err = &EntryError{Filename: entry.Name(), Err: err}
				if !s.IsolateFailures {
					return err
				}
			}
			results[i] = entryResult{article: article, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	articles := make([]models.Article, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			log.Printf("Skipping unreadable article: %v", r.err)
			continue
		}
		articles = append(articles, r.article)
	}
	return articles, nil
}

func (s *Scanner) extract(filename string) (models.Article, error) {
	content, err := os.ReadFile(filepath.Join(s.ArticlesDir, filename))
	if err != nil {
		return models.Article{}, err
	}
	text := string(content)

	image, err := ImageFor(s.ImagesDir, filename)
	if err != nil {
		return models.Article{}, err
	}

	return models.Article{
		Title:    ExtractTitle(text),
		Brief:    ExtractBrief(text),
		Image:    image,
		Filename: filename,
	}, nil
}

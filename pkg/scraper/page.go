package scraper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

type BlockKind int

const (
	Paragraph BlockKind = iota
	Image
)

// Block is one paragraph or image of an article, in document order.
type Block struct {
	Kind BlockKind
	Text string // Paragraph
	Src  string // Image, absolute URL
}

type Page struct {
	URL    *url.URL
	Title  string
	Blocks []Block
}

// ReadURLs reads one URL per line, skipping blank lines.
func ReadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	return urls, scanner.Err()
}

type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: "article-server-fetcher/1.0",
	}
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)
	}
	return resp, nil
}

// Fetch downloads rawURL and extracts its article content.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return Parse(body, base)
}

// Parse extracts the title and the <p>/<img> sequence of an HTML document.
// Content is taken from the first <article>, or from <body> when the page
// has none.
func Parse(r io.Reader, base *url.URL) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	page := &Page{URL: base}
	if n := findFirst(doc, atom.Title); n != nil {
		page.Title = collapse(textOf(n))
	}
	if page.Title == "" {
		if n := findFirst(doc, atom.H1); n != nil {
			page.Title = collapse(textOf(n))
		}
	}

	root := findFirst(doc, atom.Article)
	if root == nil {
		root = findFirst(doc, atom.Body)
	}
	if root == nil {
		root = doc
	}
	page.Blocks = collectBlocks(root, base)
	return page, nil
}

func collectBlocks(root *html.Node, base *url.URL) []Block {
	var blocks []Block
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			case atom.P:
				if text := collapse(textOf(n)); text != "" {
					blocks = append(blocks, Block{Kind: Paragraph, Text: text})
				}
			case atom.Img:
				if src := attr(n, "src"); src != "" {
					if u, err := base.Parse(src); err == nil {
						blocks = append(blocks, Block{Kind: Image, Src: u.String()})
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return blocks
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// collapse folds all whitespace runs, newlines included, to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

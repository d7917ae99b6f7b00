package scraper

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"
)

var articleTemplate = template.Must(template.New("article").Parse(`<html>
<head>
    <title>{{.Title}}</title>
    <style>
    body {
        background-color: lightblue;
    }
    h1 {
        color: green;
        font-size: 45px;
    }
    p {
        font-size: 20px;
    }
    </style>
</head>
<body>
    <h1>{{.Heading}}</h1>
{{range .Blocks}}{{if .Src}}<img src="{{.Src}}" alt="Image {{.Index}}">
{{else}}<p>{{.Text}}</p>{{end}}{{end}}
</body>
</html>
`))

// Text is written verbatim so the catalog reads back the same string the
// page contained. The heading gets the same treatment in Save.
type renderBlock struct {
	Text  template.HTML
	Src   string
	Index int
}

// Writer stores fetched pages in the layout the catalog reads:
// <ArticlesDir>/<keyword>.html and <ImagesDir>/<keyword>/image<N><ext>.
type Writer struct {
	ArticlesDir string
	ImagesDir   string
	Fetcher     *Fetcher

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock serializes saves that share a keyword, since they write the same
// article file and image directory.
func (w *Writer) lock(keyword string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.locks == nil {
		w.locks = make(map[string]*sync.Mutex)
	}
	l, ok := w.locks[keyword]
	if !ok {
		l = &sync.Mutex{}
		w.locks[keyword] = l
	}
	return l
}

// Save writes page and downloads its images. Image failures are logged and
// skipped. It returns the path of the written article.
func (w *Writer) Save(ctx context.Context, page *Page) (string, error) {
	keyword := Keyword(page.Title)
	l := w.lock(keyword)
	l.Lock()
	defer l.Unlock()

	imgDir := filepath.Join(w.ImagesDir, keyword)
	for _, dir := range []string{w.ArticlesDir, imgDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	var blocks []renderBlock
	count := 1
	for _, b := range page.Blocks {
		switch b.Kind {
		case Paragraph:
			blocks = append(blocks, renderBlock{Text: template.HTML(b.Text)})
		case Image:
			name, err := w.download(ctx, b.Src, imgDir, count)
			if err != nil {
				log.Printf("Failed to download image %s: %v", b.Src, err)
				continue
			}
			src := path.Join("..", filepath.Base(w.ImagesDir), keyword, name)
			blocks = append(blocks, renderBlock{Src: src, Index: count})
			count++
		}
	}

	var buf bytes.Buffer
	err := articleTemplate.Execute(&buf, struct {
		Title   string
		Heading template.HTML
		Blocks  []renderBlock
	}{page.Title, template.HTML(page.Title), blocks})
	if err != nil {
		return "", err
	}

	articlePath := filepath.Join(w.ArticlesDir, keyword+".html")
	if err := os.WriteFile(articlePath, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	return articlePath, nil
}

func (w *Writer) download(ctx context.Context, src, dir string, n int) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", err
	}

	resp, err := w.Fetcher.get(ctx, src)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	name := fmt.Sprintf("image%d%s", n, path.Ext(u.Path))
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return "", err
	}
	return name, f.Close()
}

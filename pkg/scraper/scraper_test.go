package scraper

import (
	"article-server/pkg/services"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>
  Big Red Bus
</title></head>
<body>
  <nav><p>Menu</p></nav>
  <article>
    <p>First
       paragraph.</p>
    <script>var x = "<p>no</p>";</script>
    <img src="/img/photo.jpg?w=300">
    <p>Second <b>bold</b> one.</p>
    <img alt="no source">
  </article>
</body>
</html>`

func TestParse(t *testing.T) {
	base, _ := url.Parse("http://news.example/story/1")
	page, err := Parse(strings.NewReader(samplePage), base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if page.Title != "Big Red Bus" {
		t.Errorf("Title = %q", page.Title)
	}
	want := []Block{
		{Kind: Paragraph, Text: "First paragraph."},
		{Kind: Image, Src: "http://news.example/img/photo.jpg?w=300"},
		{Kind: Paragraph, Text: "Second bold one."},
	}
	if !reflect.DeepEqual(page.Blocks, want) {
		t.Errorf("Blocks = %+v, want %+v", page.Blocks, want)
	}
}

func TestParseFallsBackToBodyAndHeading(t *testing.T) {
	base, _ := url.Parse("http://news.example/")
	page, err := Parse(strings.NewReader(`<body><h1>Only Heading</h1><p>Body text</p></body>`), base)
	if err != nil {
		t.Fatal(err)
	}
	if page.Title != "Only Heading" {
		t.Errorf("Title = %q", page.Title)
	}
	if len(page.Blocks) != 1 || page.Blocks[0].Text != "Body text" {
		t.Errorf("Blocks = %+v", page.Blocks)
	}
}

func TestReadURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte("http://a.example\n\n  http://b.example  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	urls, err := ReadURLs(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"http://a.example", "http://b.example"}; !reflect.DeepEqual(urls, want) {
		t.Errorf("urls = %v, want %v", urls, want)
	}
}

func TestFetchAndSaveFeedsCatalog(t *testing.T) {
	photo := []byte("\x89PNG fake image bytes")
	mux := http.NewServeMux()
	mux.HandleFunc("/story", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Big Red Bus</title></head><body><article>
			<p>Lead paragraph.</p><img src="/photo.png?size=l"><img src="/missing.gif"><p>More.</p>
			</article></body></html>`))
	})
	mux.HandleFunc("/photo.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(photo)
	})
	mux.HandleFunc("/escaped", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Tom &amp; Jerry&#39;s &lt;Day&gt;</title></head><body><article>
			<p>Q&amp;A</p></article></body></html>`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	root := t.TempDir()
	fetcher := NewFetcher(5 * time.Second)
	writer := &Writer{
		ArticlesDir: filepath.Join(root, "articles"),
		ImagesDir:   filepath.Join(root, "images"),
		Fetcher:     fetcher,
	}

	ctx := context.Background()
	page, err := fetcher.Fetch(ctx, ts.URL+"/story")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	articlePath, err := writer.Save(ctx, page)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(articlePath) != "bigredbus.html" {
		t.Errorf("article path = %s", articlePath)
	}

	saved, err := os.ReadFile(articlePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(saved), `<img src="../images/bigredbus/image1.png" alt="Image 1">`) {
		t.Errorf("article missing image tag:\n%s", saved)
	}

	articles, err := services.BuildCatalog(writer.ArticlesDir, writer.ImagesDir)
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles", len(articles))
	}
	got := articles[0]
	if got.Title != "Big Red Bus" || got.Brief != "Lead paragraph." {
		t.Errorf("catalog entry = %+v", got)
	}
	if want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(photo); got.Image != want {
		t.Errorf("Image = %q, want %q", got.Image, want)
	}

	// Markup characters in the text come back unescaped.
	page, err = fetcher.Fetch(ctx, ts.URL+"/escaped")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := writer.Save(ctx, page); err != nil {
		t.Fatalf("Save: %v", err)
	}
	articles, err = services.BuildCatalog(writer.ArticlesDir, writer.ImagesDir)
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	if len(articles) != 2 || articles[1].Filename != "tom.html" {
		t.Fatalf("articles = %+v", articles)
	}
	if got := articles[1]; got.Title != "Tom & Jerry's <Day>" || got.Brief != "Q&A" {
		t.Errorf("title = %q, brief = %q", got.Title, got.Brief)
	}
}

func TestSaveSerializesSameKeyword(t *testing.T) {
	imageA1, imageA2, imageB1 := []byte("A1"), []byte("A2"), []byte("B1")
	firstServed := make(chan struct{})
	var once sync.Once
	mux := http.NewServeMux()
	mux.HandleFunc("/a1.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(imageA1)
		once.Do(func() { close(firstServed) })
	})
	mux.HandleFunc("/a2.png", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write(imageA2)
	})
	mux.HandleFunc("/b1.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(imageB1)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	root := t.TempDir()
	writer := &Writer{
		ArticlesDir: filepath.Join(root, "articles"),
		ImagesDir:   filepath.Join(root, "images"),
		Fetcher:     NewFetcher(5 * time.Second),
	}
	pageA := &Page{Title: "Same Title", Blocks: []Block{
		{Kind: Paragraph, Text: "from A"},
		{Kind: Image, Src: ts.URL + "/a1.png"},
		{Kind: Image, Src: ts.URL + "/a2.png"},
	}}
	pageB := &Page{Title: "Same Title", Blocks: []Block{
		{Kind: Paragraph, Text: "from B"},
		{Kind: Image, Src: ts.URL + "/b1.png"},
	}}

	ctx := context.Background()
	errA := make(chan error, 1)
	go func() {
		_, err := writer.Save(ctx, pageA)
		errA <- err
	}()

	// A is mid-save once its first image is served; B must wait for it.
	<-firstServed
	if _, err := writer.Save(ctx, pageB); err != nil {
		t.Fatalf("Save B: %v", err)
	}
	if err := <-errA; err != nil {
		t.Fatalf("Save A: %v", err)
	}

	articles, err := services.BuildCatalog(writer.ArticlesDir, writer.ImagesDir)
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles", len(articles))
	}
	got := articles[0]
	if got.Brief != "from B" {
		t.Errorf("brief = %q, want the later save", got.Brief)
	}
	if want := services.DataURI(".png", imageB1); got.Image != want {
		t.Errorf("image = %q, want B's image %q", got.Image, want)
	}
}

func TestFetchRejectsNonOK(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	if _, err := NewFetcher(time.Second).Fetch(context.Background(), ts.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}

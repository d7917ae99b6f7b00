package services

import (
	"article-server/pkg/models"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// IsImageExt reports whether ext (lower case, with dot) is a servable image.
func IsImageExt(ext string) bool {
	return imageExts[ext]
}

// DataURI encodes raw as an inline image. The subtype is the extension text
// as-is, so ".jpg" yields "image/jpg".
func DataURI(ext string, raw []byte) string {
	return "data:image/" + strings.TrimPrefix(ext, ".") + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// ImageFor returns the inline image for an article file, looked up in
// imagesDir/<basename>. A missing directory is not an error.
func ImageFor(imagesDir, filename string) (string, error) {
	dir := filepath.Join(imagesDir, Basename(filename))
	if _, err := os.Stat(dir); err != nil {
		return models.NoImage, nil
	}
	return FirstImage(dir)
}

// FirstImage encodes the first image file in dir, in listing order.
func FirstImage(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		ext := strings.ToLower(Ext(entry.Name()))
		if !IsImageExt(ext) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return "", err
		}
		return DataURI(ext, raw), nil
	}
	return models.NoImage, nil
}

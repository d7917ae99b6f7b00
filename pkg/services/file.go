package services

import (
	"path/filepath"
	"strings"
)

// SafeJoin resolves a request path beneath root. The target is cleaned as an
// absolute path first, so ".." segments cannot climb above root.
func SafeJoin(root, target string) string {
	cleanTarget := filepath.Clean("/" + filepath.FromSlash(target))
	return filepath.Join(root, cleanTarget)
}

// Ext returns the extension of name including the dot. A name whose only dot
// is the leading one (".hidden") has no extension.
func Ext(name string) string {
	base := filepath.Base(name)
	if strings.Trim(base, ".") == "" {
		return ""
	}
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i:]
}

// Basename strips the directory and extension from name.
func Basename(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, Ext(base))
}

package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

const cacheRoot = "cache/pages"

// PagePath returns the cache file for a public URL path. The sanitized path
// keeps the directory readable; the hash keeps it collision free.
func PagePath(urlPath string) string {
	hash := fmt.Sprintf("%016x", xxhash.Sum64String(urlPath))
	name := strings.Trim(strings.ReplaceAll(urlPath, "/", "_"), "_")
	if name == "" {
		name = "index"
	}
	return filepath.Join(cacheRoot, fmt.Sprintf("%s_%s.html", name, hash[:16]))
}

func ensureCacheDir() error {
	return os.MkdirAll(cacheRoot, 0755)
}

// WritePage stores rendered HTML for a URL path.
func WritePage(urlPath, html string) error {
	if err := ensureCacheDir(); err != nil {
		return err
	}
	return os.WriteFile(PagePath(urlPath), []byte(html), 0644)
}

// ReadPage returns cached HTML if present and younger than maxAge.
func ReadPage(urlPath string, maxAge time.Duration) (string, bool) {
	file := PagePath(urlPath)

	info, err := os.Stat(file)
	if err != nil {
		return "", false
	}
	if time.Since(info.ModTime()) > maxAge {
		return "", false
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return "", false
	}
	return string(content), true
}

// ClearPage removes the cache entry for one URL path.
func ClearPage(urlPath string) error {
	err := os.Remove(PagePath(urlPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ClearAll drops every cached page. Used after admin content mutations.
func ClearAll() error {
	return os.RemoveAll(cacheRoot)
}

// ClearOld removes cache files older than maxAge.
func ClearOld(maxAge time.Duration) error {
	return filepath.Walk(cacheRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			os.Remove(path)
		}
		return nil
	})
}

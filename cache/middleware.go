package cache

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware caches rendered public pages on disk. Admin and API paths, the
// sitemap and anything that is not a plain GET are passed through.
func Middleware(maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if !isCacheablePath(path) {
			c.Next()
			return
		}

		if cached, found := ReadPage(path, maxAge); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		// only successful HTML responses are worth keeping
		if c.Writer.Status() == http.StatusOK &&
			c.Writer.Header().Get("Content-Type") == "text/html; charset=utf-8" {
			WritePage(path, writer.body.String())
		}
	}
}

// isCacheablePath filters to the public marketing pages.
func isCacheablePath(path string) bool {
	if strings.HasPrefix(path, "/admin") ||
		strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/public/") {
		return false
	}
	if path == "/sitemap.xml" {
		return false
	}
	return true
}

package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"juniorcars/cache"
	"juniorcars/schema"
)

// APIModule serves the headless CMS JSON API under /api/cms.
type APIModule struct {
	db *gorm.DB
}

func NewAPIModule(db *gorm.DB) *APIModule {
	return &APIModule{db: db}
}

func (a *APIModule) RegisterRoutes(router *gin.Engine) {
	router.Use(CORSMiddleware())

	group := router.Group("/api/cms")
	{
		group.GET("/pages", a.listPages)
		group.GET("/pages/:id", a.getPage)
		group.POST("/pages", a.createPage)
		group.PUT("/pages/:id", a.updatePage)
		group.DELETE("/pages/:id", a.deletePage)

		group.GET("/car-series", a.listCarSeries)
		group.GET("/car-series/:id", a.getCarSeries)
		group.POST("/car-series", a.createCarSeries)
		group.PUT("/car-series/:id", a.updateCarSeries)
		group.DELETE("/car-series/:id", a.deleteCarSeries)

		group.GET("/navigation", a.listNavigation)
		group.GET("/navigation/:id", a.getNavigation)
		group.POST("/navigation", a.createNavigation)
		group.PUT("/navigation/:id", a.updateNavigation)
		group.DELETE("/navigation/:id", a.deleteNavigation)

		group.GET("/media", a.listMedia)
		group.GET("/media/:id", a.getMedia)
		group.GET("/media/:id/file", a.serveMediaFile)
		group.POST("/media", a.createMedia)
		group.PUT("/media/:id", a.updateMedia)
		group.DELETE("/media/:id", a.deleteMedia)

		group.POST("/auth/login", a.login)
	}
}

// CORSMiddleware answers API requests permissively (wildcard origin) and
// short-circuits OPTIONS preflights. Non-API paths pass through untouched.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Pagination mirrors the list envelope addition {page,limit,total,totalPages}.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data interface{}, q schema.ListQuery, total int64) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"pagination": Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: q.TotalPages(total),
		},
	})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, errMsg string) {
	c.JSON(status, gin.H{"success": false, "error": errMsg})
}

// respondValidation maps schema errors to 400 with the field list in the
// message; anything else is treated as unexpected.
func respondValidation(c *gin.Context, err error) {
	if ve, ok := err.(*schema.ValidationError); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"message": ve.Error(),
			"data":    gin.H{"fields": ve.Fields},
		})
		return
	}
	respondError(c, http.StatusInternalServerError, "Internal server error")
}

// invalidatePages drops the rendered-page cache after a content mutation so
// the public site picks the change up before the TTL runs out.
func invalidatePages() {
	if err := cache.ClearAll(); err != nil {
		log.Printf("page cache clear: %v", err)
	}
}

// uniqueSlug resolves create-time slug collisions by suffixing the current
// unix timestamp, per the CMS convention. The read-then-write check is racy
// under concurrent creates; the unique index is the backstop.
func (a *APIModule) uniqueSlug(model interface{}, base string) string {
	var count int64
	a.db.Model(model).Where("slug = ?", base).Count(&count)
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, time.Now().Unix())
}

// slugTaken reports whether another record of the same type already owns slug.
func (a *APIModule) slugTaken(model interface{}, slug string, excludeID uint) bool {
	var count int64
	a.db.Model(model).Where("slug = ? AND id <> ?", slug, excludeID).Count(&count)
	return count > 0
}

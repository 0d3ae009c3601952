package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"juniorcars/models"
)

// AdminModule renders the content-management UI. The pages are shells: list
// views are rendered server side, the edit forms talk to /api/cms from the
// browser. Access is gated by a server session.
type AdminModule struct {
	db *gorm.DB
}

func NewAdminModule(db *gorm.DB) *AdminModule {
	return &AdminModule{db: db}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/admin/login", a.loginPage)
	router.POST("/admin/login", a.loginPost)
	router.GET("/admin/logout", a.logout)

	adminGroup := router.Group("/admin")
	adminGroup.Use(a.requireAuth)
	{
		adminGroup.GET("/", a.dashboard)
		adminGroup.GET("/pages", a.listPages)
		adminGroup.GET("/pages/new", a.newPage)
		adminGroup.GET("/pages/:id", a.editPage)
		adminGroup.GET("/series", a.listSeries)
		adminGroup.GET("/series/new", a.newSeries)
		adminGroup.GET("/series/:id", a.editSeries)
		adminGroup.GET("/navigation", a.navigation)
		adminGroup.GET("/media", a.media)
	}
}

func (a *AdminModule) requireAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")

	if userID == nil {
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Next()
}

func (a *AdminModule) loginPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("user_id") != nil {
		c.Redirect(http.StatusFound, "/admin/")
		return
	}

	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

func (a *AdminModule) loginPost(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")

	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"error": "Invalid email or password",
			"email": email,
		})
		return
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"error": "Invalid email or password",
			"email": email,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/admin/")
}

func (a *AdminModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/admin/login")
}

func (a *AdminModule) dashboard(c *gin.Context) {
	var pageCount, seriesCount, navCount, mediaCount int64
	a.db.Model(&models.Page{}).Count(&pageCount)
	a.db.Model(&models.CarSeries{}).Count(&seriesCount)
	a.db.Model(&models.NavigationItem{}).Count(&navCount)
	a.db.Model(&models.Media{}).Count(&mediaCount)

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"pageCount":   pageCount,
		"seriesCount": seriesCount,
		"navCount":    navCount,
		"mediaCount":  mediaCount,
	})
}

func (a *AdminModule) listPages(c *gin.Context) {
	var pages []models.Page
	if err := a.db.Order("created_at DESC").Find(&pages).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Failed to load pages",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_pages.html", gin.H{"pages": pages})
}

func (a *AdminModule) newPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_page_edit.html", gin.H{})
}

func (a *AdminModule) editPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_error.html", gin.H{"error": "Invalid id"})
		return
	}

	var page models.Page
	if err := a.db.First(&page, id).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{"error": "Page not found"})
		return
	}

	c.HTML(http.StatusOK, "admin_page_edit.html", gin.H{"page": page})
}

func (a *AdminModule) listSeries(c *gin.Context) {
	var series []models.CarSeries
	if err := a.db.Order("created_at DESC").Find(&series).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Failed to load car series",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_series.html", gin.H{"series": series})
}

func (a *AdminModule) newSeries(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_series_edit.html", gin.H{})
}

func (a *AdminModule) editSeries(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "admin_error.html", gin.H{"error": "Invalid id"})
		return
	}

	var series models.CarSeries
	if err := a.db.First(&series, id).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{"error": "Car series not found"})
		return
	}

	c.HTML(http.StatusOK, "admin_series_edit.html", gin.H{"series": series})
}

func (a *AdminModule) navigation(c *gin.Context) {
	var items []models.NavigationItem
	if err := a.db.Order("order_index ASC, id ASC").Find(&items).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Failed to load navigation",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_navigation.html", gin.H{"items": items})
}

func (a *AdminModule) media(c *gin.Context) {
	var media []models.Media
	if err := a.db.Order("created_at DESC").Find(&media).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Failed to load media",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_media.html", gin.H{"media": media})
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

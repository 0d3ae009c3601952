package cmd

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"juniorcars/admin"
	"juniorcars/api"
	"juniorcars/cache"
	"juniorcars/cms"
	"juniorcars/common"
	"juniorcars/database"
	"juniorcars/email"
	"juniorcars/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the website and CMS API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	godotenv.Load()

	db := common.ConnectDb()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	router := gin.Default()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable not set")
	}

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	})
	router.Use(sessions.Sessions("juniorcars-session", store))

	// unsupported verbs on known routes answer 405 in the API envelope
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "error": "Method not allowed"})
			return
		}
		c.String(http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.SetFuncMap(map[string]interface{}{
		"now": func() time.Time {
			return time.Now()
		},
		"domain": common.BaseURL,
	})

	router.LoadHTMLGlob("*/views/*.html")
	router.Static("/public", "./public")

	router.Use(cache.Middleware(10 * time.Minute))

	apiModule := api.NewAPIModule(db)
	apiModule.RegisterRoutes(router)

	adminModule := admin.NewAdminModule(db)
	adminModule.RegisterRoutes(router)

	siteModule := site.NewSiteModule(cms.NewClient(), email.NewService())
	siteModule.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s...", port)
	return router.Run(":" + port)
}

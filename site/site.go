package site

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"juniorcars/cms"
	"juniorcars/common"
	"juniorcars/email"
	"juniorcars/models"
)

// markdown renderer for page content, GFM flavored
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
)

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return buf.String()
}

type SiteModule struct {
	cms    *cms.Client
	mailer *email.Service
}

func NewSiteModule(client *cms.Client, mailer *email.Service) *SiteModule {
	return &SiteModule{cms: client, mailer: mailer}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.home)
	router.GET("/series", s.seriesList)
	router.GET("/series/:slug", s.seriesDetail)
	router.GET("/about", s.page("about", "site_page.html"))
	router.GET("/wall-art", s.page("wall-art", "site_page.html"))
	router.GET("/legal/:slug", s.legalPage)
	router.GET("/contact", s.contactPage)
	router.POST("/contact", s.contactPost)
	router.GET("/sitemap.xml", s.sitemap)
}

// nav fetches the navigation tree, falling back to the static default.
func (s *SiteModule) nav() []models.NavigationItem {
	items, err := s.cms.NavigationTree()
	if err != nil || len(items) == 0 {
		return fallbackNav()
	}
	return items
}

func (s *SiteModule) home(c *gin.Context) {
	props := fallbackHome()
	if page, err := s.cms.PageBySlug("home"); err == nil {
		props = cms.PageToProps(page)
	} else {
		log.Printf("home page fetch failed, serving fallback: %v", err)
	}

	var series []cms.CarSeriesProps
	if list, err := s.cms.PublishedCarSeries(); err == nil && len(list) > 0 {
		for i := range list {
			series = append(series, cms.CarSeriesToProps(&list[i]))
		}
	} else {
		series = fallbackSeries()
	}

	c.HTML(http.StatusOK, "site_home.html", gin.H{
		"props":       props,
		"series":      series,
		"nav":         s.nav(),
		"contentHTML": template.HTML(renderMarkdown(props.Content)),
		"domain":      common.BaseURL(),
	})
}

func (s *SiteModule) seriesList(c *gin.Context) {
	var series []cms.CarSeriesProps
	if list, err := s.cms.PublishedCarSeries(); err == nil && len(list) > 0 {
		for i := range list {
			series = append(series, cms.CarSeriesToProps(&list[i]))
		}
	} else {
		if err != nil {
			log.Printf("series list fetch failed, serving fallback: %v", err)
		}
		series = fallbackSeries()
	}

	c.HTML(http.StatusOK, "site_series.html", gin.H{
		"series": series,
		"nav":    s.nav(),
		"domain": common.BaseURL(),
	})
}

func (s *SiteModule) seriesDetail(c *gin.Context) {
	slug := c.Param("slug")

	record, err := s.cms.CarSeriesBySlug(slug)
	if err != nil {
		log.Printf("series %q fetch failed, serving fallback: %v", slug, err)
		c.HTML(http.StatusOK, "site_series_detail.html", gin.H{
			"props":  fallbackSeries()[0],
			"nav":    s.nav(),
			"domain": common.BaseURL(),
		})
		return
	}

	props := cms.CarSeriesToProps(record)
	c.HTML(http.StatusOK, "site_series_detail.html", gin.H{
		"props":           props,
		"nav":             s.nav(),
		"descriptionHTML": template.HTML(renderMarkdown(props.Description)),
		"domain":          common.BaseURL(),
	})
}

// page returns a handler rendering a CMS page by fixed slug with fallback.
func (s *SiteModule) page(slug, tmpl string) gin.HandlerFunc {
	return func(c *gin.Context) {
		props := fallbackPage(slug)
		if page, err := s.cms.PageBySlug(slug); err == nil {
			props = cms.PageToProps(page)
		} else {
			log.Printf("page %q fetch failed, serving fallback: %v", slug, err)
		}

		c.HTML(http.StatusOK, tmpl, gin.H{
			"props":       props,
			"nav":         s.nav(),
			"contentHTML": template.HTML(renderMarkdown(props.Content)),
			"domain":      common.BaseURL(),
		})
	}
}

func (s *SiteModule) legalPage(c *gin.Context) {
	slug := c.Param("slug")
	if slug != "privacy" && slug != "imprint" {
		c.HTML(http.StatusNotFound, "site_error.html", gin.H{
			"error": "Page not found",
			"nav":   s.nav(),
		})
		return
	}
	s.page(slug, "site_page.html")(c)
}

func (s *SiteModule) contactPage(c *gin.Context) {
	s.page("contact", "site_contact.html")(c)
}

func (s *SiteModule) contactPost(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	from := strings.TrimSpace(c.PostForm("email"))
	message := strings.TrimSpace(c.PostForm("message"))

	props := fallbackPage("contact")
	if page, err := s.cms.PageBySlug("contact"); err == nil {
		props = cms.PageToProps(page)
	}

	if name == "" || from == "" || message == "" {
		c.HTML(http.StatusBadRequest, "site_contact.html", gin.H{
			"props":   props,
			"nav":     s.nav(),
			"error":   "Please fill in all fields",
			"name":    name,
			"email":   from,
			"message": message,
			"domain":  common.BaseURL(),
		})
		return
	}

	if err := s.mailer.SendContactMessage(name, from, message); err != nil {
		// the page still renders; delivery failures are an ops concern
		log.Printf("contact mail from %s failed: %v", from, err)
	}

	c.HTML(http.StatusOK, "site_contact.html", gin.H{
		"props":     props,
		"nav":       s.nav(),
		"confirmed": true,
		"domain":    common.BaseURL(),
	})
}

func (s *SiteModule) sitemap(c *gin.Context) {
	domain := strings.TrimSuffix(common.BaseURL(), "/")

	var sitemap strings.Builder
	sitemap.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sitemap.WriteString("\n")
	sitemap.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	sitemap.WriteString("\n")

	writeURL := func(loc, changefreq, priority, lastmod string) {
		sitemap.WriteString("  <url>\n")
		sitemap.WriteString("    <loc>" + loc + "</loc>\n")
		if lastmod != "" {
			sitemap.WriteString("    <lastmod>" + lastmod + "</lastmod>\n")
		}
		sitemap.WriteString("    <changefreq>" + changefreq + "</changefreq>\n")
		sitemap.WriteString("    <priority>" + priority + "</priority>\n")
		sitemap.WriteString("  </url>\n")
	}

	writeURL(domain+"/", "weekly", "1.0", "")
	writeURL(domain+"/series", "weekly", "0.8", "")
	writeURL(domain+"/about", "monthly", "0.5", "")
	writeURL(domain+"/contact", "monthly", "0.5", "")
	writeURL(domain+"/wall-art", "monthly", "0.5", "")
	writeURL(domain+"/legal/privacy", "yearly", "0.2", "")
	writeURL(domain+"/legal/imprint", "yearly", "0.2", "")

	if series, err := s.cms.PublishedCarSeries(); err == nil {
		for _, item := range series {
			writeURL(domain+"/series/"+item.Slug, "monthly", "0.7",
				item.UpdatedAt.Format(time.RFC3339))
		}
	}

	sitemap.WriteString("</urlset>\n")

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, sitemap.String())
}

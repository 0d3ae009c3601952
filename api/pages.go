package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"juniorcars/common"
	"juniorcars/models"
	"juniorcars/schema"
)

var pageSortable = []string{"created_at", "updated_at", "title", "slug"}

func (a *APIModule) listPages(c *gin.Context) {
	q, err := schema.ParseListQuery(c.Request.URL.Query(), pageSortable, "published", "slug")
	if err != nil {
		respondValidation(c, err)
		return
	}

	query := a.db.Model(&models.Page{})
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if slug := c.Query("slug"); slug != "" {
		query = query.Where("slug = ?", slug)
	}
	if published := c.Query("published"); published != "" {
		query = query.Where("published = ?", published == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("listPages count: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var pages []models.Page
	if err := query.Order(q.SortBy + " " + q.SortOrder).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&pages).Error; err != nil {
		log.Printf("listPages find: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondList(c, pages, q, total)
}

func (a *APIModule) getPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var page models.Page
	err = a.db.Preload("ContentBlocks", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&page, id).Error
	if err == gorm.ErrRecordNotFound {
		respondError(c, http.StatusNotFound, "Page not found")
		return
	}
	if err != nil {
		log.Printf("getPage: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusOK, page)
}

func (a *APIModule) createPage(c *gin.Context) {
	var input schema.CreatePageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := schema.Check(input); err != nil {
		respondValidation(c, err)
		return
	}

	slug := input.Slug
	if slug == "" {
		slug = common.Slugify(input.Title)
	}
	slug = a.uniqueSlug(&models.Page{}, slug)

	page := models.Page{
		Title:        input.Title,
		Slug:         slug,
		Content:      input.Content,
		HeroData:     datatypes.JSON(input.HeroData),
		CarouselData: datatypes.JSON(input.CarouselData),
		SEOData:      datatypes.JSON(input.SEOData),
		Published:    input.Published != nil && *input.Published,
	}
	for _, b := range input.ContentBlocks {
		page.ContentBlocks = append(page.ContentBlocks, models.ContentBlock{
			Type:       b.Type,
			Data:       datatypes.JSON(b.Data),
			OrderIndex: b.OrderIndex,
		})
	}

	if err := a.db.Create(&page).Error; err != nil {
		log.Printf("createPage: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create page")
		return
	}

	invalidatePages()
	respondData(c, http.StatusCreated, page)
}

func (a *APIModule) updatePage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var page models.Page
	if err := a.db.First(&page, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Page not found")
		return
	}

	var input schema.UpdatePageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := schema.Check(input); err != nil {
		respondValidation(c, err)
		return
	}

	if input.Slug != nil && *input.Slug != page.Slug {
		if a.slugTaken(&models.Page{}, *input.Slug, page.ID) {
			respondError(c, http.StatusConflict, "Slug is already in use by another page")
			return
		}
		page.Slug = *input.Slug
	}
	if input.Title != nil {
		page.Title = *input.Title
	}
	if input.Content != nil {
		page.Content = *input.Content
	}
	if input.HeroData != nil {
		page.HeroData = datatypes.JSON(input.HeroData)
	}
	if input.CarouselData != nil {
		page.CarouselData = datatypes.JSON(input.CarouselData)
	}
	if input.SEOData != nil {
		page.SEOData = datatypes.JSON(input.SEOData)
	}
	if input.Published != nil {
		page.Published = *input.Published
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&page).Error; err != nil {
			return err
		}
		if input.ContentBlocks == nil {
			return nil
		}
		// providing contentBlocks replaces the full owned set
		if err := tx.Where("page_id = ?", page.ID).Delete(&models.ContentBlock{}).Error; err != nil {
			return err
		}
		for _, b := range *input.ContentBlocks {
			block := models.ContentBlock{
				PageID:     page.ID,
				Type:       b.Type,
				Data:       datatypes.JSON(b.Data),
				OrderIndex: b.OrderIndex,
			}
			if err := tx.Create(&block).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("updatePage: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update page")
		return
	}

	a.db.Preload("ContentBlocks", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&page, page.ID)

	invalidatePages()
	respondData(c, http.StatusOK, page)
}

func (a *APIModule) deletePage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var page models.Page
	if err := a.db.First(&page, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Page not found")
		return
	}

	// content blocks cascade with the owning page
	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", page.ID).Delete(&models.ContentBlock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})
	if err != nil {
		log.Printf("deletePage: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to delete page")
		return
	}

	invalidatePages()
	respondMessage(c, http.StatusOK, "Page deleted successfully")
}

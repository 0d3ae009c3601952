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

var carSeriesSortable = []string{"created_at", "updated_at", "name", "slug", "price"}

func (a *APIModule) listCarSeries(c *gin.Context) {
	q, err := schema.ParseListQuery(c.Request.URL.Query(), carSeriesSortable, "published", "slug")
	if err != nil {
		respondValidation(c, err)
		return
	}

	query := a.db.Model(&models.CarSeries{})
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if slug := c.Query("slug"); slug != "" {
		query = query.Where("slug = ?", slug)
	}
	if published := c.Query("published"); published != "" {
		query = query.Where("published = ?", published == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("listCarSeries count: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var series []models.CarSeries
	if err := query.Order(q.SortBy + " " + q.SortOrder).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&series).Error; err != nil {
		log.Printf("listCarSeries find: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondList(c, series, q, total)
}

func (a *APIModule) getCarSeries(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var series models.CarSeries
	err = a.db.First(&series, id).Error
	if err == gorm.ErrRecordNotFound {
		respondError(c, http.StatusNotFound, "Car series not found")
		return
	}
	if err != nil {
		log.Printf("getCarSeries: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusOK, series)
}

func (a *APIModule) createCarSeries(c *gin.Context) {
	var input schema.CreateCarSeriesInput
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
		slug = common.Slugify(input.Name)
	}
	slug = a.uniqueSlug(&models.CarSeries{}, slug)

	series := models.CarSeries{
		Name:           input.Name,
		Slug:           slug,
		Description:    input.Description,
		Specifications: datatypes.JSON(input.Specifications),
		Price:          input.Price,
		HeroData:       datatypes.JSON(input.HeroData),
		CarouselData:   datatypes.JSON(input.CarouselData),
		Published:      input.Published != nil && *input.Published,
	}

	if err := a.db.Create(&series).Error; err != nil {
		log.Printf("createCarSeries: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create car series")
		return
	}

	invalidatePages()
	respondData(c, http.StatusCreated, series)
}

func (a *APIModule) updateCarSeries(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var series models.CarSeries
	if err := a.db.First(&series, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Car series not found")
		return
	}

	var input schema.UpdateCarSeriesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := schema.Check(input); err != nil {
		respondValidation(c, err)
		return
	}

	if input.Slug != nil && *input.Slug != series.Slug {
		if a.slugTaken(&models.CarSeries{}, *input.Slug, series.ID) {
			respondError(c, http.StatusConflict, "Slug is already in use by another car series")
			return
		}
		series.Slug = *input.Slug
	}
	if input.Name != nil {
		series.Name = *input.Name
	}
	if input.Description != nil {
		series.Description = *input.Description
	}
	if input.Specifications != nil {
		series.Specifications = datatypes.JSON(input.Specifications)
	}
	if input.Price != nil {
		series.Price = *input.Price
	}
	if input.HeroData != nil {
		series.HeroData = datatypes.JSON(input.HeroData)
	}
	if input.CarouselData != nil {
		series.CarouselData = datatypes.JSON(input.CarouselData)
	}
	if input.Published != nil {
		series.Published = *input.Published
	}

	if err := a.db.Save(&series).Error; err != nil {
		log.Printf("updateCarSeries: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update car series")
		return
	}

	invalidatePages()
	respondData(c, http.StatusOK, series)
}

func (a *APIModule) deleteCarSeries(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	result := a.db.Delete(&models.CarSeries{}, id)
	if result.Error != nil {
		log.Printf("deleteCarSeries: %v", result.Error)
		respondError(c, http.StatusInternalServerError, "Failed to delete car series")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Car series not found")
		return
	}

	invalidatePages()
	respondMessage(c, http.StatusOK, "Car series deleted successfully")
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"juniorcars/models"
)

func createTestSeries(db *gorm.DB, name, slug string, price float64, published bool) *models.CarSeries {
	series := &models.CarSeries{
		Name:      name,
		Slug:      slug,
		Price:     price,
		Published: published,
	}
	db.Create(series)
	return series
}

func TestCreateCarSeries_DerivesSlug(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodPost, "/api/cms/car-series", map[string]interface{}{
		"name":  "Silver Arrow Junior",
		"price": 14900,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var series models.CarSeries
	json.Unmarshal(decodeEnvelope(t, w).Data, &series)
	assert.Equal(t, "silver-arrow-junior", series.Slug)
	assert.Equal(t, float64(14900), series.Price)
}

func TestCreateCarSeries_ExplicitSlugCollisionGetsSuffix(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	first := performRequest(router, http.MethodPost, "/api/cms/car-series", map[string]interface{}{
		"name": "Test Series API", "slug": "test-series-api", "price": 35000,
	})
	assert.Equal(t, http.StatusCreated, first.Code)

	var created models.CarSeries
	json.Unmarshal(decodeEnvelope(t, first).Data, &created)
	assert.Equal(t, "test-series-api", created.Slug)

	second := performRequest(router, http.MethodPost, "/api/cms/car-series", map[string]interface{}{
		"name": "Test Series API", "slug": "test-series-api", "price": 35000,
	})
	assert.Equal(t, http.StatusCreated, second.Code)

	var duplicate models.CarSeries
	json.Unmarshal(decodeEnvelope(t, second).Data, &duplicate)
	assert.Regexp(t, `^test-series-api-\d+$`, duplicate.Slug)
}

func TestCreateCarSeries_RejectsNegativePrice(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodPost, "/api/cms/car-series", map[string]interface{}{
		"name":  "Classic Racer",
		"price": -1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestCreateCarSeries_StoresSpecifications(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodPost, "/api/cms/car-series", map[string]interface{}{
		"name": "Classic Racer",
		"specifications": map[string]interface{}{
			"engine": "110cc four-stroke",
			"power":  "5.2 kW",
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var series models.CarSeries
	db.First(&series)

	var specs map[string]string
	json.Unmarshal(series.Specifications, &specs)
	assert.Equal(t, "110cc four-stroke", specs["engine"])
}

func TestUpdateCarSeries_SlugConflict(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestSeries(db, "Classic Racer", "classic-racer", 12500, true)
	series := createTestSeries(db, "Roadster", "roadster", 9900, true)

	w := performRequest(router, http.MethodPut, fmt.Sprintf("/api/cms/car-series/%d", series.ID), map[string]interface{}{
		"slug": "classic-racer",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateCarSeries_PartialUpdate(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	series := createTestSeries(db, "Roadster", "roadster", 9900, false)
	series.Specifications = datatypes.JSON(`{"engine":"90cc"}`)
	db.Save(series)

	w := performRequest(router, http.MethodPut, fmt.Sprintf("/api/cms/car-series/%d", series.ID), map[string]interface{}{
		"published": true,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.CarSeries
	db.First(&updated, series.ID)
	assert.True(t, updated.Published)
	assert.Equal(t, "Roadster", updated.Name)
	assert.JSONEq(t, `{"engine":"90cc"}`, string(updated.Specifications))
}

func TestListCarSeries_SortByPrice(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestSeries(db, "Expensive", "expensive", 20000, true)
	createTestSeries(db, "Cheap", "cheap", 5000, true)

	w := performRequest(router, http.MethodGet, "/api/cms/car-series?sortBy=price&sortOrder=asc", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var series []models.CarSeries
	json.Unmarshal(decodeEnvelope(t, w).Data, &series)
	assert.Equal(t, "Cheap", series[0].Name)
	assert.Equal(t, "Expensive", series[1].Name)
}

func TestListCarSeries_SlugFilter(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestSeries(db, "Silver Arrow Junior", "silver-arrow-junior", 35000, true)
	createTestSeries(db, "Classic Racer", "classic-racer", 29500, true)

	w := performRequest(router, http.MethodGet, "/api/cms/car-series?slug=silver-arrow-junior", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var series []models.CarSeries
	json.Unmarshal(decodeEnvelope(t, w).Data, &series)
	assert.Len(t, series, 1)
	assert.Equal(t, "Silver Arrow Junior", series[0].Name)
}

func TestListCarSeries_PublishedFilter(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestSeries(db, "Live", "live", 100, true)
	createTestSeries(db, "Draft", "draft", 100, false)

	w := performRequest(router, http.MethodGet, "/api/cms/car-series?published=false", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var series []models.CarSeries
	json.Unmarshal(decodeEnvelope(t, w).Data, &series)
	assert.Len(t, series, 1)
	assert.Equal(t, "draft", series[0].Slug)
}

func TestDeleteCarSeries(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	series := createTestSeries(db, "Roadster", "roadster", 9900, true)

	w := performRequest(router, http.MethodDelete, fmt.Sprintf("/api/cms/car-series/%d", series.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CarSeries{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

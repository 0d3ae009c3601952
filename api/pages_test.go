package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"juniorcars/models"
)

func createTestPage(db *gorm.DB, title, slug string, published bool) *models.Page {
	page := &models.Page{
		Title:     title,
		Slug:      slug,
		Content:   "Content for " + title,
		Published: published,
	}
	db.Create(page)
	return page
}

func TestCreatePage_DerivesSlugFromTitle(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodPost, "/api/cms/pages", map[string]interface{}{
		"title": "Über die Werkstatt",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var page models.Page
	json.Unmarshal(decodeEnvelope(t, w).Data, &page)
	assert.Equal(t, "uber-die-werkstatt", page.Slug)
	assert.False(t, page.Published)
}

func TestCreatePage_SlugCollisionGetsSuffix(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestPage(db, "About", "about", true)

	w := performRequest(router, http.MethodPost, "/api/cms/pages", map[string]interface{}{
		"title": "About",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var page models.Page
	json.Unmarshal(decodeEnvelope(t, w).Data, &page)
	assert.NotEqual(t, "about", page.Slug)
	assert.Regexp(t, `^about-\d+$`, page.Slug)
}

func TestCreatePage_WithContentBlocks(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodPost, "/api/cms/pages", map[string]interface{}{
		"title": "Home",
		"contentBlocks": []map[string]interface{}{
			{"type": "hero", "orderIndex": 0},
			{"type": "text", "orderIndex": 1},
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.ContentBlock{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCreatePage_RejectsInvalidBlockType(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodPost, "/api/cms/pages", map[string]interface{}{
		"title": "Home",
		"contentBlocks": []map[string]interface{}{
			{"type": "video"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)
}

func TestGetPage_NotFound(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodGet, "/api/cms/pages/999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Page not found", env.Error)
}

func TestGetPage_IncludesOrderedBlocks(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	page := createTestPage(db, "Home", "home", true)
	db.Create(&models.ContentBlock{PageID: page.ID, Type: "text", OrderIndex: 2})
	db.Create(&models.ContentBlock{PageID: page.ID, Type: "hero", OrderIndex: 0})

	w := performRequest(router, http.MethodGet, fmt.Sprintf("/api/cms/pages/%d", page.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Page
	json.Unmarshal(decodeEnvelope(t, w).Data, &got)
	assert.Len(t, got.ContentBlocks, 2)
	assert.Equal(t, "hero", got.ContentBlocks[0].Type)
	assert.Equal(t, "text", got.ContentBlocks[1].Type)
}

func TestUpdatePage_SlugConflict(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestPage(db, "About", "about", true)
	page := createTestPage(db, "Contact", "contact", true)

	w := performRequest(router, http.MethodPut, fmt.Sprintf("/api/cms/pages/%d", page.ID), map[string]interface{}{
		"slug": "about",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var unchanged models.Page
	db.First(&unchanged, page.ID)
	assert.Equal(t, "contact", unchanged.Slug)
}

func TestUpdatePage_KeepingOwnSlugIsNotAConflict(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	page := createTestPage(db, "Contact", "contact", true)

	w := performRequest(router, http.MethodPut, fmt.Sprintf("/api/cms/pages/%d", page.ID), map[string]interface{}{
		"slug":  "contact",
		"title": "Contact Us",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Page
	db.First(&updated, page.ID)
	assert.Equal(t, "Contact Us", updated.Title)
}

func TestUpdatePage_ReplacesContentBlocks(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	page := createTestPage(db, "Home", "home", true)
	db.Create(&models.ContentBlock{PageID: page.ID, Type: "hero", OrderIndex: 0})
	db.Create(&models.ContentBlock{PageID: page.ID, Type: "text", OrderIndex: 1})

	w := performRequest(router, http.MethodPut, fmt.Sprintf("/api/cms/pages/%d", page.ID), map[string]interface{}{
		"contentBlocks": []map[string]interface{}{
			{"type": "html", "orderIndex": 0},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var blocks []models.ContentBlock
	db.Where("page_id = ?", page.ID).Find(&blocks)
	assert.Len(t, blocks, 1)
	assert.Equal(t, "html", blocks[0].Type)
}

func TestUpdatePage_OmittedBlocksAreKept(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	page := createTestPage(db, "Home", "home", true)
	db.Create(&models.ContentBlock{PageID: page.ID, Type: "hero", OrderIndex: 0})

	w := performRequest(router, http.MethodPut, fmt.Sprintf("/api/cms/pages/%d", page.ID), map[string]interface{}{
		"title": "New Home",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.ContentBlock{}).Where("page_id = ?", page.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeletePage_CascadesBlocks(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	page := createTestPage(db, "Home", "home", true)
	db.Create(&models.ContentBlock{PageID: page.ID, Type: "hero", OrderIndex: 0})

	w := performRequest(router, http.MethodDelete, fmt.Sprintf("/api/cms/pages/%d", page.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Page deleted successfully", decodeEnvelope(t, w).Message)

	var pageCount, blockCount int64
	db.Model(&models.Page{}).Count(&pageCount)
	db.Model(&models.ContentBlock{}).Count(&blockCount)
	assert.Equal(t, int64(0), pageCount)
	assert.Equal(t, int64(0), blockCount)
}

func TestListPages_Pagination(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	for i := 0; i < 25; i++ {
		createTestPage(db, fmt.Sprintf("Page %02d", i), fmt.Sprintf("page-%02d", i), true)
	}

	w := performRequest(router, http.MethodGet, "/api/cms/pages?page=2&limit=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var pages []models.Page
	json.Unmarshal(env.Data, &pages)
	assert.Len(t, pages, 10)
	assert.Equal(t, int64(25), env.Pagination.Total)
	assert.Equal(t, 3, env.Pagination.TotalPages)
}

func TestListPages_PublishedFilter(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestPage(db, "Live", "live", true)
	createTestPage(db, "Draft", "draft", false)

	w := performRequest(router, http.MethodGet, "/api/cms/pages?published=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var pages []models.Page
	json.Unmarshal(decodeEnvelope(t, w).Data, &pages)
	assert.Len(t, pages, 1)
	assert.Equal(t, "live", pages[0].Slug)
}

func TestListPages_SlugFilter(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	// slug does not occur verbatim in the title or content
	createTestPage(db, "Wall Art", "wall-art", true)
	createTestPage(db, "About", "about", true)

	w := performRequest(router, http.MethodGet, "/api/cms/pages?slug=wall-art&published=true", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var pages []models.Page
	json.Unmarshal(decodeEnvelope(t, w).Data, &pages)
	assert.Len(t, pages, 1)
	assert.Equal(t, "Wall Art", pages[0].Title)
}

func TestListPages_Search(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestPage(db, "Wall Art", "wall-art", true)
	createTestPage(db, "About", "about", true)

	w := performRequest(router, http.MethodGet, "/api/cms/pages?search=Wall", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var pages []models.Page
	json.Unmarshal(decodeEnvelope(t, w).Data, &pages)
	assert.Len(t, pages, 1)
	assert.Equal(t, "wall-art", pages[0].Slug)
}

func TestListPages_SortByTitle(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestPage(db, "Zebra", "zebra", true)
	createTestPage(db, "Alpha", "alpha", true)

	w := performRequest(router, http.MethodGet, "/api/cms/pages?sortBy=title&sortOrder=asc", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var pages []models.Page
	json.Unmarshal(decodeEnvelope(t, w).Data, &pages)
	assert.Equal(t, "Alpha", pages[0].Title)
	assert.Equal(t, "Zebra", pages[1].Title)
}

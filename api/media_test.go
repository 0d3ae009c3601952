package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"juniorcars/models"
)

func createTestMedia(db *gorm.DB, filename, url, mimeType string) *models.Media {
	media := &models.Media{
		Filename: filename,
		URL:      url,
		MimeType: mimeType,
	}
	db.Create(media)
	return media
}

func TestCreateMedia_RequiresURL(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodPost, "/api/cms/media", map[string]interface{}{
		"filename": "car.jpg",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMedia_DefaultsFilenameAndMime(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	payload := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
	w := performRequest(router, http.MethodPost, "/api/cms/media", map[string]interface{}{
		"url": "data:image/png;base64," + payload,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var media models.Media
	json.Unmarshal(decodeEnvelope(t, w).Data, &media)
	assert.NotEmpty(t, media.Filename)
	assert.Equal(t, "image/png", media.MimeType)
}

func TestServeMediaFile_DataURL(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	content := []byte("pretend this is a png")
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(content)
	media := createTestMedia(db, "car.png", dataURL, "image/png")

	w := performRequest(router, http.MethodGet, fmt.Sprintf("/api/cms/media/%d/file", media.ID), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Type"), "image/png")
	assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))
}

func TestServeMediaFile_ExternalURLRedirects(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	media := createTestMedia(db, "car.jpg", "https://images.example.com/car.jpg", "image/jpeg")

	w := performRequest(router, http.MethodGet, fmt.Sprintf("/api/cms/media/%d/file", media.ID), nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://images.example.com/car.jpg", w.Header().Get("Location"))
}

func TestServeMediaFile_NotFound(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodGet, "/api/cms/media/999/file", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDecodeDataURL(t *testing.T) {
	data, contentType, err := decodeDataURL("data:text/plain;base64,aGVsbG8=")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, "text/plain", contentType)

	data, contentType, err = decodeDataURL("data:text/plain,hello%20world")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello world"), data)
	assert.Equal(t, "text/plain", contentType)

	_, _, err = decodeDataURL("data:no-comma-here")
	assert.Error(t, err)

	_, _, err = decodeDataURL("data:image/png;base64,%%%not-base64%%%")
	assert.Error(t, err)
}

func TestUpdateMedia_AltText(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	media := createTestMedia(db, "car.jpg", "https://images.example.com/car.jpg", "image/jpeg")

	w := performRequest(router, http.MethodPut, fmt.Sprintf("/api/cms/media/%d", media.ID), map[string]interface{}{
		"altText": "Classic racer on the track",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Media
	db.First(&updated, media.ID)
	assert.Equal(t, "Classic racer on the track", updated.AltText)
	assert.Equal(t, "car.jpg", updated.Filename)
}

func TestDeleteMedia_NotFound(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodDelete, "/api/cms/media/999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMedia_SearchByAltText(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	hero := createTestMedia(db, "hero.jpg", "https://images.example.com/hero.jpg", "image/jpeg")
	hero.AltText = "Hero shot"
	db.Save(hero)
	createTestMedia(db, "spec.jpg", "https://images.example.com/spec.jpg", "image/jpeg")

	w := performRequest(router, http.MethodGet, "/api/cms/media?search=Hero", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var media []models.Media
	json.Unmarshal(decodeEnvelope(t, w).Data, &media)
	assert.Len(t, media, 1)
	assert.Equal(t, "hero.jpg", media[0].Filename)
}

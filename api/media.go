package api

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"juniorcars/models"
	"juniorcars/schema"
)

var mediaSortable = []string{"created_at", "updated_at", "filename", "size"}

func (a *APIModule) listMedia(c *gin.Context) {
	q, err := schema.ParseListQuery(c.Request.URL.Query(), mediaSortable)
	if err != nil {
		respondValidation(c, err)
		return
	}

	query := a.db.Model(&models.Media{})
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("filename LIKE ? OR original_name LIKE ? OR alt_text LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("listMedia count: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	var media []models.Media
	if err := query.Order(q.SortBy + " " + q.SortOrder).
		Offset(q.Offset()).Limit(q.Limit).
		Find(&media).Error; err != nil {
		log.Printf("listMedia find: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondList(c, media, q, total)
}

func (a *APIModule) getMedia(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var media models.Media
	err = a.db.First(&media, id).Error
	if err == gorm.ErrRecordNotFound {
		respondError(c, http.StatusNotFound, "Media not found")
		return
	}
	if err != nil {
		log.Printf("getMedia: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusOK, media)
}

// serveMediaFile decodes a stored data-URL back into bytes and serves it with
// a long-lived cache header. External URLs are answered with a redirect.
func (a *APIModule) serveMediaFile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var media models.Media
	if err := a.db.First(&media, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Media not found")
		return
	}

	if !strings.HasPrefix(media.URL, "data:") {
		c.Redirect(http.StatusFound, media.URL)
		return
	}

	data, contentType, err := decodeDataURL(media.URL)
	if err != nil {
		log.Printf("serveMediaFile %d: %v", media.ID, err)
		respondError(c, http.StatusInternalServerError, "Failed to decode media")
		return
	}
	if contentType == "" {
		contentType = media.MimeType
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, contentType, data)
}

// decodeDataURL splits "data:<mime>[;base64],<payload>" into bytes and mime.
func decodeDataURL(dataURL string) ([]byte, string, error) {
	rest := strings.TrimPrefix(dataURL, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", errMalformedDataURL
	}

	contentType := meta
	isBase64 := false
	if strings.HasSuffix(meta, ";base64") {
		isBase64 = true
		contentType = strings.TrimSuffix(meta, ";base64")
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", err
		}
		return data, contentType, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", err
	}
	return []byte(unescaped), contentType, nil
}

var errMalformedDataURL = errors.New("malformed data URL")

func (a *APIModule) createMedia(c *gin.Context) {
	var input schema.CreateMediaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := schema.Check(input); err != nil {
		respondValidation(c, err)
		return
	}

	filename := input.Filename
	if filename == "" {
		filename = uuid.New().String()
	}
	mimeType := input.MimeType
	if mimeType == "" && strings.HasPrefix(input.URL, "data:") {
		if _, ct, err := decodeDataURL(input.URL); err == nil {
			mimeType = ct
		}
	}

	media := models.Media{
		Filename:     filename,
		OriginalName: input.OriginalName,
		URL:          input.URL,
		AltText:      input.AltText,
		Size:         input.Size,
		MimeType:     mimeType,
		Width:        input.Width,
		Height:       input.Height,
	}

	if err := a.db.Create(&media).Error; err != nil {
		log.Printf("createMedia: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create media")
		return
	}

	respondData(c, http.StatusCreated, media)
}

func (a *APIModule) updateMedia(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var media models.Media
	if err := a.db.First(&media, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Media not found")
		return
	}

	var input schema.UpdateMediaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := schema.Check(input); err != nil {
		respondValidation(c, err)
		return
	}

	if input.Filename != nil {
		media.Filename = *input.Filename
	}
	if input.OriginalName != nil {
		media.OriginalName = *input.OriginalName
	}
	if input.URL != nil {
		media.URL = *input.URL
	}
	if input.AltText != nil {
		media.AltText = *input.AltText
	}
	if input.Size != nil {
		media.Size = *input.Size
	}
	if input.MimeType != nil {
		media.MimeType = *input.MimeType
	}
	if input.Width != nil {
		media.Width = *input.Width
	}
	if input.Height != nil {
		media.Height = *input.Height
	}

	if err := a.db.Save(&media).Error; err != nil {
		log.Printf("updateMedia: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update media")
		return
	}

	respondData(c, http.StatusOK, media)
}

func (a *APIModule) deleteMedia(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id")
		return
	}

	result := a.db.Delete(&models.Media{}, id)
	if result.Error != nil {
		log.Printf("deleteMedia: %v", result.Error)
		respondError(c, http.StatusInternalServerError, "Failed to delete media")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Media not found")
		return
	}

	respondMessage(c, http.StatusOK, "Media deleted successfully")
}

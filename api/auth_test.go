package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"juniorcars/models"
)

func createTestUser(db *gorm.DB, email, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	db.Create(user)
	return user
}

func TestLogin_Success(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestUser(db, "admin@example.com", "correct-horse")

	w := performRequest(router, http.MethodPost, "/api/cms/auth/login", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "correct-horse",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	json.Unmarshal(decodeEnvelope(t, w).Data, &data)
	assert.Equal(t, "admin@example.com", data.User.Email)
	assert.NotEmpty(t, data.Token)

	claims, err := ParseAuthToken(data.Token)
	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestUser(db, "admin@example.com", "correct-horse")

	w := performRequest(router, http.MethodPost, "/api/cms/auth/login", map[string]interface{}{
		"email":    "Admin@Example.com",
		"password": "correct-horse",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestUser(db, "admin@example.com", "correct-horse")

	w := performRequest(router, http.MethodPost, "/api/cms/auth/login", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid email or password", env.Error)
}

func TestLogin_UnknownUser(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodPost, "/api/cms/auth/login", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_DevBypassOutsideReleaseMode(t *testing.T) {
	db := setupTestDB()
	apiModule := NewAPIModule(db)
	router := setupTestRouter(apiModule)

	createTestUser(db, "admin@example.com", "correct-horse")

	w := performRequest(router, http.MethodPost, "/api/cms/auth/login", map[string]interface{}{
		"email":    "admin@example.com",
		"password": devBypassPassword,
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_InvalidEmailFormat(t *testing.T) {
	apiModule := NewAPIModule(setupTestDB())
	router := setupTestRouter(apiModule)

	w := performRequest(router, http.MethodPost, "/api/cms/auth/login", map[string]interface{}{
		"email":    "not-an-email",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthToken_RoundTrip(t *testing.T) {
	user := &models.User{ID: 7, Email: "admin@example.com", Role: "admin"}

	token, err := NewAuthToken(user)
	assert.NoError(t, err)

	claims, err := ParseAuthToken(token)
	assert.NoError(t, err)
	assert.Equal(t, float64(7), claims["uid"])
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.NotNil(t, claims["exp"])
}

func TestAuthToken_TamperedRejected(t *testing.T) {
	user := &models.User{ID: 7, Email: "admin@example.com", Role: "admin"}

	token, err := NewAuthToken(user)
	assert.NoError(t, err)

	_, err = ParseAuthToken(token + "x")
	assert.Error(t, err)
}

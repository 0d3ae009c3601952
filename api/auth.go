package api

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"juniorcars/models"
	"juniorcars/schema"
)

// devBypassPassword lets local frontends log in without the seeded password.
// Honored only outside gin release mode.
const devBypassPassword = "juniorcars-dev"

const tokenTTL = 7 * 24 * time.Hour

func tokenSecret() []byte {
	s := os.Getenv("SESSION_SECRET")
	if s == "" {
		s = "juniorcars-insecure-dev-secret"
	}
	return []byte(s)
}

// NewAuthToken issues a signed, expiring token for an authenticated user.
func NewAuthToken(user *models.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = user.ID
	claims["email"] = user.Email
	claims["role"] = user.Role
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(tokenTTL).Unix()

	return token.SignedString(tokenSecret())
}

// ParseAuthToken verifies signature and expiry and returns the claims.
func ParseAuthToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tokenSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	return token.Claims.(jwt.MapClaims), nil
}

func (a *APIModule) login(c *gin.Context) {
	var input schema.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := schema.Check(input); err != nil {
		respondValidation(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	match := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) == nil
	if !match && gin.Mode() != gin.ReleaseMode && input.Password == devBypassPassword {
		match = true
	}
	if !match {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := NewAuthToken(&user)
	if err != nil {
		log.Printf("login token: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to create session token")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"

	"github.com/HannahChen955/referralx-platform/models"
)

const (
	userTokenValidity  = 7 * 24 * time.Hour
	adminTokenValidity = 24 * time.Hour
)

// JwtSecret returns the signing key from the environment. The fallback keeps
// local development working; production must set JWT_SECRET.
func JwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Warn("JWT_SECRET is not set, using fallback secret")
		return []byte("fallback-secret")
	}
	return []byte(secret)
}

// GenerateUserToken creates a referrer session token, valid for 7 days.
func GenerateUserToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"phone":   user.Phone,
		"name":    user.Name,
		"exp":     time.Now().Add(userTokenValidity).Unix(),
	})
	return token.SignedString(JwtSecret())
}

// GenerateAdminToken creates a back-office session token, valid for 24 hours.
func GenerateAdminToken(admin *models.AdminUser) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"role":     admin.Role,
		"exp":      time.Now().Add(adminTokenValidity).Unix(),
	})
	return token.SignedString(JwtSecret())
}

// ParseBearerToken validates an Authorization header and returns the token
// claims.
func ParseBearerToken(authHeader string) (jwt.MapClaims, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		return JwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

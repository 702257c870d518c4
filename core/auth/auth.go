package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gorm.io/gorm"

	"inventory.GO/config"
	authRepo "inventory.GO/model/repository/auth"
)

// Middleware returns the auth middleware based on AUTH_TYPE env var.
// AUTH_TYPE=token checks bearer tokens against the api_token table in db.
func Middleware(db *gorm.DB) echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch os.Getenv("AUTH_TYPE") {
	case "none":
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	case "key":
		return keyAuth(os.Getenv("API_KEY"), skipper)
	case "token":
		return tokenAuth(authRepo.NewAuthRepository(db), skipper)
	default:
		return basicAuth(os.Getenv("API_USER"), os.Getenv("API_PASS"), skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func basicAuth(user, pass string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if user == "" {
				return false, nil
			}
			return equal(username, user) && equal(password, pass), nil
		},
		Skipper: skipper,
	})
}

func keyAuth(apiKey string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return apiKey != "" && equal(key, apiKey), nil
		},
		Skipper: skipper,
	})
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func tokenAuth(repo *authRepo.AuthRepository, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		AuthScheme: "Bearer",
		Validator: func(key string, c echo.Context) (bool, error) {
			t, err := repo.FindActiveToken(key)
			if errors.Is(err, authRepo.ErrNotFound) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			_ = repo.Touch(t.ID, time.Now().UTC())
			return true, nil
		},
		Skipper: skipper,
	})
}

// NewToken returns a random bearer secret.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

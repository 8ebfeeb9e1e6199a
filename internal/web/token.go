package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/domain"
)

// CreateToken signs the session token handed out on login.
func CreateToken(secret string, user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(config.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseClaims extracts the claims we care about from a signed token.
func ParseClaims(secret, tokenString string) (userID int64, isAdmin bool, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return 0, false, err
	}
	claims := token.Claims.(jwt.MapClaims)
	id, _ := claims["user_id"].(float64)
	admin, _ := claims["is_admin"].(bool)
	return int64(id), admin, nil
}

// currentUserID reads the authenticated user id stored by the JWT
// middleware.
func currentUserID(c *fiber.Ctx) int64 {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return 0
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	id, _ := claims["user_id"].(float64)
	return int64(id)
}

func currentIsAdmin(c *fiber.Ctx) bool {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	admin, _ := claims["is_admin"].(bool)
	return admin
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/flicky/swiftora-api/internal/model"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	usernameKey = "username"
)

// AuthMiddleware verifies the bearer token and puts the caller's account
// id, role and username on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid claims"})
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		role, _ := claims["role"].(string)
		username, _ := claims["username"].(string)
		SetCaller(c, userID, model.Role(role), username)
		c.Next()
	}
}

// RequireRole rejects callers whose token role is not listed.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[GetUserRole(c)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// SetCaller records an authenticated identity on the context.
func SetCaller(c *gin.Context, userID uuid.UUID, role model.Role, username string) {
	c.Set(userIDKey, userID)
	c.Set(userRoleKey, role)
	c.Set(usernameKey, username)
}

func GetUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(userIDKey)
	uid, _ := id.(uuid.UUID)
	return uid
}

func GetUserRole(c *gin.Context) model.Role {
	role, _ := c.Get(userRoleKey)
	r, _ := role.(model.Role)
	return r
}

func GetUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}

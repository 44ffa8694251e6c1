package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type UserContext struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone_number"`
	AvatarURL *string   `json:"avatar_url"`
	IsAdmin   bool      `json:"is_admin"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func RequireAuth(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		jwtSecret := os.Getenv("ACCESS_TOKEN_SECRET")

		// 1. Read the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token not found"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// 2. Parse + verify the token
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access token expired or incorrect"})
			c.Abort()
			return
		}

		// 3. Pull the userId claim
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		userIDStr, ok := claims["userId"].(string)
		if !ok || userIDStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "userId not found in token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
			c.Abort()
			return
		}

		// 4. Load the active user from Postgres
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var u UserContext
		err = db.QueryRowContext(ctx, `
			SELECT id, first_name, last_name, username, email, phone_number,
			       avatar_url, is_admin, status, created_at, updated_at
			FROM users
			WHERE id = $1
			  AND status = 'active'
		`, userID).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
			&u.Phone, &u.AvatarURL, &u.IsAdmin, &u.Status, &u.CreatedAt, &u.UpdatedAt)

		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusNotFound, gin.H{"message": "User does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "System error (db)"})
			}
			c.Abort()
			return
		}

		// 5. Attach the user to the request context
		c.Set("user", u)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. It gates the back-office routes
// on the user's is_admin flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("user")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		u, ok := v.(UserContext)
		if !ok || !u.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

type JWT struct {
	Secret string
}

func (j *JWT) CreateToken(userID uuid.UUID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(tokenTTL).Unix(),
	})

	return token.SignedString([]byte(j.Secret))
}

func (j *JWT) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(j.Secret), nil
	})

	if err != nil {
		return uuid.Nil, err
	}

	if !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()

	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(sub)
}

func CreateJwtTokenForUser(userID uuid.UUID) (string, error) {
	j := JWT{Secret: os.Getenv("JWT_SECRET")}
	return j.CreateToken(userID)
}

func VerifyJwtToken(token string) (uuid.UUID, error) {
	j := JWT{Secret: os.Getenv("JWT_SECRET")}
	return j.VerifyToken(token)
}

// GinJwtMiddleware resolves the Bearer token to a user id and stores it on
// the request context as x-user-id. Every protected route relies on it for
// owner scoping.
func GinJwtMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" || !strings.HasPrefix(bearer, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": []string{"Unauthorized request"}})
			return
		}

		userID, err := VerifyJwtToken(strings.TrimPrefix(bearer, "Bearer "))

		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": []string{"Unauthorized request"}})
			return
		}

		c.Set("x-user-id", userID)
		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by GinJwtMiddleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("x-user-id")

	if !ok {
		return uuid.Nil, false
	}

	id, ok := v.(uuid.UUID)

	return id, ok
}

package security

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// Configure sets the signing secret. Must be called before any token
// is issued or verified; routes behind JWTMiddleware reject everything
// until then.
func Configure(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateJWT(userID string, role string, displayName string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", fmt.Errorf("security not configured")
	}

	claims := jwt.MapClaims{
		"userID": userID,
		"role":   role,
		"name":   displayName,
		"exp":    time.Now().Add(time.Hour * 120).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// DisplayNameFromContext returns the token's display name claim, or ""
// when the request is anonymous. Callers use it to stamp requester and
// person-responsible fields when the payload leaves them empty.
func DisplayNameFromContext(c *gin.Context) string {
	name, ok := c.Get("name")
	if !ok {
		return ""
	}
	s, _ := name.(string)
	return s
}

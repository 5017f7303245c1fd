package handler

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwt "github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("sauti-dev-secret")
}

// generateJWT issues a token carrying the anonymous citizen ID.
func generateJWT(anonID string) (string, error) {
	claims := jwt.MapClaims{
		"anon_id": anonID,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
		"iss":     "sauti-service",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// validateAndGetAnonID parses a token and returns the anon_id claim.
func validateAndGetAnonID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	anonID, _ := claims["anon_id"].(string)
	if anonID == "" {
		return "", errors.New("anon_id claim missing")
	}
	return anonID, nil
}

// bearerAnonID extracts the caller's anon ID from the Authorization header,
// returning "" when no valid token is present. Submissions work without one.
func bearerAnonID(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return ""
	}
	anonID, err := validateAndGetAnonID(authHeader[7:])
	if err != nil {
		return ""
	}
	return anonID
}

// GetAnonID creates a fresh anonymous citizen ID and returns it with a JWT.
// Citizens who keep the token can accumulate accountability points across
// signed submissions without ever revealing who they are.
func (h *Handler) GetAnonID(c *gin.Context) {
	anonUUID, _ := uuid.NewRandom()
	anonID := anonUUID.String()

	token, err := generateJWT(anonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "anon_id": anonID})
}

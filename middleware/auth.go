package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of issued tokens.
const TokenTTL = time.Hour

type contextKey struct{ name string }

var userCtxKey = &contextKey{"userId"}

type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken signs a token carrying the user's id and email.
func IssueToken(secret, userID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Auth inspects the Authorization header and, when it carries a valid
// bearer token, attaches the authenticated user id to the request
// context. Requests without a usable token continue unauthenticated;
// resolvers decide whether that is an error.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := ParseToken(secret, parts[1])
		if err != nil {
			// Expired or malformed tokens mean unauthenticated,
			// not a hard failure.
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// WithUserID returns a context marked as authenticated for the user.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userCtxKey, userID)
}

// UserID reports the authenticated user id attached by Auth, if any.
func UserID(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(userCtxKey).(string)
	return raw, ok && raw != ""
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("test-secret", "abc123", "tess@example.com")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "abc123" {
		t.Errorf("userId = %q, want abc123", claims.UserID)
	}
	if claims.Email != "tess@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("test-secret", "abc123", "tess@example.com")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	claims := &Claims{
		UserID: "abc123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken("test-secret", token); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	token, err := IssueToken("test-secret", "abc123", "tess@example.com")
	if err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	router.Use(Auth("test-secret"))
	router.GET("/whoami", func(c *gin.Context) {
		if id, ok := UserID(c.Request.Context()); ok {
			c.String(http.StatusOK, id)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "no header", header: "", want: "anonymous"},
		{name: "not a bearer token", header: "Basic abc", want: "anonymous"},
		{name: "garbage token", header: "Bearer not.a.token", want: "anonymous"},
		{name: "valid token", header: "Bearer " + token, want: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			// Unauthenticated requests still reach the handler.
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

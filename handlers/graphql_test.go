package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkwell/graph"

	"github.com/gin-gonic/gin"
)

func graphqlRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	schema, err := graph.NewSchema(&graph.Resolver{})
	if err != nil {
		t.Fatal(err)
	}

	router := gin.New()
	router.POST("/graphql", GraphQL(schema, nil))
	return router
}

func TestGraphQLRejectsMalformedBody(t *testing.T) {
	router := graphqlRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGraphQLExecutesQuery(t *testing.T) {
	router := graphqlRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ __typename }"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "RootQuery") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGraphQLKeepsResolverErrorsInBody(t *testing.T) {
	router := graphqlRouter(t)

	// Unauthenticated posts query: the error stays in the GraphQL body
	// with its status under extensions.code.
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ posts { totalPosts } }"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Not authenticated!") {
		t.Errorf("body = %s", body)
	}
	if !strings.Contains(body, `"code":401`) {
		t.Errorf("missing extensions code, body = %s", body)
	}
}

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func listContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	c := listContext(t, "http://api.test/api/recipes?page=3&limit=10")
	offset, limit := parsePagination(c)
	if offset != 20 || limit != 10 {
		t.Fatalf("expected offset 20 limit 10, got %d %d", offset, limit)
	}

	c = listContext(t, "http://api.test/api/recipes?page=0&limit=-5")
	offset, limit = parsePagination(c)
	if offset != 0 || limit != defaultPageSize {
		t.Fatalf("bad params should fall back to defaults, got %d %d", offset, limit)
	}
}

func TestPaginatedBodyLinks(t *testing.T) {
	c := listContext(t, "http://api.test/api/recipes?page=2&limit=6&tags=dinner")
	body := paginatedBody(c, 20, []any{})

	next, _ := body["next"].(*string)
	if next == nil {
		t.Fatal("expected next link on a middle page")
	}
	if *next != "http://api.test/api/recipes?limit=6&page=3&tags=dinner" {
		t.Fatalf("unexpected next link %q", *next)
	}

	previous, _ := body["previous"].(*string)
	if previous == nil {
		t.Fatal("expected previous link on a middle page")
	}
	if *previous != "http://api.test/api/recipes?limit=6&page=1&tags=dinner" {
		t.Fatalf("unexpected previous link %q", *previous)
	}
}

func TestPaginatedBodyEdges(t *testing.T) {
	// First page of a single-page result has no neighbours.
	c := listContext(t, "http://api.test/api/recipes?limit=6")
	body := paginatedBody(c, 4, []any{})
	if next, _ := body["next"].(*string); next != nil {
		t.Fatalf("expected nil next, got %q", *next)
	}
	if previous, _ := body["previous"].(*string); previous != nil {
		t.Fatalf("expected nil previous, got %q", *previous)
	}

	// Last page keeps previous but drops next.
	c = listContext(t, "http://api.test/api/recipes?page=4&limit=5")
	body = paginatedBody(c, 20, []any{})
	if next, _ := body["next"].(*string); next != nil {
		t.Fatalf("expected nil next on last page, got %q", *next)
	}
	if previous, _ := body["previous"].(*string); previous == nil {
		t.Fatal("expected previous link on last page")
	}
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 6

func pageParams(c *gin.Context) (page, limit int) {
	page = 1
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	limit = defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return page, limit
}

// parsePagination reads the page/limit query params and converts them to
// an offset/limit pair.
func parsePagination(c *gin.Context) (offset, limit int) {
	page, limit := pageParams(c)
	return (page - 1) * limit, limit
}

// pageLink rebuilds the request URL with the page query param swapped.
func pageLink(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := scheme + "://" + c.Request.Host + u.RequestURI()
	return &link
}

// paginatedBody is the list envelope: count, next/previous page links and
// the current page of results. Absent neighbour pages are null.
func paginatedBody(c *gin.Context, count int64, results any) gin.H {
	page, limit := pageParams(c)

	var next, previous *string
	if int64(page)*int64(limit) < count {
		next = pageLink(c, page+1)
	}
	if page > 1 {
		previous = pageLink(c, page-1)
	}

	return gin.H{
		"count":    count,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}

//go:build unit

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	addRoutes(engine.Group("/api/cart"), []route{
		{Method: http.MethodGet, Path: "", Handler: ok},
		{Method: http.MethodPost, Path: "/items", Handler: ok},
		{Method: http.MethodDelete, Path: "/items/:id", Handler: ok},
	})

	registered := map[string]bool{}
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	assert.True(t, registered["GET /api/cart"])
	assert.True(t, registered["POST /api/cart/items"])
	assert.True(t, registered["DELETE /api/cart/items/:id"])
	assert.Len(t, engine.Routes(), 3)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodDelete, "/api/cart/items/abc", nil)
	require.NoError(t, err)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

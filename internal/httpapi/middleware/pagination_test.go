package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"reviewhub/internal/httpapi/dto"
)

func setupPaginationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Paginate(10, 100))
	router.GET("/items", func(c *gin.Context) {
		c.JSON(http.StatusOK, PageParams(c))
	})
	return router
}

func getPageParams(t *testing.T, router *gin.Engine, query string) dto.PageParams {
	req, _ := http.NewRequest("GET", "/items"+query, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var params dto.PageParams
	json.Unmarshal(w.Body.Bytes(), &params)
	return params
}

func TestPaginate_Defaults(t *testing.T) {
	router := setupPaginationRouter()
	params := getPageParams(t, router, "")

	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, 0, params.Offset)
}

func TestPaginate_ExplicitValues(t *testing.T) {
	router := setupPaginationRouter()
	params := getPageParams(t, router, "?limit=25&offset=50")

	assert.Equal(t, 25, params.Limit)
	assert.Equal(t, 50, params.Offset)
}

func TestPaginate_LimitCapped(t *testing.T) {
	router := setupPaginationRouter()
	params := getPageParams(t, router, "?limit=5000")

	assert.Equal(t, 100, params.Limit)
}

func TestPaginate_MalformedFallsBack(t *testing.T) {
	router := setupPaginationRouter()
	params := getPageParams(t, router, "?limit=abc&offset=-3")

	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, 0, params.Offset)
}

package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
)

const pageParamsKey = "pageParams"

// Paginate parses the offset/limit query params every list endpoint
// honors. Malformed or out-of-range values fall back to defaults rather
// than erroring; the limit is capped.
func Paginate(defaultLimit, maxLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultLimit
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		if limit > maxLimit {
			limit = maxLimit
		}

		offset := 0
		if raw := c.Query("offset"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				offset = parsed
			}
		}

		c.Set(pageParamsKey, dto.PageParams{Limit: limit, Offset: offset})
		c.Next()
	}
}

// PageParams returns the parsed pagination parameters for the request.
func PageParams(c *gin.Context) dto.PageParams {
	value, exists := c.Get(pageParamsKey)
	if !exists {
		return dto.PageParams{Limit: 10}
	}
	params, ok := value.(dto.PageParams)
	if !ok {
		return dto.PageParams{Limit: 10}
	}
	return params
}

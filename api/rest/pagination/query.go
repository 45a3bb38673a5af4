package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// FromQuery reads ?limit= and ?offset=, ignoring values that are not numbers
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) Params {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return DefaultParams(limit, offset, defaultLimit, maxLimit)
}

package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"library-api/internal/shared/apperr"
)

// ParseID reads an integer id path parameter. Zero and negative ids parse;
// they match no stored row and end up as not found.
func ParseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.ErrInvalidID.Newf("%s must be an integer", name)
	}
	return id, nil
}

// ParseInt reads an integer path parameter of any sign.
func ParseInt(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apperr.Validation("INVALID_PARAMETER", "%s must be an integer", name)
	}
	return v, nil
}

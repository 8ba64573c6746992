package middleware

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/team-collab-api/internal/errors"
)

func paramKey(name string) string {
	return "param_" + name
}

// RequireIDParam parses the named path parameter as a positive integer ID
// and stores it for GetIDParam.
func RequireIDParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(name), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
			c.Abort()
			return
		}

		c.Set(paramKey(name), id)
		c.Next()
	}
}

// GetIDParam returns an ID parsed by RequireIDParam.
func GetIDParam(c *gin.Context, name string) (uint64, bool) {
	value, exists := c.Get(paramKey(name))
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}

// Package respond renders the response envelope the original clients
// depend on: {"status":"success","data":...} on success and
// {"status":"failure","error":<message>} on failure.
package respond

import (
	"github.com/gin-gonic/gin"

	"github.com/whoisaditya/IWP-Backend/apperr"
)

func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"status": "success",
		"data":   data,
	})
}

func Failure(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{
		"status": "failure",
		"error":  err.Error(),
	})
}

// Error picks the status from the apperr taxonomy.
func Error(c *gin.Context, err error) {
	Failure(c, apperr.Status(err), err)
}

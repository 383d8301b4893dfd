package util

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SuccessResponse(data interface{}) gin.H {
	return gin.H{
		"success": true,
		"data":    data,
	}
}

func MessageResponse(msg string, data interface{}) gin.H {
	return gin.H{
		"success": true,
		"message": msg,
		"data":    data,
	}
}

func FailedResponse(err error) gin.H {
	return gin.H{
		"success": false,
		"message": err.Error(),
	}
}

// RespondError writes the JSON error body for err. Store and runtime
// failures are logged and muted to a generic message so internals never
// leak to the caller.
func RespondError(c *gin.Context, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Println("Internal error:", err)
		c.JSON(status, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	c.JSON(status, FailedResponse(err))
}

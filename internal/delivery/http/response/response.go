package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON envelope. ErrorKind carries the machine
// readable error class so clients can branch without parsing messages.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, kind string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		ErrorKind: kind,
		RequestID: requestID(c),
	})
}

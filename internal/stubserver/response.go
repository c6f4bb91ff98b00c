package stubserver

import "github.com/gin-gonic/gin"

// apiResponse represents a standard API response
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// respond sends a success response
func respond(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, apiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError sends an error response
func respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, apiResponse{
		Success: false,
		Message: message,
	})
}

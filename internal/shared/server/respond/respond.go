package respond

import (
	"github.com/gin-gonic/gin"

	"kyc-backend/internal/shared/telemetry"
)

// Envelope is the standard response body: {success, message, data}.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON writes a raw JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Success sends a {success:true} envelope with optional message and data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	JSON(c, status, Envelope{Success: true, Message: message, Data: data})
}

// Error sends a {success:false, message} envelope and logs the failure
// server-side with request context. Internal detail never reaches the client.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

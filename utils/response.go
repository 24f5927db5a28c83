// File: /utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

// Envelope is the shape every endpoint responds with.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, Envelope{
		Success: false,
		Error:   err,
	})
}

func SendValidationError(c *gin.Context, err string) {
	SendError(c, http.StatusBadRequest, err)
}

// SendServerError logs the underlying failure and returns a generic message,
// never the internals.
func SendServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Error:   "Server error",
	})
}

func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
	})
}

func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    data,
	})
}

func SendMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    gin.H{"message": message},
	})
}

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// API error codes.
const (
	ErrorInvalidRequest    = "INVALID_REQUEST"
	ErrorStoryNotFound     = "STORY_NOT_FOUND"
	ErrorDatasetNotFound   = "DATASET_NOT_FOUND"
	ErrorRateLimited       = "RATE_LIMITED"
	ErrorGenerationTimeout = "GENERATION_TIMEOUT"
	ErrorGenerationFailed  = "GENERATION_FAILED"
	ErrorPublishFailed     = "PUBLISH_FAILED"
)

// APIResponse is the envelope of every JSON API response.
type APIResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, APIResponse{Success: true, Data: data, Timestamp: time.Now()})
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, APIResponse{
		Success:   false,
		Error:     &APIError{Code: code, Message: message},
		Timestamp: time.Now(),
	})
}

func notFound(c *gin.Context) {
	fail(c, http.StatusNotFound, ErrorStoryNotFound, "story not found")
}

package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, err error, message string) {
	resp := APIResponse{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

// ValidationFailed reports field-level validation errors as a normal 422
// response; the error list travels in Data.
func ValidationFailed(c *gin.Context, errs any) {
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Status:  "error",
		Message: "Validation failed",
		Data:    errs,
	})
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

// errorBody is the wire shape for every failed request.
type errorBody struct {
	Error string `json:"error"`
}

// JSON sends a success response with the payload as the raw body.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// OK responds with HTTP 200 and the given payload.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Error converts err into the {"error": "..."} contract. Internal errors
// interpolate the underlying cause into the message; client errors keep
// the clean domain message only.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		message = appErr.Error()
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, errorBody{Error: message})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

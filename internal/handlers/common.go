package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fieldmate/internal/auth"
	dom "fieldmate/internal/domain"
	"fieldmate/internal/response"
	"fieldmate/internal/service"

	"github.com/gin-gonic/gin"
)

// statusOf maps service errors to HTTP statuses. Unknown errors are 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrTooManyImages):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// fail writes the error envelope. Internal errors are attached to the context
// for the request logger and hidden from the client.
func fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		response.Error(c, status, "internal error")
		return
	}
	response.Error(c, status, err.Error())
}

func badRequest(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, err.Error())
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func actor(c *gin.Context) (dom.Actor, bool) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "authorization required")
		return dom.Actor{}, false
	}
	return p, true
}

package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"travel-booking/models"
	"travel-booking/services"

	"github.com/gin-gonic/gin"
)

// Context keys set by middleware.AuthMiddleware.
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
	CtxUserRole  = "user_role"
)

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrPreconditionFailed), errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(status, models.ErrorResponse{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Message: services.Message(err),
		Error:   err.Error(),
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
		Error:   err.Error(),
	})
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func currentUserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

func currentRole(c *gin.Context) string {
	return c.GetString(CtxUserRole)
}

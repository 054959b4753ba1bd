// Package handlers implements the v1 HTTP handlers.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"makhzan/internal/core/apperror"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts the request. The JSON
// response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParamID parses the ":id" path parameter.
func (h *BaseHandler) ParamID(c *gin.Context) (int64, bool) {
	return h.ParamInt64(c, "id")
}

// ParamInt64 parses a named path parameter as int64.
func (h *BaseHandler) ParamInt64(c *gin.Context, name string) (int64, bool) {
	val, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || val <= 0 {
		h.Error(c, apperror.NewValidation("invalid path parameter").WithDetail("param", name))
		return 0, false
	}
	return val, true
}

// ParamInt64FromString parses a raw value as int64, reporting a
// validation error under the given name on failure.
func (h *BaseHandler) ParamInt64FromString(c *gin.Context, name, raw string) (int64, bool) {
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val < 0 {
		h.Error(c, apperror.NewValidation("invalid parameter").WithDetail("param", name))
		return 0, false
	}
	return val, true
}

// QueryDate parses an optional date query parameter, RFC 3339 or
// YYYY-MM-DD. Returns (nil, true) when the parameter is absent.
func (h *BaseHandler) QueryDate(c *gin.Context, key string) (*time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, val); err == nil {
			return &t, true
		}
	}
	h.Error(c, apperror.NewValidation("invalid date").
		WithDetail("param", key).
		WithDetail("value", val))
	return nil, false
}

// Created sends 201 response with ID.
func (h *BaseHandler) Created(c *gin.Context, id int64) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/domain"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// CatalogHandler serves CRUD endpoints for one catalog entity. The entity
// itself is the request and response body; Validate runs in the service.
type CatalogHandler[T domain.Validatable] struct {
	*BaseHandler
	service *domain.CatalogService[T]
	newFn   func() T
	setID   func(entity T, id int64)
	getID   func(entity T) int64
}

// NewCatalogHandler creates a catalog handler for one entity type.
func NewCatalogHandler[T domain.Validatable](
	base *BaseHandler,
	service *domain.CatalogService[T],
	newFn func() T,
	getID func(entity T) int64,
	setID func(entity T, id int64),
) *CatalogHandler[T] {
	return &CatalogHandler[T]{
		BaseHandler: base,
		service:     service,
		newFn:       newFn,
		getID:       getID,
		setID:       setID,
	}
}

// RegisterRoutes mounts the CRUD routes on the group.
func (h *CatalogHandler[T]) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Create handles POST "".
func (h *CatalogHandler[T]) Create(c *gin.Context) {
	entity := h.newFn()
	if !h.BindJSON(c, entity) {
		return
	}
	if err := h.service.Create(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, h.getID(entity))
}

// Get handles GET "/:id".
func (h *CatalogHandler[T]) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entity)
}

// Update handles PUT "/:id".
func (h *CatalogHandler[T]) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	entity := h.newFn()
	if !h.BindJSON(c, entity) {
		return
	}
	h.setID(entity, id)
	if err := h.service.Update(c.Request.Context(), entity); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entity)
}

// Delete handles DELETE "/:id".
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET "".
func (h *CatalogHandler[T]) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	result, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

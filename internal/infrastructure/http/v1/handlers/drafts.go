package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/core/types"
	"makhzan/internal/domain/drafts"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// DraftsHandler serves the draft assembly endpoints. The draft owner is
// taken from the X-Client-ID header, falling back to the client IP, since
// the API carries no authentication.
type DraftsHandler struct {
	*BaseHandler
	service *drafts.Service
}

// NewDraftsHandler creates a new drafts handler.
func NewDraftsHandler(base *BaseHandler, service *drafts.Service) *DraftsHandler {
	return &DraftsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the draft routes.
func (h *DraftsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:kind", h.Get)
	rg.POST("/:kind/items", h.AddItem)
	rg.DELETE("/:kind/items/:line", h.RemoveItem)
	rg.DELETE("/:kind", h.Clear)
}

func (h *DraftsHandler) owner(c *gin.Context) string {
	if id := c.GetHeader("X-Client-ID"); id != "" {
		return id
	}
	return c.ClientIP()
}

// Get handles GET "/:kind".
func (h *DraftsHandler) Get(c *gin.Context) {
	draft, err := h.service.Get(c.Request.Context(), h.owner(c), drafts.Kind(c.Param("kind")))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, draft)
}

// AddItem handles POST "/:kind/items".
func (h *DraftsHandler) AddItem(c *gin.Context) {
	var req dto.AddDraftItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := drafts.Item{
		AssetID:      req.AssetID,
		Quantity:     req.Quantity,
		SerialNumber: req.SerialNumber,
		ItemID:       req.ItemID,
		Purpose:      req.Purpose,
		Condition:    req.Condition,
		Notes:        req.Notes,
	}
	if req.Price != nil {
		price, err := types.NewMoneyFromString(*req.Price)
		if err != nil {
			h.Error(c, err)
			return
		}
		item.Price = &price
	}

	draft, err := h.service.AddItem(c.Request.Context(), h.owner(c), drafts.Kind(c.Param("kind")), item)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, draft)
}

// RemoveItem handles DELETE "/:kind/items/:line".
func (h *DraftsHandler) RemoveItem(c *gin.Context) {
	line, ok := h.ParamInt64(c, "line")
	if !ok {
		return
	}
	draft, err := h.service.RemoveItem(c.Request.Context(), h.owner(c), drafts.Kind(c.Param("kind")), int(line))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, draft)
}

// Clear handles DELETE "/:kind".
func (h *DraftsHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), h.owner(c), drafts.Kind(c.Param("kind"))); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/assets"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// AssetsHandler serves the asset ledger endpoints.
type AssetsHandler struct {
	*BaseHandler
	service *assets.Service
}

// NewAssetsHandler creates a new assets handler.
func NewAssetsHandler(base *BaseHandler, service *assets.Service) *AssetsHandler {
	return &AssetsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the asset routes on the group.
func (h *AssetsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/prices", h.PriceStats)
}

// Create handles POST "".
func (h *AssetsHandler) Create(c *gin.Context) {
	var req dto.AssetRequest
	if !h.BindJSON(c, &req) {
		return
	}
	asset := req.ToAsset()
	if err := h.service.Create(c.Request.Context(), asset); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, asset.ID)
}

// Get handles GET "/:id".
func (h *AssetsHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	asset, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, asset)
}

// Update handles PUT "/:id". Price history and stock are preserved from
// the stored row; only descriptive fields change.
func (h *AssetsHandler) Update(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	var req dto.AssetRequest
	if !h.BindJSON(c, &req) {
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	current.CategoryID = req.CategoryID
	current.Name = req.Name
	current.Brand = req.Brand
	current.BrandEN = req.BrandEN
	current.Unit = assets.Unit(req.Unit)

	if err := h.service.Update(c.Request.Context(), current); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, current)
}

// Delete handles DELETE "/:id".
func (h *AssetsHandler) Delete(c *gin.Context) {
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

// List handles GET "". ?inStock=true keeps only assets with stock > 0.
func (h *AssetsHandler) List(c *gin.Context) {
	var q dto.AssetListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	ctx := c.Request.Context()

	if q.CategoryID > 0 {
		items, err := h.service.ListByCategory(ctx, q.CategoryID)
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, filterInStock(items, q.InStock))
		return
	}

	result, err := h.service.List(ctx, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	if q.InStock {
		result.Items = filterInStock(result.Items, true)
	}
	h.OK(c, result)
}

func filterInStock(items []*assets.Asset, inStock bool) []*assets.Asset {
	if !inStock {
		return items
	}
	out := make([]*assets.Asset, 0, len(items))
	for _, a := range items {
		if a.Stock > 0 {
			out = append(out, a)
		}
	}
	return out
}

// PriceStats handles GET "/:id/prices".
func (h *AssetsHandler) PriceStats(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	resp := dto.PriceStatsResponse{AssetID: id}
	if avg, ok, err := h.service.AveragePrice(ctx, id); err != nil {
		h.Error(c, err)
		return
	} else if ok {
		resp.Average = &avg
	}
	if med, ok, err := h.service.MedianPrice(ctx, id); err != nil {
		h.Error(c, err)
		return
	} else if ok {
		resp.Median = &med
	}
	h.OK(c, resp)
}

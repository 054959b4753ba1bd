package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/documents/export_record"
	"makhzan/internal/domain/documents/import_record"
	"makhzan/internal/domain/documents/returns"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// ImportsHandler serves the goods-receipt endpoints.
type ImportsHandler struct {
	*BaseHandler
	service *import_record.Service
}

// NewImportsHandler creates a new imports handler.
func NewImportsHandler(base *BaseHandler, service *import_record.Service) *ImportsHandler {
	return &ImportsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the import document routes.
func (h *ImportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

// Create handles POST "".
func (h *ImportsHandler) Create(c *gin.Context) {
	var req dto.CreateImportRequest
	if !h.BindJSON(c, &req) {
		return
	}
	record := req.ToRecord()
	if err := h.service.Create(c.Request.Context(), record); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, record.ID)
}

// Get handles GET "/:id".
func (h *ImportsHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	record, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"record": record, "grandTotal": record.GrandTotal()})
}

// List handles GET "".
func (h *ImportsHandler) List(c *gin.Context) {
	filter, ok := h.bindItemFilter(c)
	if !ok {
		return
	}
	records, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": records})
}

func (h *BaseHandler) bindItemFilter(c *gin.Context) (documents.ItemFilter, bool) {
	var filter documents.ItemFilter

	if raw := c.Query("recordId"); raw != "" {
		id, ok := h.ParamInt64FromString(c, "recordId", raw)
		if !ok {
			return filter, false
		}
		filter.RecordID = id
	}
	filter.AssetName = c.Query("assetName")

	from, ok := h.QueryDate(c, "from")
	if !ok {
		return filter, false
	}
	to, ok := h.QueryDate(c, "to")
	if !ok {
		return filter, false
	}
	filter.DateFrom = from
	filter.DateTo = to

	filter.Limit = 50
	if raw := c.Query("limit"); raw != "" {
		if n, ok := h.ParamInt64FromString(c, "limit", raw); ok {
			filter.Limit = int(n)
		} else {
			return filter, false
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if n, ok := h.ParamInt64FromString(c, "offset", raw); ok {
			filter.Offset = int(n)
		} else {
			return filter, false
		}
	}
	return filter, true
}

// ExportsHandler serves the goods-issue endpoints.
type ExportsHandler struct {
	*BaseHandler
	service *export_record.Service
}

// NewExportsHandler creates a new exports handler.
func NewExportsHandler(base *BaseHandler, service *export_record.Service) *ExportsHandler {
	return &ExportsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the export document routes.
func (h *ExportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}

// Create handles POST "".
func (h *ExportsHandler) Create(c *gin.Context) {
	var req dto.CreateExportRequest
	if !h.BindJSON(c, &req) {
		return
	}
	record := req.ToRecord()
	if err := h.service.Create(c.Request.Context(), record); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, record.ID)
}

// Get handles GET "/:id".
func (h *ExportsHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	record, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"record": record, "grandTotal": record.GrandTotal()})
}

// List handles GET "".
func (h *ExportsHandler) List(c *gin.Context) {
	itemFilter, ok := h.bindItemFilter(c)
	if !ok {
		return
	}
	filter := export_record.Filter{
		ItemFilter: itemFilter,
		ExportType: export_record.ExportType(c.Query("exportType")),
	}
	records, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": records})
}

// ReturnsHandler serves the return batch endpoints.
type ReturnsHandler struct {
	*BaseHandler
	service *returns.Service
}

// NewReturnsHandler creates a new returns handler.
func NewReturnsHandler(base *BaseHandler, service *returns.Service) *ReturnsHandler {
	return &ReturnsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the return routes.
func (h *ReturnsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:kind", h.List)
}

// Create handles POST "".
func (h *ReturnsHandler) Create(c *gin.Context) {
	var req dto.CreateReturnRequest
	if !h.BindJSON(c, &req) {
		return
	}
	returnID, err := h.service.Create(c.Request.Context(), req.ToBatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReturnCreatedResponse{ReturnID: returnID})
}

// List handles GET "/:kind".
func (h *ReturnsHandler) List(c *gin.Context) {
	filter, ok := h.bindItemFilter(c)
	if !ok {
		return
	}
	items, err := h.service.ListReturned(c.Request.Context(), returns.Kind(c.Param("kind")), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": items})
}

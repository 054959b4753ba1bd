package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/reports"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves the reconciliation endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inventory", h.Inventory)
	rg.GET("/inventory/asset/:id", h.AssetReconciliation)
	rg.GET("/inventory/:year", h.Annual)
	rg.PUT("/committee/:year", h.SaveCommittee)
	rg.GET("/committee/:year", h.GetCommittee)
}

// Inventory handles GET "/inventory?asOf=". Defaults to now.
func (h *ReportsHandler) Inventory(c *gin.Context) {
	asOf, ok := h.QueryDate(c, "asOf")
	if !ok {
		return
	}
	cutoff := time.Now().UTC()
	if asOf != nil {
		cutoff = *asOf
	}

	report, err := h.service.ReconcileAll(c.Request.Context(), cutoff)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// AssetReconciliation handles GET "/inventory/asset/:id?asOf=".
func (h *ReportsHandler) AssetReconciliation(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	asOf, ok := h.QueryDate(c, "asOf")
	if !ok {
		return
	}
	cutoff := time.Now().UTC()
	if asOf != nil {
		cutoff = *asOf
	}

	rec, err := h.service.Reconcile(c.Request.Context(), id, cutoff)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rec)
}

// Annual handles GET "/inventory/:year".
func (h *ReportsHandler) Annual(c *gin.Context) {
	year, ok := h.ParamInt64(c, "year")
	if !ok {
		return
	}
	report, err := h.service.AnnualReport(c.Request.Context(), int(year))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// SaveCommittee handles PUT "/committee/:year".
func (h *ReportsHandler) SaveCommittee(c *gin.Context) {
	year, ok := h.ParamInt64(c, "year")
	if !ok {
		return
	}
	var req dto.CommitteeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	committee := &reports.Committee{
		Year:        int(year),
		PresidentID: req.PresidentID,
		MemberIDs:   req.MemberIDs,
	}
	if err := h.service.SaveCommittee(c.Request.Context(), committee); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, committee)
}

// GetCommittee handles GET "/committee/:year".
func (h *ReportsHandler) GetCommittee(c *gin.Context) {
	year, ok := h.ParamInt64(c, "year")
	if !ok {
		return
	}
	committee, err := h.service.GetCommittee(c.Request.Context(), int(year))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, committee)
}

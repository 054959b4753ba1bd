package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/catalogs/affiliate"
	"makhzan/internal/domain/catalogs/employee"
)

// EmployeesHandler extends the generic catalog CRUD with a by-department
// listing.
type EmployeesHandler struct {
	*CatalogHandler[*employee.Employee]
	service *employee.Service
}

// NewEmployeesHandler creates a new employees handler.
func NewEmployeesHandler(base *BaseHandler, service *employee.Service) *EmployeesHandler {
	return &EmployeesHandler{
		CatalogHandler: NewCatalogHandler(
			base,
			service.CatalogService,
			func() *employee.Employee { return &employee.Employee{} },
			func(e *employee.Employee) int64 { return e.ID },
			func(e *employee.Employee, id int64) { e.ID = id },
		),
		service: service,
	}
}

// RegisterRoutes mounts the CRUD routes plus the department listing.
func (h *EmployeesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.CatalogHandler.RegisterRoutes(rg)
}

// RegisterDepartmentRoutes mounts GET "/:id/employees" on the departments group.
func (h *EmployeesHandler) RegisterDepartmentRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/employees", h.ListByDepartment)
}

// ListByDepartment handles GET "/departments/:id/employees".
func (h *EmployeesHandler) ListByDepartment(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	items, err := h.service.ListByDepartment(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": items})
}

// AffiliatesHandler extends the generic catalog CRUD with the subdivision
// catalog nested under each affiliate.
type AffiliatesHandler struct {
	*CatalogHandler[*affiliate.Affiliate]
	service *affiliate.Service
}

// NewAffiliatesHandler creates a new affiliates handler.
func NewAffiliatesHandler(base *BaseHandler, service *affiliate.Service) *AffiliatesHandler {
	return &AffiliatesHandler{
		CatalogHandler: NewCatalogHandler(
			base,
			service.CatalogService,
			func() *affiliate.Affiliate { return &affiliate.Affiliate{} },
			func(a *affiliate.Affiliate) int64 { return a.ID },
			func(a *affiliate.Affiliate, id int64) { a.ID = id },
		),
		service: service,
	}
}

// RegisterRoutes mounts the affiliate CRUD routes plus "/:id/subs".
func (h *AffiliatesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	h.CatalogHandler.RegisterRoutes(rg)
	rg.GET("/:id/subs", h.ListSubs)
}

// ListSubs handles GET "/:id/subs".
func (h *AffiliatesHandler) ListSubs(c *gin.Context) {
	id, ok := h.ParamID(c)
	if !ok {
		return
	}
	items, err := h.service.ListSubs(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": items})
}

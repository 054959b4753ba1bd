// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"makhzan/internal/domain/assets"
	"makhzan/internal/domain/catalogs/affiliate"
	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/domain/catalogs/company"
	"makhzan/internal/domain/catalogs/department"
	"makhzan/internal/domain/catalogs/employee"
	"makhzan/internal/domain/documents/export_record"
	"makhzan/internal/domain/documents/import_record"
	"makhzan/internal/domain/documents/returns"
	"makhzan/internal/domain/drafts"
	"makhzan/internal/domain/recipients"
	"makhzan/internal/domain/reports"
	"makhzan/internal/infrastructure/cache"
	"makhzan/internal/infrastructure/http/v1/handlers"
	"makhzan/internal/infrastructure/http/v1/middleware"
	"makhzan/internal/infrastructure/storage/postgres"
	"makhzan/internal/infrastructure/storage/postgres/asset_repo"
	"makhzan/internal/infrastructure/storage/postgres/catalog_repo"
	"makhzan/internal/infrastructure/storage/postgres/document_repo"
	"makhzan/internal/infrastructure/storage/postgres/report_repo"
	"makhzan/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool
	Pool *postgres.Pool

	// Redis backs the draft store
	Redis *redis.Client

	// Logger for request logging
	Logger *logger.Logger

	// DraftTTL is how long an untouched draft survives
	DraftTTL time.Duration

	// Development keeps Gin in debug mode
	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool.Pool, cfg.Redis)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	txManager := postgres.NewTxManager(cfg.Pool)
	baseHandler := handlers.NewBaseHandler()

	// Catalog services are shared between their own routes and the
	// document services that validate against them.
	categoryService := category.NewService(catalog_repo.NewCategoryRepo(txManager), txManager)
	companyService := company.NewService(catalog_repo.NewCompanyRepo(txManager), txManager)
	departmentService := department.NewService(catalog_repo.NewDepartmentRepo(txManager), txManager)
	employeeService := employee.NewService(catalog_repo.NewEmployeeRepo(txManager), txManager)
	affiliateService := affiliate.NewService(
		catalog_repo.NewAffiliateRepo(txManager),
		catalog_repo.NewSubAffiliateRepo(txManager),
		txManager,
	)

	assetService := assets.NewService(asset_repo.NewAssetRepo(txManager), txManager)
	directory := recipients.NewDirectory(departmentService, employeeService, affiliateService)

	importService := import_record.NewService(document_repo.NewImportRecordRepo(txManager), assetService, txManager)
	exportService := export_record.NewService(document_repo.NewExportRecordRepo(txManager), assetService, directory, txManager)
	returnService := returns.NewService(document_repo.NewReturnsRepo(txManager), txManager)
	reportService := reports.NewService(report_repo.NewReportRepo(txManager), txManager)
	draftService := drafts.NewService(cache.NewDraftStore(cfg.Redis, cfg.DraftTTL), assetService)

	api := router.Group("/api/v1")
	{
		catalogs := api.Group("/catalogs")
		{
			categoriesHandler := handlers.NewCatalogHandler(
				baseHandler, categoryService.CatalogService,
				func() *category.Category { return &category.Category{} },
				func(e *category.Category) int64 { return e.ID },
				func(e *category.Category, id int64) { e.ID = id },
			)
			categoriesHandler.RegisterRoutes(catalogs.Group("/categories"))

			companiesHandler := handlers.NewCatalogHandler(
				baseHandler, companyService.CatalogService,
				func() *company.Company { return &company.Company{} },
				func(e *company.Company) int64 { return e.ID },
				func(e *company.Company, id int64) { e.ID = id },
			)
			companiesHandler.RegisterRoutes(catalogs.Group("/companies"))

			departmentsHandler := handlers.NewCatalogHandler(
				baseHandler, departmentService.CatalogService,
				func() *department.Department { return &department.Department{} },
				func(e *department.Department) int64 { return e.ID },
				func(e *department.Department, id int64) { e.ID = id },
			)
			departmentsGroup := catalogs.Group("/departments")
			departmentsHandler.RegisterRoutes(departmentsGroup)

			employeesHandler := handlers.NewEmployeesHandler(baseHandler, employeeService)
			employeesHandler.RegisterRoutes(catalogs.Group("/employees"))
			employeesHandler.RegisterDepartmentRoutes(departmentsGroup)

			affiliatesHandler := handlers.NewAffiliatesHandler(baseHandler, affiliateService)
			affiliatesHandler.RegisterRoutes(catalogs.Group("/affiliates"))

			subsHandler := handlers.NewCatalogHandler(
				baseHandler, affiliateService.Subs(),
				func() *affiliate.SubAffiliate { return &affiliate.SubAffiliate{} },
				func(e *affiliate.SubAffiliate) int64 { return e.ID },
				func(e *affiliate.SubAffiliate, id int64) { e.ID = id },
			)
			subsHandler.RegisterRoutes(catalogs.Group("/sub-affiliates"))
		}

		assetsHandler := handlers.NewAssetsHandler(baseHandler, assetService)
		assetsHandler.RegisterRoutes(api.Group("/assets"))

		docs := api.Group("/documents")
		{
			importsHandler := handlers.NewImportsHandler(baseHandler, importService)
			importsHandler.RegisterRoutes(docs.Group("/imports"))

			exportsHandler := handlers.NewExportsHandler(baseHandler, exportService)
			exportsHandler.RegisterRoutes(docs.Group("/exports"))

			returnsHandler := handlers.NewReturnsHandler(baseHandler, returnService)
			returnsHandler.RegisterRoutes(docs.Group("/returns"))
		}

		draftsHandler := handlers.NewDraftsHandler(baseHandler, draftService)
		draftsHandler.RegisterRoutes(api.Group("/drafts"))

		reportsHandler := handlers.NewReportsHandler(baseHandler, reportService)
		reportsHandler.RegisterRoutes(api.Group("/reports"))
	}

	return router
}

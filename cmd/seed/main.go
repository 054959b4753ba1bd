// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"makhzan/internal/config"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/assets"
	"makhzan/internal/domain/catalogs/affiliate"
	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/domain/catalogs/company"
	"makhzan/internal/domain/catalogs/department"
	"makhzan/internal/domain/catalogs/employee"
	"makhzan/internal/domain/documents/import_record"
	"makhzan/internal/infrastructure/storage/postgres"
	"makhzan/internal/infrastructure/storage/postgres/asset_repo"
	"makhzan/internal/infrastructure/storage/postgres/catalog_repo"
	"makhzan/internal/infrastructure/storage/postgres/document_repo"
	"makhzan/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	// Skip seeding when catalogs are already populated.
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		log.Fatalw("failed to check existing data", "error", err)
	}
	if count > 0 {
		log.Infow("database already seeded", "categories", count)
		return
	}

	if err := seed(ctx, pool, log); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seed(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	txManager := postgres.NewTxManager(pool)

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
	importService := import_record.NewService(document_repo.NewImportRecordRepo(txManager), assetService, txManager)

	// --- Categories ---
	furniture := category.New("Furniture", "Desks, chairs and office fittings")
	electronics := category.New("Electronics", "Computers, printers and peripherals")
	for _, c := range []*category.Category{furniture, electronics} {
		if err := categoryService.Create(ctx, c); err != nil {
			return fmt.Errorf("create category %q: %w", c.Name, err)
		}
	}
	log.Infow("categories created", "count", 2)

	// --- Supplier ---
	supplier := company.New("Al Noor Trading Co.")
	if err := companyService.Create(ctx, supplier); err != nil {
		return fmt.Errorf("create company: %w", err)
	}

	// --- Departments and staff ---
	itDept := department.New(department.KindDepartment, "Information Technology")
	if err := departmentService.Create(ctx, itDept); err != nil {
		return fmt.Errorf("create department: %w", err)
	}

	storekeeper := employee.New("Ahmed Saleh", employee.TitleEmployee, itDept.ID)
	manager := employee.New("Mona Khalid", employee.TitleManager, itDept.ID)
	for _, e := range []*employee.Employee{storekeeper, manager} {
		if err := employeeService.Create(ctx, e); err != nil {
			return fmt.Errorf("create employee %q: %w", e.Name, err)
		}
	}

	// --- External body ---
	ministry := &affiliate.Affiliate{Kind: affiliate.KindMinistry, Name: "Ministry of Education"}
	if err := affiliateService.Create(ctx, ministry); err != nil {
		return fmt.Errorf("create affiliate: %w", err)
	}
	sub := &affiliate.SubAffiliate{
		AffiliateID: ministry.ID,
		Name:        "Planning Office",
		Kind:        affiliate.SubKindOffice,
	}
	if err := affiliateService.Subs().Create(ctx, sub); err != nil {
		return fmt.Errorf("create sub-affiliate: %w", err)
	}

	// --- Assets ---
	desk := assets.New(furniture.ID, "Office Desk", assets.UnitPiece)
	laptop := assets.New(electronics.ID, "Laptop", assets.UnitPiece)
	for _, a := range []*assets.Asset{desk, laptop} {
		if err := assetService.Create(ctx, a); err != nil {
			return fmt.Errorf("create asset %q: %w", a.Name, err)
		}
	}
	log.Infow("assets created", "count", 2)

	// --- Opening import ---
	record := &import_record.ImportRecord{
		CompanyID: supplier.ID,
		Date:      time.Now().UTC(),
		Notes:     "opening balance",
		Items: []*import_record.ImportItem{
			{AssetID: desk.ID, Quantity: 10, Price: types.MustMoney("150.00")},
			{AssetID: laptop.ID, Quantity: 5, Price: types.MustMoney("899.75")},
		},
	}
	if err := importService.Create(ctx, record); err != nil {
		return fmt.Errorf("create opening import: %w", err)
	}
	log.Infow("opening import posted", "record_id", record.ID)

	return nil
}

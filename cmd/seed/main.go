package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/beautique/beautique-backend/config"
	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/internal/app/repository"
	"github.com/beautique/beautique-backend/internal/app/service"
	"github.com/beautique/beautique-backend/internal/db"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
)

// Expected sheet columns:
// name | description | regular_price | sale_price | category | sizes | colors | images | bestseller
// sizes/colors/images are comma separated; bestseller is yes/no.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Bootstrap the admin account before touching the catalog
	if cfg.Admin.Password != "" {
		adminRepo := repository.NewAdminRepository(db.GetDB())
		authService := service.NewAuthService(adminRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
		if err := authService.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal("Failed to ensure admin account:", err)
		}
		fmt.Printf("Admin account ready: %s\n", cfg.Admin.Username)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

var knownCategories = map[string]model.ProductCategory{
	"maxi":           model.CategoryMaxi,
	"lehanga choli":  model.CategoryLehangaCholi,
	"long shirt":     model.CategoryLongShirt,
	"shalwar kameez": model.CategoryShalwarKameez,
	"gharara":        model.CategoryGharara,
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 5 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		priceStr := strings.TrimSpace(row[2])
		salePriceStr := ""
		if len(row) > 3 {
			salePriceStr = strings.TrimSpace(row[3])
		}
		categoryStr := strings.TrimSpace(row[4])

		if name == "" || priceStr == "" || categoryStr == "" {
			skippedCount++
			continue
		}

		category, ok := knownCategories[strings.ToLower(categoryStr)]
		if !ok {
			fmt.Printf("Row %d: unknown category %q, skipping\n", i+1, categoryStr)
			skippedCount++
			continue
		}

		regularPrice, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || regularPrice <= 0 {
			skippedCount++
			continue
		}

		var salePrice *float64
		if salePriceStr != "" {
			v, err := strconv.ParseFloat(salePriceStr, 64)
			if err != nil || v <= 0 {
				skippedCount++
				continue
			}
			salePrice = &v
		}

		// Duplicate check by name and category
		key := fmt.Sprintf("%s|%s", strings.ToLower(name), category)
		if seen[key] {
			skippedCount++
			continue
		}
		seen[key] = true

		product := model.Product{
			Name:         name,
			Description:  description,
			RegularPrice: regularPrice,
			SalePrice:    salePrice,
			Category:     category,
			Sizes:        splitList(cell(row, 5)),
			Colors:       splitList(cell(row, 6)),
			Images:       splitList(cell(row, 7)),
			IsBestseller: parseBool(cell(row, 8)),
			IsActive:     true,
		}

		products = append(products, product)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func splitList(s string) pq.StringArray {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result pq.StringArray
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

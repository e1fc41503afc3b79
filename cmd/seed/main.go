package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wolfeagle1193/tukki-api-sub000/config"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/db"
	"github.com/xuri/excelize/v2"
)

// Bulk importer for CMS content. Reads one XLSX workbook with a sheet per
// collection (hotels, events, treasures, regions, popular_places) and
// inserts the rows in batches.
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

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX:", err)
	}
	defer f.Close()

	counts := map[model.EntityKind]int{}
	for _, kind := range model.AllEntityKinds {
		entities, err := readSheet(f, kind)
		if err != nil {
			log.Fatalf("Failed to read sheet for %s: %v", kind, err)
		}
		counts[kind] = len(entities)
		fmt.Printf("  %s: %d rows\n", kind.TableName(), len(entities))
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	const batchSize = 500
	total := 0
	for _, kind := range model.AllEntityKinds {
		entities, err := readSheet(f, kind)
		if err != nil {
			log.Fatalf("Failed to read sheet for %s: %v", kind, err)
		}
		if len(entities) == 0 {
			continue
		}

		slice := toModelSlice(kind, entities)
		if err := db.GetDB().CreateInBatches(slice, batchSize).Error; err != nil {
			log.Fatalf("Failed to import %s: %v", kind.TableName(), err)
		}
		total += len(entities)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total entities imported: %d\n", total)
}

// readSheet parses one collection sheet. The first row must be a header;
// unknown columns are ignored, rows without a usable title are skipped.
func readSheet(f *excelize.File, kind model.EntityKind) ([]*model.EntityUpsertRequest, error) {
	sheetName := kind.TableName()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		// a missing sheet just means nothing to import for that kind
		return nil, nil
	}
	if len(rows) < 2 {
		return nil, nil
	}

	colIndex := map[string]int{}
	for i, header := range rows[0] {
		colIndex[strings.ToLower(strings.TrimSpace(header))] = i
	}
	if _, ok := colIndex["title"]; !ok {
		return nil, fmt.Errorf("sheet %s has no title column", sheetName)
	}

	cell := func(row []string, name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	seen := make(map[string]bool)
	var requests []*model.EntityUpsertRequest

	for _, row := range rows[1:] {
		title := cell(row, "title")
		if len([]rune(title)) < 2 {
			continue
		}

		location := cell(row, "location")
		key := title + "|" + location
		if seen[key] {
			continue
		}
		seen[key] = true

		req := &model.EntityUpsertRequest{
			Title:       title,
			Description: cell(row, "description"),
			Location:    location,
			Address:     cell(row, "address"),
		}

		if urls := cell(row, "image_urls"); urls != "" {
			for _, u := range strings.Split(urls, ",") {
				if trimmed := strings.TrimSpace(u); trimmed != "" {
					req.ImageURLs = append(req.ImageURLs, trimmed)
				}
			}
		}

		switch kind {
		case model.KindHotel:
			if price, err := strconv.ParseInt(cell(row, "price_per_night"), 10, 64); err == nil {
				req.PricePerNight = &price
			}
			if stars, err := strconv.Atoi(cell(row, "stars")); err == nil && stars >= 1 && stars <= 5 {
				req.Stars = &stars
			}
		case model.KindEvent:
			if venue := cell(row, "venue"); venue != "" {
				req.Venue = &venue
			}
			if t, err := time.Parse("2006-01-02", cell(row, "starts_at")); err == nil {
				req.StartsAt = &t
			}
			if t, err := time.Parse("2006-01-02", cell(row, "ends_at")); err == nil {
				req.EndsAt = &t
			}
		case model.KindTreasure:
			if era := cell(row, "era"); era != "" {
				req.Era = &era
			}
		case model.KindRegion:
			if code := cell(row, "code"); code != "" {
				req.Code = &code
			}
		case model.KindPopularPlace:
			if category := cell(row, "category"); category != "" {
				req.Category = &category
			}
		}

		requests = append(requests, req)
	}

	return requests, nil
}

// toModelSlice materializes requests into the concrete model slice so GORM
// writes the right table.
func toModelSlice(kind model.EntityKind, requests []*model.EntityUpsertRequest) interface{} {
	switch kind {
	case model.KindHotel:
		out := make([]model.Hotel, len(requests))
		for i, req := range requests {
			out[i].Apply(req)
		}
		return out
	case model.KindEvent:
		out := make([]model.Event, len(requests))
		for i, req := range requests {
			out[i].Apply(req)
		}
		return out
	case model.KindTreasure:
		out := make([]model.Treasure, len(requests))
		for i, req := range requests {
			out[i].Apply(req)
		}
		return out
	case model.KindRegion:
		out := make([]model.Region, len(requests))
		for i, req := range requests {
			out[i].Apply(req)
		}
		return out
	case model.KindPopularPlace:
		out := make([]model.PopularPlace, len(requests))
		for i, req := range requests {
			out[i].Apply(req)
		}
		return out
	}
	return nil
}

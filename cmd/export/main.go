// Command export writes the whole directory to an xlsx spreadsheet,
// for sharing outside the tool.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"peopledex/internal/models"
	"peopledex/internal/repositories"
	"peopledex/pkg/config"
	"peopledex/pkg/database"
	"peopledex/pkg/logger"
)

func main() {
	out := flag.String("out", "people.xlsx", "output file path")
	flag.Parse()

	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init()

	if err := database.Init(); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	personRepo := repositories.NewPersonRepository(database.DB)
	people, err := personRepo.GetAll(context.Background())
	if err != nil {
		logger.Fatalf("Failed to load people: %v", err)
	}

	if err := writeSpreadsheet(people, *out); err != nil {
		logger.Fatalf("Failed to write %s: %v", *out, err)
	}
	logger.Infof("Exported %d people to %s", len(people), *out)
}

func writeSpreadsheet(people []*models.Person, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "People"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headers := []string{"ID", "Name", "Phone Number", "Email", "Location", "Created At", "Updated At"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for row, p := range people {
		values := []interface{}{
			p.ID, p.Name, p.PhoneNumber, deref(p.Email), deref(p.Location),
			p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

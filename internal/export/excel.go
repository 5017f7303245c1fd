// Package export writes complaint data to an Excel workbook for offline
// review by oversight bodies.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sauti/backend/internal/models"
)

var headers = []string{
	"ID", "Created", "County", "Category", "Urgency", "Sentiment",
	"Summary", "Raw Text", "Officer", "Department", "AI Processed", "Verified",
}

// WriteWorkbook writes the complaints to path as a single-sheet .xlsx file.
func WriteWorkbook(path string, complaints []models.Complaint) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Complaints"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, complaint := range complaints {
		values := []interface{}{
			complaint.ID,
			complaint.CreatedAt.Format("2006-01-02 15:04"),
			complaint.County,
			complaint.Category,
			complaint.Urgency,
			complaint.Sentiment,
			complaint.Summary,
			complaint.RawText,
			complaint.OfficerName,
			complaint.DepartmentName,
			complaint.AIProcessed,
			complaint.IsVerified,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

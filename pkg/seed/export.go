package seed

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	devicesSheet = "Devices"
	countsSheet  = "Counts"
)

// WriteXLSX saves the read-back devices and table counts to a workbook at path.
func (r *VerifyReport) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(devicesSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(countsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	deviceRows := [][]any{{"ID", "Name", "Location", "Active", "Token", "Created At"}}
	for _, d := range r.Devices {
		deviceRows = append(deviceRows, []any{d.ID, d.Name, d.Location, d.IsActive, d.DeviceToken, d.CreatedAt})
	}
	if err := writeRows(f, devicesSheet, deviceRows, headerStyle); err != nil {
		return err
	}

	countRows := [][]any{{"Table", "Rows"}}
	for _, c := range r.Counts {
		countRows = append(countRows, []any{c.Table, c.Rows})
	}
	if err := writeRows(f, countsSheet, countRows, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}

	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	return nil
}

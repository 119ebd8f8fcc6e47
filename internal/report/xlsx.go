package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	LinesSheet   = "Lines"

	// Built-in excelize number format "#,##0.00".
	moneyNumFmt = 4
)

var lineColumnWidths = []float64{12, 22, 28, 14, 14, 12, 10, 12, 16}

// WriteXLSX writes a workbook with a summary sheet and a line-item sheet.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	summaryIdx, err := f.NewSheet(SummarySheet)
	if err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if _, err := f.NewSheet(LinesSheet); err != nil {
		return fmt.Errorf("creating lines sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	f.SetActiveSheet(summaryIdx)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: moneyNumFmt})
	if err != nil {
		return fmt.Errorf("creating total style: %w", err)
	}

	if err := writeSummarySheet(f, r, headerStyle, moneyStyle, totalStyle); err != nil {
		return err
	}
	if err := writeLinesSheet(f, r, headerStyle, moneyStyle, totalStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, r *Report, headerStyle, moneyStyle, totalStyle int) error {
	est := r.Estimate
	rows := [][]any{
		{"Estimate", r.Title},
		{"Project", est.ProjectName},
		{"Global Tier", est.GlobalTier},
		{"Tier Derived", est.TierDerived},
		{"Catalog", est.CatalogVersion},
		{"Total Cost", est.TotalCost},
	}
	for i, row := range rows {
		if err := setRow(f, SummarySheet, 1, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "B6", "B6", totalStyle); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}

	start := len(rows) + 2
	if err := setRow(f, SummarySheet, 1, start, []any{"Trade", "Cost", "Percent"}); err != nil {
		return err
	}
	if err := styleRow(f, SummarySheet, start, 3, headerStyle); err != nil {
		return err
	}
	for i, c := range r.Categories() {
		row := start + 1 + i
		if err := setRow(f, SummarySheet, 1, row, []any{c.Trade, c.Cost, c.Percent}); err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellStyle(SummarySheet, cell, cell, moneyStyle); err != nil {
			return fmt.Errorf("styling category: %w", err)
		}
	}
	for i, warn := range est.Warnings {
		if i == 0 {
			if err := setRow(f, SummarySheet, 5, start, []any{"Warnings"}); err != nil {
				return err
			}
		}
		if err := setRow(f, SummarySheet, 5, start+1+i, []any{warn}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "B", "C", 18)
}

func writeLinesSheet(f *excelize.File, r *Report, headerStyle, moneyStyle, totalStyle int) error {
	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := setRow(f, LinesSheet, 1, 1, header); err != nil {
		return err
	}
	if err := styleRow(f, LinesSheet, 1, len(Header), headerStyle); err != nil {
		return err
	}

	lines := r.Lines()
	for i, l := range lines {
		row := i + 2
		err := setRow(f, LinesSheet, 1, row, []any{
			l.RoomID, l.Room, l.Trade, l.Tier, l.Scope, l.UnitBasis, l.Quantity, l.Multiplier, l.Cost,
		})
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(len(Header), row)
		if err := f.SetCellStyle(LinesSheet, cell, cell, moneyStyle); err != nil {
			return fmt.Errorf("styling line: %w", err)
		}
	}

	totalRow := len(lines) + 2
	if err := setRow(f, LinesSheet, 1, totalRow, []any{TotalLabel}); err != nil {
		return err
	}
	cell, _ := excelize.CoordinatesToCellName(len(Header), totalRow)
	if err := f.SetCellValue(LinesSheet, cell, r.Estimate.TotalCost); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	if err := f.SetCellStyle(LinesSheet, cell, cell, totalStyle); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}

	for i, width := range lineColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(LinesSheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, col, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("styling %s row %d: %w", sheet, row, err)
	}
	return nil
}

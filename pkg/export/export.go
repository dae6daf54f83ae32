// Package export writes the current grid view to an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"tableflip.dev/polines/pkg/grid"
	"tableflip.dev/polines/pkg/lineitem"
)

// SheetName is the worksheet holding the line items.
const SheetName = "Line Items"

const moneyFormat = `"$"#,##0.00`

// Write renders v as a workbook: one header row, one row per visible line
// item in display order, then the total.
func Write(w io.Writer, v grid.View) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return fmt.Errorf("export: sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	numFmt := moneyFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}

	var cols []grid.Column
	amountCol := 0
	for _, c := range v.Columns {
		if !c.Data() {
			continue
		}
		cols = append(cols, c)
		if c.Kind == grid.KindAmount {
			amountCol = len(cols) + 1
		}
	}
	if amountCol < 2 {
		return fmt.Errorf("export: %s has no amount column", v.Variant)
	}

	header := []interface{}{"Order"}
	for _, c := range cols {
		header = append(header, c.Title)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	row := 2
	for _, r := range v.Rows {
		line := []interface{}{lineitem.ParseOrder(r.Order)}
		for _, c := range cols {
			if c.Kind == grid.KindAmount {
				line = append(line, lineitem.ParseMoney(r.Amount).InexactFloat64())
				continue
			}
			line = append(line, value(r, c))
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &line); err != nil {
			return fmt.Errorf("export: row %s: %w", r.ID, err)
		}
		row++
	}

	labelCell, err := excelize.CoordinatesToCellName(amountCol-1, row)
	if err != nil {
		return err
	}
	totalCell, err := excelize.CoordinatesToCellName(amountCol, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, labelCell, "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, totalCell, v.Summary.Total.InexactFloat64()); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, labelCell, labelCell, bold); err != nil {
		return err
	}
	top, err := excelize.CoordinatesToCellName(amountCol, 2)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, top, totalCell, money); err != nil {
		return fmt.Errorf("export: amount style: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

func value(r grid.Row, c grid.Column) string {
	switch c.Kind {
	case grid.KindStatus:
		var on []string
		for _, s := range r.Statuses {
			if s.Checked {
				on = append(on, s.Token)
			}
		}
		return strings.Join(on, "\n")
	case grid.KindCheckbox:
		if r.Received {
			return "Yes"
		}
		return ""
	}
	return r.Value(c.Field)
}

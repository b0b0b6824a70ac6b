package payroll

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Employee Name", "Email", "Department", "Position", "Salary", "Status"}

const exportSheet = "Payroll"

func exportRecord(e PayrollEntry) []string {
	salary := "0"
	if e.AnnualSalary != nil {
		salary = e.AnnualSalary.StringFixed(2)
	}
	return []string{e.FullName, e.Email, deref(e.Department), deref(e.Position), salary, e.Status}
}

func writeCSV(entries []PayrollEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write(exportRecord(e)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(entries []PayrollEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "F1", bold); err != nil {
		return nil, err
	}

	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	for i, e := range entries {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}

		var salary float64
		if e.AnnualSalary != nil {
			salary = e.AnnualSalary.InexactFloat64()
		}
		values := []any{e.FullName, e.Email, deref(e.Department), deref(e.Position), salary, e.Status}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}

		salaryCell := fmt.Sprintf("E%d", row)
		if err := f.SetCellStyle(exportSheet, salaryCell, salaryCell, amount); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "F", 22); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

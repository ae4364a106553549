package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/IamHazels/employee-tool/internal/service"
)

const sheetName = "Disciplinaries"

var header = []interface{}{"Name", "Employee code", "Reason", "Level", "Expiry date", "Status"}

// WriteDepartment writes a department report as an .xlsx workbook, one row per record.
// Employees without records still get a row so the sheet lists the whole department.
func WriteDepartment(w io.Writer, report service.DepartmentReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	title := fmt.Sprintf("Department: %s (generated %s)", report.Department, report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A2", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "F2", bold); err != nil {
		return fmt.Errorf("apply style: %w", err)
	}

	row := 3
	for _, employee := range report.Employees {
		if len(employee.Records) == 0 {
			values := []interface{}{employee.Employee.Name, employee.Employee.EmployeeCode}
			if err := writeRow(f, row, values); err != nil {
				return err
			}
			row++
			continue
		}

		for _, record := range employee.Records {
			values := []interface{}{
				employee.Employee.Name,
				employee.Employee.EmployeeCode,
				record.Reason,
				record.Level,
				record.ExpiryDate.Format("2006-01-02 15:04:05"),
				string(record.Status),
			}
			if err := writeRow(f, row, values); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(sheetName, "A", "F", 20); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

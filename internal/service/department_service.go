package service

import (
	"context"

	"github.com/IamHazels/employee-tool/internal/domain"
	"github.com/IamHazels/employee-tool/internal/models"
)

// FindEmployeesByDepartment compares trimmed, lowercased department values on both sides,
// so rows stored before normalization are still found. No match is an empty slice.
// The stored side is folded by the engine: SQLite's LOWER and TRIM only handle ASCII
// letters and spaces, so an unnormalized row with non-ASCII capitals or tabs is not matched.
// Rows written through NewEmployee are already normalized and always match.
func (s *RecordService) FindEmployeesByDepartment(ctx context.Context, department string) ([]EmployeeDTO, error) {
	var employees []models.Employee
	if err := s.db.WithContext(ctx).
		Where("LOWER(TRIM(department)) = ?", domain.NormalizeKey(department)).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		return nil, asPersistenceError("load department employees", err)
	}

	result := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		result = append(result, employeeToDTO(employee))
	}
	return result, nil
}

func (s *RecordService) GetDepartmentReport(ctx context.Context, department string) (DepartmentReport, error) {
	now := s.now()
	report := DepartmentReport{
		Department:  domain.NormalizeKey(department),
		GeneratedAt: domain.CanonicalTime(now),
		Employees:   []EmployeeReport{},
	}

	employees, err := s.FindEmployeesByDepartment(ctx, department)
	if err != nil {
		return DepartmentReport{}, err
	}
	if len(employees) == 0 {
		return report, nil
	}

	recordsByEmployee, err := s.recordsFor(ctx, employees)
	if err != nil {
		return DepartmentReport{}, err
	}

	for _, employee := range employees {
		report.Employees = append(report.Employees, buildEmployeeReport(employee, recordsByEmployee[employee.ID], now))
	}
	return report, nil
}

// ListDepartments returns every distinct normalized department, sorted.
func (s *RecordService) ListDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	if err := s.db.WithContext(ctx).
		Raw("SELECT DISTINCT LOWER(TRIM(department)) AS department FROM employees ORDER BY department ASC").
		Scan(&departments).Error; err != nil {
		return nil, asPersistenceError("list departments", err)
	}
	if departments == nil {
		departments = []string{}
	}
	return departments, nil
}

func (s *RecordService) recordsFor(ctx context.Context, employees []EmployeeDTO) (map[uint][]RecordDTO, error) {
	ids := make([]uint, 0, len(employees))
	for _, employee := range employees {
		ids = append(ids, employee.ID)
	}

	var records []models.DisciplinaryRecord
	if err := s.db.WithContext(ctx).
		Where("employee_id IN ?", ids).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, asPersistenceError("load disciplinary records", err)
	}

	result := make(map[uint][]RecordDTO, len(employees))
	for _, record := range records {
		result[record.EmployeeID] = append(result[record.EmployeeID], recordToDTO(record))
	}
	return result, nil
}

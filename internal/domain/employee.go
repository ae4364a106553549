package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IamHazels/employee-tool/internal/apperror"
)

const (
	// MaxEmployeeCodeLength matches the width of the employee_code column.
	MaxEmployeeCodeLength = 12
	// MaxExpiryMonths caps a record's lifetime at one hundred years.
	MaxExpiryMonths = 1200

	daysPerMonth = 30
)

type Employee struct {
	Name         string
	Department   string
	EmployeeCode string
	Records      []DisciplinaryRecord
}

// NewEmployee normalizes every field so later identity matching is consistent.
func NewEmployee(name, department, employeeCode string) (*Employee, error) {
	name = NormalizeKey(name)
	department = NormalizeKey(department)
	employeeCode = NormalizeKey(employeeCode)

	if name == "" {
		return nil, apperror.InvalidInput("employee name is required")
	}
	if employeeCode == "" {
		return nil, apperror.InvalidInput("employee code is required")
	}
	if utf8.RuneCountInString(employeeCode) > MaxEmployeeCodeLength {
		return nil, apperror.InvalidInput(fmt.Sprintf("employee code must be at most %d characters", MaxEmployeeCodeLength))
	}

	return &Employee{
		Name:         name,
		Department:   department,
		EmployeeCode: employeeCode,
	}, nil
}

// AddDisciplinaryRecord appends a record created at now that expires
// expiryMonths*30 days later.
func (e *Employee) AddDisciplinaryRecord(reason string, level Level, expiryMonths int, now time.Time) (DisciplinaryRecord, error) {
	if err := validateExpiryMonths(expiryMonths); err != nil {
		return DisciplinaryRecord{}, err
	}
	if !level.Valid() {
		return DisciplinaryRecord{}, apperror.InvalidInput("unrecognized disciplinary level " + level.String())
	}

	createdAt := CanonicalTime(now)
	record := DisciplinaryRecord{
		Reason:     NormalizeKey(reason),
		Level:      level,
		CreatedAt:  createdAt,
		ExpiryDate: ExpiryFrom(createdAt, expiryMonths),
	}
	e.Records = append(e.Records, record)
	return record, nil
}

func (e *Employee) CountDisciplinaries() int {
	return len(e.Records)
}

// NormalizeKey trims and lowercases free text used for identity and lookups.
func NormalizeKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseExpiryMonths reads a whole number of months in 0..MaxExpiryMonths.
func ParseExpiryMonths(raw string) (int, error) {
	months, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperror.InvalidInput("expiry months must be a whole number")
	}
	if err := validateExpiryMonths(months); err != nil {
		return 0, err
	}
	return months, nil
}

func validateExpiryMonths(months int) error {
	if months < 0 {
		return apperror.InvalidInput("expiry months must not be negative")
	}
	if months > MaxExpiryMonths {
		return apperror.InvalidInput(fmt.Sprintf("expiry months must be at most %d", MaxExpiryMonths))
	}
	return nil
}

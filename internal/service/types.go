package service

import (
	"context"
	"time"

	"github.com/IamHazels/employee-tool/internal/domain"
)

// IdentityRule decides which stored employee an incoming one resolves to.
type IdentityRule string

const (
	// IdentityNameOrCode matches a stored employee with the same name or the same code.
	// Two people sharing a name are merged; a renamed employee with a known code is still found.
	IdentityNameOrCode IdentityRule = "name_or_code"
	// IdentityCode matches on employee code only.
	IdentityCode IdentityRule = "code"
)

type EmployeeInput struct {
	Name         string
	Department   string
	EmployeeCode string
}

type RecordInput struct {
	Reason       string
	Level        string
	ExpiryMonths int
}

type EmployeeDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Department   string    `json:"department"`
	EmployeeCode string    `json:"employee_code"`
	CreatedAt    time.Time `json:"created_at"`
}

type RecordDTO struct {
	ID         uint      `json:"id"`
	EmployeeID uint      `json:"employee_id"`
	Reason     string    `json:"reason"`
	Level      string    `json:"level"`
	ExpiryDate time.Time `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
}

type RecordView struct {
	RecordDTO
	Status domain.Status `json:"status"`
}

type EmployeeReport struct {
	Employee    EmployeeDTO  `json:"employee"`
	Records     []RecordView `json:"records"`
	ActiveCount int          `json:"active_count"`
}

type DepartmentReport struct {
	Department  string           `json:"department"`
	GeneratedAt time.Time        `json:"generated_at"`
	Employees   []EmployeeReport `json:"employees"`
}

// Registry is what front ends need from the record store.
type Registry interface {
	CreateEmployeeWithRecord(ctx context.Context, employee EmployeeInput, record RecordInput) (EmployeeDTO, error)
	AddRecordToExisting(ctx context.Context, key string, record RecordInput) (EmployeeDTO, error)
	LookupEmployee(ctx context.Context, key string) (EmployeeDTO, error)
	GetEmployeeReport(ctx context.Context, key string) (EmployeeReport, error)
	GetDepartmentReport(ctx context.Context, department string) (DepartmentReport, error)
	ListDepartments(ctx context.Context) ([]string, error)
}

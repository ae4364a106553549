package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IamHazels/employee-tool/internal/domain"
	"github.com/IamHazels/employee-tool/internal/models"
)

func TestFindEmployeesByDepartmentNormalizesBothSides(t *testing.T) {
	svc, database, clock := setupService(t)
	ctx := context.Background()

	// Stored without normalization, as an older front end might have written it.
	raw := models.Employee{Name: "bob", Department: " Sales ", EmployeeCode: "e002", CreatedAt: clock.Now()}
	require.NoError(t, database.Create(&raw).Error)

	_, err := svc.ResolveOrCreateEmployee(ctx, newEmployee(t, "alice", " Sales ", "e001"))
	require.NoError(t, err)
	_, err = svc.ResolveOrCreateEmployee(ctx, newEmployee(t, "carol", "engineering", "e003"))
	require.NoError(t, err)

	for _, query := range []string{"sales", " SALES ", "Sales"} {
		employees, err := svc.FindEmployeesByDepartment(ctx, query)
		require.NoError(t, err)
		require.Len(t, employees, 2, "query %q", query)
		assert.Equal(t, "bob", employees[0].Name)
		assert.Equal(t, "alice", employees[1].Name)
	}
}

func TestFindEmployeesByDepartmentNonASCII(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.ResolveOrCreateEmployee(ctx, newEmployee(t, "zoë", "Ärzte Team", "e010"))
	require.NoError(t, err)

	employees, err := svc.FindEmployeesByDepartment(ctx, "  ÄRZTE TEAM")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "ärzte team", employees[0].Department)
}

func TestFindEmployeesByDepartmentEmpty(t *testing.T) {
	svc, _, _ := setupService(t)

	employees, err := svc.FindEmployeesByDepartment(context.Background(), "engineering")
	require.NoError(t, err)
	assert.NotNil(t, employees)
	assert.Empty(t, employees)
}

func TestGetDepartmentReport(t *testing.T) {
	svc, _, clock := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateEmployeeWithRecord(ctx,
		EmployeeInput{Name: "alice", Department: "sales", EmployeeCode: "e001"},
		RecordInput{Reason: "late", Level: "verbal", ExpiryMonths: 1},
	)
	require.NoError(t, err)
	_, err = svc.CreateEmployeeWithRecord(ctx,
		EmployeeInput{Name: "bob", Department: "sales", EmployeeCode: "e002"},
		RecordInput{Reason: "insubordination", Level: "final", ExpiryMonths: 12},
	)
	require.NoError(t, err)
	_, err = svc.ResolveOrCreateEmployee(ctx, newEmployee(t, "carol", "sales", "e003"))
	require.NoError(t, err)

	clock.Advance(45 * 24 * time.Hour)

	report, err := svc.GetDepartmentReport(ctx, " Sales")
	require.NoError(t, err)
	assert.Equal(t, "sales", report.Department)
	assert.True(t, report.GeneratedAt.Equal(clock.Now()))
	require.Len(t, report.Employees, 3)

	alice := report.Employees[0]
	require.Len(t, alice.Records, 1)
	assert.Equal(t, domain.StatusExpired, alice.Records[0].Status)
	assert.Equal(t, 0, alice.ActiveCount)

	bob := report.Employees[1]
	require.Len(t, bob.Records, 1)
	assert.Equal(t, domain.StatusActive, bob.Records[0].Status)
	assert.Equal(t, 1, bob.ActiveCount)

	carol := report.Employees[2]
	assert.Empty(t, carol.Records)
}

func TestGetDepartmentReportNoEmployees(t *testing.T) {
	svc, _, _ := setupService(t)

	report, err := svc.GetDepartmentReport(context.Background(), "engineering")
	require.NoError(t, err)
	assert.Equal(t, "engineering", report.Department)
	assert.Empty(t, report.Employees)
}

func TestListDepartments(t *testing.T) {
	svc, database, clock := setupService(t)
	ctx := context.Background()

	departments, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Empty(t, departments)

	require.NoError(t, database.Create(&models.Employee{Name: "bob", Department: " Sales ", EmployeeCode: "e002", CreatedAt: clock.Now()}).Error)
	_, err = svc.ResolveOrCreateEmployee(ctx, newEmployee(t, "alice", "sales", "e001"))
	require.NoError(t, err)
	_, err = svc.ResolveOrCreateEmployee(ctx, newEmployee(t, "carol", "engineering", "e003"))
	require.NoError(t, err)

	departments, err = svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"engineering", "sales"}, departments)
}

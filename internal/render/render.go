package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/IamHazels/employee-tool/internal/domain"
	"github.com/IamHazels/employee-tool/internal/service"
)

const dateLayout = "2006-01-02 15:04 MST"

type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Active  lipgloss.Style
	Expired lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Underline(true),
		Label:   lipgloss.NewStyle().Bold(true),
		Active:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Expired: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:   lipgloss.NewStyle().Faint(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Status colors an active record as a warning and an expired one as cleared.
func (t Theme) Status(status domain.Status) string {
	if status == domain.StatusExpired {
		return t.Expired.Render("Expired")
	}
	return t.Active.Render("Active")
}

func EmployeeReport(w io.Writer, theme Theme, report service.EmployeeReport) {
	fmt.Fprintln(w, theme.Title.Render("Employee Information"))
	employeeFields(w, theme, report.Employee, true)
	fmt.Fprintln(w)
	records(w, theme, report, "")
}

func DepartmentReport(w io.Writer, theme Theme, report service.DepartmentReport) {
	if len(report.Employees) == 0 {
		fmt.Fprintln(w, theme.Muted.Render("No employees were found for this department."))
		return
	}

	fmt.Fprintln(w, theme.Title.Render("Employees in department "+displayDepartment(report.Department)))
	for _, employee := range report.Employees {
		fmt.Fprintln(w)
		employeeFields(w, theme, employee.Employee, false)
		records(w, theme, employee, "  ")
	}
}

func Departments(w io.Writer, theme Theme, departments []string) {
	if len(departments) == 0 {
		fmt.Fprintln(w, theme.Muted.Render("No departments recorded yet."))
		return
	}
	fmt.Fprintln(w, theme.Title.Render("Departments"))
	for _, department := range departments {
		fmt.Fprintf(w, "- %s\n", displayDepartment(department))
	}
}

func Error(w io.Writer, theme Theme, message string) {
	fmt.Fprintln(w, theme.Error.Render("error: "+message))
}

func employeeFields(w io.Writer, theme Theme, employee service.EmployeeDTO, withDepartment bool) {
	fmt.Fprintf(w, "%s %s\n", theme.Label.Render("Name:"), employee.Name)
	if withDepartment {
		fmt.Fprintf(w, "%s %s\n", theme.Label.Render("Department:"), displayDepartment(employee.Department))
	}
	fmt.Fprintf(w, "%s %s\n", theme.Label.Render("Employee code:"), employee.EmployeeCode)
}

func records(w io.Writer, theme Theme, report service.EmployeeReport, indent string) {
	if len(report.Records) == 0 {
		fmt.Fprintln(w, indent+theme.Muted.Render("No disciplinary records were found for this employee."))
		return
	}

	fmt.Fprintf(w, "%s%s (%d active of %d)\n", indent, theme.Label.Render("Disciplinary Records"), report.ActiveCount, len(report.Records))
	for _, record := range report.Records {
		fmt.Fprintf(w, "%s- %s [%s] %s, expires %s\n",
			indent,
			record.Reason,
			strings.ToUpper(record.Level),
			theme.Status(record.Status),
			record.ExpiryDate.Format(dateLayout),
		)
	}
}

func displayDepartment(department string) string {
	if department == "" {
		return "(none)"
	}
	return department
}

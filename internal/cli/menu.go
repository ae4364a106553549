package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/IamHazels/employee-tool/internal/apperror"
	"github.com/IamHazels/employee-tool/internal/domain"
	"github.com/IamHazels/employee-tool/internal/render"
	"github.com/IamHazels/employee-tool/internal/service"
)

// Menu is the interactive text front end. A failing action prints a message and the
// session keeps accepting commands; it ends on "exit" or end of input.
type Menu struct {
	registry service.Registry
	scanner  *bufio.Scanner
	out      io.Writer
	theme    render.Theme
	logger   *zap.Logger
}

func NewMenu(registry service.Registry, in io.Reader, out io.Writer, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{
		registry: registry,
		scanner:  bufio.NewScanner(in),
		out:      out,
		theme:    render.DefaultTheme(),
		logger:   logger,
	}
}

func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, m.theme.Title.Render("Main Menu"))
		fmt.Fprintln(m.out, "1. Create or update an employee")
		fmt.Fprintln(m.out, "2. Display an employee's record")
		fmt.Fprintln(m.out, "3. Display all employees in a department")
		fmt.Fprintln(m.out, "4. Exit")

		option, err := m.prompt("Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch strings.ToLower(option) {
		case "1":
			err = m.createOrUpdate(ctx)
		case "2":
			err = m.displayEmployee(ctx)
		case "3":
			err = m.displayDepartment(ctx)
		case "4", "exit", "q", "quit":
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option. Please try again.")
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			m.report(err)
		}
	}
}

func (m *Menu) createOrUpdate(ctx context.Context) error {
	fmt.Fprintln(m.out, "1. Create a new employee record and disciplinary")
	fmt.Fprintln(m.out, "2. Add disciplinary record to an existing employee")

	option, err := m.prompt("Enter your choice: ")
	if err != nil {
		return err
	}

	switch option {
	case "1":
		return m.createEmployee(ctx)
	case "2":
		return m.addRecord(ctx)
	default:
		fmt.Fprintln(m.out, "Invalid option. Please try again.")
		return nil
	}
}

func (m *Menu) createEmployee(ctx context.Context) error {
	name, err := m.prompt("Enter the name of the employee: ")
	if err != nil {
		return err
	}
	department, err := m.prompt("Enter the department of the employee: ")
	if err != nil {
		return err
	}
	code, err := m.prompt("Enter the employee code: ")
	if err != nil {
		return err
	}

	// Reject a bad employee before prompting for the record.
	if _, err := domain.NewEmployee(name, department, code); err != nil {
		return err
	}

	record, err := m.promptRecord()
	if err != nil {
		return err
	}

	employee, err := m.registry.CreateEmployeeWithRecord(ctx, service.EmployeeInput{
		Name:         name,
		Department:   department,
		EmployeeCode: code,
	}, record)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Employee record added successfully (%s, %s).\n", employee.Name, employee.EmployeeCode)
	return nil
}

func (m *Menu) addRecord(ctx context.Context) error {
	key, err := m.prompt("Enter the employee name or employee code: ")
	if err != nil {
		return err
	}

	if _, err := m.registry.LookupEmployee(ctx, key); err != nil {
		return err
	}

	record, err := m.promptRecord()
	if err != nil {
		return err
	}

	if _, err := m.registry.AddRecordToExisting(ctx, key, record); err != nil {
		return err
	}

	fmt.Fprintln(m.out, "Disciplinary record has been added successfully.")
	return nil
}

func (m *Menu) displayEmployee(ctx context.Context) error {
	key, err := m.prompt("Enter employee name or employee code: ")
	if err != nil {
		return err
	}

	report, err := m.registry.GetEmployeeReport(ctx, key)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	render.EmployeeReport(m.out, m.theme, report)
	return nil
}

func (m *Menu) displayDepartment(ctx context.Context) error {
	department, err := m.prompt("Enter the department: ")
	if err != nil {
		return err
	}

	report, err := m.registry.GetDepartmentReport(ctx, department)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	render.DepartmentReport(m.out, m.theme, report)
	return nil
}

func (m *Menu) promptRecord() (service.RecordInput, error) {
	reason, err := m.prompt("Enter disciplinary reason: ")
	if err != nil {
		return service.RecordInput{}, err
	}

	level, err := m.prompt(fmt.Sprintf("Enter level of disciplinary (%s): ", levelChoices()))
	if err != nil {
		return service.RecordInput{}, err
	}
	if _, err := domain.ParseLevel(level); err != nil {
		return service.RecordInput{}, err
	}

	rawMonths, err := m.prompt("Enter number of months the disciplinary is valid for: ")
	if err != nil {
		return service.RecordInput{}, err
	}
	months, err := domain.ParseExpiryMonths(rawMonths)
	if err != nil {
		return service.RecordInput{}, err
	}

	return service.RecordInput{Reason: reason, Level: level, ExpiryMonths: months}, nil
}

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.scanner.Scan() {
		if err := m.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.scanner.Text()), nil
}

func (m *Menu) report(err error) {
	switch apperror.GetCode(err) {
	case apperror.CodeInvalidInput, apperror.CodeNotFound:
		render.Error(m.out, m.theme, apperror.Message(err))
	default:
		m.logger.Error("menu action failed", zap.Error(err))
		render.Error(m.out, m.theme, "the record store could not complete the request; please try again")
	}
}

func levelChoices() string {
	names := make([]string, 0, len(domain.Levels()))
	for _, level := range domain.Levels() {
		names = append(names, level.String())
	}
	return strings.Join(names, "/")
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

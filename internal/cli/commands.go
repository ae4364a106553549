package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/IamHazels/employee-tool/internal/domain"
	"github.com/IamHazels/employee-tool/internal/export"
	"github.com/IamHazels/employee-tool/internal/render"
	"github.com/IamHazels/employee-tool/internal/service"
)

type recordFlags struct {
	reason string
	level  string
	months int
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.reason, "reason", "", "Disciplinary reason (required)")
	cmd.Flags().StringVar(&f.level, "level", "", "Severity: counselling|verbal|written|final|dismissal (required)")
	cmd.Flags().IntVar(&f.months, "months", 0, fmt.Sprintf("Number of 30-day months the record stays active, 0..%d (required)", domain.MaxExpiryMonths))
	_ = cmd.MarkFlagRequired("reason")
	_ = cmd.MarkFlagRequired("level")
	_ = cmd.MarkFlagRequired("months")
}

func (f *recordFlags) input() (service.RecordInput, error) {
	if _, err := domain.ParseLevel(f.level); err != nil {
		return service.RecordInput{}, err
	}
	if _, err := domain.ParseExpiryMonths(fmt.Sprint(f.months)); err != nil {
		return service.RecordInput{}, err
	}
	return service.RecordInput{Reason: f.reason, Level: f.level, ExpiryMonths: f.months}, nil
}

func employeeCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "employee",
		Short: "Create or show employees",
	}
	c.AddCommand(employeeAddCmd(a), employeeShowCmd(a))
	return c
}

func employeeAddCmd(a *app) *cobra.Command {
	var name, department, code string
	var record recordFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an employee (or reuse a matching one) with a disciplinary record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := record.input()
			if err != nil {
				return err
			}

			return a.withStore(cmd.Context(), func(store *Store) error {
				employee, err := store.Registry.CreateEmployeeWithRecord(cmd.Context(), service.EmployeeInput{
					Name:         name,
					Department:   department,
					EmployeeCode: code,
				}, input)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Employee record added successfully (id=%d, code=%s).\n", employee.ID, employee.EmployeeCode)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Employee name (required)")
	cmd.Flags().StringVar(&department, "department", "", "Department")
	cmd.Flags().StringVar(&code, "code", "", "Employee code, up to 12 characters (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("code")
	record.register(cmd)
	return cmd
}

func employeeShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show NAME_OR_CODE",
		Short: "Show an employee and their disciplinary records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *Store) error {
				report, err := store.Registry.GetEmployeeReport(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printReport(cmd.OutOrStdout(), format, report, func(w io.Writer) {
					render.EmployeeReport(w, render.DefaultTheme(), report)
				})
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func recordCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "record",
		Short: "Manage disciplinary records",
	}
	c.AddCommand(recordAddCmd(a))
	return c
}

func recordAddCmd(a *app) *cobra.Command {
	var record recordFlags

	cmd := &cobra.Command{
		Use:   "add NAME_OR_CODE",
		Short: "Add a disciplinary record to an existing employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := record.input()
			if err != nil {
				return err
			}

			return a.withStore(cmd.Context(), func(store *Store) error {
				employee, err := store.Registry.AddRecordToExisting(cmd.Context(), args[0], input)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Disciplinary record added to %s (%s).\n", employee.Name, employee.EmployeeCode)
				return err
			})
		},
	}

	record.register(cmd)
	return cmd
}

func departmentCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "department",
		Short: "Inspect departments",
	}
	c.AddCommand(departmentShowCmd(a), departmentListCmd(a))
	return c
}

func departmentShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show every employee of a department with their records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(store *Store) error {
				report, err := store.Registry.GetDepartmentReport(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printReport(cmd.OutOrStdout(), format, report, func(w io.Writer) {
					render.DepartmentReport(w, render.DefaultTheme(), report)
				})
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func departmentListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List departments that have employees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(store *Store) error {
				departments, err := store.Registry.ListDepartments(cmd.Context())
				if err != nil {
					return err
				}
				render.Departments(cmd.OutOrStdout(), render.DefaultTheme(), departments)
				return nil
			})
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	var department, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a department's disciplinary records to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(store *Store) error {
				report, err := store.Registry.GetDepartmentReport(cmd.Context(), department)
				if err != nil {
					return err
				}

				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				if err := export.WriteDepartment(f, report); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close %s: %w", out, err)
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d employee(s) of %s to %s\n", len(report.Employees), report.Department, out)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&department, "department", "d", "", "Department to export (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output .xlsx path (required)")
	_ = cmd.MarkFlagRequired("department")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func printReport(w io.Writer, format string, payload interface{}, pretty func(io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty", "":
		pretty(w)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IamHazels/employee-tool/internal/apperror"
	"github.com/IamHazels/employee-tool/internal/domain"
	"github.com/IamHazels/employee-tool/internal/models"
)

type RecordService struct {
	db       *gorm.DB
	identity IdentityRule
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*RecordService)

func WithIdentityRule(rule IdentityRule) Option {
	return func(s *RecordService) { s.identity = rule }
}

// WithNow replaces the clock used to stamp new records and evaluate expiry.
func WithNow(now func() time.Time) Option {
	return func(s *RecordService) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *RecordService) { s.logger = logger }
}

func NewRecordService(db *gorm.DB, opts ...Option) *RecordService {
	s := &RecordService{
		db:       db,
		identity: IdentityNameOrCode,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Registry = (*RecordService)(nil)

// ResolveOrCreateEmployee returns the id of the stored employee the candidate resolves to,
// inserting the candidate when nothing matches. Stored fields are never overwritten.
func (s *RecordService) ResolveOrCreateEmployee(ctx context.Context, employee *domain.Employee) (uint, error) {
	var employeeID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.resolveOrCreate(tx, employee)
		employeeID = id
		return err
	})
	if err != nil {
		return 0, asPersistenceError("resolve employee", err)
	}
	return employeeID, nil
}

// AppendDisciplinaryRecords inserts every record for employeeID or none of them.
func (s *RecordService) AppendDisciplinaryRecords(ctx context.Context, employeeID uint, records []domain.DisciplinaryRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendRecords(tx, employeeID, records)
	})
	if err != nil {
		return asPersistenceError("append disciplinary records", err)
	}
	return nil
}

// Commit persists an employee and its in-memory records atomically.
func (s *RecordService) Commit(ctx context.Context, employee *domain.Employee) (uint, error) {
	var employeeID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := s.resolveOrCreate(tx, employee)
		if err != nil {
			return err
		}
		employeeID = id
		return appendRecords(tx, id, employee.Records)
	})
	if err != nil {
		s.logger.Error("commit employee failed", zap.String("employee_code", employee.EmployeeCode), zap.Error(err))
		return 0, asPersistenceError("commit employee", err)
	}

	s.logger.Info("employee committed",
		zap.Uint("employee_id", employeeID),
		zap.Int("records", employee.CountDisciplinaries()),
	)
	return employeeID, nil
}

// FindEmployeeByNameOrCode matches key exactly against name or employee code.
// Callers normalize the key. When several rows match, the oldest wins.
func (s *RecordService) FindEmployeeByNameOrCode(ctx context.Context, key string) (EmployeeDTO, error) {
	var employee models.Employee
	err := s.db.WithContext(ctx).
		Where("name = ? OR employee_code = ?", key, key).
		Order("id ASC").
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeDTO{}, apperror.NotFound("employee not found")
		}
		return EmployeeDTO{}, asPersistenceError("load employee", err)
	}
	return employeeToDTO(employee), nil
}

func (s *RecordService) ListDisciplinaryRecords(ctx context.Context, employeeID uint) ([]RecordDTO, error) {
	var records []models.DisciplinaryRecord
	if err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, asPersistenceError("load disciplinary records", err)
	}

	result := make([]RecordDTO, 0, len(records))
	for _, record := range records {
		result = append(result, recordToDTO(record))
	}
	return result, nil
}

func (s *RecordService) CreateEmployeeWithRecord(ctx context.Context, input EmployeeInput, record RecordInput) (EmployeeDTO, error) {
	employee, err := domain.NewEmployee(input.Name, input.Department, input.EmployeeCode)
	if err != nil {
		return EmployeeDTO{}, err
	}
	if err := s.attachRecord(employee, record); err != nil {
		return EmployeeDTO{}, err
	}

	employeeID, err := s.Commit(ctx, employee)
	if err != nil {
		return EmployeeDTO{}, err
	}
	return s.loadEmployee(ctx, employeeID)
}

// AddRecordToExisting files a record against the employee key resolves to.
// The record goes to exactly that row; identity is not resolved a second time.
func (s *RecordService) AddRecordToExisting(ctx context.Context, key string, record RecordInput) (EmployeeDTO, error) {
	stored, err := s.LookupEmployee(ctx, key)
	if err != nil {
		return EmployeeDTO{}, err
	}

	employee := &domain.Employee{
		Name:         stored.Name,
		Department:   stored.Department,
		EmployeeCode: stored.EmployeeCode,
	}
	if err := s.attachRecord(employee, record); err != nil {
		return EmployeeDTO{}, err
	}

	if err := s.AppendDisciplinaryRecords(ctx, stored.ID, employee.Records); err != nil {
		return EmployeeDTO{}, err
	}

	s.logger.Info("disciplinary record added", zap.Uint("employee_id", stored.ID))
	return stored, nil
}

// LookupEmployee resolves a free-text key to a stored employee without loading records.
func (s *RecordService) LookupEmployee(ctx context.Context, key string) (EmployeeDTO, error) {
	return s.FindEmployeeByNameOrCode(ctx, domain.NormalizeKey(key))
}

func (s *RecordService) GetEmployeeReport(ctx context.Context, key string) (EmployeeReport, error) {
	employee, err := s.LookupEmployee(ctx, key)
	if err != nil {
		return EmployeeReport{}, err
	}

	records, err := s.ListDisciplinaryRecords(ctx, employee.ID)
	if err != nil {
		return EmployeeReport{}, err
	}

	return buildEmployeeReport(employee, records, s.now()), nil
}

func (s *RecordService) attachRecord(employee *domain.Employee, input RecordInput) error {
	level, err := domain.ParseLevel(input.Level)
	if err != nil {
		return err
	}
	_, err = employee.AddDisciplinaryRecord(input.Reason, level, input.ExpiryMonths, s.now())
	return err
}

func (s *RecordService) loadEmployee(ctx context.Context, employeeID uint) (EmployeeDTO, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeDTO{}, apperror.NotFound("employee not found")
		}
		return EmployeeDTO{}, asPersistenceError("load employee", err)
	}
	return employeeToDTO(employee), nil
}

// resolveOrCreate must run inside a transaction: the read and the conditional insert
// are only safe together while there is a single writer.
func (s *RecordService) resolveOrCreate(tx *gorm.DB, employee *domain.Employee) (uint, error) {
	query := tx.Model(&models.Employee{}).Select("id")
	switch s.identity {
	case IdentityCode:
		query = query.Where("employee_code = ?", employee.EmployeeCode)
	default:
		query = query.Where("name = ? OR employee_code = ?", employee.Name, employee.EmployeeCode)
	}

	var existing models.Employee
	err := query.Order("id ASC").First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("match employee: %w", err)
	}

	row := models.Employee{
		Name:         employee.Name,
		Department:   employee.Department,
		EmployeeCode: employee.EmployeeCode,
		CreatedAt:    domain.CanonicalTime(s.now()),
	}
	if err := tx.Create(&row).Error; err != nil {
		return 0, mapDatabaseError(err)
	}
	return row.ID, nil
}

func appendRecords(tx *gorm.DB, employeeID uint, records []domain.DisciplinaryRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]models.DisciplinaryRecord, 0, len(records))
	for _, record := range records {
		rows = append(rows, models.DisciplinaryRecord{
			EmployeeID: employeeID,
			Reason:     record.Reason,
			Level:      record.Level.String(),
			ExpiryDate: domain.CanonicalTime(record.ExpiryDate),
			CreatedAt:  domain.CanonicalTime(record.CreatedAt),
		})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return mapDatabaseError(err)
	}
	return nil
}

func employeeToDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:           employee.ID,
		Name:         employee.Name,
		Department:   employee.Department,
		EmployeeCode: employee.EmployeeCode,
		CreatedAt:    domain.CanonicalTime(employee.CreatedAt),
	}
}

func recordToDTO(record models.DisciplinaryRecord) RecordDTO {
	return RecordDTO{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		Reason:     record.Reason,
		Level:      record.Level,
		ExpiryDate: domain.CanonicalTime(record.ExpiryDate),
		CreatedAt:  domain.CanonicalTime(record.CreatedAt),
	}
}

func buildEmployeeReport(employee EmployeeDTO, records []RecordDTO, now time.Time) EmployeeReport {
	report := EmployeeReport{
		Employee: employee,
		Records:  make([]RecordView, 0, len(records)),
	}
	for _, record := range records {
		status := domain.ExpiryStatus(record.ExpiryDate, now)
		if status == domain.StatusActive {
			report.ActiveCount++
		}
		report.Records = append(report.Records, RecordView{RecordDTO: record, Status: status})
	}
	return report
}

// mapDatabaseError names constraint violations. All of them are storage failures.
func mapDatabaseError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperror.Persistence("duplicate employee data", err)
		case "23503":
			return apperror.Persistence("invalid employee reference", err)
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Persistence("duplicate employee data", err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperror.Persistence("invalid employee reference", err)
	}
	return err
}

// asPersistenceError keeps already classified errors and tags the rest as storage failures.
func asPersistenceError(op string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Persistence(op+" failed", err)
}

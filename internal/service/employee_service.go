package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pesio-ai/be-plt-directory/internal/apperr"
	"github.com/pesio-ai/be-plt-directory/internal/repository"
)

// EmployeeStore is the subset of the employee repository the service needs.
type EmployeeStore interface {
	List(ctx context.Context, page int) ([]*repository.Employee, int64, error)
	Get(ctx context.Context, id int64) (*repository.Employee, error)
	Create(ctx context.Context, employee *repository.Employee) error
	Update(ctx context.Context, employee *repository.Employee) error
	Delete(ctx context.Context, id int64) error
}

// EmployeeService validates employee input and orchestrates the repository.
// The reference to companies is checked by the storage constraint, not here,
// so there is no window between a lookup and the write.
type EmployeeService struct {
	employees EmployeeStore
	log       zerolog.Logger
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employees EmployeeStore, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, log: log}
}

// CreateEmployeeRequest carries employee creation input.
type CreateEmployeeRequest struct {
	FirstName string
	LastName  string
	CompanyID int64
	Email     *string
	Phone     *string
}

// UpdateEmployeeRequest carries employee update input. A nil field was absent
// from the request and keeps its stored value; a non-nil empty string clears
// an optional field.
type UpdateEmployeeRequest struct {
	FirstName *string
	LastName  *string
	CompanyID *int64
	Email     *string
	Phone     *string
}

// List returns one page of employees, each with its company resolved, plus
// the total count.
func (s *EmployeeService) List(ctx context.Context, page int) ([]*repository.Employee, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.employees.List(ctx, page)
}

// Get returns an employee by ID.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*repository.Employee, error) {
	return s.employees.Get(ctx, id)
}

// Create validates and persists a new employee. A companyId that resolves to
// no company comes back from the repository as a validation error, and
// nothing is persisted.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*repository.Employee, error) {
	if strings.TrimSpace(req.FirstName) == "" {
		return nil, apperr.Validation("firstName is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return nil, apperr.Validation("lastName is required")
	}
	if req.CompanyID <= 0 {
		return nil, apperr.Validation("companyId is required")
	}

	email := normalizeOptional(req.Email)
	if email != nil && !validEmail(*email) {
		return nil, apperr.Validation("email must be a valid email address")
	}

	employee := &repository.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CompanyID: req.CompanyID,
		Email:     email,
		Phone:     normalizeOptional(req.Phone),
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.log.Info().Int64("employee_id", employee.ID).Int64("company_id", employee.CompanyID).Msg("Employee created")

	// Reload to resolve the company relation.
	return s.employees.Get(ctx, employee.ID)
}

// Update applies the supplied fields to an existing employee. Absent fields
// keep their stored values for every field alike.
func (s *EmployeeService) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*repository.Employee, error) {
	employee, err := s.employees.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, apperr.Validation("firstName cannot be empty")
		}
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, apperr.Validation("lastName cannot be empty")
		}
		employee.LastName = *req.LastName
	}
	if req.CompanyID != nil {
		if *req.CompanyID <= 0 {
			return nil, apperr.Validation("companyId cannot be empty")
		}
		employee.CompanyID = *req.CompanyID
	}
	if req.Email != nil {
		email := normalizeOptional(req.Email)
		if email != nil && !validEmail(*email) {
			return nil, apperr.Validation("email must be a valid email address")
		}
		employee.Email = email
	}
	if req.Phone != nil {
		employee.Phone = normalizeOptional(req.Phone)
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, err
	}

	return s.employees.Get(ctx, id)
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("employee_id", id).Msg("Employee deleted")
	return nil
}

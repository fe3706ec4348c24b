package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pesio-ai/be-plt-directory/internal/apperr"
)

// EmployeeRepository handles employee data operations. Referential integrity
// to companies lives in the database constraint, so a violated reference comes
// back from the insert/update itself rather than from a prior lookup.
type EmployeeRepository struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *pgxpool.Pool, log zerolog.Logger) *EmployeeRepository {
	return &EmployeeRepository{db: db, log: log}
}

// List retrieves one fixed-size page of employees in insertion order, each
// with its company resolved.
func (r *EmployeeRepository) List(ctx context.Context, page int) ([]*Employee, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(err, apperr.CodeInternal, "failed to count employees")
	}

	query := `
		SELECT e.id, e.first_name, e.last_name, e.company_id, e.email, e.phone,
		       e.created_at, e.updated_at,
		       c.id, c.name, c.email, c.website, c.created_at, c.updated_at
		FROM employees e
		INNER JOIN companies c ON e.company_id = c.id
		ORDER BY e.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, 0, apperr.Wrap(err, apperr.CodeInternal, "failed to list employees")
	}
	defer rows.Close()

	employees := make([]*Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, apperr.Wrap(err, apperr.CodeInternal, "failed to scan employee")
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Wrap(err, apperr.CodeInternal, "failed to list employees")
	}

	return employees, total, nil
}

// Get retrieves an employee by ID with its company resolved.
func (r *EmployeeRepository) Get(ctx context.Context, id int64) (*Employee, error) {
	query := `
		SELECT e.id, e.first_name, e.last_name, e.company_id, e.email, e.phone,
		       e.created_at, e.updated_at,
		       c.id, c.name, c.email, c.website, c.created_at, c.updated_at
		FROM employees e
		INNER JOIN companies c ON e.company_id = c.id
		WHERE e.id = $1
	`

	employee, err := scanEmployee(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("employee", id)
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to get employee")
	}

	return employee, nil
}

// Create persists a new employee. A company_id that resolves to no company
// violates the foreign key and is reported as a validation error.
func (r *EmployeeRepository) Create(ctx context.Context, employee *Employee) error {
	query := `
		INSERT INTO employees (first_name, last_name, company_id, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.CompanyID,
		employee.Email,
		employee.Phone,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)

	if isForeignKeyViolation(err) {
		return apperr.Validation("companyId does not reference an existing company")
	}
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to create employee")
		return apperr.Wrap(err, apperr.CodeInternal, "failed to create employee")
	}

	return nil
}

// Update persists the full set of mutable fields of an employee.
func (r *EmployeeRepository) Update(ctx context.Context, employee *Employee) error {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, company_id = $4, email = $5, phone = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		employee.ID,
		employee.FirstName,
		employee.LastName,
		employee.CompanyID,
		employee.Email,
		employee.Phone,
	).Scan(&employee.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("employee", employee.ID)
	}
	if isForeignKeyViolation(err) {
		return apperr.Validation("companyId does not reference an existing company")
	}
	if err != nil {
		r.log.Error().Err(err).Int64("employee_id", employee.ID).Msg("Failed to update employee")
		return apperr.Wrap(err, apperr.CodeInternal, "failed to update employee")
	}

	return nil
}

// Delete removes an employee. Employees are leaf records; no restrict case.
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Int64("employee_id", id).Msg("Failed to delete employee")
		return apperr.Wrap(err, apperr.CodeInternal, "failed to delete employee")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("employee", id)
	}

	return nil
}

func scanEmployee(row pgx.Row) (*Employee, error) {
	employee := &Employee{Company: &Company{}}

	err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.CompanyID,
		&employee.Email,
		&employee.Phone,
		&employee.CreatedAt,
		&employee.UpdatedAt,
		&employee.Company.ID,
		&employee.Company.Name,
		&employee.Company.Email,
		&employee.Company.Website,
		&employee.Company.CreatedAt,
		&employee.Company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return employee, nil
}

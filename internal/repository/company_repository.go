package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pesio-ai/be-plt-directory/internal/apperr"
)

// CompanyRepository handles company data operations.
type CompanyRepository struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(db *pgxpool.Pool, log zerolog.Logger) *CompanyRepository {
	return &CompanyRepository{db: db, log: log}
}

// List retrieves one fixed-size page of companies in insertion order.
func (r *CompanyRepository) List(ctx context.Context, page int) ([]*Company, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(err, apperr.CodeInternal, "failed to count companies")
	}

	query := `
		SELECT id, name, email, website, created_at, updated_at
		FROM companies
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, 0, apperr.Wrap(err, apperr.CodeInternal, "failed to list companies")
	}
	defer rows.Close()

	companies := make([]*Company, 0)
	for rows.Next() {
		company := &Company{}
		err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.Email,
			&company.Website,
			&company.CreatedAt,
			&company.UpdatedAt,
		)
		if err != nil {
			return nil, 0, apperr.Wrap(err, apperr.CodeInternal, "failed to scan company")
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Wrap(err, apperr.CodeInternal, "failed to list companies")
	}

	return companies, total, nil
}

// Get retrieves a company by ID.
func (r *CompanyRepository) Get(ctx context.Context, id int64) (*Company, error) {
	company := &Company{}

	query := `
		SELECT id, name, email, website, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&company.ID,
		&company.Name,
		&company.Email,
		&company.Website,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("company", id)
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to get company")
	}

	return company, nil
}

// Create persists a new company and fills in its generated fields.
func (r *CompanyRepository) Create(ctx context.Context, company *Company) error {
	query := `
		INSERT INTO companies (name, email, website)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		company.Name,
		company.Email,
		company.Website,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)

	if err != nil {
		r.log.Error().Err(err).Msg("Failed to create company")
		return apperr.Wrap(err, apperr.CodeInternal, "failed to create company")
	}

	return nil
}

// Update persists the full set of mutable fields of a company.
func (r *CompanyRepository) Update(ctx context.Context, company *Company) error {
	query := `
		UPDATE companies
		SET name = $2, email = $3, website = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		company.ID,
		company.Name,
		company.Email,
		company.Website,
	).Scan(&company.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("company", company.ID)
	}
	if err != nil {
		r.log.Error().Err(err).Int64("company_id", company.ID).Msg("Failed to update company")
		return apperr.Wrap(err, apperr.CodeInternal, "failed to update company")
	}

	return nil
}

// Delete removes a company. The employees.company_id constraint rejects the
// delete while any employee still references the company; that case surfaces
// as a restricted-delete error, distinct from other persistence failures.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return apperr.RestrictedDelete("company still has employees")
	}
	if err != nil {
		r.log.Error().Err(err).Int64("company_id", id).Msg("Failed to delete company")
		return apperr.Wrap(err, apperr.CodeInternal, "failed to delete company")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("company", id)
	}

	return nil
}

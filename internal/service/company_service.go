package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pesio-ai/be-plt-directory/internal/apperr"
	"github.com/pesio-ai/be-plt-directory/internal/repository"
)

// CompanyStore is the subset of the company repository the service needs.
type CompanyStore interface {
	List(ctx context.Context, page int) ([]*repository.Company, int64, error)
	Get(ctx context.Context, id int64) (*repository.Company, error)
	Create(ctx context.Context, company *repository.Company) error
	Update(ctx context.Context, company *repository.Company) error
	Delete(ctx context.Context, id int64) error
}

// CompanyService validates company input and orchestrates the repository.
type CompanyService struct {
	companies CompanyStore
	log       zerolog.Logger
}

// NewCompanyService creates a new company service.
func NewCompanyService(companies CompanyStore, log zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, log: log}
}

// CreateCompanyRequest carries company creation input. Optional fields are nil
// when absent.
type CreateCompanyRequest struct {
	Name    string
	Email   *string
	Website *string
}

// UpdateCompanyRequest carries company update input. A nil field was absent
// from the request and keeps its stored value; a non-nil empty string clears
// an optional field.
type UpdateCompanyRequest struct {
	Name    *string
	Email   *string
	Website *string
}

// List returns one page of companies plus the total count.
func (s *CompanyService) List(ctx context.Context, page int) ([]*repository.Company, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.companies.List(ctx, page)
}

// Get returns a company by ID.
func (s *CompanyService) Get(ctx context.Context, id int64) (*repository.Company, error) {
	return s.companies.Get(ctx, id)
}

// Create validates and persists a new company. Validation failures are
// reported before any persistence attempt.
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*repository.Company, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	email := normalizeOptional(req.Email)
	if email != nil && !validEmail(*email) {
		return nil, apperr.Validation("email must be a valid email address")
	}

	website := normalizeOptional(req.Website)
	if website != nil && !validWebsite(*website) {
		return nil, apperr.Validation("website must be a valid URL")
	}

	company := &repository.Company{
		Name:    req.Name,
		Email:   email,
		Website: website,
	}

	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}

	s.log.Info().Int64("company_id", company.ID).Str("name", company.Name).Msg("Company created")
	return company, nil
}

// Update applies the supplied fields to an existing company. Absent fields
// keep their stored values for every field alike; an empty string on an
// optional field clears it, while an empty name is rejected.
func (s *CompanyService) Update(ctx context.Context, id int64, req UpdateCompanyRequest) (*repository.Company, error) {
	company, err := s.companies.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		company.Name = *req.Name
	}
	if req.Email != nil {
		email := normalizeOptional(req.Email)
		if email != nil && !validEmail(*email) {
			return nil, apperr.Validation("email must be a valid email address")
		}
		company.Email = email
	}
	if req.Website != nil {
		website := normalizeOptional(req.Website)
		if website != nil && !validWebsite(*website) {
			return nil, apperr.Validation("website must be a valid URL")
		}
		company.Website = website
	}

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// Delete removes a company. The repository reports a restricted delete while
// employees still reference it.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("company_id", id).Msg("Company deleted")
	return nil
}

package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesio-ai/be-plt-directory/internal/apperr"
	"github.com/pesio-ai/be-plt-directory/internal/repository"
)

// fakeEmployeeStore shares the directory maps so employee writes are checked
// against the same companies the company service manages.
type fakeEmployeeStore struct {
	dir *fakeDirectoryStore
}

func (f *fakeEmployeeStore) resolve(e *repository.Employee) *repository.Employee {
	clone := *e
	if c, ok := f.dir.companies[e.CompanyID]; ok {
		companyClone := *c
		clone.Company = &companyClone
	}
	return &clone
}

func (f *fakeEmployeeStore) List(_ context.Context, page int) ([]*repository.Employee, int64, error) {
	out := make([]*repository.Employee, 0, len(f.dir.employees))
	for i := int64(1); i < f.dir.nextEmployeeID; i++ {
		if e, ok := f.dir.employees[i]; ok {
			out = append(out, f.resolve(e))
		}
	}
	total := int64(len(out))
	start := (page - 1) * repository.PageSize
	if start >= len(out) {
		return nil, total, nil
	}
	end := start + repository.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeEmployeeStore) Get(_ context.Context, id int64) (*repository.Employee, error) {
	e, ok := f.dir.employees[id]
	if !ok {
		return nil, apperr.NotFound("employee", id)
	}
	return f.resolve(e), nil
}

func (f *fakeEmployeeStore) Create(_ context.Context, employee *repository.Employee) error {
	if _, ok := f.dir.companies[employee.CompanyID]; !ok {
		return apperr.Validation("companyId does not reference an existing company")
	}
	employee.ID = f.dir.nextEmployeeID
	f.dir.nextEmployeeID++
	clone := *employee
	f.dir.employees[employee.ID] = &clone
	return nil
}

func (f *fakeEmployeeStore) Update(_ context.Context, employee *repository.Employee) error {
	if _, ok := f.dir.employees[employee.ID]; !ok {
		return apperr.NotFound("employee", employee.ID)
	}
	if _, ok := f.dir.companies[employee.CompanyID]; !ok {
		return apperr.Validation("companyId does not reference an existing company")
	}
	clone := *employee
	clone.Company = nil
	f.dir.employees[employee.ID] = &clone
	return nil
}

func (f *fakeEmployeeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.dir.employees[id]; !ok {
		return apperr.NotFound("employee", id)
	}
	delete(f.dir.employees, id)
	return nil
}

func setupDirectoryServices() (*CompanyService, *EmployeeService) {
	store := newFakeDirectoryStore()
	return NewCompanyService(store, zerolog.Nop()),
		NewEmployeeService(&fakeEmployeeStore{dir: store}, zerolog.Nop())
}

func TestEmployeeCreate(t *testing.T) {
	companies, employees := setupDirectoryServices()

	company, err := companies.Create(context.Background(), CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	employee, err := employees.Create(context.Background(), CreateEmployeeRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		CompanyID: company.ID,
		Email:     str("jane@acme.com"),
		Phone:     str("+1 555 0100"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), employee.ID)
	assert.Equal(t, "Jane", employee.FirstName)
	require.NotNil(t, employee.Company, "created employee should carry its resolved company")
	assert.Equal(t, "Acme", employee.Company.Name)
}

func TestEmployeeCreateValidation(t *testing.T) {
	companies, employees := setupDirectoryServices()

	company, err := companies.Create(context.Background(), CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  CreateEmployeeRequest
	}{
		{name: "missing first name", req: CreateEmployeeRequest{LastName: "Doe", CompanyID: company.ID}},
		{name: "missing last name", req: CreateEmployeeRequest{FirstName: "Jane", CompanyID: company.ID}},
		{name: "missing company", req: CreateEmployeeRequest{FirstName: "Jane", LastName: "Doe"}},
		{name: "malformed email", req: CreateEmployeeRequest{FirstName: "Jane", LastName: "Doe", CompanyID: company.ID, Email: str("nope")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := employees.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
		})
	}
}

func TestEmployeeCreateDanglingCompany(t *testing.T) {
	_, employees := setupDirectoryServices()

	_, err := employees.Create(context.Background(), CreateEmployeeRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		CompanyID: 999,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestEmployeeUpdateKeepsAbsentFields(t *testing.T) {
	companies, employees := setupDirectoryServices()

	company, err := companies.Create(context.Background(), CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	created, err := employees.Create(context.Background(), CreateEmployeeRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		CompanyID: company.ID,
		Email:     str("jane@acme.com"),
	})
	require.NoError(t, err)

	updated, err := employees.Update(context.Background(), created.ID, UpdateEmployeeRequest{
		LastName: str("Smith"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane", updated.FirstName)
	assert.Equal(t, "Smith", updated.LastName)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "jane@acme.com", *updated.Email)
	assert.Equal(t, company.ID, updated.CompanyID)
}

func TestEmployeeUpdateClearsOptionalField(t *testing.T) {
	companies, employees := setupDirectoryServices()

	company, err := companies.Create(context.Background(), CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	created, err := employees.Create(context.Background(), CreateEmployeeRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		CompanyID: company.ID,
		Phone:     str("+1 555 0100"),
	})
	require.NoError(t, err)

	updated, err := employees.Update(context.Background(), created.ID, UpdateEmployeeRequest{
		Phone: str(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Phone)
}

func TestEmployeeUpdateMovesCompany(t *testing.T) {
	companies, employees := setupDirectoryServices()

	acme, err := companies.Create(context.Background(), CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	globex, err := companies.Create(context.Background(), CreateCompanyRequest{Name: "Globex"})
	require.NoError(t, err)

	created, err := employees.Create(context.Background(), CreateEmployeeRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		CompanyID: acme.ID,
	})
	require.NoError(t, err)

	updated, err := employees.Update(context.Background(), created.ID, UpdateEmployeeRequest{
		CompanyID: &globex.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Company)
	assert.Equal(t, "Globex", updated.Company.Name)
}

func TestEmployeeUpdateDanglingCompany(t *testing.T) {
	companies, employees := setupDirectoryServices()

	acme, err := companies.Create(context.Background(), CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	created, err := employees.Create(context.Background(), CreateEmployeeRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		CompanyID: acme.ID,
	})
	require.NoError(t, err)

	ghost := int64(999)
	_, err = employees.Update(context.Background(), created.ID, UpdateEmployeeRequest{CompanyID: &ghost})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestEmployeeDeleteNotFound(t *testing.T) {
	_, employees := setupDirectoryServices()

	err := employees.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

// The full lifecycle: a referenced company refuses deletion until its last
// employee is removed.
func TestCompanyDeleteBlockedUntilEmployeesRemoved(t *testing.T) {
	companies, employees := setupDirectoryServices()

	acme, err := companies.Create(context.Background(), CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	jane, err := employees.Create(context.Background(), CreateEmployeeRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		CompanyID: acme.ID,
	})
	require.NoError(t, err)

	err = companies.Delete(context.Background(), acme.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeRestrictedDelete, apperr.CodeOf(err))

	require.NoError(t, employees.Delete(context.Background(), jane.ID))
	require.NoError(t, companies.Delete(context.Background(), acme.ID))

	_, err = companies.Get(context.Background(), acme.ID)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

package repository

import "time"

// User is a principal that can authenticate against the service.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccessToken is one issued bearer token, keyed by the token's jti.
// Deleting the row revokes the token.
type AccessToken struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Company represents a company record. Email and Website are NULL when unset.
type Company struct {
	ID        int64
	Name      string
	Email     *string
	Website   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Employee represents an employee record. CompanyID always references an
// existing company; the database enforces it. Company is populated on reads
// that resolve the relation.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	CompanyID int64
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Company   *Company
}

// PageSize is the fixed page size for list operations.
const PageSize = 10

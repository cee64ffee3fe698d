package companybus

import (
	"time"

	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/password"
	"github.com/jcpaschoal/kangaroute/business/types/phone"
)

// Company represents a tenant of the system.
type Company struct {
	ID            int64
	CompanyName   name.Name
	AdminUsername string
	Email         string
	PasswordHash  []byte
	Phone         phone.Phone
	Address       string
	TaxID         string
	Website       string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCompany contains information needed to register a company.
type NewCompany struct {
	CompanyName   name.Name
	AdminUsername string
	Password      password.Password
	Email         string
	Phone         phone.Phone
	Address       string
	TaxID         string
	Website       string
}

// UpdateCompany contains information needed to update a company. Nil fields
// are left untouched. An empty Website clears it.
type UpdateCompany struct {
	CompanyName   *name.Name
	AdminUsername *string
	Email         *string
	Phone         *phone.Phone
	Address       *string
	TaxID         *string
	Website       *string
}

// Conflict identifies the unique keys to look for among other companies.
type Conflict struct {
	ExcludeID     int64
	Email         string
	AdminUsername string
	TaxID         string
}

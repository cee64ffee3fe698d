package companyapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/password"
	"github.com/jcpaschoal/kangaroute/business/types/phone"
)

// =============================================================================
// Company (Output)
// =============================================================================

// Company is the public profile of a company. It never carries the password
// hash.
type Company struct {
	ID            int64   `json:"id"`
	CompanyName   string  `json:"companyName"`
	AdminUsername string  `json:"adminUsername"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	TaxID         string  `json:"taxId"`
	Website       *string `json:"website"`
	IsActive      bool    `json:"isActive"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToAppCompany converts a business company into its public profile.
func ToAppCompany(bus companybus.Company) Company {
	var website *string
	if bus.Website != "" {
		w := bus.Website
		website = &w
	}

	return Company{
		ID:            bus.ID,
		CompanyName:   bus.CompanyName.String(),
		AdminUsername: bus.AdminUsername,
		Email:         bus.Email,
		Phone:         bus.Phone.String(),
		Address:       bus.Address,
		TaxID:         bus.TaxID,
		Website:       website,
		IsActive:      bus.IsActive,
		CreatedAt:     bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppCompanies(cmps []companybus.Company) []Company {
	app := make([]Company, len(cmps))
	for i, cmp := range cmps {
		app[i] = ToAppCompany(cmp)
	}
	return app
}

// RegisteredCompany is returned after a successful registration.
type RegisteredCompany struct {
	Message string  `json:"message"`
	Company Company `json:"company"`
	Token   string  `json:"token"`
}

// Encode implements the web.Encoder interface.
func (app RegisteredCompany) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// CompanyResult wraps a single company.
type CompanyResult struct {
	Message string  `json:"message,omitempty"`
	Company Company `json:"company"`
}

// Encode implements the web.Encoder interface.
func (app CompanyResult) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// Companies wraps a list of companies.
type Companies struct {
	Companies []Company `json:"companies"`
}

// Encode implements the web.Encoder interface.
func (app Companies) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// =============================================================================
// NewCompany (Input)
// =============================================================================

// NewCompany defines the data needed to register a company.
type NewCompany struct {
	CompanyName   string `json:"companyName" validate:"required"`
	AdminUsername string `json:"adminUsername" validate:"required"`
	Password      string `json:"password" validate:"required"`
	Email         string `json:"email" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	TaxID         string `json:"taxId" validate:"required"`
	Website       string `json:"website"`
}

// Decode implements the web.Decoder interface.
func (app *NewCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCompany) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCompany(app NewCompany) (companybus.NewCompany, error) {
	var fe errs.FieldErrors

	nme, err := name.Parse(app.CompanyName)
	if err != nil {
		fe.Add("companyName", err)
	}

	pass, err := password.Parse(app.Password)
	if err != nil {
		fe.Add("password", err)
	}

	ph, err := phone.Parse(app.Phone)
	if err != nil {
		fe.Add("phone", err)
	}

	if len(fe) > 0 {
		return companybus.NewCompany{}, fe
	}

	bus := companybus.NewCompany{
		CompanyName:   nme,
		AdminUsername: strings.TrimSpace(app.AdminUsername),
		Password:      pass,
		Email:         strings.TrimSpace(app.Email),
		Phone:         ph,
		Address:       strings.TrimSpace(app.Address),
		TaxID:         strings.TrimSpace(app.TaxID),
		Website:       strings.TrimSpace(app.Website),
	}

	return bus, nil
}

// =============================================================================
// UpdateCompany (Input)
// =============================================================================

// ErrNothingToUpdate is returned when an update names no field.
var ErrNothingToUpdate = errors.New("no fields supplied for update")

// UpdateCompany defines the data that can be changed on a company. Absent
// fields are left untouched.
type UpdateCompany struct {
	CompanyName   *string `json:"companyName"`
	AdminUsername *string `json:"adminUsername"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	TaxID         *string `json:"taxId"`
	Website       *string `json:"website"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCompany) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks at least one field is present and that no required field
// was supplied blank. Website may be blank, which clears it.
func (app UpdateCompany) Validate() error {
	if app == (UpdateCompany{}) {
		return errs.New(errs.InvalidArgument, ErrNothingToUpdate)
	}

	var fe errs.FieldErrors

	required := []struct {
		field string
		value *string
	}{
		{"companyName", app.CompanyName},
		{"adminUsername", app.AdminUsername},
		{"email", app.Email},
		{"phone", app.Phone},
		{"address", app.Address},
		{"taxId", app.TaxID},
	}

	for _, r := range required {
		if r.value != nil && strings.TrimSpace(*r.value) == "" {
			fe.Add(r.field, fmt.Errorf("%s must not be blank", r.field))
		}
	}

	if len(fe) > 0 {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", fe))
	}

	return nil
}

func toBusUpdateCompany(app UpdateCompany) (companybus.UpdateCompany, error) {
	var bus companybus.UpdateCompany

	if app.CompanyName != nil {
		nme, err := name.Parse(*app.CompanyName)
		if err != nil {
			return companybus.UpdateCompany{}, errs.NewFieldErrors("companyName", err)
		}
		bus.CompanyName = &nme
	}

	if app.Phone != nil {
		ph, err := phone.Parse(*app.Phone)
		if err != nil {
			return companybus.UpdateCompany{}, errs.NewFieldErrors("phone", err)
		}
		bus.Phone = &ph
	}

	bus.AdminUsername = trimmed(app.AdminUsername)
	bus.Email = trimmed(app.Email)
	bus.Address = trimmed(app.Address)
	bus.TaxID = trimmed(app.TaxID)
	bus.Website = trimmed(app.Website)

	return bus, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	v := strings.TrimSpace(*s)
	return &v
}

// Package companybus provides business access to the company (tenant) domain.
package companybus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/jcpaschoal/kangaroute/foundation/otel"
	"golang.org/x/crypto/bcrypt"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound              = errors.New("company not found")
	ErrUniqueCompany         = errors.New("email, admin username or tax ID already registered")
	ErrAuthenticationFailure = errors.New("incorrect credentials")
)

// hashCost is the bcrypt work factor used for company passwords.
const hashCost = 10

// dummyHash is compared against when the username does not exist so both
// failure paths spend the same time in bcrypt.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("kangaroute-dummy-password"), hashCost)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, cmp Company) (int64, error)
	Update(ctx context.Context, cmp Company) error
	TouchUpdatedAt(ctx context.Context, companyID int64, at time.Time) error
	HasConflict(ctx context.Context, c Conflict) (bool, error)
	QueryActive(ctx context.Context) ([]Company, error)
	QueryByID(ctx context.Context, companyID int64) (Company, error)
	QueryByUsername(ctx context.Context, username string) (Company, error)
}

// Core manages the set of APIs for company access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a company core API for use.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create registers a new company. The email, admin username and tax id must
// not be held by any other company, active or not.
func (c *Core) Create(ctx context.Context, nc NewCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.create")
	defer span.End()

	conflict := Conflict{
		Email:         nc.Email,
		AdminUsername: nc.AdminUsername,
		TaxID:         nc.TaxID,
	}

	if err := c.checkConflict(ctx, conflict); err != nil {
		return Company{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nc.Password.String()), hashCost)
	if err != nil {
		return Company{}, fmt.Errorf("generatefrompassword: %w", err)
	}

	now := time.Now()

	cmp := Company{
		CompanyName:   nc.CompanyName,
		AdminUsername: nc.AdminUsername,
		Email:         nc.Email,
		PasswordHash:  hash,
		Phone:         nc.Phone,
		Address:       nc.Address,
		TaxID:         nc.TaxID,
		Website:       nc.Website,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := c.storer.Create(ctx, cmp)
	if err != nil {
		return Company{}, fmt.Errorf("create: %w", err)
	}

	cmp.ID = id

	return cmp, nil
}

// Update modifies the supplied fields of a company. The resulting unique keys
// must not collide with any other company.
func (c *Core) Update(ctx context.Context, cmp Company, uc UpdateCompany) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.update")
	defer span.End()

	if uc.CompanyName != nil {
		cmp.CompanyName = *uc.CompanyName
	}

	if uc.AdminUsername != nil {
		cmp.AdminUsername = *uc.AdminUsername
	}

	if uc.Email != nil {
		cmp.Email = *uc.Email
	}

	if uc.Phone != nil {
		cmp.Phone = *uc.Phone
	}

	if uc.Address != nil {
		cmp.Address = *uc.Address
	}

	if uc.TaxID != nil {
		cmp.TaxID = *uc.TaxID
	}

	if uc.Website != nil {
		cmp.Website = *uc.Website
	}

	conflict := Conflict{
		ExcludeID:     cmp.ID,
		Email:         cmp.Email,
		AdminUsername: cmp.AdminUsername,
		TaxID:         cmp.TaxID,
	}

	if err := c.checkConflict(ctx, conflict); err != nil {
		return Company{}, err
	}

	cmp.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, cmp); err != nil {
		return Company{}, fmt.Errorf("update: %w", err)
	}

	return cmp, nil
}

// QueryActive retrieves every active company, newest first.
func (c *Core) QueryActive(ctx context.Context) ([]Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.queryactive")
	defer span.End()

	cmps, err := c.storer.QueryActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return cmps, nil
}

// QueryByID finds the active company by the specified ID.
func (c *Core) QueryByID(ctx context.Context, companyID int64) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.querybyid")
	defer span.End()

	cmp, err := c.storer.QueryByID(ctx, companyID)
	if err != nil {
		return Company{}, fmt.Errorf("query: companyID[%d]: %w", companyID, err)
	}

	return cmp, nil
}

// Authenticate finds an active company by its admin username and verifies the
// password. Unknown usernames and wrong passwords fail with the same error.
// On success the company's updated_at is refreshed.
func (c *Core) Authenticate(ctx context.Context, username string, password string) (Company, error) {
	ctx, span := otel.AddSpan(ctx, "business.companybus.authenticate")
	defer span.End()

	cmp, err := c.storer.QueryByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return Company{}, ErrAuthenticationFailure
		}
		return Company{}, fmt.Errorf("query: username[%s]: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword(cmp.PasswordHash, []byte(password)); err != nil {
		return Company{}, ErrAuthenticationFailure
	}

	now := time.Now()

	if err := c.storer.TouchUpdatedAt(ctx, cmp.ID, now); err != nil {
		return Company{}, fmt.Errorf("touch: companyID[%d]: %w", cmp.ID, err)
	}

	cmp.UpdatedAt = now

	return cmp, nil
}

func (c *Core) checkConflict(ctx context.Context, conflict Conflict) error {
	exists, err := c.storer.HasConflict(ctx, conflict)
	if err != nil {
		return fmt.Errorf("hasconflict: %w", err)
	}

	if exists {
		return ErrUniqueCompany
	}

	return nil
}

// Package vehiclebus provides business access to the vehicle domain.
package vehiclebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/types/plate"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/jcpaschoal/kangaroute/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound    = errors.New("vehicle not found")
	ErrUniquePlate = errors.New("license plate already registered for this company")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Every lookup is scoped to the owning company and to active
// vehicles.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, vcl Vehicle) (int64, error)
	Update(ctx context.Context, vcl Vehicle) error
	Deactivate(ctx context.Context, companyID int64, vehicleID int64, at time.Time) error
	PlateInUse(ctx context.Context, companyID int64, lp plate.Plate, excludeID int64) (bool, error)
	QueryByCompany(ctx context.Context, companyID int64) ([]Vehicle, error)
	QueryByID(ctx context.Context, companyID int64, vehicleID int64) (Vehicle, error)
}

// Core manages the set of APIs for vehicle access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a vehicle core API for use.
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

// Create adds a vehicle to the company's fleet. The plate must not be held by
// another active vehicle of the same company.
func (c *Core) Create(ctx context.Context, nv NewVehicle) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.create")
	defer span.End()

	if err := c.checkPlate(ctx, nv.CompanyID, nv.LicensePlate, 0); err != nil {
		return Vehicle{}, err
	}

	now := time.Now()

	vcl := Vehicle{
		CompanyID:    nv.CompanyID,
		LicensePlate: nv.LicensePlate,
		Name:         nv.Name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := c.storer.Create(ctx, vcl)
	if err != nil {
		return Vehicle{}, fmt.Errorf("create: %w", err)
	}

	vcl.ID = id

	return vcl, nil
}

// Update modifies the supplied fields of a vehicle.
func (c *Core) Update(ctx context.Context, vcl Vehicle, uv UpdateVehicle) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.update")
	defer span.End()

	if uv.LicensePlate != nil && !uv.LicensePlate.Equal(vcl.LicensePlate) {
		if err := c.checkPlate(ctx, vcl.CompanyID, *uv.LicensePlate, vcl.ID); err != nil {
			return Vehicle{}, err
		}
		vcl.LicensePlate = *uv.LicensePlate
	}

	if uv.Name != nil {
		vcl.Name = *uv.Name
	}

	vcl.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, vcl); err != nil {
		return Vehicle{}, fmt.Errorf("update: %w", err)
	}

	return vcl, nil
}

// Delete soft deletes the vehicle. A vehicle that is already inactive or
// owned by another company is not found.
func (c *Core) Delete(ctx context.Context, companyID int64, vehicleID int64) error {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.delete")
	defer span.End()

	if err := c.storer.Deactivate(ctx, companyID, vehicleID, time.Now()); err != nil {
		return fmt.Errorf("deactivate: vehicleID[%d]: %w", vehicleID, err)
	}

	return nil
}

// QueryByCompany retrieves the active vehicles of the company, newest first.
func (c *Core) QueryByCompany(ctx context.Context, companyID int64) ([]Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.querybycompany")
	defer span.End()

	vcls, err := c.storer.QueryByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("query: companyID[%d]: %w", companyID, err)
	}

	return vcls, nil
}

// QueryByID finds the active vehicle owned by the company.
func (c *Core) QueryByID(ctx context.Context, companyID int64, vehicleID int64) (Vehicle, error) {
	ctx, span := otel.AddSpan(ctx, "business.vehiclebus.querybyid")
	defer span.End()

	vcl, err := c.storer.QueryByID(ctx, companyID, vehicleID)
	if err != nil {
		return Vehicle{}, fmt.Errorf("query: vehicleID[%d]: %w", vehicleID, err)
	}

	return vcl, nil
}

func (c *Core) checkPlate(ctx context.Context, companyID int64, lp plate.Plate, excludeID int64) error {
	inUse, err := c.storer.PlateInUse(ctx, companyID, lp, excludeID)
	if err != nil {
		return fmt.Errorf("plateinuse: %w", err)
	}

	if inUse {
		return ErrUniquePlate
	}

	return nil
}

// Package slotbus provides business access to the slot domain. Slots are only
// reachable through an active vehicle owned by the calling company.
package slotbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/jcpaschoal/kangaroute/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound         = errors.New("slot not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrUniqueName       = errors.New("slot name already exists for this vehicle")
	ErrInvalidDimension = errors.New("slot dimension out of range")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Lookups taking a company id join through the vehicles table.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, slt Slot) (Slot, error)
	Update(ctx context.Context, companyID int64, slt Slot) (Slot, error)
	Delete(ctx context.Context, companyID int64, slotID int64) error
	NameInUse(ctx context.Context, vehicleID int64, nme name.Name, excludeID int64) (bool, error)
	QueryByVehicle(ctx context.Context, vehicleID int64) ([]Slot, error)
	QueryByID(ctx context.Context, companyID int64, slotID int64) (Slot, error)
}

// Core manages the set of APIs for slot access.
type Core struct {
	log        *logger.Logger
	vehicleBus *vehiclebus.Core
	storer     Storer
}

// NewCore constructs a slot core API for use.
func NewCore(log *logger.Logger, vehicleBus *vehiclebus.Core, storer Storer) *Core {
	return &Core{
		log:        log,
		vehicleBus: vehicleBus,
		storer:     storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	vehicleBus, err := c.vehicleBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, vehicleBus, storer), nil
}

// Create adds a slot to a vehicle owned by the company. The name must be
// unique within the vehicle, counting inactive slots.
func (c *Core) Create(ctx context.Context, companyID int64, ns NewSlot) (Slot, error) {
	ctx, span := otel.AddSpan(ctx, "business.slotbus.create")
	defer span.End()

	if err := c.checkVehicle(ctx, companyID, ns.VehicleID); err != nil {
		return Slot{}, err
	}

	if err := c.checkName(ctx, ns.VehicleID, ns.Name, 0); err != nil {
		return Slot{}, err
	}

	now := time.Now()

	slt := Slot{
		VehicleID: ns.VehicleID,
		Name:      ns.Name,
		Height:    ns.Height,
		Width:     ns.Width,
		Depth:     ns.Depth,
		IsActive:  ns.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, err := c.storer.Create(ctx, slt)
	if err != nil {
		return Slot{}, fmt.Errorf("create: %w", err)
	}

	return stored, nil
}

// Update modifies the supplied fields of a slot previously retrieved by
// QueryByID for the same company.
func (c *Core) Update(ctx context.Context, companyID int64, slt Slot, us UpdateSlot) (Slot, error) {
	ctx, span := otel.AddSpan(ctx, "business.slotbus.update")
	defer span.End()

	if us.Name != nil && !us.Name.Equal(slt.Name) {
		if err := c.checkName(ctx, slt.VehicleID, *us.Name, slt.ID); err != nil {
			return Slot{}, err
		}
		slt.Name = *us.Name
	}

	if us.Height != nil {
		slt.Height = *us.Height
	}

	if us.Width != nil {
		slt.Width = *us.Width
	}

	if us.Depth != nil {
		slt.Depth = *us.Depth
	}

	if us.IsActive != nil {
		slt.IsActive = *us.IsActive
	}

	slt.UpdatedAt = time.Now()

	stored, err := c.storer.Update(ctx, companyID, slt)
	if err != nil {
		return Slot{}, fmt.Errorf("update: %w", err)
	}

	return stored, nil
}

// Delete removes the slot if it sits in an active vehicle owned by the
// company.
func (c *Core) Delete(ctx context.Context, companyID int64, slotID int64) error {
	ctx, span := otel.AddSpan(ctx, "business.slotbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, companyID, slotID); err != nil {
		return fmt.Errorf("delete: slotID[%d]: %w", slotID, err)
	}

	return nil
}

// QueryByVehicle retrieves the slots of an active vehicle owned by the
// company, newest first.
func (c *Core) QueryByVehicle(ctx context.Context, companyID int64, vehicleID int64) ([]Slot, error) {
	ctx, span := otel.AddSpan(ctx, "business.slotbus.querybyvehicle")
	defer span.End()

	if err := c.checkVehicle(ctx, companyID, vehicleID); err != nil {
		return nil, err
	}

	slts, err := c.storer.QueryByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("query: vehicleID[%d]: %w", vehicleID, err)
	}

	return slts, nil
}

// QueryByID finds the slot if it sits in an active vehicle owned by the
// company.
func (c *Core) QueryByID(ctx context.Context, companyID int64, slotID int64) (Slot, error) {
	ctx, span := otel.AddSpan(ctx, "business.slotbus.querybyid")
	defer span.End()

	slt, err := c.storer.QueryByID(ctx, companyID, slotID)
	if err != nil {
		return Slot{}, fmt.Errorf("query: slotID[%d]: %w", slotID, err)
	}

	return slt, nil
}

func (c *Core) checkVehicle(ctx context.Context, companyID int64, vehicleID int64) error {
	if _, err := c.vehicleBus.QueryByID(ctx, companyID, vehicleID); err != nil {
		if errors.Is(err, vehiclebus.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("vehicle: %w", err)
	}

	return nil
}

func (c *Core) checkName(ctx context.Context, vehicleID int64, nme name.Name, excludeID int64) error {
	inUse, err := c.storer.NameInUse(ctx, vehicleID, nme, excludeID)
	if err != nil {
		return fmt.Errorf("nameinuse: %w", err)
	}

	if inUse {
		return ErrUniqueName
	}

	return nil
}

// Package slotdb contains slot related CRUD functionality.
package slotdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcpaschoal/kangaroute/business/domain/slotbus"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/jmoiron/sqlx"
)

const columns = `s.id, s.vehicle_id, s.name, s.height, s.width, s.depth, s.is_active, s.created_at, s.updated_at`

// ownedVehicles restricts a statement to the active vehicles of :company_id.
const ownedVehicles = `SELECT v.id FROM vehicles v WHERE v.company_id = :company_id AND v.is_active`

// Store manages the set of APIs for slot database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (slotbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new slot into the database and returns the stored row.
func (s *Store) Create(ctx context.Context, slt slotbus.Slot) (slotbus.Slot, error) {
	const q = `
	INSERT INTO slots AS s
		(vehicle_id, name, height, width, depth, is_active, created_at, updated_at)
	VALUES
		(:vehicle_id, :name, :height, :width, :depth, :is_active, :created_at, :updated_at)
	RETURNING
		` + columns

	var dbSlt slotDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, toDBSlot(slt), &dbSlt); err != nil {
		return slotbus.Slot{}, fmt.Errorf("namedquerystruct: %w", mapError(err))
	}

	return toBusSlot(dbSlt)
}

// Update replaces the mutable columns of a slot that sits in an active vehicle
// of the company and returns the stored row.
func (s *Store) Update(ctx context.Context, companyID int64, slt slotbus.Slot) (slotbus.Slot, error) {
	data := struct {
		slotDB
		CompanyID int64 `db:"company_id"`
	}{
		slotDB:    toDBSlot(slt),
		CompanyID: companyID,
	}

	const q = `
	UPDATE
		slots AS s
	SET
		name = :name,
		height = :height,
		width = :width,
		depth = :depth,
		is_active = :is_active,
		updated_at = :updated_at
	WHERE
		s.id = :id AND s.vehicle_id IN (` + ownedVehicles + `)
	RETURNING
		` + columns

	var dbSlt slotDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSlt); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return slotbus.Slot{}, fmt.Errorf("update: %w", slotbus.ErrNotFound)
		}
		return slotbus.Slot{}, fmt.Errorf("namedquerystruct: %w", mapError(err))
	}

	return toBusSlot(dbSlt)
}

// Delete removes a slot that sits in an active vehicle of the company.
func (s *Store) Delete(ctx context.Context, companyID int64, slotID int64) error {
	data := struct {
		ID        int64 `db:"id"`
		CompanyID int64 `db:"company_id"`
	}{
		ID:        slotID,
		CompanyID: companyID,
	}

	const q = `
	DELETE FROM
		slots
	WHERE
		id = :id AND vehicle_id IN (` + ownedVehicles + `)`

	n, err := sqldb.NamedExecContextCount(ctx, s.log, s.db, q, data)
	if err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	if n == 0 {
		return slotbus.ErrNotFound
	}

	return nil
}

// NameInUse reports whether another slot of the vehicle, active or not,
// already has the name.
func (s *Store) NameInUse(ctx context.Context, vehicleID int64, nme name.Name, excludeID int64) (bool, error) {
	data := struct {
		VehicleID int64  `db:"vehicle_id"`
		Name      string `db:"name"`
		ExcludeID int64  `db:"exclude_id"`
	}{
		VehicleID: vehicleID,
		Name:      nme.String(),
		ExcludeID: excludeID,
	}

	const q = `
	SELECT
		id
	FROM
		slots
	WHERE
		vehicle_id = :vehicle_id AND name = :name AND id <> :exclude_id
	LIMIT 1`

	var row struct {
		ID int64 `db:"id"`
	}

	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &row); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("namedquerystruct: %w", err)
	}

	return true, nil
}

// QueryByVehicle retrieves the slots of a vehicle, newest first. Ownership of
// the vehicle is checked by the caller.
func (s *Store) QueryByVehicle(ctx context.Context, vehicleID int64) ([]slotbus.Slot, error) {
	data := struct {
		VehicleID int64 `db:"vehicle_id"`
	}{
		VehicleID: vehicleID,
	}

	const q = `
	SELECT
		` + columns + `
	FROM
		slots s
	WHERE
		s.vehicle_id = :vehicle_id
	ORDER BY
		s.created_at DESC, s.id DESC`

	var dbSlts []slotDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbSlts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusSlots(dbSlts)
}

// QueryByID gets the slot if its vehicle is active and owned by the company.
func (s *Store) QueryByID(ctx context.Context, companyID int64, slotID int64) (slotbus.Slot, error) {
	data := struct {
		ID        int64 `db:"id"`
		CompanyID int64 `db:"company_id"`
	}{
		ID:        slotID,
		CompanyID: companyID,
	}

	const q = `
	SELECT
		` + columns + `
	FROM
		slots s
	JOIN
		vehicles v ON v.id = s.vehicle_id
	WHERE
		s.id = :id AND v.company_id = :company_id AND v.is_active`

	var dbSlt slotDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSlt); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return slotbus.Slot{}, fmt.Errorf("db: %w", slotbus.ErrNotFound)
		}
		return slotbus.Slot{}, fmt.Errorf("db: %w", err)
	}

	return toBusSlot(dbSlt)
}

func mapError(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	if errors.As(err, &dupErr) && dupErr.Column == "slots_vehicle_name_key" {
		return slotbus.ErrUniqueName
	}

	if errors.Is(err, sqldb.ErrForeignKeyMissing) {
		return slotbus.ErrVehicleNotFound
	}

	if errors.Is(err, sqldb.ErrCheckViolation) {
		return slotbus.ErrInvalidDimension
	}

	return err
}

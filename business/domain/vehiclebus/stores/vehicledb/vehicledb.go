// Package vehicledb contains vehicle related CRUD functionality.
package vehicledb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/types/plate"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/jmoiron/sqlx"
)

const columns = `id, company_id, license_plate, name, is_active, created_at, updated_at`

// Store manages the set of APIs for vehicle database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (vehiclebus.Storer, error) {
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

// Create inserts a new vehicle into the database and returns its id.
func (s *Store) Create(ctx context.Context, vcl vehiclebus.Vehicle) (int64, error) {
	const q = `
	INSERT INTO vehicles
		(company_id, license_plate, name, is_active, created_at, updated_at)
	VALUES
		(:company_id, :license_plate, :name, :is_active, :created_at, :updated_at)
	RETURNING id`

	var row struct {
		ID int64 `db:"id"`
	}

	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, toDBVehicle(vcl), &row); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", mapUnique(err))
	}

	return row.ID, nil
}

// Update replaces the mutable columns of an active vehicle.
func (s *Store) Update(ctx context.Context, vcl vehiclebus.Vehicle) error {
	const q = `
	UPDATE
		vehicles
	SET
		license_plate = :license_plate,
		name = :name,
		updated_at = :updated_at
	WHERE
		id = :id AND company_id = :company_id AND is_active`

	n, err := sqldb.NamedExecContextCount(ctx, s.log, s.db, q, toDBVehicle(vcl))
	if err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapUnique(err))
	}

	if n == 0 {
		return fmt.Errorf("update: %w", vehiclebus.ErrNotFound)
	}

	return nil
}

// Deactivate flips an active vehicle owned by the company to inactive.
func (s *Store) Deactivate(ctx context.Context, companyID int64, vehicleID int64, at time.Time) error {
	data := struct {
		ID        int64     `db:"id"`
		CompanyID int64     `db:"company_id"`
		UpdatedAt time.Time `db:"updated_at"`
	}{
		ID:        vehicleID,
		CompanyID: companyID,
		UpdatedAt: at.UTC(),
	}

	const q = `
	UPDATE
		vehicles
	SET
		is_active = FALSE,
		updated_at = :updated_at
	WHERE
		id = :id AND company_id = :company_id AND is_active`

	n, err := sqldb.NamedExecContextCount(ctx, s.log, s.db, q, data)
	if err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	if n == 0 {
		return vehiclebus.ErrNotFound
	}

	return nil
}

// PlateInUse reports whether another active vehicle of the company holds the
// plate.
func (s *Store) PlateInUse(ctx context.Context, companyID int64, lp plate.Plate, excludeID int64) (bool, error) {
	data := struct {
		CompanyID    int64  `db:"company_id"`
		LicensePlate string `db:"license_plate"`
		ExcludeID    int64  `db:"exclude_id"`
	}{
		CompanyID:    companyID,
		LicensePlate: lp.String(),
		ExcludeID:    excludeID,
	}

	const q = `
	SELECT
		id
	FROM
		vehicles
	WHERE
		company_id = :company_id AND license_plate = :license_plate AND is_active AND id <> :exclude_id
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

// QueryByCompany retrieves the active vehicles of a company, newest first.
func (s *Store) QueryByCompany(ctx context.Context, companyID int64) ([]vehiclebus.Vehicle, error) {
	data := struct {
		CompanyID int64 `db:"company_id"`
	}{
		CompanyID: companyID,
	}

	const q = `
	SELECT
		` + columns + `
	FROM
		vehicles
	WHERE
		company_id = :company_id AND is_active
	ORDER BY
		created_at DESC, id DESC`

	var dbVcls []vehicleDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbVcls); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusVehicles(dbVcls)
}

// QueryByID gets the active vehicle owned by the company.
func (s *Store) QueryByID(ctx context.Context, companyID int64, vehicleID int64) (vehiclebus.Vehicle, error) {
	data := struct {
		ID        int64 `db:"id"`
		CompanyID int64 `db:"company_id"`
	}{
		ID:        vehicleID,
		CompanyID: companyID,
	}

	const q = `
	SELECT
		` + columns + `
	FROM
		vehicles
	WHERE
		id = :id AND company_id = :company_id AND is_active`

	var dbVcl vehicleDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbVcl); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return vehiclebus.Vehicle{}, fmt.Errorf("db: %w", vehiclebus.ErrNotFound)
		}
		return vehiclebus.Vehicle{}, fmt.Errorf("db: %w", err)
	}

	return toBusVehicle(dbVcl)
}

func mapUnique(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	if errors.As(err, &dupErr) && dupErr.Column == "vehicles_company_plate_active_key" {
		return vehiclebus.ErrUniquePlate
	}

	return err
}

// Package companydb contains company related CRUD functionality.
package companydb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/jmoiron/sqlx"
)

const columns = `id, company_name, admin_username, email, password_hash, phone, address, tax_id, website, is_active, created_at, updated_at`

// Store manages the set of APIs for company database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
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

// Create inserts a new company into the database and returns its id.
func (s *Store) Create(ctx context.Context, cmp companybus.Company) (int64, error) {
	const q = `
	INSERT INTO companies
		(company_name, admin_username, email, password_hash, phone, address, tax_id, website, is_active, created_at, updated_at)
	VALUES
		(:company_name, :admin_username, :email, :password_hash, :phone, :address, :tax_id, :website, :is_active, :created_at, :updated_at)
	RETURNING id`

	var row struct {
		ID int64 `db:"id"`
	}

	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, toDBCompany(cmp), &row); err != nil {
		return 0, fmt.Errorf("namedquerystruct: %w", mapUnique(err))
	}

	return row.ID, nil
}

// Update replaces the mutable columns of a company in the database.
func (s *Store) Update(ctx context.Context, cmp companybus.Company) error {
	const q = `
	UPDATE
		companies
	SET
		company_name = :company_name,
		admin_username = :admin_username,
		email = :email,
		phone = :phone,
		address = :address,
		tax_id = :tax_id,
		website = :website,
		updated_at = :updated_at
	WHERE
		id = :id AND is_active`

	n, err := sqldb.NamedExecContextCount(ctx, s.log, s.db, q, toDBCompany(cmp))
	if err != nil {
		return fmt.Errorf("namedexeccontext: %w", mapUnique(err))
	}

	if n == 0 {
		return fmt.Errorf("update: %w", companybus.ErrNotFound)
	}

	return nil
}

// TouchUpdatedAt refreshes the updated_at column of a company.
func (s *Store) TouchUpdatedAt(ctx context.Context, companyID int64, at time.Time) error {
	data := struct {
		ID        int64     `db:"id"`
		UpdatedAt time.Time `db:"updated_at"`
	}{
		ID:        companyID,
		UpdatedAt: at.UTC(),
	}

	const q = `
	UPDATE
		companies
	SET
		updated_at = :updated_at
	WHERE
		id = :id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// HasConflict reports whether another company, active or not, already holds
// any of the unique keys.
func (s *Store) HasConflict(ctx context.Context, c companybus.Conflict) (bool, error) {
	data := struct {
		ExcludeID     int64  `db:"exclude_id"`
		Email         string `db:"email"`
		AdminUsername string `db:"admin_username"`
		TaxID         string `db:"tax_id"`
	}{
		ExcludeID:     c.ExcludeID,
		Email:         c.Email,
		AdminUsername: c.AdminUsername,
		TaxID:         c.TaxID,
	}

	const q = `
	SELECT
		id
	FROM
		companies
	WHERE
		(email = :email OR admin_username = :admin_username OR tax_id = :tax_id) AND id <> :exclude_id
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

// QueryActive retrieves the active companies, newest first.
func (s *Store) QueryActive(ctx context.Context) ([]companybus.Company, error) {
	const q = `
	SELECT
		` + columns + `
	FROM
		companies
	WHERE
		is_active
	ORDER BY
		created_at DESC`

	var dbCmps []companyDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, struct{}{}, &dbCmps); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusCompanies(dbCmps)
}

// QueryByID gets the specified active company from the database.
func (s *Store) QueryByID(ctx context.Context, companyID int64) (companybus.Company, error) {
	data := struct {
		ID int64 `db:"id"`
	}{
		ID: companyID,
	}

	const q = `
	SELECT
		` + columns + `
	FROM
		companies
	WHERE
		id = :id AND is_active`

	return s.queryOne(ctx, q, data)
}

// QueryByUsername gets the active company whose admin has the username.
func (s *Store) QueryByUsername(ctx context.Context, username string) (companybus.Company, error) {
	data := struct {
		AdminUsername string `db:"admin_username"`
	}{
		AdminUsername: username,
	}

	const q = `
	SELECT
		` + columns + `
	FROM
		companies
	WHERE
		admin_username = :admin_username AND is_active`

	return s.queryOne(ctx, q, data)
}

func (s *Store) queryOne(ctx context.Context, q string, data any) (companybus.Company, error) {
	var dbCmp companyDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbCmp); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return companybus.Company{}, fmt.Errorf("db: %w", companybus.ErrNotFound)
		}
		return companybus.Company{}, fmt.Errorf("db: %w", err)
	}

	return toBusCompany(dbCmp)
}

// mapUnique turns any unique violation on the companies table into the
// combined conflict error. Racing registrations land here.
func mapUnique(err error) error {
	var dupErr sqldb.ErrDBDuplicatedEntry
	if errors.As(err, &dupErr) {
		switch dupErr.Column {
		case "companies_email_key", "companies_admin_username_key", "companies_tax_id_key":
			return companybus.ErrUniqueCompany
		}
	}

	return err
}

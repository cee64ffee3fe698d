package companydb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/phone"
)

type companyDB struct {
	ID            int64          `db:"id"`
	CompanyName   string         `db:"company_name"`
	AdminUsername string         `db:"admin_username"`
	Email         string         `db:"email"`
	PasswordHash  []byte         `db:"password_hash"`
	Phone         string         `db:"phone"`
	Address       string         `db:"address"`
	TaxID         string         `db:"tax_id"`
	Website       sql.NullString `db:"website"`
	IsActive      bool           `db:"is_active"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func toDBCompany(bus companybus.Company) companyDB {
	return companyDB{
		ID:            bus.ID,
		CompanyName:   bus.CompanyName.String(),
		AdminUsername: bus.AdminUsername,
		Email:         bus.Email,
		PasswordHash:  bus.PasswordHash,
		Phone:         bus.Phone.String(),
		Address:       bus.Address,
		TaxID:         bus.TaxID,
		Website: sql.NullString{
			String: bus.Website,
			Valid:  bus.Website != "",
		},
		IsActive:  bus.IsActive,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusCompany(db companyDB) (companybus.Company, error) {
	nme, err := name.Parse(db.CompanyName)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse name: %w", err)
	}

	ph, err := phone.Parse(db.Phone)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse phone: %w", err)
	}

	bus := companybus.Company{
		ID:            db.ID,
		CompanyName:   nme,
		AdminUsername: db.AdminUsername,
		Email:         db.Email,
		PasswordHash:  db.PasswordHash,
		Phone:         ph,
		Address:       db.Address,
		TaxID:         db.TaxID,
		Website:       db.Website.String,
		IsActive:      db.IsActive,
		CreatedAt:     db.CreatedAt.In(time.Local),
		UpdatedAt:     db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusCompanies(dbs []companyDB) ([]companybus.Company, error) {
	bus := make([]companybus.Company, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusCompany(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

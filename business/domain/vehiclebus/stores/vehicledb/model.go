package vehicledb

import (
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/plate"
)

type vehicleDB struct {
	ID           int64     `db:"id"`
	CompanyID    int64     `db:"company_id"`
	LicensePlate string    `db:"license_plate"`
	Name         string    `db:"name"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func toDBVehicle(bus vehiclebus.Vehicle) vehicleDB {
	return vehicleDB{
		ID:           bus.ID,
		CompanyID:    bus.CompanyID,
		LicensePlate: bus.LicensePlate.String(),
		Name:         bus.Name.String(),
		IsActive:     bus.IsActive,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusVehicle(db vehicleDB) (vehiclebus.Vehicle, error) {
	lp, err := plate.Parse(db.LicensePlate)
	if err != nil {
		return vehiclebus.Vehicle{}, fmt.Errorf("parse plate: %w", err)
	}

	nme, err := name.Parse(db.Name)
	if err != nil {
		return vehiclebus.Vehicle{}, fmt.Errorf("parse name: %w", err)
	}

	bus := vehiclebus.Vehicle{
		ID:           db.ID,
		CompanyID:    db.CompanyID,
		LicensePlate: lp,
		Name:         nme,
		IsActive:     db.IsActive,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusVehicles(dbs []vehicleDB) ([]vehiclebus.Vehicle, error) {
	bus := make([]vehiclebus.Vehicle, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusVehicle(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

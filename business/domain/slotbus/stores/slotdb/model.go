package slotdb

import (
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/business/domain/slotbus"
	"github.com/jcpaschoal/kangaroute/business/types/dimension"
	"github.com/jcpaschoal/kangaroute/business/types/name"
)

type slotDB struct {
	ID        int64     `db:"id"`
	VehicleID int64     `db:"vehicle_id"`
	Name      string    `db:"name"`
	Height    float64   `db:"height"`
	Width     float64   `db:"width"`
	Depth     float64   `db:"depth"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBSlot(bus slotbus.Slot) slotDB {
	return slotDB{
		ID:        bus.ID,
		VehicleID: bus.VehicleID,
		Name:      bus.Name.String(),
		Height:    bus.Height.Value(),
		Width:     bus.Width.Value(),
		Depth:     bus.Depth.Value(),
		IsActive:  bus.IsActive,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusSlot(db slotDB) (slotbus.Slot, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return slotbus.Slot{}, fmt.Errorf("parse name: %w", err)
	}

	dims := make([]dimension.Dimension, 3)
	for i, v := range []float64{db.Height, db.Width, db.Depth} {
		dims[i], err = dimension.Parse(v)
		if err != nil {
			return slotbus.Slot{}, fmt.Errorf("parse dimension: %w", err)
		}
	}

	bus := slotbus.Slot{
		ID:        db.ID,
		VehicleID: db.VehicleID,
		Name:      nme,
		Height:    dims[0],
		Width:     dims[1],
		Depth:     dims[2],
		IsActive:  db.IsActive,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusSlots(dbs []slotDB) ([]slotbus.Slot, error) {
	bus := make([]slotbus.Slot, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusSlot(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

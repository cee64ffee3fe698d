package vehiclebus

import (
	"time"

	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/plate"
)

// Vehicle represents a vehicle owned by a company.
type Vehicle struct {
	ID           int64
	CompanyID    int64
	LicensePlate plate.Plate
	Name         name.Name
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewVehicle is what we require from clients when adding a Vehicle.
type NewVehicle struct {
	CompanyID    int64
	LicensePlate plate.Plate
	Name         name.Name
}

// UpdateVehicle defines what information may be provided to modify an
// existing Vehicle. All fields are optional.
type UpdateVehicle struct {
	LicensePlate *plate.Plate
	Name         *name.Name
}

package vehicleapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/plate"
)

// Vehicle represents a vehicle of the authenticated company.
type Vehicle struct {
	ID           int64  `json:"id"`
	LicensePlate string `json:"licensePlate"`
	Name         string `json:"name"`
	CompanyID    int64  `json:"companyId"`
	IsActive     bool   `json:"isActive"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func toAppVehicle(bus vehiclebus.Vehicle) Vehicle {
	return Vehicle{
		ID:           bus.ID,
		LicensePlate: bus.LicensePlate.String(),
		Name:         bus.Name.String(),
		CompanyID:    bus.CompanyID,
		IsActive:     bus.IsActive,
		CreatedAt:    bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppVehicles(vcls []vehiclebus.Vehicle) []Vehicle {
	app := make([]Vehicle, len(vcls))
	for i, vcl := range vcls {
		app[i] = toAppVehicle(vcl)
	}
	return app
}

// VehicleResult wraps a single vehicle.
type VehicleResult struct {
	Message string  `json:"message,omitempty"`
	Vehicle Vehicle `json:"vehicle"`
}

// Encode implements the web.Encoder interface.
func (app VehicleResult) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// Vehicles wraps a list of vehicles.
type Vehicles struct {
	Vehicles []Vehicle `json:"vehicles"`
}

// Encode implements the web.Encoder interface.
func (app Vehicles) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// =============================================================================

// NewVehicle defines the data needed to add a vehicle.
type NewVehicle struct {
	LicensePlate string `json:"licensePlate" validate:"required"`
	Name         string `json:"name" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewVehicle) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewVehicle) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewVehicle(companyID int64, app NewVehicle) (vehiclebus.NewVehicle, error) {
	var fe errs.FieldErrors

	lp, err := plate.Parse(app.LicensePlate)
	if err != nil {
		fe.Add("licensePlate", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		fe.Add("name", err)
	}

	if len(fe) > 0 {
		return vehiclebus.NewVehicle{}, fe
	}

	bus := vehiclebus.NewVehicle{
		CompanyID:    companyID,
		LicensePlate: lp,
		Name:         nme,
	}

	return bus, nil
}

// =============================================================================

// ErrNothingToUpdate is returned when an update names no field.
var ErrNothingToUpdate = errors.New("no fields supplied for update")

// UpdateVehicle defines the data that can be changed on a vehicle.
type UpdateVehicle struct {
	LicensePlate *string `json:"licensePlate"`
	Name         *string `json:"name"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateVehicle) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks at least one field is present.
func (app UpdateVehicle) Validate() error {
	if app.LicensePlate == nil && app.Name == nil {
		return errs.New(errs.InvalidArgument, ErrNothingToUpdate)
	}
	return nil
}

func toBusUpdateVehicle(app UpdateVehicle) (vehiclebus.UpdateVehicle, error) {
	var bus vehiclebus.UpdateVehicle
	var fe errs.FieldErrors

	if app.LicensePlate != nil {
		lp, err := plate.Parse(*app.LicensePlate)
		if err != nil {
			fe.Add("licensePlate", err)
		}
		bus.LicensePlate = &lp
	}

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			fe.Add("name", err)
		}
		bus.Name = &nme
	}

	if len(fe) > 0 {
		return vehiclebus.UpdateVehicle{}, fe
	}

	return bus, nil
}

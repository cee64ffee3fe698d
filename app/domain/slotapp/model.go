package slotapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/business/domain/slotbus"
	"github.com/jcpaschoal/kangaroute/business/types/dimension"
	"github.com/jcpaschoal/kangaroute/business/types/name"
)

// Slot represents a cargo space of a vehicle. Dimensions are in centimeters.
type Slot struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Height    float64 `json:"height"`
	Width     float64 `json:"width"`
	Depth     float64 `json:"depth"`
	Volume    float64 `json:"volume"`
	IsActive  bool    `json:"isActive"`
	VehicleID int64   `json:"vehicleId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toAppSlot(bus slotbus.Slot) Slot {
	return Slot{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		Height:    bus.Height.Value(),
		Width:     bus.Width.Value(),
		Depth:     bus.Depth.Value(),
		Volume:    bus.Volume(),
		IsActive:  bus.IsActive,
		VehicleID: bus.VehicleID,
		CreatedAt: bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppSlots(slts []slotbus.Slot) []Slot {
	app := make([]Slot, len(slts))
	for i, slt := range slts {
		app[i] = toAppSlot(slt)
	}
	return app
}

// SlotResult wraps a single slot.
type SlotResult struct {
	Message string `json:"message,omitempty"`
	Slot    Slot   `json:"slot"`
}

// Encode implements the web.Encoder interface.
func (app SlotResult) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// Slots wraps the slots of one vehicle.
type Slots struct {
	Slots []Slot `json:"slots"`
}

// Encode implements the web.Encoder interface.
func (app Slots) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// =============================================================================

// NewSlot defines the data needed to add a slot. IsActive defaults to true.
type NewSlot struct {
	Name      string   `json:"name" validate:"required"`
	Height    *float64 `json:"height" validate:"required"`
	Width     *float64 `json:"width" validate:"required"`
	Depth     *float64 `json:"depth" validate:"required"`
	IsActive  *bool    `json:"isActive"`
	VehicleID int64    `json:"vehicleId" validate:"required,gt=0"`
}

// Decode implements the web.Decoder interface.
func (app *NewSlot) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewSlot) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewSlot(app NewSlot) (slotbus.NewSlot, error) {
	var fe errs.FieldErrors

	nme, err := name.Parse(app.Name)
	if err != nil {
		fe.Add("name", err)
	}

	height := parseDimension(&fe, "height", *app.Height)
	width := parseDimension(&fe, "width", *app.Width)
	depth := parseDimension(&fe, "depth", *app.Depth)

	if len(fe) > 0 {
		return slotbus.NewSlot{}, fe
	}

	isActive := true
	if app.IsActive != nil {
		isActive = *app.IsActive
	}

	bus := slotbus.NewSlot{
		VehicleID: app.VehicleID,
		Name:      nme,
		Height:    height,
		Width:     width,
		Depth:     depth,
		IsActive:  isActive,
	}

	return bus, nil
}

// =============================================================================

// ErrNothingToUpdate is returned when an update names no field.
var ErrNothingToUpdate = errors.New("no fields supplied for update")

// UpdateSlot defines the data that can be changed on a slot.
type UpdateSlot struct {
	Name     *string  `json:"name"`
	Height   *float64 `json:"height"`
	Width    *float64 `json:"width"`
	Depth    *float64 `json:"depth"`
	IsActive *bool    `json:"isActive"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateSlot) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks at least one field is present.
func (app UpdateSlot) Validate() error {
	if app == (UpdateSlot{}) {
		return errs.New(errs.InvalidArgument, ErrNothingToUpdate)
	}
	return nil
}

func toBusUpdateSlot(app UpdateSlot) (slotbus.UpdateSlot, error) {
	var bus slotbus.UpdateSlot
	var fe errs.FieldErrors

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		if err != nil {
			fe.Add("name", err)
		}
		bus.Name = &nme
	}

	if app.Height != nil {
		d := parseDimension(&fe, "height", *app.Height)
		bus.Height = &d
	}

	if app.Width != nil {
		d := parseDimension(&fe, "width", *app.Width)
		bus.Width = &d
	}

	if app.Depth != nil {
		d := parseDimension(&fe, "depth", *app.Depth)
		bus.Depth = &d
	}

	if len(fe) > 0 {
		return slotbus.UpdateSlot{}, fe
	}

	bus.IsActive = app.IsActive

	return bus, nil
}

func parseDimension(fe *errs.FieldErrors, field string, value float64) dimension.Dimension {
	d, err := dimension.Parse(value)
	if err != nil {
		fe.Add(field, fmt.Errorf("%s: %w", field, err))
	}
	return d
}

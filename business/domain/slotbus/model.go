package slotbus

import (
	"time"

	"github.com/jcpaschoal/kangaroute/business/types/dimension"
	"github.com/jcpaschoal/kangaroute/business/types/name"
)

// Slot represents a cargo space inside a vehicle.
type Slot struct {
	ID        int64
	VehicleID int64
	Name      name.Name
	Height    dimension.Dimension
	Width     dimension.Dimension
	Depth     dimension.Dimension
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Volume returns the slot capacity in cubic centimeters.
func (s Slot) Volume() float64 {
	return dimension.Volume(s.Height, s.Width, s.Depth)
}

// NewSlot is what we require from clients when adding a Slot.
type NewSlot struct {
	VehicleID int64
	Name      name.Name
	Height    dimension.Dimension
	Width     dimension.Dimension
	Depth     dimension.Dimension
	IsActive  bool
}

// UpdateSlot defines what information may be provided to modify an existing
// Slot. All fields are optional.
type UpdateSlot struct {
	Name     *name.Name
	Height   *dimension.Dimension
	Width    *dimension.Dimension
	Depth    *dimension.Dimension
	IsActive *bool
}

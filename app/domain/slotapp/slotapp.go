// Package slotapp maintains the app layer api for the slot domain.
package slotapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/app/sdk/mid"
	"github.com/jcpaschoal/kangaroute/business/domain/slotbus"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

type app struct {
	slotBus *slotbus.Core
}

func newApp(slotBus *slotbus.Core) *app {
	return &app{
		slotBus: slotBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewSlot
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ns, err := toBusNewSlot(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	slt, err := a.slotBus.Create(ctx, companyID, ns)
	if err != nil {
		if e := busError(err); e != nil {
			return e
		}
		return errs.Errorf(errs.Internal, "create: vehicleID[%d]: %s", ns.VehicleID, err)
	}

	return web.Created(SlotResult{
		Message: "Slot created successfully",
		Slot:    toAppSlot(slt),
	})
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	slotID, err := web.ParamInt64(r, "id")
	if err != nil {
		return errs.NewFieldErrors("id", err)
	}

	var app UpdateSlot
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	us, err := toBusUpdateSlot(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	slt, err := a.slotBus.QueryByID(ctx, companyID, slotID)
	if err != nil {
		if e := busError(err); e != nil {
			return e
		}
		return errs.Errorf(errs.Internal, "querybyid: slotID[%d]: %s", slotID, err)
	}

	upd, err := a.slotBus.Update(ctx, companyID, slt, us)
	if err != nil {
		if e := busError(err); e != nil {
			return e
		}
		return errs.Errorf(errs.Internal, "update: slotID[%d]: %s", slotID, err)
	}

	return SlotResult{
		Message: "Slot updated successfully",
		Slot:    toAppSlot(upd),
	}
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	slotID, err := web.ParamInt64(r, "id")
	if err != nil {
		return errs.NewFieldErrors("id", err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	if err := a.slotBus.Delete(ctx, companyID, slotID); err != nil {
		if e := busError(err); e != nil {
			return e
		}
		return errs.Errorf(errs.Internal, "delete: slotID[%d]: %s", slotID, err)
	}

	return web.Message{Message: "Slot deleted successfully"}
}

func (a *app) queryByVehicle(ctx context.Context, r *http.Request) web.Encoder {
	vehicleID, err := web.ParamInt64(r, "vehicleId")
	if err != nil {
		return errs.NewFieldErrors("vehicleId", err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	slts, err := a.slotBus.QueryByVehicle(ctx, companyID, vehicleID)
	if err != nil {
		if e := busError(err); e != nil {
			return e
		}
		return errs.Errorf(errs.Internal, "querybyvehicle: vehicleID[%d]: %s", vehicleID, err)
	}

	return Slots{Slots: toAppSlots(slts)}
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	slotID, err := web.ParamInt64(r, "id")
	if err != nil {
		return errs.NewFieldErrors("id", err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	slt, err := a.slotBus.QueryByID(ctx, companyID, slotID)
	if err != nil {
		if e := busError(err); e != nil {
			return e
		}
		return errs.Errorf(errs.Internal, "querybyid: slotID[%d]: %s", slotID, err)
	}

	return SlotResult{Slot: toAppSlot(slt)}
}

// busError maps the slot domain errors clients are allowed to see. It returns
// nil for anything else.
func busError(err error) *errs.Error {
	switch {
	case errors.Is(err, slotbus.ErrNotFound):
		return errs.New(errs.NotFound, slotbus.ErrNotFound)
	case errors.Is(err, slotbus.ErrVehicleNotFound):
		return errs.New(errs.NotFound, slotbus.ErrVehicleNotFound)
	case errors.Is(err, slotbus.ErrUniqueName):
		return errs.New(errs.Aborted, slotbus.ErrUniqueName)
	case errors.Is(err, slotbus.ErrInvalidDimension):
		return errs.New(errs.InvalidArgument, slotbus.ErrInvalidDimension)
	}

	return nil
}

// Package vehicleapp maintains the app layer api for the vehicle domain.
package vehicleapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/app/sdk/mid"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
)

type app struct {
	vehicleBus *vehiclebus.Core
}

func newApp(vehicleBus *vehiclebus.Core) *app {
	return &app{
		vehicleBus: vehicleBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewVehicle
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	nv, err := toBusNewVehicle(companyID, app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	vcl, err := a.vehicleBus.Create(ctx, nv)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrUniquePlate) {
			return errs.New(errs.Aborted, vehiclebus.ErrUniquePlate)
		}
		return errs.Errorf(errs.Internal, "create: companyID[%d]: %s", companyID, err)
	}

	return web.Created(VehicleResult{
		Message: "Vehicle created successfully",
		Vehicle: toAppVehicle(vcl),
	})
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	vehicleID, err := web.ParamInt64(r, "id")
	if err != nil {
		return errs.NewFieldErrors("id", err)
	}

	var app UpdateVehicle
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uv, err := toBusUpdateVehicle(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	vcl, errResp := a.queryOwned(ctx, vehicleID)
	if errResp != nil {
		return errResp
	}

	upd, err := a.vehicleBus.Update(ctx, vcl, uv)
	if err != nil {
		switch {
		case errors.Is(err, vehiclebus.ErrUniquePlate):
			return errs.New(errs.Aborted, vehiclebus.ErrUniquePlate)
		case errors.Is(err, vehiclebus.ErrNotFound):
			return errs.New(errs.NotFound, vehiclebus.ErrNotFound)
		}
		return errs.Errorf(errs.Internal, "update: vehicleID[%d]: %s", vehicleID, err)
	}

	return VehicleResult{
		Message: "Vehicle updated successfully",
		Vehicle: toAppVehicle(upd),
	}
}

func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	vehicleID, err := web.ParamInt64(r, "id")
	if err != nil {
		return errs.NewFieldErrors("id", err)
	}

	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	if err := a.vehicleBus.Delete(ctx, companyID, vehicleID); err != nil {
		if errors.Is(err, vehiclebus.ErrNotFound) {
			return errs.New(errs.NotFound, vehiclebus.ErrNotFound)
		}
		return errs.Errorf(errs.Internal, "delete: vehicleID[%d]: %s", vehicleID, err)
	}

	return web.Message{Message: "Vehicle deleted successfully"}
}

func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	vcls, err := a.vehicleBus.QueryByCompany(ctx, companyID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: companyID[%d]: %s", companyID, err)
	}

	return Vehicles{Vehicles: toAppVehicles(vcls)}
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	vehicleID, err := web.ParamInt64(r, "id")
	if err != nil {
		return errs.NewFieldErrors("id", err)
	}

	vcl, errResp := a.queryOwned(ctx, vehicleID)
	if errResp != nil {
		return errResp
	}

	return VehicleResult{Vehicle: toAppVehicle(vcl)}
}

// queryOwned loads an active vehicle of the caller.
func (a *app) queryOwned(ctx context.Context, vehicleID int64) (vehiclebus.Vehicle, *errs.Error) {
	companyID, err := mid.GetCompanyID(ctx)
	if err != nil {
		return vehiclebus.Vehicle{}, errs.Errorf(errs.Internal, "company id missing in context: %s", err)
	}

	vcl, err := a.vehicleBus.QueryByID(ctx, companyID, vehicleID)
	if err != nil {
		if errors.Is(err, vehiclebus.ErrNotFound) {
			return vehiclebus.Vehicle{}, errs.New(errs.NotFound, vehiclebus.ErrNotFound)
		}
		return vehiclebus.Vehicle{}, errs.Errorf(errs.Internal, "querybyid: vehicleID[%d]: %s", vehicleID, err)
	}

	return vcl, nil
}

package vehiclebus_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus/stores/vehiclemem"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/plate"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCore(t *testing.T) *vehiclebus.Core {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	return vehiclebus.NewCore(log, vehiclemem.NewStore())
}

func newVehicle(companyID int64, lp string) vehiclebus.NewVehicle {
	return vehiclebus.NewVehicle{
		CompanyID:    companyID,
		LicensePlate: plate.MustParse(lp),
		Name:         name.MustParse("Van " + lp),
	}
}

func Test_CreateAndQuery(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()

	vcl, err := core.Create(ctx, newVehicle(1, "ABC-1234"))
	require.NoError(t, err)
	assert.NotZero(t, vcl.ID)
	assert.True(t, vcl.IsActive)

	got, err := core.QueryByID(ctx, 1, vcl.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(vcl, got); diff != "" {
		t.Fatalf("query by id mismatch (-want +got):\n%s", diff)
	}

	_, err = core.QueryByID(ctx, 2, vcl.ID)
	assert.ErrorIs(t, err, vehiclebus.ErrNotFound)
}

func Test_PlateUniqueness(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()

	first, err := core.Create(ctx, newVehicle(1, "ABC-1234"))
	require.NoError(t, err)

	_, err = core.Create(ctx, newVehicle(1, "ABC-1234"))
	require.ErrorIs(t, err, vehiclebus.ErrUniquePlate)

	_, err = core.Create(ctx, newVehicle(2, "ABC-1234"))
	require.NoError(t, err, "another company may hold the same plate")

	require.NoError(t, core.Delete(ctx, 1, first.ID))

	_, err = core.Create(ctx, newVehicle(1, "ABC-1234"))
	require.NoError(t, err, "a soft deleted plate may be reused")
}

func Test_Update(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()

	vcl, err := core.Create(ctx, newVehicle(1, "AAA-0001"))
	require.NoError(t, err)

	other, err := core.Create(ctx, newVehicle(1, "BBB-0002"))
	require.NoError(t, err)

	t.Run("name-only", func(t *testing.T) {
		nme := name.MustParse("Roo Van")

		upd, err := core.Update(ctx, vcl, vehiclebus.UpdateVehicle{Name: &nme})
		require.NoError(t, err)

		assert.Equal(t, "Roo Van", upd.Name.String())
		assert.Equal(t, vcl.LicensePlate, upd.LicensePlate)
		assert.True(t, upd.UpdatedAt.After(vcl.CreatedAt))

		vcl = upd
	})

	t.Run("same-plate", func(t *testing.T) {
		lp := vcl.LicensePlate

		_, err := core.Update(ctx, vcl, vehiclebus.UpdateVehicle{LicensePlate: &lp})
		require.NoError(t, err)
	})

	t.Run("plate-collision", func(t *testing.T) {
		lp := other.LicensePlate

		_, err := core.Update(ctx, vcl, vehiclebus.UpdateVehicle{LicensePlate: &lp})
		require.ErrorIs(t, err, vehiclebus.ErrUniquePlate)
	})

	t.Run("inactive", func(t *testing.T) {
		require.NoError(t, core.Delete(ctx, 1, other.ID))

		nme := name.MustParse("Gone")

		_, err := core.Update(ctx, other, vehiclebus.UpdateVehicle{Name: &nme})
		require.ErrorIs(t, err, vehiclebus.ErrNotFound)
	})
}

func Test_DeleteTwice(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()

	vcl, err := core.Create(ctx, newVehicle(1, "ABC-1234"))
	require.NoError(t, err)

	require.ErrorIs(t, core.Delete(ctx, 2, vcl.ID), vehiclebus.ErrNotFound)
	require.NoError(t, core.Delete(ctx, 1, vcl.ID))
	require.ErrorIs(t, core.Delete(ctx, 1, vcl.ID), vehiclebus.ErrNotFound)

	_, err = core.QueryByID(ctx, 1, vcl.ID)
	assert.ErrorIs(t, err, vehiclebus.ErrNotFound)
}

func Test_QueryByCompany(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()

	var ids []int64
	for _, lp := range []string{"AAA-1", "BBB-2", "CCC-3"} {
		vcl, err := core.Create(ctx, newVehicle(1, lp))
		require.NoError(t, err)
		ids = append(ids, vcl.ID)
		time.Sleep(time.Millisecond)
	}

	_, err := core.Create(ctx, newVehicle(2, "DDD-4"))
	require.NoError(t, err)

	vcls, err := core.QueryByCompany(ctx, 1)
	require.NoError(t, err)
	require.Len(t, vcls, 3)

	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{vcls[0].ID, vcls[1].ID, vcls[2].ID})
}

package slotapp_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jcpaschoal/kangaroute/app/domain/slotapp"
	"github.com/jcpaschoal/kangaroute/app/sdk/apitest"
	"github.com/jcpaschoal/kangaroute/business/domain/slotbus"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/plate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	test       *apitest.Test
	token      string
	otherToken string
	vehicleID  int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	test := apitest.New(t)

	slotapp.Routes(test.App, slotapp.Config{
		Auth:    test.Auth,
		SlotBus: test.SlotBus,
	})

	cmp, token := test.SeedCompany(t, "1")
	_, otherToken := test.SeedCompany(t, "2")

	vcl, err := test.VehicleBus.Create(t.Context(), vehiclebus.NewVehicle{
		CompanyID:    cmp.ID,
		LicensePlate: plate.MustParse("ABC-1234"),
		Name:         name.MustParse("Van"),
	})
	require.NoError(t, err)

	return fixture{
		test:       test,
		token:      token,
		otherToken: otherToken,
		vehicleID:  vcl.ID,
	}
}

func (f fixture) newSlot(nme string) map[string]any {
	return map[string]any{
		"name":      nme,
		"height":    5,
		"width":     5,
		"depth":     5,
		"vehicleId": f.vehicleID,
	}
}

func (f fixture) create(t *testing.T, nme string) slotapp.Slot {
	t.Helper()

	w := f.test.Do(t, http.MethodPost, "/api/slots", f.token, f.newSlot(nme))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return apitest.Decode[apitest.Envelope[slotapp.SlotResult]](t, w).Data.Slot
}

func Test_Create(t *testing.T) {
	f := newFixture(t)

	slt := f.create(t, "A1")
	assert.Equal(t, 125.0, slt.Volume)
	assert.True(t, slt.IsActive)
	assert.Equal(t, f.vehicleID, slt.VehicleID)

	t.Run("duplicate-name", func(t *testing.T) {
		w := f.test.Do(t, http.MethodPost, "/api/slots", f.token, f.newSlot("A1"))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("inactive", func(t *testing.T) {
		body := f.newSlot("A2")
		body["isActive"] = false

		w := f.test.Do(t, http.MethodPost, "/api/slots", f.token, body)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.False(t, apitest.Decode[apitest.Envelope[slotapp.SlotResult]](t, w).Data.Slot.IsActive)
	})

	t.Run("dimensions", func(t *testing.T) {
		for _, field := range []string{"height", "width", "depth"} {
			for _, v := range []float64{0, -1} {
				body := f.newSlot(fmt.Sprintf("bad-%s-%v", field, v))
				body[field] = v

				w := f.test.Do(t, http.MethodPost, "/api/slots", f.token, body)
				require.Equal(t, http.StatusBadRequest, w.Code, field)

				resp := apitest.Decode[apitest.Error](t, w)
				assert.Contains(t, resp.Fields, field)
			}
		}
	})

	t.Run("fractional-dimensions", func(t *testing.T) {
		body := f.newSlot("tiny")
		body["height"] = 0.004
		body["width"] = 5.555
		body["depth"] = 2

		w := f.test.Do(t, http.MethodPost, "/api/slots", f.token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		created := apitest.Decode[apitest.Envelope[slotapp.SlotResult]](t, w).Data.Slot
		assert.Equal(t, 0.004, created.Height)
		assert.Equal(t, 5.555, created.Width)

		w = f.test.Do(t, http.MethodGet, fmt.Sprintf("/api/slots/%d", created.ID), f.token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		got := apitest.Decode[apitest.Envelope[slotapp.SlotResult]](t, w).Data.Slot
		assert.Equal(t, created.Height, got.Height)
		assert.Equal(t, created.Volume, got.Volume)
	})

	t.Run("store-rejects-dimension", func(t *testing.T) {
		f.test.SlotStore.Err = slotbus.ErrInvalidDimension
		defer func() { f.test.SlotStore.Err = nil }()

		w := f.test.Do(t, http.MethodPost, "/api/slots", f.token, f.newSlot("huge"))
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		resp := apitest.Decode[apitest.Error](t, w)
		assert.Equal(t, "slot dimension out of range", resp.Message)
	})

	t.Run("missing-dimension", func(t *testing.T) {
		body := f.newSlot("no-depth")
		delete(body, "depth")

		w := f.test.Do(t, http.MethodPost, "/api/slots", f.token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("foreign-vehicle", func(t *testing.T) {
		w := f.test.Do(t, http.MethodPost, "/api/slots", f.otherToken, f.newSlot("B1"))
		require.Equal(t, http.StatusNotFound, w.Code)

		resp := apitest.Decode[apitest.Error](t, w)
		assert.Equal(t, "vehicle not found", resp.Message)
	})
}

func Test_QueryByVehicle(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, "A1")
	second := f.create(t, "A2")

	url := fmt.Sprintf("/api/slots/vehicle/%d", f.vehicleID)

	w := f.test.Do(t, http.MethodGet, url, f.token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	slts := apitest.Decode[apitest.Envelope[slotapp.Slots]](t, w).Data.Slots
	require.Len(t, slts, 2)
	assert.Equal(t, second.ID, slts[0].ID)
	assert.Equal(t, first.ID, slts[1].ID)

	w = f.test.Do(t, http.MethodGet, url, f.otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.test.Do(t, http.MethodGet, "/api/slots/vehicle/999", f.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_Update(t *testing.T) {
	f := newFixture(t)

	slt := f.create(t, "A1")
	f.create(t, "A2")

	url := fmt.Sprintf("/api/slots/%d", slt.ID)

	t.Run("partial", func(t *testing.T) {
		w := f.test.Do(t, http.MethodPut, url, f.token, map[string]any{"height": 10})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		got := apitest.Decode[apitest.Envelope[slotapp.SlotResult]](t, w).Data.Slot
		assert.Equal(t, 10.0, got.Height)
		assert.Equal(t, 250.0, got.Volume)
		assert.Equal(t, "A1", got.Name)
	})

	t.Run("bad-dimension", func(t *testing.T) {
		w := f.test.Do(t, http.MethodPut, url, f.token, map[string]any{"width": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("nothing-supplied", func(t *testing.T) {
		w := f.test.Do(t, http.MethodPut, url, f.token, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("name-collision", func(t *testing.T) {
		w := f.test.Do(t, http.MethodPut, url, f.token, map[string]any{"name": "A2"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("foreign-company", func(t *testing.T) {
		w := f.test.Do(t, http.MethodPut, url, f.otherToken, map[string]any{"name": "Z"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func Test_Delete(t *testing.T) {
	f := newFixture(t)

	slt := f.create(t, "A1")
	url := fmt.Sprintf("/api/slots/%d", slt.ID)

	w := f.test.Do(t, http.MethodDelete, url, f.otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.test.Do(t, http.MethodDelete, url, f.token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.test.Do(t, http.MethodDelete, url, f.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.test.Do(t, http.MethodGet, url, f.token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

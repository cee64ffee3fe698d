package companybus_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus/stores/companymem"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/password"
	"github.com/jcpaschoal/kangaroute/business/types/phone"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newCore(t *testing.T) (*companybus.Core, *companymem.Store) {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	store := companymem.NewStore()

	return companybus.NewCore(log, store), store
}

func newCompany(suffix string) companybus.NewCompany {
	return companybus.NewCompany{
		CompanyName:   name.MustParse("Kanga Pets " + suffix),
		AdminUsername: "admin" + suffix,
		Password:      password.MustParse("secret123"),
		Email:         "admin" + suffix + "@kanga.pet",
		Phone:         phone.MustParse("+55 11 99999-0000"),
		Address:       "Rua das Flores, " + suffix,
		TaxID:         "TAX-" + suffix,
	}
}

func Test_Create(t *testing.T) {
	core, _ := newCore(t)
	ctx := context.Background()

	created, err := core.Create(ctx, newCompany("1"))
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Empty(t, created.Website)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	cost, err := bcrypt.Cost(created.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
	assert.NoError(t, bcrypt.CompareHashAndPassword(created.PasswordHash, []byte("secret123")))

	got, err := core.QueryByID(ctx, created.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(created, got); diff != "" {
		t.Fatalf("query by id mismatch (-want +got):\n%s", diff)
	}
}

func Test_CreateConflicts(t *testing.T) {
	core, store := newCore(t)
	ctx := context.Background()

	first, err := core.Create(ctx, newCompany("1"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(nc *companybus.NewCompany)
	}{
		{"email", func(nc *companybus.NewCompany) { nc.Email = first.Email }},
		{"username", func(nc *companybus.NewCompany) { nc.AdminUsername = first.AdminUsername }},
		{"taxid", func(nc *companybus.NewCompany) { nc.TaxID = first.TaxID }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nc := newCompany("2")
			tt.mutate(&nc)

			_, err := core.Create(ctx, nc)
			require.ErrorIs(t, err, companybus.ErrUniqueCompany)
			assert.Equal(t, "email, admin username or tax ID already registered", err.Error())
		})
	}

	t.Run("inactive-still-conflicts", func(t *testing.T) {
		require.NoError(t, store.Deactivate(first.ID))

		nc := newCompany("3")
		nc.Email = first.Email

		_, err := core.Create(ctx, nc)
		require.ErrorIs(t, err, companybus.ErrUniqueCompany)
	})
}

// raceStore reports no conflict up front so the insert is the one that fails.
type raceStore struct {
	*companymem.Store
}

func (raceStore) HasConflict(ctx context.Context, c companybus.Conflict) (bool, error) {
	return false, nil
}

func Test_CreateRaceMapsToConflict(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	core := companybus.NewCore(log, raceStore{companymem.NewStore()})
	ctx := context.Background()

	_, err := core.Create(ctx, newCompany("1"))
	require.NoError(t, err)

	_, err = core.Create(ctx, newCompany("1"))
	require.ErrorIs(t, err, companybus.ErrUniqueCompany)
}

func Test_Authenticate(t *testing.T) {
	core, _ := newCore(t)
	ctx := context.Background()

	created, err := core.Create(ctx, newCompany("1"))
	require.NoError(t, err)

	got, err := core.Authenticate(ctx, "admin1", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.UpdatedAt.After(created.CreatedAt))

	_, wrongPass := core.Authenticate(ctx, "admin1", "wrong")
	_, noUser := core.Authenticate(ctx, "nouser", "x")

	require.ErrorIs(t, wrongPass, companybus.ErrAuthenticationFailure)
	require.ErrorIs(t, noUser, companybus.ErrAuthenticationFailure)
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func Test_AuthenticateStoreFailure(t *testing.T) {
	core, store := newCore(t)

	store.Err = errors.New("connection refused")

	_, err := core.Authenticate(context.Background(), "admin1", "secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, companybus.ErrAuthenticationFailure)
}

func Test_Update(t *testing.T) {
	core, _ := newCore(t)
	ctx := context.Background()

	created, err := core.Create(ctx, newCompany("1"))
	require.NoError(t, err)

	other, err := core.Create(ctx, newCompany("2"))
	require.NoError(t, err)

	t.Run("partial", func(t *testing.T) {
		nme := name.MustParse("Roo Transport")
		site := "https://roo.example"

		upd, err := core.Update(ctx, created, companybus.UpdateCompany{
			CompanyName: &nme,
			Website:     &site,
		})
		require.NoError(t, err)

		assert.Equal(t, "Roo Transport", upd.CompanyName.String())
		assert.Equal(t, site, upd.Website)
		assert.Equal(t, created.Email, upd.Email)
		assert.True(t, upd.UpdatedAt.After(upd.CreatedAt))

		got, err := core.QueryByID(ctx, created.ID)
		require.NoError(t, err)

		opts := cmpopts.IgnoreFields(companybus.Company{}, "PasswordHash")
		if diff := cmp.Diff(upd, got, opts); diff != "" {
			t.Fatalf("stored company mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("own-keys-do-not-conflict", func(t *testing.T) {
		email := created.Email

		_, err := core.Update(ctx, created, companybus.UpdateCompany{Email: &email})
		require.NoError(t, err)
	})

	t.Run("other-company-keys-conflict", func(t *testing.T) {
		taxID := other.TaxID

		_, err := core.Update(ctx, created, companybus.UpdateCompany{TaxID: &taxID})
		require.ErrorIs(t, err, companybus.ErrUniqueCompany)
	})
}

func Test_QueryActive(t *testing.T) {
	core, store := newCore(t)
	ctx := context.Background()

	var ids []int64
	for _, s := range []string{"1", "2", "3"} {
		c, err := core.Create(ctx, newCompany(s))
		require.NoError(t, err)
		ids = append(ids, c.ID)
		time.Sleep(time.Millisecond)
	}

	require.NoError(t, store.Deactivate(ids[1]))

	cmps, err := core.QueryActive(ctx)
	require.NoError(t, err)
	require.Len(t, cmps, 2)

	assert.Equal(t, ids[2], cmps[0].ID)
	assert.Equal(t, ids[0], cmps[1].ID)

	_, err = core.QueryByID(ctx, ids[1])
	assert.ErrorIs(t, err, companybus.ErrNotFound)
}

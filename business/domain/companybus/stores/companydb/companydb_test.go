package companydb_test

import (
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus/stores/companydb"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/phone"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "company_name", "admin_username", "email", "password_hash", "phone", "address", "tax_id", "website", "is_active", "created_at", "updated_at"}

func newStore(t *testing.T) (*companydb.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	return companydb.NewStore(log, sqlx.NewDb(db, "pgx")), mock
}

func company() companybus.Company {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	return companybus.Company{
		CompanyName:   name.MustParse("Roo Transport"),
		AdminUsername: "roo",
		Email:         "roo@kanga.pet",
		PasswordHash:  []byte("hash"),
		Phone:         phone.MustParse("555-1234 ext. 12"),
		Address:       "Av. Paulista, 1000",
		TaxID:         "TAX-1",
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func Test_Create(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(`INSERT INTO companies`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := store.Create(t.Context(), company())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func Test_CreateUniqueViolation(t *testing.T) {
	for _, constraint := range []string{"companies_email_key", "companies_admin_username_key", "companies_tax_id_key"} {
		t.Run(constraint, func(t *testing.T) {
			store, mock := newStore(t)

			mock.ExpectQuery(`INSERT INTO companies`).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: constraint})

			_, err := store.Create(t.Context(), company())
			assert.ErrorIs(t, err, companybus.ErrUniqueCompany)
		})
	}

	t.Run("other-constraint", func(t *testing.T) {
		store, mock := newStore(t)

		mock.ExpectQuery(`INSERT INTO companies`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "companies_pkey"})

		_, err := store.Create(t.Context(), company())
		require.Error(t, err)
		assert.NotErrorIs(t, err, companybus.ErrUniqueCompany)

		var dupErr sqldb.ErrDBDuplicatedEntry
		assert.True(t, errors.As(err, &dupErr))
	})
}

func Test_Update(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		store, mock := newStore(t)

		mock.ExpectExec(`UPDATE\s+companies\s+SET\s+company_name`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		cmp := company()
		cmp.ID = 7
		require.NoError(t, store.Update(t.Context(), cmp))
	})

	t.Run("inactive-or-missing", func(t *testing.T) {
		store, mock := newStore(t)

		mock.ExpectExec(`UPDATE\s+companies\s+SET\s+company_name`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Update(t.Context(), company())
		assert.ErrorIs(t, err, companybus.ErrNotFound)
	})

	t.Run("taken-username", func(t *testing.T) {
		store, mock := newStore(t)

		mock.ExpectExec(`UPDATE\s+companies\s+SET\s+company_name`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "companies_admin_username_key"})

		err := store.Update(t.Context(), company())
		assert.ErrorIs(t, err, companybus.ErrUniqueCompany)
	})
}

func Test_QueryByUsername(t *testing.T) {
	store, mock := newStore(t)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	updated := created.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("admin_username = $1 AND is_active")).
		WithArgs("roo").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(7), "Roo Transport", "roo", "roo@kanga.pet", []byte("hash"), "555-1234 ext. 12", "Av. Paulista, 1000", "TAX-1", nil, true, created, updated))

	cmp, err := store.QueryByUsername(t.Context(), "roo")
	require.NoError(t, err)

	assert.Equal(t, int64(7), cmp.ID)
	assert.Equal(t, "Roo Transport", cmp.CompanyName.String())
	assert.Equal(t, "555-1234 ext. 12", cmp.Phone.String())
	assert.Empty(t, cmp.Website)
	assert.True(t, cmp.UpdatedAt.After(cmp.CreatedAt))
}

func Test_QueryByIDNotFound(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("id = $1 AND is_active")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := store.QueryByID(t.Context(), 9)
	assert.ErrorIs(t, err, companybus.ErrNotFound)
}

func Test_HasConflict(t *testing.T) {
	c := companybus.Conflict{ExcludeID: 7, Email: "roo@kanga.pet", AdminUsername: "roo", TaxID: "TAX-1"}

	t.Run("free", func(t *testing.T) {
		store, mock := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("AND id <> $4")).
			WithArgs("roo@kanga.pet", "roo", "TAX-1", int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		taken, err := store.HasConflict(t.Context(), c)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("taken", func(t *testing.T) {
		store, mock := newStore(t)

		mock.ExpectQuery(regexp.QuoteMeta("AND id <> $4")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

		taken, err := store.HasConflict(t.Context(), c)
		require.NoError(t, err)
		assert.True(t, taken)
	})
}

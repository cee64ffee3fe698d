package authapp_test

import (
	"net/http"
	"testing"

	"github.com/jcpaschoal/kangaroute/app/domain/authapp"
	"github.com/jcpaschoal/kangaroute/app/sdk/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(t *testing.T) *apitest.Test {
	t.Helper()

	test := apitest.New(t)

	authapp.Routes(test.App, authapp.Config{
		Auth:       test.Auth,
		CompanyBus: test.CompanyBus,
	})

	return test
}

func Test_Login(t *testing.T) {
	test := newTest(t)
	cmp, _ := test.SeedCompany(t, "1")

	t.Run("success", func(t *testing.T) {
		w := test.Do(t, http.MethodPost, "/api/auth/login", "", authapp.Login{Username: "admin1", Password: "secret123"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := apitest.Decode[apitest.Envelope[authapp.Session]](t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data.Token)
		assert.Equal(t, cmp.ID, resp.Data.Company.ID)
		assert.NotContains(t, w.Body.String(), "password")

		w = test.Do(t, http.MethodGet, "/api/auth/verify", resp.Data.Token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("padded-username", func(t *testing.T) {
		w := test.Do(t, http.MethodPost, "/api/auth/login", "", authapp.Login{Username: "  admin1 ", Password: "secret123"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := apitest.Decode[apitest.Envelope[authapp.Session]](t, w)
		assert.Equal(t, cmp.ID, resp.Data.Company.ID)
	})

	t.Run("blank-username", func(t *testing.T) {
		w := test.Do(t, http.MethodPost, "/api/auth/login", "", authapp.Login{Username: "   ", Password: "secret123"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := apitest.Decode[apitest.Error](t, w)
		assert.Contains(t, resp.Fields, "username")
	})

	t.Run("missing-fields", func(t *testing.T) {
		w := test.Do(t, http.MethodPost, "/api/auth/login", "", authapp.Login{Username: "admin1"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := apitest.Decode[apitest.Error](t, w)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Fields, "password")
	})

	t.Run("bad-json", func(t *testing.T) {
		w := test.Do(t, http.MethodPost, "/api/auth/login", "", "{")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("same-message-for-every-failure", func(t *testing.T) {
		wrong := test.Do(t, http.MethodPost, "/api/auth/login", "", authapp.Login{Username: "admin1", Password: "nope"})
		unknown := test.Do(t, http.MethodPost, "/api/auth/login", "", authapp.Login{Username: "ghost", Password: "nope"})

		require.Equal(t, http.StatusUnauthorized, wrong.Code)
		require.Equal(t, http.StatusUnauthorized, unknown.Code)

		w1 := apitest.Decode[apitest.Error](t, wrong)
		w2 := apitest.Decode[apitest.Error](t, unknown)
		assert.Equal(t, "incorrect credentials", w1.Message)
		assert.Equal(t, w1.Message, w2.Message)
	})
}

func Test_LoginStoreFailure(t *testing.T) {
	test := newTest(t)
	test.SeedCompany(t, "1")

	test.CompanyStore.Err = assert.AnError

	w := test.Do(t, http.MethodPost, "/api/auth/login", "", authapp.Login{Username: "admin1", Password: "secret123"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	resp := apitest.Decode[apitest.Error](t, w)
	assert.Equal(t, "Internal Server Error", resp.Message)
}

func Test_Verify(t *testing.T) {
	test := newTest(t)
	cmp, token := test.SeedCompany(t, "1")

	t.Run("valid", func(t *testing.T) {
		w := test.Do(t, http.MethodGet, "/api/auth/verify", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := apitest.Decode[apitest.Envelope[authapp.Verified]](t, w)
		assert.Equal(t, cmp.ID, resp.Data.Company.ID)
		assert.Equal(t, "admin1", resp.Data.Company.AdminUsername)
	})

	t.Run("missing-token", func(t *testing.T) {
		w := test.Do(t, http.MethodGet, "/api/auth/verify", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered-token", func(t *testing.T) {
		w := test.Do(t, http.MethodGet, "/api/auth/verify", token+"x", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("inactive-company", func(t *testing.T) {
		require.NoError(t, test.CompanyStore.Deactivate(cmp.ID))

		w := test.Do(t, http.MethodGet, "/api/auth/verify", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

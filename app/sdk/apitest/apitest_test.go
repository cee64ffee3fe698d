package apitest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jcpaschoal/kangaroute/app/sdk/apitest"
	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Name string `json:"name"`
}

func (e *echo) Decode(data []byte) error {
	return json.Unmarshal(data, e)
}

func (e echo) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

func Test_SeedCompany(t *testing.T) {
	test := apitest.New(t)

	cmp, token := test.SeedCompany(t, "7")
	assert.Equal(t, "admin7", cmp.AdminUsername)

	claims, err := test.Auth.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, cmp.ID, claims.CompanyID)

	_, err = test.Auth.Login(context.Background(), "admin7", "secret123")
	require.NoError(t, err)
}

func Test_Do(t *testing.T) {
	test := apitest.New(t)

	test.App.HandlerFunc(http.MethodPost, "api", "/echo", func(ctx context.Context, r *http.Request) web.Encoder {
		var e echo
		if err := web.Decode(r, &e); err != nil {
			return errs.New(errs.InvalidArgument, err)
		}
		return e
	})

	w := test.Do(t, http.MethodPost, "/api/echo", "", echo{Name: "roo"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := apitest.Decode[apitest.Envelope[echo]](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "roo", resp.Data.Name)

	w = test.Do(t, http.MethodPost, "/api/echo", "", "{")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, apitest.Decode[apitest.Error](t, w).Success)
}

func Test_Beginner(t *testing.T) {
	var b apitest.Beginner

	tx, err := b.Begin()
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.Error(t, tx.Rollback())

	assert.Equal(t, 1, b.Commits)
	assert.Equal(t, 0, b.Rollbacks)
}

package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type register struct {
	CompanyName string `json:"companyName" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Website     string `json:"website"`
}

func Test_HTTPStatus(t *testing.T) {
	tests := []struct {
		code   errs.ErrCode
		status int
	}{
		{errs.InvalidArgument, http.StatusBadRequest},
		{errs.Unauthenticated, http.StatusUnauthorized},
		{errs.NotFound, http.StatusNotFound},
		{errs.Aborted, http.StatusConflict},
		{errs.AlreadyExists, http.StatusConflict},
		{errs.Internal, http.StatusInternalServerError},
		{errs.InternalOnlyLog, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.status, errs.New(tt.code, errors.New("x")).HTTPStatus())
		})
	}
}

func Test_Encode(t *testing.T) {
	e := errs.Errorf(errs.NotFound, "vehicle not found")

	data, contentType, err := e.Encode()
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"success":false,"code":"not_found","message":"vehicle not found"}`, string(data))
}

func Test_CheckUsesJSONNames(t *testing.T) {
	err := errs.Check(register{})
	require.Error(t, err)

	var fe errs.FieldErrors
	require.True(t, errors.As(err, &fe))

	fields := fe.Fields()
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "companyName")
	assert.Contains(t, fields, "email")
	assert.NotContains(t, fields, "website")
}

func Test_NewCarriesFields(t *testing.T) {
	verr := errs.Check(register{CompanyName: "Kanga"})
	require.Error(t, verr)

	wrapped := errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", verr))
	assert.Contains(t, wrapped.Fields, "email")

	rewrapped := errs.New(errs.InvalidArgument, wrapped)
	assert.Equal(t, wrapped.Fields, rewrapped.Fields)
	assert.Equal(t, wrapped.Message, rewrapped.Message)

	data, _, err := rewrapped.Encode()
	require.NoError(t, err)

	var body struct {
		Success bool              `json:"success"`
		Code    string            `json:"code"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.False(t, body.Success)
	assert.Equal(t, "invalid_argument", body.Code)
	assert.Contains(t, body.Fields, "email")
}

func Test_NewFieldErrors(t *testing.T) {
	e := errs.NewFieldErrors("id", errors.New("invalid id \"abc\""))

	assert.Equal(t, errs.InvalidArgument, e.Code)
	assert.Equal(t, map[string]string{"id": "invalid id \"abc\""}, e.Fields)
}

func Test_CodeText(t *testing.T) {
	var code errs.ErrCode
	require.NoError(t, code.UnmarshalText([]byte("aborted")))
	assert.True(t, code.Equal(errs.Aborted))

	assert.Error(t, code.UnmarshalText([]byte("nope")))
}

func Test_GetError(t *testing.T) {
	e := errs.Errorf(errs.NotFound, "slot not found")

	got := errs.GetError(fmt.Errorf("query: %w", e))
	require.NotNil(t, got)
	assert.Equal(t, errs.NotFound, got.Code)
	assert.Equal(t, "slot not found", got.Message)

	assert.Nil(t, errs.GetError(errors.New("plain")))
}

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus/stores/companymem"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/password"
	"github.com/jcpaschoal/kangaroute/business/types/phone"
	"github.com/jcpaschoal/kangaroute/foundation/keystore"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	kid    = "s4sKIjD9kIRjxs2tulPqGLdxSfgPErRN1Mu3Hd9k9NQ"
	issuer = "kangaroute test"
)

type fixture struct {
	auth    *auth.Auth
	key     *rsa.PrivateKey
	store   *companymem.Store
	company companybus.Company
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ks := keystore.New()
	require.NoError(t, ks.Add(kid, key))

	store := companymem.NewStore()
	companyBus := companybus.NewCore(log, store)

	cmp, err := companyBus.Create(context.Background(), companybus.NewCompany{
		CompanyName:   name.MustParse("Kanga Pets"),
		AdminUsername: "testuser",
		Password:      password.MustParse("secret123"),
		Email:         "testuser@kanga.pet",
		Phone:         phone.MustParse("+55 11 5555-0000"),
		Address:       "Rua A, 1",
		TaxID:         "00.000.000/0001-00",
	})
	require.NoError(t, err)

	a := auth.New(auth.Config{
		Log:        log,
		CompanyBus: companyBus,
		KeyLookup:  ks,
		Issuer:     issuer,
		ActiveKID:  kid,
	})

	return fixture{
		auth:    a,
		key:     key,
		store:   store,
		company: cmp,
	}
}

func (f fixture) sign(t *testing.T, key *rsa.PrivateKey, claims auth.Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid

	str, err := token.SignedString(key)
	require.NoError(t, err)

	return str
}

func (f fixture) claims(expires time.Time) auth.Claims {
	return auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(f.company.ID, 10),
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		CompanyID:     f.company.ID,
		AdminUsername: f.company.AdminUsername,
		Email:         f.company.Email,
	}
}

func Test_GenerateAndAuthenticate(t *testing.T) {
	f := newFixture(t)

	token, err := f.auth.GenerateToken(f.company)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := f.auth.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)

	assert.Equal(t, f.company.ID, claims.CompanyID)
	assert.Equal(t, "testuser", claims.AdminUsername)
	assert.Equal(t, "testuser@kanga.pet", claims.Email)
	assert.Equal(t, issuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(auth.TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func Test_AuthenticateRejects(t *testing.T) {
	f := newFixture(t)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	wrongIssuer := f.claims(time.Now().Add(time.Hour))
	wrongIssuer.Issuer = "someone else"

	wrongSubject := f.claims(time.Now().Add(time.Hour))
	wrongSubject.Subject = "999"

	unknownKID := jwt.NewWithClaims(jwt.SigningMethodRS256, f.claims(time.Now().Add(time.Hour)))
	unknownKID.Header["kid"] = "nope"
	unknownKIDStr, err := unknownKID.SignedString(f.key)
	require.NoError(t, err)

	tests := []struct {
		name   string
		bearer string
	}{
		{"no-scheme", f.sign(t, f.key, f.claims(time.Now().Add(time.Hour)))},
		{"basic-scheme", "Basic dXNlcjpwYXNz"},
		{"garbage", "Bearer not.a.token"},
		{"forged-signature", "Bearer " + f.sign(t, otherKey, f.claims(time.Now().Add(time.Hour)))},
		{"expired", "Bearer " + f.sign(t, f.key, f.claims(time.Now().Add(-time.Minute)))},
		{"wrong-issuer", "Bearer " + f.sign(t, f.key, wrongIssuer)},
		{"subject-mismatch", "Bearer " + f.sign(t, f.key, wrongSubject)},
		{"unknown-kid", "Bearer " + unknownKIDStr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Authenticate(context.Background(), tt.bearer)
			assert.Error(t, err)
		})
	}
}

func Test_AuthenticateInactiveCompany(t *testing.T) {
	f := newFixture(t)

	token, err := f.auth.GenerateToken(f.company)
	require.NoError(t, err)

	require.NoError(t, f.store.Deactivate(f.company.ID))

	_, err = f.auth.Authenticate(context.Background(), "Bearer "+token)
	require.ErrorIs(t, err, companybus.ErrNotFound)
}

func Test_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cmp, err := f.auth.Login(ctx, "testuser", "secret123")
	require.NoError(t, err)
	assert.Equal(t, f.company.ID, cmp.ID)

	_, err = f.auth.Login(ctx, "testuser", "wrong")
	require.ErrorIs(t, err, companybus.ErrAuthenticationFailure)
}

func Test_AuthenticateStoreFailure(t *testing.T) {
	f := newFixture(t)

	token, err := f.auth.GenerateToken(f.company)
	require.NoError(t, err)

	f.store.Err = errors.New("connection refused")

	_, err = f.auth.Authenticate(context.Background(), "Bearer "+token)
	require.ErrorIs(t, err, auth.ErrCompanyLookup)
}

// Package apitest provides support for exercising the http handlers of the
// app layer against in-memory stores.
package apitest

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/jcpaschoal/kangaroute/app/sdk/auth"
	"github.com/jcpaschoal/kangaroute/app/sdk/mid"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus"
	"github.com/jcpaschoal/kangaroute/business/domain/companybus/stores/companymem"
	"github.com/jcpaschoal/kangaroute/business/domain/slotbus"
	"github.com/jcpaschoal/kangaroute/business/domain/slotbus/stores/slotmem"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus"
	"github.com/jcpaschoal/kangaroute/business/domain/vehiclebus/stores/vehiclemem"
	"github.com/jcpaschoal/kangaroute/business/sdk/sqldb"
	"github.com/jcpaschoal/kangaroute/business/sdk/web"
	"github.com/jcpaschoal/kangaroute/business/types/name"
	"github.com/jcpaschoal/kangaroute/business/types/password"
	"github.com/jcpaschoal/kangaroute/business/types/phone"
	"github.com/jcpaschoal/kangaroute/foundation/keystore"
	"github.com/jcpaschoal/kangaroute/foundation/logger"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	kid    = "apitest"
	issuer = "kangaroute apitest"
)

// Test contains the systems a handler test needs.
type Test struct {
	Log          *logger.Logger
	App          *web.App
	Auth         *auth.Auth
	Beginner     *Beginner
	CompanyStore *companymem.Store
	VehicleStore *vehiclemem.Store
	SlotStore    *slotmem.Store
	CompanyBus   *companybus.Core
	VehicleBus   *vehiclebus.Core
	SlotBus      *slotbus.Core
}

// New constructs a Test with the same middleware chain the service runs.
func New(t *testing.T) *Test {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ks := keystore.New()
	require.NoError(t, ks.Add(kid, key))

	companyStore := companymem.NewStore()
	vehicleStore := vehiclemem.NewStore()
	slotStore := slotmem.NewStore(vehicleStore)

	companyBus := companybus.NewCore(log, companyStore)
	vehicleBus := vehiclebus.NewCore(log, vehicleStore)
	slotBus := slotbus.NewCore(log, vehicleBus, slotStore)

	a := auth.New(auth.Config{
		Log:        log,
		CompanyBus: companyBus,
		KeyLookup:  ks,
		Issuer:     issuer,
		ActiveKID:  kid,
	})

	tracer := noop.NewTracerProvider().Tracer("")

	app := web.NewApp(log.Info, tracer,
		mid.Otel(tracer),
		mid.Logger(log),
		mid.Errors(log),
		mid.Metrics(),
		mid.Panics(),
	)

	return &Test{
		Log:          log,
		App:          app,
		Auth:         a,
		Beginner:     &Beginner{},
		CompanyStore: companyStore,
		VehicleStore: vehicleStore,
		SlotStore:    slotStore,
		CompanyBus:   companyBus,
		VehicleBus:   vehicleBus,
		SlotBus:      slotBus,
	}
}

// SeedCompany registers a company and returns it with a valid token.
func (tt *Test) SeedCompany(t *testing.T, suffix string) (companybus.Company, string) {
	t.Helper()

	cmp, err := tt.CompanyBus.Create(context.Background(), companybus.NewCompany{
		CompanyName:   name.MustParse("Kanga Pets " + suffix),
		AdminUsername: "admin" + suffix,
		Password:      password.MustParse("secret123"),
		Email:         "admin" + suffix + "@kanga.pet",
		Phone:         phone.MustParse("+55 11 99999-0000"),
		Address:       "Rua das Flores, " + suffix,
		TaxID:         "TAX-" + suffix,
	})
	require.NoError(t, err)

	token, err := tt.Auth.GenerateToken(cmp)
	require.NoError(t, err)

	return cmp, token
}

// Do sends the request through the app and returns the recorded response.
// A nil body sends no payload; a string is sent as is.
func (tt *Test) Do(t *testing.T, method string, url string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		payload = bytes.NewBufferString(v)
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		payload = bytes.NewBuffer(data)
	}

	r := httptest.NewRequest(method, url, payload)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	tt.App.ServeHTTP(w, r)

	return w
}

// =============================================================================

// Envelope is the shape of a successful response.
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// Error is the shape of an error response.
type Error struct {
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// Decode unmarshals the recorded body into a value of T.
func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

// =============================================================================

// Beginner hands out transactions that only record what happened to them.
type Beginner struct {
	Commits   int
	Rollbacks int
}

// Begin implements the sqldb.Beginner interface.
func (b *Beginner) Begin() (sqldb.CommitRollbacker, error) {
	return &tx{b: b}, nil
}

type tx struct {
	b    *Beginner
	done bool
}

func (tx *tx) Commit() error {
	tx.done = true
	tx.b.Commits++
	return nil
}

func (tx *tx) Rollback() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.done = true
	tx.b.Rollbacks++
	return nil
}

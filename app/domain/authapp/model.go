package authapp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jcpaschoal/kangaroute/app/domain/companyapp"
	"github.com/jcpaschoal/kangaroute/app/sdk/errs"
)

// Login carries the admin credentials of a company.
type Login struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface. The username is trimmed the
// same way registration trims adminUsername.
func (app *Login) Decode(data []byte) error {
	if err := json.Unmarshal(data, app); err != nil {
		return err
	}

	app.Username = strings.TrimSpace(app.Username)

	return nil
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// Session is returned by a successful login.
type Session struct {
	Company companyapp.Company `json:"company"`
	Token   string             `json:"token"`
}

// Encode implements the web.Encoder interface.
func (app Session) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

// Verified is returned when a token checks out.
type Verified struct {
	Company companyapp.Company `json:"company"`
}

// Encode implements the web.Encoder interface.
func (app Verified) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

package checkapp

import (
	"encoding/json"
)

// Info represents information about the service.
type Info struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Build   string `json:"build,omitempty"`
}

// Encode implements the web.Encoder interface.
func (app Info) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

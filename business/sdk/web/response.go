package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type cors struct {
	Status string `json:"status"`
}

// Encode implements the Encoder interface.
func (c cors) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

// =============================================================================

// Message is a plain acknowledgement body.
type Message struct {
	Message string `json:"message"`
}

// Encode implements the Encoder interface.
func (m Message) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

// status overrides the status code of a successful response.
type status struct {
	Encoder
	code int
}

// HTTPStatus implements the httpStatus interface.
func (s status) HTTPStatus() int {
	return s.code
}

// Created marks the response as a newly created resource.
func Created(resp Encoder) Encoder {
	return status{Encoder: resp, code: http.StatusCreated}
}

// envelope is the success shape every JSON response is wrapped in. Errors
// render their own shape with success set to false.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// =============================================================================

type httpStatus interface {
	HTTPStatus() int
}

// Respond sends a response to the client.
func Respond(ctx context.Context, w http.ResponseWriter, resp Encoder) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("client disconnected, do not send response")
		}
	}

	_, isError := resp.(error)

	var statusCode = http.StatusOK

	switch v := resp.(type) {
	case httpStatus:
		statusCode = v.HTTPStatus()

	case error:
		statusCode = http.StatusInternalServerError

	default:
		if resp == nil {
			statusCode = http.StatusNoContent
		}
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int("http.response.status", statusCode))

	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	data, contentType, err := resp.Encode()
	if err != nil {
		return fmt.Errorf("respond: encode: %w", err)
	}

	if !isError && contentType == "application/json" {
		data, err = json.Marshal(envelope{Success: true, Data: data})
		if err != nil {
			return fmt.Errorf("respond: envelope: %w", err)
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("respond: write: %w", err)
	}

	return nil
}

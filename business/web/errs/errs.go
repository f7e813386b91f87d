// Package errs maps ledger failures to the error responses sent to clients.
package errs

import (
	"errors"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// Response is the body sent for a failed request. Kind names the chain rule
// a rejected block broke.
type Response struct {
	Error  string            `json:"error"`
	Kind   string            `json:"kind,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted is an error whose message can be shown to the client, along with
// the status to respond with.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted marks the error as safe to return with the status.
func NewTrusted(err error, status int) error {
	return &Trusted{Err: err, Status: status}
}

func (t *Trusted) Error() string {
	return t.Err.Error()
}

func (t *Trusted) Unwrap() error {
	return t.Err
}

// Response renders the error for the client, naming the validation kind
// when a block was rejected.
func (t *Trusted) Response() Response {
	return Response{
		Error: t.Err.Error(),
		Kind:  state.BlockValidationErr(t.Err),
	}
}

// GetTrusted returns the Trusted error in the chain, or nil.
func GetTrusted(err error) *Trusted {
	var t *Trusted
	if !errors.As(err, &t) {
		return nil
	}
	return t
}

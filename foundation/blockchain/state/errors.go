package state

import "errors"

// Set of errors a block can be rejected with. The errors returned by
// UpdateWithBlock wrap one of these with detail, use errors.Is to check.
var (
	ErrMismatchedIndex            = errors.New("mismatched index")
	ErrInvalidHash                = errors.New("invalid hash")
	ErrAchronologicalTimestamp    = errors.New("achronological timestamp")
	ErrMismatchedPreviousHash     = errors.New("mismatched previous hash")
	ErrInvalidGenesisBlockFormat  = errors.New("invalid genesis block format")
	ErrInvalidInput               = errors.New("invalid input")
	ErrInsufficientInputValue     = errors.New("insufficient input value")
	ErrInvalidCoinbaseTransaction = errors.New("invalid coinbase transaction")
)

// ErrNotFound is returned when a block is requested by an index the chain
// does not have.
var ErrNotFound = errors.New("block not found")

var validationErrs = []struct {
	err  error
	kind string
}{
	{ErrMismatchedIndex, "MismatchedIndex"},
	{ErrInvalidHash, "InvalidHash"},
	{ErrAchronologicalTimestamp, "AchronologicalTimestamp"},
	{ErrMismatchedPreviousHash, "MismatchedPreviousHash"},
	{ErrInvalidGenesisBlockFormat, "InvalidGenesisBlockFormat"},
	{ErrInvalidInput, "InvalidInput"},
	{ErrInsufficientInputValue, "InsufficientInputValue"},
	{ErrInvalidCoinbaseTransaction, "InvalidCoinbaseTransaction"},
}

// BlockValidationErr returns the kind of validation failure the error
// represents, or an empty string if it is not a block validation error.
func BlockValidationErr(err error) string {
	for _, ve := range validationErrs {
		if errors.Is(err, ve.err) {
			return ve.kind
		}
	}

	return ""
}

// IsBlockValidationErr reports whether the error rejected a block for
// breaking one of the chain rules.
func IsBlockValidationErr(err error) bool {
	return BlockValidationErr(err) != ""
}

package database

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
)

// Output represents value sent to an address. An output that has been
// created and not yet spent is tracked in the ledger by its hash.
type Output struct {
	ToAddr string `json:"to"`    // Address of the recipient. No ownership check is performed.
	Value  uint64 `json:"value"` // Amount of value assigned to the recipient.
}

// NewOutput constructs an output.
func NewOutput(toAddr string, value uint64) Output {
	return Output{
		ToAddr: toAddr,
		Value:  value,
	}
}

// Bytes returns the raw address bytes followed by the 8 byte big endian value.
func (o Output) Bytes() []byte {
	b := make([]byte, 0, len(o.ToAddr)+8)
	b = append(b, o.ToAddr...)

	return appendUint64(b, o.Value)
}

// Hash returns the unique hash for the Output. Two outputs with the same
// address and value hash identically.
func (o Output) Hash() digest.Hash {
	return digest.Sum(o)
}

// String implements the fmt.Stringer interface for logging.
func (o Output) String() string {
	return fmt.Sprintf("%s:%d", o.ToAddr, o.Value)
}

// =============================================================================

// Tx represents a transfer of value. The inputs are previously created
// outputs being spent and the outputs are the new outputs being created.
type Tx struct {
	Inputs  []Output `json:"inputs"`
	Outputs []Output `json:"outputs"`
}

// NewTx constructs a transaction.
func NewTx(inputs []Output, outputs []Output) Tx {
	return Tx{
		Inputs:  inputs,
		Outputs: outputs,
	}
}

// NewCoinbaseTx constructs a transaction that mints the specified outputs.
func NewCoinbaseTx(outputs ...Output) Tx {
	return Tx{
		Outputs: outputs,
	}
}

// IsCoinbase reports whether the transaction has no inputs.
func (tx Tx) IsCoinbase() bool {
	return len(tx.Inputs) == 0
}

// InputValue returns the sum of the input values. The sum saturates at
// math.MaxUint64.
func (tx Tx) InputValue() uint64 {
	return sumValues(tx.Inputs)
}

// OutputValue returns the sum of the output values. The sum saturates at
// math.MaxUint64.
func (tx Tx) OutputValue() uint64 {
	return sumValues(tx.Outputs)
}

// InputHashes returns the set of hashes of the inputs.
func (tx Tx) InputHashes() digest.Set {
	return hashSet(tx.Inputs)
}

// OutputHashes returns the set of hashes of the outputs.
func (tx Tx) OutputHashes() digest.Set {
	return hashSet(tx.Outputs)
}

// Bytes returns the encoding of every input followed by the encoding of
// every output. There is no separator between the two lists.
func (tx Tx) Bytes() []byte {
	var b []byte
	for _, in := range tx.Inputs {
		b = append(b, in.Bytes()...)
	}
	for _, out := range tx.Outputs {
		b = append(b, out.Bytes()...)
	}

	return b
}

// Hash returns the unique hash for the Tx.
func (tx Tx) Hash() digest.Hash {
	return digest.Sum(tx)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%v->%v", tx.Inputs, tx.Outputs)
}

// =============================================================================

func sumValues(outputs []Output) uint64 {
	var total uint64
	for _, out := range outputs {
		total = AddSaturating(total, out.Value)
	}

	return total
}

func hashSet(outputs []Output) digest.Set {
	set := make(digest.Set, len(outputs))
	for _, out := range outputs {
		set.Add(out.Hash())
	}

	return set
}

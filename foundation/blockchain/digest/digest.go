// Package digest provides the canonical hashing support shared by every
// hashed value in the blockchain.
package digest

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Size is the number of bytes in a hash.
const Size = sha256.Size

// ZeroHash represents a hash code of zeros.
var ZeroHash Hash

// ErrInvalidLength is returned when a hex string does not decode into
// exactly Size bytes.
var ErrInvalidLength = errors.New("invalid hash length")

// =============================================================================

// Hashable represents the behavior of any value that can produce a
// deterministic, canonical byte encoding of itself.
type Hashable interface {
	Bytes() []byte
}

// Sum returns the SHA-256 hash of the canonical encoding of the value.
func Sum(value Hashable) Hash {
	return sha256.Sum256(value.Bytes())
}

// =============================================================================

// Hash is a 32 byte SHA-256 digest.
type Hash [Size]byte

// ToHash converts a 0x prefixed hex string into a hash.
func ToHash(s string) (Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Hash{}, fmt.Errorf("decoding hash %q: %w", s, err)
	}

	if len(b) != Size {
		return Hash{}, fmt.Errorf("%w: got %d bytes, exp %d", ErrInvalidLength, len(b), Size)
	}

	var h Hash
	copy(h[:], b)

	return h, nil
}

// String returns the 0x prefixed hex form of the hash.
func (h Hash) String() string {
	return hexutil.Encode(h[:])
}

// IsZero reports whether every byte of the hash is zero.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// Score interprets the first 16 bytes of the hash as a big endian unsigned
// 128 bit integer. This is the value compared against a block's difficulty.
func (h Hash) Score() uint256.Int {
	var score uint256.Int
	score.SetBytes16(h[:16])

	return score
}

// Compare orders two hashes by their bytes.
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	v, err := ToHash(string(text))
	if err != nil {
		return err
	}

	*h = v
	return nil
}

// Package database handles the lower level support for the values that make
// up the blockchain: outputs, transactions and blocks, their canonical byte
// encoding and the proof of work used to seal a block.
package database

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// ErrValueOutOfRange is returned when a 128 bit field is given a value
// that needs more than 128 bits.
var ErrValueOutOfRange = errors.New("value does not fit in 128 bits")

// uint128Size is the number of bytes used to encode a 128 bit value.
const uint128Size = 16

// =============================================================================

// ToUint128 parses a 0x prefixed hex string into a 128 bit value. Unlike
// uint256.FromHex, leading zeros are accepted so difficulty constants can be
// written at their full width.
func ToUint128(s string) (uint256.Int, error) {
	digits, found := strings.CutPrefix(s, "0x")
	if !found {
		return uint256.Int{}, fmt.Errorf("parsing %q: missing 0x prefix", s)
	}

	if len(digits) == 0 || len(digits) > 2*uint128Size {
		return uint256.Int{}, fmt.Errorf("parsing %q: %w", s, ErrValueOutOfRange)
	}

	b, err := hexutil.Decode("0x" + strings.Repeat("0", 2*uint128Size-len(digits)) + digits)
	if err != nil {
		return uint256.Int{}, fmt.Errorf("parsing %q: %w", s, err)
	}

	var v uint256.Int
	v.SetBytes16(b)

	return v, nil
}

// Uint128String returns the full width, 0x prefixed hex form of a 128 bit value.
func Uint128String(v uint256.Int) string {
	var b [uint128Size]byte
	putUint128(b[:], &v)

	return hexutil.Encode(b[:])
}

// MaxUint128 returns the largest value a 128 bit field can hold.
func MaxUint128() uint256.Int {
	var v uint256.Int
	v.SetBytes16([]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	})

	return v
}

// fitsUint128 reports whether the value can be encoded in 16 bytes.
func fitsUint128(v *uint256.Int) bool {
	return v.BitLen() <= 8*uint128Size
}

// putUint128 writes the low 128 bits of the value big endian into dst.
func putUint128(dst []byte, v *uint256.Int) {
	b := v.Bytes32()
	copy(dst, b[32-uint128Size:])
}

// appendUint32 appends a 4 byte big endian value.
func appendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// appendUint64 appends an 8 byte big endian value.
func appendUint64(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(b, v)
}

// appendUint128 appends a 16 byte big endian value.
func appendUint128(b []byte, v *uint256.Int) []byte {
	var buf [uint128Size]byte
	putUint128(buf[:], v)

	return append(b, buf[:]...)
}

// AddSaturating adds two values, clamping at math.MaxUint64 instead of
// wrapping around.
func AddSaturating(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}

	return a + b
}

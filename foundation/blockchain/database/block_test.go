package database_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/holiman/uint256"
)

// easy admits roughly one hash in sixteen so mining in tests is quick.
const easy = "0x0fffffffffffffffffffffffffffffff"

func mustUint128(t *testing.T, s string) uint256.Int {
	v, err := database.ToUint128(s)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to parse %s: %v", failed, s, err)
	}
	return v
}

func Test_BlockBytes(t *testing.T) {
	t.Log("Given the need to encode a block.")
	{
		prev := digest.Sum(database.NewOutput("prev", 1))
		tx := database.NewCoinbaseTx(database.NewOutput("Alice", 50))
		difficulty := mustUint128(t, easy)

		block, err := database.NewBlock(3, *uint256.NewInt(1_700_000_000_000), prev, []database.Tx{tx}, difficulty)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct a block.", success)

		if block.Header.Nonce != 0 || !block.Hash.IsZero() {
			t.Fatalf("\t%s\tShould start with a zero nonce and zero hash.", failed)
		}
		t.Logf("\t%s\tShould start with a zero nonce and zero hash.", success)

		block.Header.Nonce = 0x0102030405060708
		block.Hash = digest.Sum(database.NewOutput("ignored", 9))

		var exp []byte
		exp = binary.BigEndian.AppendUint32(exp, 3)
		exp = append(exp, make([]byte, 8)...)
		exp = binary.BigEndian.AppendUint64(exp, 1_700_000_000_000)
		exp = append(exp, prev[:]...)
		exp = binary.BigEndian.AppendUint64(exp, 0x0102030405060708)
		exp = append(exp, tx.Bytes()...)
		exp = append(exp, 0x0f)
		exp = append(exp, bytes.Repeat([]byte{0xff}, 15)...)

		if got := block.Bytes(); !bytes.Equal(got, exp) {
			t.Logf("\t%s\tgot: %x", failed, got)
			t.Logf("\t%s\texp: %x", failed, exp)
			t.Fatalf("\t%s\tShould encode the block in canonical order without its hash.", failed)
		}
		t.Logf("\t%s\tShould encode the block in canonical order without its hash.", success)

		if !strings.HasPrefix(block.String(), "Block[3]: 0x") {
			t.Fatalf("\t%s\tShould render the block for logging: %s", failed, block)
		}
		t.Logf("\t%s\tShould render the block for logging.", success)
	}
}

func Test_NewBlockRange(t *testing.T) {
	t.Log("Given the need to keep 128 bit fields in range.")
	{
		wide := new(uint256.Int).Lsh(uint256.NewInt(1), 128)

		if _, err := database.NewBlock(0, *wide, digest.ZeroHash, nil, mustUint128(t, easy)); !errors.Is(err, database.ErrValueOutOfRange) {
			t.Fatalf("\t%s\tShould reject a timestamp wider than 128 bits: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a timestamp wider than 128 bits.", success)

		if _, err := database.NewBlock(0, *uint256.NewInt(1), digest.ZeroHash, nil, *wide); !errors.Is(err, database.ErrValueOutOfRange) {
			t.Fatalf("\t%s\tShould reject a difficulty wider than 128 bits: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a difficulty wider than 128 bits.", success)

		top := database.MaxUint128()
		if _, err := database.NewBlock(0, top, digest.ZeroHash, nil, top); err != nil {
			t.Fatalf("\t%s\tShould accept the largest 128 bit values: %v", failed, err)
		}
		t.Logf("\t%s\tShould accept the largest 128 bit values.", success)
	}
}

func Test_ToUint128(t *testing.T) {
	t.Log("Given the need to parse 128 bit hex constants.")
	{
		v := mustUint128(t, "0x00000fffffffffffffffffffffffffff")
		if got := database.Uint128String(v); got != "0x00000fffffffffffffffffffffffffff" {
			t.Fatalf("\t%s\tShould keep leading zeros at full width: got %s", failed, got)
		}
		t.Logf("\t%s\tShould keep leading zeros at full width.", success)

		small := mustUint128(t, "0x1")
		if !small.Eq(uint256.NewInt(1)) {
			t.Fatalf("\t%s\tShould parse short values.", failed)
		}
		t.Logf("\t%s\tShould parse short values.", success)

		for _, bad := range []string{"fff", "0x", "0x" + strings.Repeat("f", 33), "0xzz"} {
			if _, err := database.ToUint128(bad); err == nil {
				t.Fatalf("\t%s\tShould reject %q.", failed, bad)
			}
		}
		t.Logf("\t%s\tShould reject malformed values.", success)
	}
}

func Test_CheckDifficulty(t *testing.T) {
	type table struct {
		name       string
		prefix     []byte
		difficulty string
		exp        bool
	}

	tt := []table{
		{name: "below", prefix: []byte{0x00, 0x00, 0x0f, 0xff}, difficulty: "0x00001000000000000000000000000000", exp: true},
		{name: "equal", prefix: []byte{0x00, 0x00, 0x10, 0x00}, difficulty: "0x00001000000000000000000000000000", exp: false},
		{name: "above", prefix: []byte{0x00, 0x00, 0x10, 0x01}, difficulty: "0x00001000000000000000000000000000", exp: false},
		{name: "zero difficulty", prefix: []byte{0x00}, difficulty: "0x0", exp: false},
		{name: "max difficulty", prefix: bytes.Repeat([]byte{0xff}, 15), difficulty: "0xffffffffffffffffffffffffffffffff", exp: true},
	}

	t.Log("Given the need to compare a hash score against a difficulty.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				var h digest.Hash
				copy(h[:], tst.prefix)

				// Bytes past the first 16 never affect the score.
				for i := 16; i < digest.Size; i++ {
					h[i] = 0xff
				}

				if got := database.CheckDifficulty(h, mustUint128(t, tst.difficulty)); got != tst.exp {
					t.Fatalf("\t%s\tTest %d:\tShould report %v for %s.", failed, testID, tst.exp, tst.name)
				}
				t.Logf("\t%s\tTest %d:\tShould report %v for %s.", success, testID, tst.exp, tst.name)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Mine(t *testing.T) {
	t.Log("Given the need to mine a block.")
	{
		tx := database.NewCoinbaseTx(database.NewOutput("Alice", 50), database.NewOutput("Bob", 7))

		block, err := database.NewBlock(0, *uint256.NewInt(1), digest.ZeroHash, []database.Tx{tx}, mustUint128(t, easy))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a block: %v", failed, err)
		}

		var events []string
		ev := func(v string, args ...any) {
			events = append(events, v)
		}

		if err := block.Mine(context.Background(), ev); err != nil {
			t.Fatalf("\t%s\tShould be able to mine the block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine the block.", success)

		if block.Hash != digest.Sum(block) {
			t.Fatalf("\t%s\tShould store the hash of the winning encoding.", failed)
		}
		t.Logf("\t%s\tShould store the hash of the winning encoding.", success)

		if !database.CheckDifficulty(block.Hash, block.Header.Difficulty) {
			t.Fatalf("\t%s\tShould satisfy the difficulty.", failed)
		}
		t.Logf("\t%s\tShould satisfy the difficulty.", success)

		// The search runs in order from zero, so no earlier nonce may win.
		trial := block
		for nonce := uint64(0); nonce < block.Header.Nonce; nonce++ {
			trial.Header.Nonce = nonce
			if database.CheckDifficulty(trial.ComputeHash(), trial.Header.Difficulty) {
				t.Fatalf("\t%s\tShould find the first winning nonce, %d also wins.", failed, nonce)
			}
		}
		t.Logf("\t%s\tShould find the first winning nonce.", success)

		if len(events) == 0 {
			t.Fatalf("\t%s\tShould report mining events.", failed)
		}
		t.Logf("\t%s\tShould report mining events.", success)
	}
}

func Test_MineCancel(t *testing.T) {
	t.Log("Given the need to cancel a mining operation.")
	{
		block, err := database.NewBlock(0, *uint256.NewInt(1), digest.ZeroHash, nil, uint256.Int{})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a block: %v", failed, err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := block.Mine(ctx, nil); !errors.Is(err, context.Canceled) {
			t.Fatalf("\t%s\tShould stop with the context error: %v", failed, err)
		}
		t.Logf("\t%s\tShould stop with the context error.", success)

		if !block.Hash.IsZero() {
			t.Fatalf("\t%s\tShould leave the hash unset.", failed)
		}
		t.Logf("\t%s\tShould leave the hash unset.", success)
	}
}

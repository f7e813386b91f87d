package clock_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/clock"
	"github.com/holiman/uint256"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Sequence(t *testing.T) {
	t.Log("Given the need for a deterministic time source.")
	{
		clk := clock.NewSequence(100, 5)

		for i, exp := range []uint64{100, 105, 110} {
			got := clk.Now()
			if !got.Eq(uint256.NewInt(exp)) {
				t.Fatalf("\t%s\tRead %d:\tShould return %d, got %s.", failed, i, exp, got.Dec())
			}
		}
		t.Logf("\t%s\tShould advance by the step on every read.", success)

		zero := clock.NewSequence(7, 0)
		a, b := zero.Now(), zero.Now()
		if !b.Gt(&a) {
			t.Fatalf("\t%s\tShould stay strictly increasing with a zero step.", failed)
		}
		t.Logf("\t%s\tShould stay strictly increasing with a zero step.", success)
	}
}

func Test_System(t *testing.T) {
	t.Log("Given the need to read the wall clock.")
	{
		var clk clock.Clock = clock.NewSystem()

		prev := clk.Now()
		for i := 0; i < 100; i++ {
			now := clk.Now()
			if now.Lt(&prev) {
				t.Fatalf("\t%s\tShould never move backwards.", failed)
			}
			prev = now
		}
		t.Logf("\t%s\tShould never move backwards.", success)

		if !prev.IsUint64() || prev.IsZero() {
			t.Fatalf("\t%s\tShould return milliseconds since the epoch.", failed)
		}
		t.Logf("\t%s\tShould return milliseconds since the epoch.", success)
	}
}

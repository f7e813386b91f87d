package events_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to broadcast chain events.")
	{
		evts := events.New("viewer:")

		ch := evts.Acquire("a")
		if again := evts.Acquire("a"); again != ch {
			t.Fatalf("\t%s\tShould return the same channel for the same id.", failed)
		}
		t.Logf("\t%s\tShould return the same channel for the same id.", success)

		evts.Send("state: UpdateWithBlock: started")
		evts.Send("viewer: block: {}")

		select {
		case msg := <-ch:
			if msg != "viewer: block: {}" {
				t.Fatalf("\t%s\tShould only deliver messages with the prefix: got %q", failed, msg)
			}
		default:
			t.Fatalf("\t%s\tShould deliver a message with the prefix.", failed)
		}
		t.Logf("\t%s\tShould only deliver messages with the prefix.", success)

		for i := 0; i < 200; i++ {
			evts.Send("viewer: flood")
		}
		t.Logf("\t%s\tShould not block when a receiver falls behind.", success)

		if err := evts.Release("a"); err != nil {
			t.Fatalf("\t%s\tShould be able to release the channel: %v", failed, err)
		}
		if err := evts.Release("a"); err == nil {
			t.Fatalf("\t%s\tShould fail to release an unknown id.", failed)
		}
		t.Logf("\t%s\tShould be able to release the channel once.", success)

		evts.Acquire("b")
		evts.Shutdown()
		if evts.Subscribers() != 0 {
			t.Fatalf("\t%s\tShould remove every receiver on shutdown.", failed)
		}
		t.Logf("\t%s\tShould remove every receiver on shutdown.", success)
	}
}

func Test_EventsNoPrefix(t *testing.T) {
	t.Log("Given the need to broadcast every chain event.")
	{
		evts := events.New("")
		ch := evts.Acquire("a")

		sent := []string{
			"database: Mine: MINING: started: blk[1]",
			"state: UpdateWithBlock: REJECTED: blk[1]: invalid input",
			"viewer: block: {}",
		}
		for _, msg := range sent {
			evts.Send(msg)
		}

		for _, exp := range sent {
			select {
			case msg := <-ch:
				if msg != exp {
					t.Fatalf("\t%s\tShould deliver %q: got %q", failed, exp, msg)
				}
			default:
				t.Fatalf("\t%s\tShould deliver %q.", failed, exp)
			}
		}
		t.Logf("\t%s\tShould deliver every message in order.", success)
	}
}

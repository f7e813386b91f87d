// Package state is the core API for the blockchain and implements all the
// business rules for validating blocks and maintaining the set of unspent
// transaction outputs.
package state

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/clock"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/holiman/uint256"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to start a chain.
type Config struct {
	Difficulty uint256.Int  // Difficulty used for blocks constructed by MineNextBlock.
	Clock      clock.Clock  // Time source used by MineNextBlock. Defaults to the system clock.
	StrictHash bool         // Also require the stored block hash to match the block content.
	EvHandler  EventHandler // Receives processing events. Can be nil.
}

// State manages a single chain of blocks and its set of unspent outputs.
// A State is created empty and only grows through UpdateWithBlock.
type State struct {
	difficulty uint256.Int
	clock      clock.Clock
	strictHash bool
	evHandler  EventHandler

	mining sync.Mutex

	mu      sync.RWMutex
	blocks  []database.Block
	unspent map[digest.Hash]database.Output
}

// New constructs an empty chain with no blocks and no unspent outputs.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}

	state := State{
		difficulty: cfg.Difficulty,
		clock:      clk,
		strictHash: cfg.StrictHash,
		evHandler:  ev,
		unspent:    make(map[digest.Hash]database.Output),
	}

	return &state
}

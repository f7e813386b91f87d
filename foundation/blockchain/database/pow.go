package database

import (
	"context"
	"errors"
	"math"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/holiman/uint256"
)

// ErrMiningExhausted is returned when every possible nonce was tried
// without finding a hash that satisfies the difficulty.
var ErrMiningExhausted = errors.New("mining exhausted the nonce space")

// EventHandler defines a function that is called when events
// occur in the processing of mining a block.
type EventHandler func(v string, args ...any)

// reportEvery sets how many attempts pass between progress events.
const reportEvery = 1_000_000

// =============================================================================

// CheckDifficulty interprets the first 16 bytes of the hash as a big endian
// score and reports whether the difficulty is strictly greater than it. A
// larger difficulty admits more hashes and is therefore easier.
func CheckDifficulty(hash digest.Hash, difficulty uint256.Int) bool {
	score := hash.Score()
	return difficulty.Gt(&score)
}

// Mine searches for a nonce, starting at 0, that produces a hash satisfying
// the block's difficulty. On success the nonce and hash are stored in the
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) Mine(ctx context.Context, ev EventHandler) error {
	return b.performPOW(ctx, 0, ev)
}

// performPOW does the work of mining from the specified starting nonce
// through math.MaxUint64.
func (b *Block) performPOW(ctx context.Context, start uint64, ev EventHandler) error {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("database: Mine: MINING: started: blk[%d]", b.Header.Index)
	defer ev("database: Mine: MINING: completed: blk[%d]", b.Header.Index)

	var attempts uint64
	for nonce := start; ; nonce++ {
		attempts++
		if attempts%reportEvery == 0 {
			ev("database: Mine: MINING: attempts[%d]", attempts)
		}

		// Did we timeout trying to solve the problem.
		if err := ctx.Err(); err != nil {
			ev("database: Mine: MINING: CANCELLED: attempts[%d]", attempts)
			return err
		}

		b.Header.Nonce = nonce

		hash := b.ComputeHash()
		if CheckDifficulty(hash, b.Header.Difficulty) {
			b.Hash = hash

			ev("database: Mine: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
			ev("database: Mine: MINING: attempts[%d]", attempts)
			return nil
		}

		if nonce == math.MaxUint64 {
			ev("database: Mine: MINING: EXHAUSTED: attempts[%d]", attempts)
			return ErrMiningExhausted
		}
	}
}

package state

import (
	"context"
	"fmt"
	"math"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/holiman/uint256"
)

// MineNextBlock constructs the next block for the chain from the specified
// transactions, performs the proof of work and submits the block. Only one
// mining operation runs at a time.
func (s *State) MineNextBlock(ctx context.Context, trans []database.Tx) (database.Block, error) {
	s.mining.Lock()
	defer s.mining.Unlock()

	s.evHandler("state: MineNextBlock: MINING: construct block: numTrans[%d]", len(trans))

	block, err := s.nextBlock(trans)
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MineNextBlock: MINING: perform POW: blk[%d]", block.Header.Index)

	// Attempt to solve the POW puzzle. This can be cancelled.
	if err := block.Mine(ctx, database.EventHandler(s.evHandler)); err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNextBlock: MINING: validate and update chain")

	if err := s.UpdateWithBlock(block); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// nextBlock builds an unmined block that links to the current latest block.
func (s *State) nextBlock(trans []database.Tx) (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	length := len(s.blocks)
	if uint64(length) > math.MaxUint32 {
		return database.Block{}, fmt.Errorf("chain length %d exceeds the block index range", length)
	}

	prevBlockHash := digest.ZeroHash
	timeStamp := s.clock.Now()

	if length > 0 {
		prevBlock := s.blocks[length-1]
		prevBlockHash = prevBlock.Hash

		// A clock with coarse resolution can read the same value for two
		// blocks in a row. Timestamps must be strictly increasing.
		if !timeStamp.Gt(&prevBlock.Header.TimeStamp) {
			timeStamp.AddUint64(&prevBlock.Header.TimeStamp, 1)
			s.evHandler("state: nextBlock: clock behind parent: using timestamp[%s]", timeStamp.Dec())
		}
	}

	return database.NewBlock(uint32(length), timeStamp, prevBlockHash, trans, s.difficulty)
}

// CurrentDifficulty returns the difficulty used for blocks mined by this State.
func (s *State) CurrentDifficulty() uint256.Int {
	return s.difficulty
}

package state

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
)

// changes holds the effect a validated block has on the unspent outputs.
type changes struct {
	spent   digest.Set
	created map[digest.Hash]database.Output
}

// =============================================================================

// UpdateWithBlock validates the block against the current chain and, if it
// passes every check, appends it and applies its spends and new outputs to
// the unspent set. A rejected block leaves the chain untouched.
func (s *State) UpdateWithBlock(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: UpdateWithBlock: started: blk[%d]: hash[%s]: numTrans[%d]", block.Header.Index, block.Hash, len(block.Trans))

	chg, err := s.validateBlock(block)
	if err != nil {
		s.evHandler("state: UpdateWithBlock: REJECTED: blk[%d]: %s", block.Header.Index, err)
		return err
	}

	s.evHandler("state: UpdateWithBlock: update unspent outputs: spent[%d]: created[%d]", chg.spent.Len(), len(chg.created))

	for hash := range chg.spent {
		delete(s.unspent, hash)
	}
	for hash, out := range chg.created {
		s.unspent[hash] = out
	}

	s.blocks = append(s.blocks, block)

	s.evHandler("state: UpdateWithBlock: completed: blk[%d]", block.Header.Index)

	// Send an event about this new block.
	s.blockEvent(block)

	return nil
}

// =============================================================================

// validateBlock runs the chain rules in order and stops at the first
// failure. Nothing is mutated here.
func (s *State) validateBlock(block database.Block) (changes, error) {
	index := block.Header.Index
	length := len(s.blocks)

	s.evHandler("state: validateBlock: blk[%d]: check: block index is the next index", index)

	if uint64(index) != uint64(length) {
		return changes{}, fmt.Errorf("%w: got %d, exp %d", ErrMismatchedIndex, index, length)
	}

	s.evHandler("state: validateBlock: blk[%d]: check: block hash has been solved", index)

	// The hash is recomputed from the content, the stored hash field is only
	// compared when strict hashing is turned on.
	hash := block.ComputeHash()
	if !database.CheckDifficulty(hash, block.Header.Difficulty) {
		return changes{}, fmt.Errorf("%w: %s does not satisfy difficulty %s", ErrInvalidHash, hash, database.Uint128String(block.Header.Difficulty))
	}

	if s.strictHash && block.Hash != hash {
		return changes{}, fmt.Errorf("%w: stored %s, computed %s", ErrInvalidHash, block.Hash, hash)
	}

	switch {
	case index != 0:
		prevBlock := s.blocks[index-1]

		s.evHandler("state: validateBlock: blk[%d]: check: block's timestamp is greater than parent block's timestamp", index)

		if !block.Header.TimeStamp.Gt(&prevBlock.Header.TimeStamp) {
			return changes{}, fmt.Errorf("%w: parent %s, block %s", ErrAchronologicalTimestamp, prevBlock.Header.TimeStamp.Dec(), block.Header.TimeStamp.Dec())
		}

		s.evHandler("state: validateBlock: blk[%d]: check: parent hash does match parent block", index)

		if block.Header.PrevBlockHash != prevBlock.Hash {
			return changes{}, fmt.Errorf("%w: got %s, exp %s", ErrMismatchedPreviousHash, block.Header.PrevBlockHash, prevBlock.Hash)
		}

	default:
		s.evHandler("state: validateBlock: blk[%d]: check: genesis parent hash is zero", index)

		if !block.Header.PrevBlockHash.IsZero() {
			return changes{}, fmt.Errorf("%w: parent hash %s", ErrInvalidGenesisBlockFormat, block.Header.PrevBlockHash)
		}
	}

	// A block without transactions has no effect on the unspent outputs
	// and skips the transaction rules entirely.
	if len(block.Trans) == 0 {
		s.evHandler("state: validateBlock: blk[%d]: no transactions", index)
		return changes{spent: digest.NewSet()}, nil
	}

	return s.validateTrans(index, block.Trans)
}

// validateTrans checks the coinbase and every spending transaction against
// the unspent outputs as they were before this block.
func (s *State) validateTrans(index uint32, trans []database.Tx) (changes, error) {
	coinbase := trans[0]

	s.evHandler("state: validateTrans: blk[%d]: check: first transaction is a coinbase", index)

	if !coinbase.IsCoinbase() {
		return changes{}, fmt.Errorf("%w: first transaction has %d inputs", ErrInvalidCoinbaseTransaction, len(coinbase.Inputs))
	}

	chg := changes{
		spent:   digest.NewSet(),
		created: make(map[digest.Hash]database.Output),
	}

	var totalFee uint64
	for i, tx := range trans[1:] {
		txn := i + 1

		inputs := tx.InputHashes()

		// The input set collapses repeats while the input value counts
		// every entry, so a repeated input would mint value.
		if inputs.Len() != len(tx.Inputs) {
			return changes{}, fmt.Errorf("%w: tx[%d] lists the same input more than once", ErrInvalidInput, txn)
		}

		if missing := inputs.Missing(s.isUnspent); missing.Len() > 0 {
			return changes{}, fmt.Errorf("%w: tx[%d] spends unknown output %s", ErrInvalidInput, txn, missing.Sorted()[0])
		}

		if inputs.Intersects(chg.spent) {
			return changes{}, fmt.Errorf("%w: tx[%d] spends an output already spent in this block", ErrInvalidInput, txn)
		}

		inputValue := tx.InputValue()
		outputValue := tx.OutputValue()
		if outputValue > inputValue {
			return changes{}, fmt.Errorf("%w: tx[%d] outputs %d, inputs %d", ErrInsufficientInputValue, txn, outputValue, inputValue)
		}

		fee := inputValue - outputValue
		totalFee = database.AddSaturating(totalFee, fee)

		s.evHandler("state: validateTrans: blk[%d]: tx[%d]: fee[%d]", index, txn, fee)

		chg.spent.Extend(inputs)
		for _, out := range tx.Outputs {
			chg.created[out.Hash()] = out
		}
	}

	s.evHandler("state: validateTrans: blk[%d]: check: coinbase covers the fees: fees[%d]", index, totalFee)

	if coinbase.OutputValue() < totalFee {
		return changes{}, fmt.Errorf("%w: coinbase outputs %d, fees %d", ErrInvalidCoinbaseTransaction, coinbase.OutputValue(), totalFee)
	}

	for _, out := range coinbase.Outputs {
		chg.created[out.Hash()] = out
	}

	return chg, nil
}

// isUnspent is the lookup used while the write lock is already held.
func (s *State) isUnspent(hash digest.Hash) bool {
	_, exists := s.unspent[hash]
	return exists
}

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	s.evHandler(`viewer: block: {"index":%d,"hash":%q,"prev_block_hash":%q,"nonce":%d,"trans":%d}`,
		block.Header.Index,
		block.Hash,
		block.Header.PrevBlockHash,
		block.Header.Nonce,
		len(block.Trans),
	)
}

package state

import (
	"fmt"
	"slices"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
)

// UTXO pairs an unspent output with the hash it is tracked by.
type UTXO struct {
	Hash   digest.Hash
	Output database.Output
}

// =============================================================================

// Length returns the number of blocks in the chain.
func (s *State) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.blocks)
}

// Blocks returns a copy of the blocks in the chain in index order.
func (s *State) Blocks() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.blocks)
}

// LatestBlock returns the last block in the chain. The zero block is
// returned when the chain is empty.
func (s *State) LatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.blocks) == 0 {
		return database.Block{}
	}

	return s.blocks[len(s.blocks)-1]
}

// QueryBlock returns the block at the specified index.
func (s *State) QueryBlock(index uint64) (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index >= uint64(len(s.blocks)) {
		return database.Block{}, fmt.Errorf("%w: index %d, length %d", ErrNotFound, index, len(s.blocks))
	}

	return s.blocks[index], nil
}

// IsUnspent reports whether an output with this hash can be spent.
func (s *State) IsUnspent(hash digest.Hash) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.isUnspent(hash)
}

// UnspentHashes returns a copy of the set of unspent output hashes.
func (s *State) UnspentHashes() digest.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(digest.Set, len(s.unspent))
	for hash := range s.unspent {
		set.Add(hash)
	}

	return set
}

// UnspentOutputs returns the unspent outputs ordered by hash.
func (s *State) UnspentOutputs() []UTXO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	utxos := make([]UTXO, 0, len(s.unspent))
	for hash, out := range s.unspent {
		utxos = append(utxos, UTXO{Hash: hash, Output: out})
	}

	slices.SortFunc(utxos, func(a, b UTXO) int {
		return a.Hash.Compare(b.Hash)
	})

	return utxos
}

// Balances returns the total unspent value per address. If an address is
// provided, only that address is returned.
func (s *State) Balances(address string) map[string]uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := make(map[string]uint64)
	for _, out := range s.unspent {
		if address != "" && out.ToAddr != address {
			continue
		}
		balances[out.ToAddr] = database.AddSaturating(balances[out.ToAddr], out.Value)
	}

	return balances
}

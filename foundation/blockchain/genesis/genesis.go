// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/holiman/uint256"
)

// DefaultDifficulty is the base difficulty used when none is configured.
const DefaultDifficulty = "0x00000fffffffffffffffffffffffffff"

// Genesis represents the genesis file.
type Genesis struct {
	Difficulty string            `json:"difficulty"` // 0x prefixed 128 bit threshold every block must stay under.
	Outputs    []database.Output `json:"outputs"`    // Minted by the coinbase transaction of block 0, in order.
}

// Default returns the genesis information used when no file is provided.
func Default() Genesis {
	return Genesis{
		Difficulty: DefaultDifficulty,
		Outputs: []database.Output{
			database.NewOutput("Alice", 50),
			database.NewOutput("Bob", 7),
		},
	}
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis %q: %w", path, err)
	}

	if _, err := genesis.DifficultyValue(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// DifficultyValue parses the configured difficulty.
func (g Genesis) DifficultyValue() (uint256.Int, error) {
	difficulty, err := database.ToUint128(g.Difficulty)
	if err != nil {
		return uint256.Int{}, fmt.Errorf("genesis difficulty: %w", err)
	}

	return difficulty, nil
}

// Transactions returns the transaction list for the genesis block.
func (g Genesis) Transactions() []database.Tx {
	return []database.Tx{database.NewCoinbaseTx(g.Outputs...)}
}

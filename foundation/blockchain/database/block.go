package database

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/holiman/uint256"
)

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Index         uint32      // Position of the block in the chain, starting at 0.
	TimeStamp     uint256.Int // 128 bit time the block was created, in the unit of the clock used.
	PrevBlockHash digest.Hash // Hash of the previous block in the chain, zero for the genesis block.
	Nonce         uint64      // Value identified to solve the proof of work.
	Difficulty    uint256.Int // 128 bit threshold the proof of work score must stay under.
}

// Block represents a group of transactions batched together.
type Block struct {
	Header BlockHeader
	Hash   digest.Hash // Set by mining. Not part of the encoded content.
	Trans  []Tx
}

// NewBlock constructs an unmined block. The nonce and hash are zero until
// the block is mined.
func NewBlock(index uint32, timeStamp uint256.Int, prevBlockHash digest.Hash, trans []Tx, difficulty uint256.Int) (Block, error) {
	if !fitsUint128(&timeStamp) {
		return Block{}, fmt.Errorf("timestamp %s: %w", timeStamp.Hex(), ErrValueOutOfRange)
	}

	if !fitsUint128(&difficulty) {
		return Block{}, fmt.Errorf("difficulty %s: %w", difficulty.Hex(), ErrValueOutOfRange)
	}

	nb := Block{
		Header: BlockHeader{
			Index:         index,
			TimeStamp:     timeStamp,
			PrevBlockHash: prevBlockHash,
			Nonce:         0,
			Difficulty:    difficulty,
		},
		Trans: trans,
	}

	return nb, nil
}

// IsGenesis reports whether this is the first block of a chain.
func (b Block) IsGenesis() bool {
	return b.Header.Index == 0
}

// Bytes returns the canonical encoding of the block: index, timestamp,
// previous hash, nonce, every transaction and then the difficulty. The
// stored hash is not included.
func (b Block) Bytes() []byte {
	data := make([]byte, 0, 4+uint128Size+digest.Size+8+uint128Size)

	data = appendUint32(data, b.Header.Index)
	data = appendUint128(data, &b.Header.TimeStamp)
	data = append(data, b.Header.PrevBlockHash[:]...)
	data = appendUint64(data, b.Header.Nonce)
	for _, tx := range b.Trans {
		data = append(data, tx.Bytes()...)
	}
	data = appendUint128(data, &b.Header.Difficulty)

	return data
}

// ComputeHash returns the hash of the block's current content. This can
// differ from the stored Hash field if the block was changed after mining.
func (b Block) ComputeHash() digest.Hash {
	return digest.Sum(b)
}

// String implements the fmt.Stringer interface for logging.
func (b Block) String() string {
	return fmt.Sprintf("Block[%d]: %s at: %s with: %d nonce: %d",
		b.Header.Index,
		b.Hash,
		b.Header.TimeStamp.Dec(),
		len(b.Trans),
		b.Header.Nonce,
	)
}

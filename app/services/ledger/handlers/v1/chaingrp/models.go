package chaingrp

import (
	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

type output struct {
	Hash  string `json:"hash"`
	To    string `json:"to"`
	Value uint64 `json:"value"`
}

type tx struct {
	Hash     string   `json:"hash"`
	Coinbase bool     `json:"coinbase"`
	Inputs   []output `json:"inputs"`
	Outputs  []output `json:"outputs"`
}

type block struct {
	Index         uint32 `json:"index"`
	Hash          string `json:"hash"`
	PrevBlockHash string `json:"prev_block_hash"`
	TimeStamp     string `json:"timestamp"`
	Nonce         uint64 `json:"nonce"`
	Difficulty    string `json:"difficulty"`
	Trans         []tx   `json:"trans"`
}

type balance struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Balances    []balance `json:"balances"`
}

// =============================================================================

type newOutput struct {
	To    string `json:"to" validate:"required"`
	Value uint64 `json:"value"`
}

type newTx struct {
	Inputs  []newOutput `json:"inputs" validate:"dive"`
	Outputs []newOutput `json:"outputs" validate:"dive"`
}

type newBlock struct {
	Transactions []newTx `json:"transactions" validate:"dive"`
}

// Validate checks the data in the model is considered clean.
func (nb newBlock) Validate() error {
	return validate.Check(nb)
}

// =============================================================================

func toOutputs(outs []database.Output) []output {
	outputs := make([]output, len(outs))
	for i, out := range outs {
		outputs[i] = output{
			Hash:  out.Hash().String(),
			To:    out.ToAddr,
			Value: out.Value,
		}
	}

	return outputs
}

func toBlock(blk database.Block) block {
	trans := make([]tx, len(blk.Trans))
	for i, tran := range blk.Trans {
		trans[i] = tx{
			Hash:     tran.Hash().String(),
			Coinbase: tran.IsCoinbase(),
			Inputs:   toOutputs(tran.Inputs),
			Outputs:  toOutputs(tran.Outputs),
		}
	}

	return block{
		Index:         blk.Header.Index,
		Hash:          blk.Hash.String(),
		PrevBlockHash: blk.Header.PrevBlockHash.String(),
		TimeStamp:     blk.Header.TimeStamp.Dec(),
		Nonce:         blk.Header.Nonce,
		Difficulty:    database.Uint128String(blk.Header.Difficulty),
		Trans:         trans,
	}
}

func toBlocks(blks []database.Block) []block {
	blocks := make([]block, len(blks))
	for i, blk := range blks {
		blocks[i] = toBlock(blk)
	}

	return blocks
}

func toUTXOs(utxos []state.UTXO) []output {
	outputs := make([]output, len(utxos))
	for i, utxo := range utxos {
		outputs[i] = output{
			Hash:  utxo.Hash.String(),
			To:    utxo.Output.ToAddr,
			Value: utxo.Output.Value,
		}
	}

	return outputs
}

func toDBOutputs(outs []newOutput) []database.Output {
	outputs := make([]database.Output, len(outs))
	for i, out := range outs {
		outputs[i] = database.NewOutput(out.To, out.Value)
	}

	return outputs
}

func toDBTrans(nb newBlock) []database.Tx {
	trans := make([]database.Tx, len(nb.Transactions))
	for i, tran := range nb.Transactions {
		trans[i] = database.NewTx(toDBOutputs(tran.Inputs), toDBOutputs(tran.Outputs))
	}

	return trans
}

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	coinbase []string
	inputs   []string
	outputs  []string
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask a running ledger to mine the next block.",
	Run:   mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the ledger.")
	mineCmd.Flags().StringSliceVarP(&coinbase, "coinbase", "c", nil, "Coinbase output as address:value.")
	mineCmd.Flags().StringSliceVarP(&inputs, "in", "i", nil, "Unspent output to spend as address:value.")
	mineCmd.Flags().StringSliceVarP(&outputs, "out", "o", nil, "Spending output as address:value.")
}

func mineRun(cmd *cobra.Command, args []string) {
	cb, err := parseOutputs(coinbase)
	if err != nil {
		log.Fatal(err)
	}

	trans := []database.Tx{database.NewCoinbaseTx(cb...)}

	if len(inputs) > 0 || len(outputs) > 0 {
		ins, err := parseOutputs(inputs)
		if err != nil {
			log.Fatal(err)
		}
		outs, err := parseOutputs(outputs)
		if err != nil {
			log.Fatal(err)
		}
		trans = append(trans, database.NewTx(ins, outs))
	}

	req := struct {
		Transactions []database.Tx `json:"transactions"`
	}{
		Transactions: trans,
	}

	data, err := json.Marshal(req)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/blocks/mine", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}

	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("mining failed: %s: %s", resp.Status, body)
	}

	var b block
	if err := json.Unmarshal(body, &b); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Mined Block[%d]: %s nonce: %d\n", b.Index, b.Hash, b.Nonce)
}

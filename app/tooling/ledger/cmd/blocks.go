package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

type block struct {
	Index         uint32 `json:"index"`
	Hash          string `json:"hash"`
	PrevBlockHash string `json:"prev_block_hash"`
	TimeStamp     string `json:"timestamp"`
	Nonce         uint64 `json:"nonce"`
	Difficulty    string `json:"difficulty"`
	Trans         []struct {
		Hash string `json:"hash"`
	} `json:"trans"`
}

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the blocks of a running ledger.",
	Run:   blocksRun,
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	blocksCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the ledger.")
}

func blocksRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/blocks/list", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("unexpected status: %s", resp.Status)
	}

	var blocks []block
	if err := json.NewDecoder(resp.Body).Decode(&blocks); err != nil {
		log.Fatal(err)
	}

	for _, b := range blocks {
		fmt.Printf("Block[%d]: %s at: %s with: %d nonce: %d\n", b.Index, b.Hash, b.TimeStamp, len(b.Trans), b.Nonce)
	}
}

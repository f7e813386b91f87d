package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/spf13/cobra"
)

var (
	demoDifficulty string
	demoVerbose    bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Mine a genesis block and a spending block in memory.",
	Run:   demoRun,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVarP(&demoDifficulty, "difficulty", "d", genesis.DefaultDifficulty, "Difficulty threshold for the mined blocks.")
	demoCmd.Flags().BoolVarP(&demoVerbose, "verbose", "v", false, "Print the mining events.")
}

func demoRun(cmd *cobra.Command, args []string) {
	difficulty, err := database.ToUint128(demoDifficulty)
	if err != nil {
		log.Fatal(err)
	}

	var ev state.EventHandler
	if demoVerbose {
		ev = func(v string, args ...any) {
			fmt.Printf(v+"\n", args...)
		}
	}

	st := state.New(state.Config{
		Difficulty: difficulty,
		EvHandler:  ev,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	gen := genesis.Default()
	genBlock, err := st.MineNextBlock(ctx, gen.Transactions())
	if err != nil {
		log.Fatal(fmt.Errorf("genesis block: %w", err))
	}
	fmt.Println("Mined genesis block", genBlock)

	// Spend Alice's genesis output and pay the miner from the coinbase.
	block, err := st.MineNextBlock(ctx, []database.Tx{
		database.NewCoinbaseTx(database.NewOutput("Chris", 536)),
		database.NewTx([]database.Output{genBlock.Trans[0].Outputs[0]}, nil),
	})
	if err != nil {
		log.Fatal(fmt.Errorf("block 1: %w", err))
	}
	fmt.Println("Mined block", block)

	for _, utxo := range st.UnspentOutputs() {
		fmt.Printf("Unspent %s: %s\n", utxo.Hash, utxo.Output)
	}
}

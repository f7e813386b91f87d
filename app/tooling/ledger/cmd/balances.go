package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

type balance struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Balances    []balance `json:"balances"`
}

var balancesCmd = &cobra.Command{
	Use:   "balances [address]",
	Short: "Print the unspent balances of a running ledger.",
	Args:  cobra.MaximumNArgs(1),
	Run:   balancesRun,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
	balancesCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the ledger.")
}

func balancesRun(cmd *cobra.Command, args []string) {
	path := fmt.Sprintf("%s/v1/balances/list", url)
	if len(args) == 1 {
		path += "/" + args[0]
	}

	resp, err := http.Get(path)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var bals balances
	if err := json.NewDecoder(resp.Body).Decode(&bals); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Latest Block:", bals.LatestBlock)
	for _, b := range bals.Balances {
		fmt.Printf("%s: %d\n", b.Address, b.Balance)
	}
}

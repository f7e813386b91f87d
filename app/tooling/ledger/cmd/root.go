// Package cmd contains the ledger command line tool.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var url string

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Mine and inspect a proof of work ledger",
}

// Execute runs the command selected on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseOutput reads an output written as address:value.
func parseOutput(s string) (database.Output, error) {
	addr, value, found := strings.Cut(s, ":")
	if !found || addr == "" {
		return database.Output{}, fmt.Errorf("output %q: expected address:value", s)
	}

	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return database.Output{}, fmt.Errorf("output %q: %w", s, err)
	}

	return database.NewOutput(addr, v), nil
}

func parseOutputs(ss []string) ([]database.Output, error) {
	outputs := make([]database.Output, 0, len(ss))
	for _, s := range ss {
		out, err := parseOutput(s)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}

	return outputs, nil
}

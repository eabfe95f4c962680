// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/getdata-demo/internal/demo"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the GetData search and print the first page of results",
	Long: `Search obtains a GetData access token, posts the fixed demo filter
(US companies, International code 3674, ten per page) to /api/search, and
prints each returned business record. This is also what the root command
runs when no subcommand is given.`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	p, err := demo.New(demoConfig(), cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	return p.Run(cmd.Context())
}

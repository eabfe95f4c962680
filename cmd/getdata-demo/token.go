// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/getdata-demo/internal/auth"
	"github.com/pdiddy/getdata-demo/internal/demo"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Obtain an access token and print its details",
	Long: `Token runs only the password grant against the BizSearch or GetData
token endpoint and prints the token type, lifetime and a masked access token.
Use --show-token to print the token in full.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().String("api", "bizsearch", "API to authenticate against: bizsearch or getdata")
	tokenCmd.Flags().Bool("show-token", false, "print the access token unmasked")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	apiName, _ := cmd.Flags().GetString("api")
	kind, err := auth.ParseAPIKind(apiName)
	if err != nil {
		return err
	}
	show, _ := cmd.Flags().GetBool("show-token")

	p, err := demo.New(demoConfig(), cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}

	resp, err := p.Auth.Authenticate(cmd.Context(), kind)
	if err != nil {
		return &demo.AuthFailure{Err: err}
	}

	printToken(cmd.OutOrStdout(), kind, resp, show, time.Now())
	return nil
}

func printToken(w io.Writer, kind auth.APIKind, resp auth.TokenResponse, show bool, now time.Time) {
	tok := resp.OAuth2(now)

	access := tok.AccessToken
	if !show {
		access = maskToken(access)
	}

	fmt.Fprintf(w, "API:          %s\n", kind.DisplayName())
	fmt.Fprintf(w, "Token type:   %s\n", tok.TokenType)
	if !tok.Expiry.IsZero() {
		fmt.Fprintf(w, "Expires in:   %s (at %s)\n", resp.ExpiresIn(), tok.Expiry.Format(time.RFC3339))
	}
	if scope, ok := resp["scope"].(string); ok && scope != "" {
		fmt.Fprintf(w, "Scope:        %s\n", scope)
	}
	fmt.Fprintf(w, "Access token: %s\n", access)
}

// maskToken keeps the first and last four characters of long tokens.
func maskToken(s string) string {
	if len(s) <= 12 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", 8) + s[len(s)-4:]
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NickGaultney/elementor-logic-controls/internal/core/config"
	"github.com/NickGaultney/elementor-logic-controls/internal/core/token"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Encode and decode signed entry tokens",
}

var tokenEncodeCmd = &cobra.Command{
	Use:   "encode <entry-id> <form-id>",
	Short: "Sign an entry reference with the active token secret",
	Args:  cobra.ExactArgs(2),
	RunE:  runTokenEncode,
}

var tokenDecodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Verify a token and print its claims",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenDecode,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenEncodeCmd)
	tokenCmd.AddCommand(tokenDecodeCmd)
}

func runTokenEncode(cmd *cobra.Command, args []string) error {
	secrets, err := config.TokenSecrets()
	if err != nil {
		return fmt.Errorf("failed to load token secrets: %w", err)
	}
	if len(secrets) == 0 {
		return fmt.Errorf("no token secrets configured (set LC_TOKEN_SECRET environment variable)")
	}

	// The first secret is the active signer; the rest only verify.
	tok := token.Encode(args[0], args[1], secrets[0])
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}

func runTokenDecode(cmd *cobra.Command, args []string) error {
	secrets, err := config.TokenSecrets()
	if err != nil {
		return fmt.Errorf("failed to load token secrets: %w", err)
	}

	claims, err := token.Decode(args[0], secrets)
	if err != nil {
		return fmt.Errorf("token rejected: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "entry_id: %s\nform_id:  %s\n", claims.EntryID, claims.FormID)
	return nil
}

package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"inventory.GO/core/auth"
	authRepo "inventory.GO/model/repository/auth"
)

var (
	tokenName string
	tokenID   uint
)

var tokenCreateCmd = &cobra.Command{
	Use:   "token:create",
	Short: "Create an API bearer token (AUTH_TYPE=token); the secret is shown once",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		secret, err := auth.NewToken()
		if err != nil {
			return err
		}
		t, err := authRepo.NewAuthRepository(a.DB).Create(tokenName, secret)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token %d (%s): %s\n", t.ID, t.Name, secret)
		return nil
	},
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "token:revoke",
	Short: "Revoke an API token by id",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		if err := authRepo.NewAuthRepository(a.DB).Revoke(tokenID); err != nil {
			return fmt.Errorf("revoke token %d: %w", tokenID, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token %d revoked\n", tokenID)
		return nil
	},
}

var tokenListCmd = &cobra.Command{
	Use:   "token:list",
	Short: "List API tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		tokens, err := authRepo.NewAuthRepository(a.DB).List()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tREVOKED\tCREATED\tLAST USED")
		for _, t := range tokens {
			lastUsed := "-"
			if t.LastUsedAt != nil {
				lastUsed = t.LastUsedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%d\t%s\t%t\t%s\t%s\n", t.ID, t.Name, t.Revoked, t.CreatedAt.Format(time.RFC3339), lastUsed)
		}
		return w.Flush()
	},
}

func init() {
	tokenCreateCmd.Flags().StringVarP(&tokenName, "name", "n", "default", "Label for the token")
	tokenRevokeCmd.Flags().UintVar(&tokenID, "id", 0, "Token id")
	_ = tokenRevokeCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(tokenCreateCmd, tokenRevokeCmd, tokenListCmd)
}

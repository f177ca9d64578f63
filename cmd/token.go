package cmd

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagebrief/auth"
)

var flagTokenUser string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a user id",
	Long: `Token signs a token with auth.secret (JWT_SECRET). Without --user a new
user id is generated.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&flagTokenUser, "user", "", "User UUID (default: random)")
}

func runToken(cmd *cobra.Command, args []string) error {
	if cfg.Auth.Secret == "" {
		return errors.New("auth.secret (JWT_SECRET) is required")
	}
	id := uuid.New()
	if flagTokenUser != "" {
		parsed, err := uuid.Parse(flagTokenUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		id = parsed
	}

	svc, err := auth.NewService(cfg.Auth.Secret, cfg.Auth.TTL)
	if err != nil {
		return err
	}
	token, err := svc.Issue(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "user: %s\n", id)
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

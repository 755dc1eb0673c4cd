package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/studydesk/internal/auth"
	"github.com/zhubert/studydesk/internal/config"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the configured token signs in as",
	Long: `Decodes the configured API token and prints the identity and role the
client will act with. The token is not sent anywhere.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		return printWhoami(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func printWhoami(out io.Writer, cfg *config.Config) error {
	token := cfg.GetToken()
	if token == "" {
		return fmt.Errorf("not signed in: set %s or add a token to %s", config.EnvToken, cfg.Path())
	}
	c, err := auth.FromToken(token)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	fmt.Fprintf(out, "Signed in as %s\n", c)
	fmt.Fprintf(out, "  User ID:  %s\n", c.UserID)
	fmt.Fprintf(out, "  Role:     %s\n", c.Role)
	if c.IsStudent() {
		fmt.Fprintf(out, "  Student:  %s\n", c.StudentID)
	}
	baseURL := cfg.GetAPIURL()
	if apiFlag != "" {
		baseURL = apiFlag
	}
	fmt.Fprintf(out, "  API:      %s\n", baseURL)
	return nil
}

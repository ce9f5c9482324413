package command

import (
	"fmt"
	"time"

	"libraryhub/cmd/cli/authentication"
	"libraryhub/internal/config"
	"libraryhub/internal/middleware/auth"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Bearer token commands",
	Long: `Issue bearer tokens signed with the server's JWT_SECRET and keep one in the
OS keyring so later commands pick it up automatically.`,
}

var issueTokenCmd = &cobra.Command{
	Use:   "issue",
	Short: "Sign a token with JWT_SECRET from the environment or .env",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		scopes, _ := cmd.Flags().GetStringSlice("scope")
		save, _ := cmd.Flags().GetBool("save")

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}

		manager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)
		signed, err := manager.Issue(subject, scopes)
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}
		claims, err := manager.Validate(signed)
		if err != nil {
			return fmt.Errorf("issued token does not validate: %w", err)
		}

		fmt.Println(signed)
		expires := claims.ExpiresAt.Time
		fmt.Printf("Subject: %s\nScopes: %v\nExpires: %s\n", subject, scopes, expires.Format(time.RFC3339))

		if save {
			if err := authentication.StoreTokens(&authentication.StoredCredentials{
				AccessToken: signed,
				Subject:     subject,
				ExpiresAt:   expires.Unix(),
			}); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			color.Green("Token saved to the keyring")
		}
		return nil
	},
}

var showTokenCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return fmt.Errorf("no token stored, run 'libraryhub token issue --save'")
		}

		expires := time.Unix(creds.ExpiresAt, 0)
		fmt.Printf("Subject: %s\n", creds.Subject)
		if time.Now().After(expires) {
			color.Red("Expired: %s", expires.Format(time.RFC3339))
		} else {
			fmt.Printf("Expires: %s\n", expires.Format(time.RFC3339))
		}
		return nil
	},
}

var clearTokenCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
		color.Green("Stored token removed")
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(issueTokenCmd)
	tokenCmd.AddCommand(showTokenCmd)
	tokenCmd.AddCommand(clearTokenCmd)

	issueTokenCmd.Flags().String("subject", "", "Token subject (required)")
	issueTokenCmd.Flags().StringSlice("scope", auth.AllScopes, "Scopes to grant")
	issueTokenCmd.Flags().Bool("save", false, "Store the token in the OS keyring")
	_ = issueTokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

package command

// root.go defines the root command for the libraryhub CLI and its global flags.

import (
	"errors"
	"fmt"
	"os"

	"libraryhub/cmd/cli/authentication"
	"libraryhub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var (
	apiURL string // Global flag for API server URL
	token  string // bearer token, falls back to the keyring
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "libraryhub",
	Short: "libraryhub - library catalog command line interface",
	Long: `libraryhub talks to the libraryhub API. Use it to:
- List, add, edit and delete books and users
- Borrow and return books
- Issue and store bearer tokens for a server with authentication enabled

Use "libraryhub command -h" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("LIBRARYHUB_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token (default: the one saved by 'token issue --save')")
}

// newClient builds an API client carrying the flag token or the stored one.
// A missing token is fine when the server runs without authentication.
func newClient() (*client.HTTPClient, error) {
	httpClient := client.NewHTTPClient(apiURL)
	if token != "" {
		httpClient.SetToken(token)
		return httpClient, nil
	}

	creds, err := authentication.GetTokens()
	switch {
	case errors.Is(err, authentication.ErrNoToken):
	case err != nil:
		return nil, fmt.Errorf("read stored token: %w", err)
	default:
		httpClient.SetToken(creds.AccessToken)
	}
	return httpClient, nil
}

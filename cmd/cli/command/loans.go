package command

import (
	"errors"
	"fmt"
	"net/http"

	"libraryhub/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow [user-id] [book-id]",
	Short: "Lend a book to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := parseIDArg(args[0], "user")
		if err != nil {
			return err
		}
		bookID, err := parseIDArg(args[1], "book")
		if err != nil {
			return err
		}

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		if err := httpClient.Borrow(cmd.Context(), userID, bookID); err != nil {
			return loanError("borrow failed", err)
		}

		color.Green("Book %d is now on loan to user %d", bookID, userID)
		return nil
	},
}

var returnCmd = &cobra.Command{
	Use:   "return [book-id]",
	Short: "Return a borrowed book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := parseIDArg(args[0], "book")
		if err != nil {
			return err
		}

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		if err := httpClient.Return(cmd.Context(), bookID); err != nil {
			return loanError("return failed", err)
		}

		color.Green("Book %d returned", bookID)
		return nil
	},
}

// loanError surfaces the server's refusal text (for example "Book has been
// checked out by someone else") without the status code noise.
func loanError(action string, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && apiErr.Message != "" {
		return fmt.Errorf("%s: %s", action, apiErr.Message)
	}
	return describe(action, err)
}

func init() {
	rootCmd.AddCommand(borrowCmd)
	rootCmd.AddCommand(returnCmd)
}

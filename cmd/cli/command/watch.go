package command

import (
	"fmt"
	"os"
	"os/signal"

	"libraryhub/internal/events"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow borrow and return events live",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := newClient()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fmt.Println("Watching loan events (Ctrl+C to stop)...")
		if err := httpClient.WatchLoans(ctx, printLoanEvent); err != nil {
			return describe("loan feed", err)
		}
		return nil
	},
}

func printLoanEvent(e events.LoanEvent) {
	at := e.OccurredAt.Local().Format("15:04:05")
	switch e.Type {
	case events.BookBorrowed:
		color.Yellow("[%s] book %d borrowed by user %d", at, e.BookID, e.UserID)
	case events.BookReturned:
		color.Cyan("[%s] book %d returned", at, e.BookID)
	default:
		color.HiBlack("[%s] %s book %d", at, e.Type, e.BookID)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

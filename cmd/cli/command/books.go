package command

import (
	"fmt"

	"libraryhub/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Book catalog commands",
	Long:  `Manage books: list, view, add, edit and delete`,
}

var listBooksCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books ordered by title",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := newClient()
		if err != nil {
			return err
		}

		books, err := httpClient.ListBooks(cmd.Context())
		if err != nil {
			return describe("failed to list books", err)
		}

		if len(books) == 0 {
			fmt.Println("No books found.")
			return nil
		}

		fmt.Printf("Found %d books:\n\n", len(books))
		for _, b := range books {
			printBook(b)
			separator()
		}
		return nil
	},
}

var getBookCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a book and its borrower",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "book")
		if err != nil {
			return err
		}

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		book, err := httpClient.GetBook(cmd.Context(), id)
		if err != nil {
			return describe("failed to get book", err)
		}

		printBook(dto.BookDTO{
			ID:           book.ID,
			Title:        book.Title,
			Author:       book.Author,
			ISBN:         book.ISBN,
			Availability: book.Availability,
		})
		if book.BorrowedBy != nil {
			fmt.Printf("Borrowed by: %s %s (user %d)\n",
				book.BorrowedBy.Forename, book.BorrowedBy.Surname, book.BorrowedBy.ID)
		}
		return nil
	},
}

var addBookCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		isbn, _ := cmd.Flags().GetString("isbn")

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		book, err := httpClient.AddBook(cmd.Context(), dto.BookAddDTO{Title: title, Author: author, ISBN: isbn})
		if err != nil {
			return describe("failed to add book", err)
		}

		color.Green("Book added with ID %d", book.ID)
		return nil
	},
}

var editBookCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace a book's title, author and ISBN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "book")
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		isbn, _ := cmd.Flags().GetString("isbn")

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		book, err := httpClient.EditBook(cmd.Context(), dto.BookEditDTO{
			ID:     dto.ID(id),
			Title:  title,
			Author: author,
			ISBN:   isbn,
		})
		if err != nil {
			return describe("failed to edit book", err)
		}

		color.Green("Book %d updated", book.ID)
		printBook(*book)
		return nil
	},
}

var deleteBookCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "book")
		if err != nil {
			return err
		}

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		if err := httpClient.DeleteBook(cmd.Context(), id); err != nil {
			return describe("failed to delete book", err)
		}

		color.Green("Book %d deleted", id)
		return nil
	},
}

func init() {
	booksCmd.AddCommand(listBooksCmd)
	booksCmd.AddCommand(getBookCmd)
	booksCmd.AddCommand(addBookCmd)
	booksCmd.AddCommand(editBookCmd)
	booksCmd.AddCommand(deleteBookCmd)

	for _, c := range []*cobra.Command{addBookCmd, editBookCmd} {
		c.Flags().String("title", "", "Book title (required)")
		c.Flags().String("author", "", "Book author (required)")
		c.Flags().String("isbn", "", "Book ISBN (required)")
		_ = c.MarkFlagRequired("title")
		_ = c.MarkFlagRequired("author")
		_ = c.MarkFlagRequired("isbn")
	}

	rootCmd.AddCommand(booksCmd)
}

package command

import (
	"fmt"

	"libraryhub/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Library user commands",
	Long:  `Manage users: list, view with their loans, add, edit and delete`,
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users ordered by surname",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := newClient()
		if err != nil {
			return err
		}

		users, err := httpClient.ListUsers(cmd.Context())
		if err != nil {
			return describe("failed to list users", err)
		}

		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		fmt.Printf("Found %d users:\n\n", len(users))
		for _, u := range users {
			printUser(u)
			separator()
		}
		return nil
	},
}

var getUserCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a user and the books they hold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "user")
		if err != nil {
			return err
		}

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		user, err := httpClient.GetUser(cmd.Context(), id)
		if err != nil {
			return describe("failed to get user", err)
		}

		printUser(dto.UserDTO{ID: user.ID, Forename: user.Forename, Surname: user.Surname})
		if len(user.Books) == 0 {
			fmt.Println("No books on loan.")
			return nil
		}
		fmt.Printf("\nBooks on loan (%d):\n", len(user.Books))
		for _, b := range user.Books {
			fmt.Printf("  [%d] %s by %s\n", b.ID, b.Title, b.Author)
		}
		return nil
	},
}

var addUserCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		forename, _ := cmd.Flags().GetString("forename")
		surname, _ := cmd.Flags().GetString("surname")

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		user, err := httpClient.AddUser(cmd.Context(), dto.UserAddDTO{Forename: forename, Surname: surname})
		if err != nil {
			return describe("failed to add user", err)
		}

		color.Green("User added with ID %d", user.ID)
		return nil
	},
}

var editUserCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace a user's name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "user")
		if err != nil {
			return err
		}
		forename, _ := cmd.Flags().GetString("forename")
		surname, _ := cmd.Flags().GetString("surname")

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		user, err := httpClient.EditUser(cmd.Context(), dto.UserEditDTO{
			ID:       dto.ID(id),
			Forename: forename,
			Surname:  surname,
		})
		if err != nil {
			return describe("failed to edit user", err)
		}

		color.Green("User %d updated", user.ID)
		return nil
	},
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a user, returning any books they hold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0], "user")
		if err != nil {
			return err
		}

		httpClient, err := newClient()
		if err != nil {
			return err
		}

		if err := httpClient.DeleteUser(cmd.Context(), id); err != nil {
			return describe("failed to delete user", err)
		}

		color.Green("User %d deleted", id)
		return nil
	},
}

func init() {
	usersCmd.AddCommand(listUsersCmd)
	usersCmd.AddCommand(getUserCmd)
	usersCmd.AddCommand(addUserCmd)
	usersCmd.AddCommand(editUserCmd)
	usersCmd.AddCommand(deleteUserCmd)

	for _, c := range []*cobra.Command{addUserCmd, editUserCmd} {
		c.Flags().String("forename", "", "Forename (required)")
		c.Flags().String("surname", "", "Surname (required)")
		_ = c.MarkFlagRequired("forename")
		_ = c.MarkFlagRequired("surname")
	}

	rootCmd.AddCommand(usersCmd)
}

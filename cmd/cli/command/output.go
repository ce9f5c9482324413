package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"libraryhub/cmd/cli/command/client"
	"libraryhub/internal/microservices/http-api/dto"
	"libraryhub/internal/microservices/http-api/models"

	"github.com/fatih/color"
)

func parseIDArg(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %q", what, arg)
	}
	return id, nil
}

// describe turns API errors into a one-line reason for the user.
func describe(action string, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.NotFound() {
		return fmt.Errorf("%s: not found", action)
	}
	return fmt.Errorf("%s: %w", action, err)
}

func printBook(b dto.BookDTO) {
	fmt.Printf("ID: %d\n", b.ID)
	fmt.Printf("Title: %s\n", b.Title)
	fmt.Printf("Author: %s\n", b.Author)
	fmt.Printf("ISBN: %s\n", b.ISBN)
	fmt.Printf("Availability: %s\n", availability(b.Availability))
}

func availability(a models.Availability) string {
	if a == models.CheckedOut {
		return color.YellowString(string(a))
	}
	return color.GreenString(string(a))
}

func printUser(u dto.UserDTO) {
	fmt.Printf("ID: %d\n", u.ID)
	fmt.Printf("Name: %s %s\n", u.Forename, u.Surname)
}

func separator() {
	fmt.Println(strings.Repeat("-", 50))
}

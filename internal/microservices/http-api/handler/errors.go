package handler

import (
	"errors"
	"net/http"
	"strconv"

	"libraryhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	msgBookNotAvailable  = "Book has been checked out by someone else"
	msgBookNotCheckedOut = "Book has not been checked out"
)

// writeError maps service failures onto the API's status codes. Anything
// unexpected is attached to the context for the access log and answered 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, service.ErrBookNotAvailable):
		c.String(http.StatusBadRequest, msgBookNotAvailable)
	case errors.Is(err, service.ErrBookNotCheckedOut):
		c.String(http.StatusBadRequest, msgBookNotCheckedOut)
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseID only rejects text that is not a number. Ids of zero or below
// never match a row, so the service answers them with ErrNotFound.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

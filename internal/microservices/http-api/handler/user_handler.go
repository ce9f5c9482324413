package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"libraryhub/internal/microservices/http-api/dto"
	"libraryhub/internal/microservices/http-api/middleware"
	"libraryhub/internal/microservices/http-api/service"
	"libraryhub/internal/middleware/auth"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc     service.UserService
	timeout time.Duration
}

func NewUserHandler(svc service.UserService, timeout time.Duration) *UserHandler {
	return &UserHandler{svc: svc, timeout: timeout}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequireScopes(auth.ScopeCatalogRead)
	write := middleware.RequireScopes(auth.ScopeCatalogWrite)
	loans := middleware.RequireScopes(auth.ScopeLoansWrite)

	rg.GET("", read, h.List)
	rg.GET("/:id", read, h.Get)
	rg.POST("", write, h.Add)
	rg.PUT("", write, h.Update)
	rg.DELETE("/:id", write, h.Delete)

	// loan actions answer on both spellings
	for _, path := range []string{"/Borrow", "/borrow"} {
		rg.POST(path, loans, h.Borrow)
	}
	for _, path := range []string{"/Return", "/return"} {
		rg.POST(path, loans, h.Return)
	}
}

// List godoc
// @Summary      List users
// @Description  All users ordered by surname, then forename
// @Tags         users
// @Produce      json
// @Success      200  {array}  dto.UserDTO
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	users, err := h.svc.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUserModels(users))
}

// Get godoc
// @Summary      Get a user
// @Description  The user with the books currently on loan to them
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  dto.UserDTOWithBooks
// @Failure      400  {object}  map[string]string
// @Failure      404
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, err := h.svc.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.FromUserModelWithBooks(*user))
}

// Add godoc
// @Summary      Add a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      dto.UserAddDTO  true  "User"
// @Success      200   {object}  dto.UserDTO
// @Failure      400   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Add(c *gin.Context) {
	var in dto.UserAddDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user := in.ToModel()
	if err := h.svc.Add(ctx, &user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUserModel(user))
}

// Update godoc
// @Summary      Edit a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      dto.UserEditDTO  true  "User"
// @Success      200   {object}  dto.UserDTO
// @Failure      400   {object}  map[string]string
// @Failure      404
// @Router       /api/users [put]
func (h *UserHandler) Update(c *gin.Context) {
	var in dto.UserEditDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user := in.ToModel()
	if err := h.svc.Update(ctx, &user); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUserModel(user))
}

// Delete godoc
// @Summary      Delete a user
// @Description  Books on loan to the user become Available again
// @Tags         users
// @Param        id  path  int  true  "User ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Borrow godoc
// @Summary      Borrow a book
// @Tags         loans
// @Accept       json
// @Param        loan  body  dto.BorrowDTO  true  "Borrower and book"
// @Success      204
// @Failure      400  {string}  string  "Book has been checked out by someone else"
// @Failure      404
// @Router       /api/users/Borrow [post]
func (h *UserHandler) Borrow(c *gin.Context) {
	var in dto.BorrowDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Borrow(ctx, in.UserID.Int64(), in.BookID.Int64()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Return godoc
// @Summary      Return a book
// @Description  The book id comes from ?bookId= or from a {"bookId": n} body
// @Tags         loans
// @Accept       json
// @Param        bookId  query  int            false  "Book ID"
// @Param        loan    body   dto.ReturnDTO  false  "Book"
// @Success      204
// @Failure      400  {string}  string  "Book has not been checked out"
// @Failure      404
// @Router       /api/users/Return [post]
func (h *UserHandler) Return(c *gin.Context) {
	var bookID int64
	if raw, present := c.GetQuery("bookId"); present {
		id, ok := parseID(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bookId"})
			return
		}
		bookID = id
	} else {
		var in dto.ReturnDTO
		// an empty body leaves bookId at 0, which the service reports as not found
		if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		bookID = in.BookID.Int64()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.svc.Return(ctx, bookID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"context"
	"net/http"
	"time"

	"libraryhub/internal/microservices/http-api/dto"
	"libraryhub/internal/microservices/http-api/middleware"
	"libraryhub/internal/microservices/http-api/service"
	"libraryhub/internal/middleware/auth"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	svc     service.BookService
	timeout time.Duration
}

func NewBookHandler(svc service.BookService, timeout time.Duration) *BookHandler {
	return &BookHandler{svc: svc, timeout: timeout}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	read := middleware.RequireScopes(auth.ScopeCatalogRead)
	write := middleware.RequireScopes(auth.ScopeCatalogWrite)

	rg.GET("", read, h.List)
	rg.GET("/:id", read, h.Get)
	rg.POST("", write, h.Add)
	rg.PUT("", write, h.Update)
	rg.DELETE("/:id", write, h.Delete)
}

// List godoc
// @Summary      List books
// @Description  All books ordered by title
// @Tags         books
// @Produce      json
// @Success      200  {array}  dto.BookDTO
// @Router       /api/books [get]
func (h *BookHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	books, err := h.svc.List(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBookModels(books))
}

// Get godoc
// @Summary      Get a book
// @Description  The book and, when it is on loan, its borrower
// @Tags         books
// @Produce      json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  dto.BookDTOWithUser
// @Failure      400  {object}  map[string]string
// @Failure      404
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	book, err := h.svc.GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if book == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.FromBookModelWithUser(*book))
}

// Add godoc
// @Summary      Add a book
// @Description  New books start out Available
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        book  body      dto.BookAddDTO  true  "Book"
// @Success      200   {object}  dto.BookDTO
// @Failure      400   {object}  map[string]string
// @Router       /api/books [post]
func (h *BookHandler) Add(c *gin.Context) {
	var in dto.BookAddDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	book := in.ToModel()
	if err := h.svc.Add(ctx, &book); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBookModel(book))
}

// Update godoc
// @Summary      Edit a book
// @Description  Rewrites title, author and isbn. The loan state is not touched.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        book  body      dto.BookEditDTO  true  "Book"
// @Success      200   {object}  dto.BookDTO
// @Failure      400   {object}  map[string]string
// @Failure      404
// @Router       /api/books [put]
func (h *BookHandler) Update(c *gin.Context) {
	var in dto.BookEditDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	book := in.ToModel()
	if err := h.svc.Update(ctx, &book); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBookModel(book))
}

// Delete godoc
// @Summary      Delete a book
// @Tags         books
// @Param        id  path  int  true  "Book ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
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

package dto

import "libraryhub/internal/microservices/http-api/models"

// BookDTO is the list/add/update representation of a book.
type BookDTO struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Author       string              `json:"author"`
	ISBN         string              `json:"isbn"`
	Availability models.Availability `json:"availability"`
}

// BookDTOWithUser is returned by GET /api/books/{id}.
type BookDTOWithUser struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Author       string              `json:"author"`
	ISBN         string              `json:"isbn"`
	Availability models.Availability `json:"availability"`
	BorrowedBy   *UserDTO            `json:"borrowedBy"`
}

// BookAddDTO used for POST /api/books
type BookAddDTO struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
	ISBN   string `json:"isbn" binding:"required"`
}

// BookEditDTO used for PUT /api/books. A missing id reads as 0 and is not found.
type BookEditDTO struct {
	ID     ID     `json:"id"`
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
	ISBN   string `json:"isbn" binding:"required"`
}

// Converters
func (d BookAddDTO) ToModel() models.Book {
	return models.Book{
		Title:  d.Title,
		Author: d.Author,
		ISBN:   d.ISBN,
	}
}

func (d BookEditDTO) ToModel() models.Book {
	return models.Book{
		ID:     d.ID.Int64(),
		Title:  d.Title,
		Author: d.Author,
		ISBN:   d.ISBN,
	}
}

func FromBookModel(b models.Book) BookDTO {
	return BookDTO{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		ISBN:         b.ISBN,
		Availability: b.Availability,
	}
}

func FromBookModels(books []models.Book) []BookDTO {
	out := make([]BookDTO, 0, len(books))
	for _, b := range books {
		out = append(out, FromBookModel(b))
	}
	return out
}

// FromBookModelWithUser expects BorrowedBy to be preloaded when the book is on loan.
func FromBookModelWithUser(b models.Book) BookDTOWithUser {
	resp := BookDTOWithUser{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		ISBN:         b.ISBN,
		Availability: b.Availability,
	}
	if b.BorrowedBy != nil {
		u := FromUserModel(*b.BorrowedBy)
		resp.BorrowedBy = &u
	}
	return resp
}

package dto

import "libraryhub/internal/microservices/http-api/models"

type UserDTO struct {
	ID       int64  `json:"id"`
	Forename string `json:"forename"`
	Surname  string `json:"surname"`
}

// UserDTOWithBooks is returned by GET /api/users/{id}.
type UserDTOWithBooks struct {
	ID       int64     `json:"id"`
	Forename string    `json:"forename"`
	Surname  string    `json:"surname"`
	Books    []BookDTO `json:"books"`
}

type UserAddDTO struct {
	Forename string `json:"forename" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
}

type UserEditDTO struct {
	ID       ID     `json:"id"`
	Forename string `json:"forename" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
}

// BorrowDTO used for POST /api/users/Borrow. Missing ids read as 0.
type BorrowDTO struct {
	UserID ID `json:"userId"`
	BookID ID `json:"bookId"`
}

// ReturnDTO is the body form of POST /api/users/Return, the query form is ?bookId=
type ReturnDTO struct {
	BookID ID `json:"bookId"`
}

func (d UserAddDTO) ToModel() models.User {
	return models.User{
		Forename: d.Forename,
		Surname:  d.Surname,
	}
}

func (d UserEditDTO) ToModel() models.User {
	return models.User{
		ID:       d.ID.Int64(),
		Forename: d.Forename,
		Surname:  d.Surname,
	}
}

func FromUserModel(u models.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Forename: u.Forename,
		Surname:  u.Surname,
	}
}

func FromUserModels(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, FromUserModel(u))
	}
	return out
}

// FromUserModelWithBooks expects Books to be preloaded.
func FromUserModelWithBooks(u models.User) UserDTOWithBooks {
	return UserDTOWithBooks{
		ID:       u.ID,
		Forename: u.Forename,
		Surname:  u.Surname,
		Books:    FromBookModels(u.Books),
	}
}

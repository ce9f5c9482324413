package models

// Availability is the loan state of a book.
type Availability string

const (
	Available  Availability = "Available"
	CheckedOut Availability = "CheckedOut"
)

// Valid reports whether a is one of the known states.
func (a Availability) Valid() bool {
	return a == Available || a == CheckedOut
}

type Book struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string       `gorm:"not null" json:"title"`
	Author       string       `gorm:"not null" json:"author"`
	ISBN         string       `gorm:"column:isbn;not null" json:"isbn"`
	Availability Availability `gorm:"type:text;not null;default:'Available'" json:"availability"`

	// BorrowedByID is set if and only if Availability is CheckedOut
	BorrowedByID *int64 `gorm:"index" json:"borrowedById"`
	BorrowedBy   *User  `gorm:"foreignKey:BorrowedByID" json:"borrowedBy,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

// OnLoan reports whether the book is currently checked out.
func (b *Book) OnLoan() bool {
	return b.Availability == CheckedOut
}

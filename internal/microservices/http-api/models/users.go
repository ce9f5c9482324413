package models

type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Forename string `gorm:"not null" json:"forename"`
	Surname  string `gorm:"not null" json:"surname"`

	// books currently on loan to this user
	Books []Book `gorm:"foreignKey:BorrowedByID" json:"books,omitempty"`
}

func (User) TableName() string {
	return "users"
}

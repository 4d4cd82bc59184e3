package entities

// User owns zero or more books. Deleting a user leaves its books in place.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;not null" json:"name"`
	Email string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Books []Book `gorm:"foreignKey:UserID" json:"-"`
}

// Book names are unique across all users, not per user.
type Book struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description *string `gorm:"size:100" json:"description"`
	UserID      uint    `gorm:"index" json:"user_id"`
}

func (User) TableName() string {
	return "user"
}

func (Book) TableName() string {
	return "book"
}

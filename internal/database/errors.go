package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrBookNotFound      = errors.New("book not found")
	ErrDuplicateEmail    = errors.New("user email already exists")
	ErrDuplicateBookName = errors.New("book name already exists")
)

// IsUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY
// constraint. gorm translates the driver error when TranslateError is set;
// the raw sqlite3 error is checked too for sessions opened without it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// EnsureUserExists returns ErrUserNotFound when no user has the given id.
func EnsureUserExists(tx *gorm.DB, userID uint) error {
	var user entities.User
	err := tx.Select("id").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

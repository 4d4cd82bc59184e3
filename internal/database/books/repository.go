// Package books provides database operations for books owned by users.
//
// Lookups by book ID always go through the owning user: a book that belongs
// to someone else is reported as ErrBookNotFound.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.CreateBook(ctx, userID, "Go", nil)
package books

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns the books of every user.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	books := make([]entities.Book, 0)
	if err := r.db.WithContext(ctx).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBookForUser retrieves a book owned by userID.
func (r *Repository) GetBookForUser(ctx context.Context, userID, bookID uint) (*entities.Book, error) {
	var book entities.Book

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.EnsureUserExists(tx, userID); err != nil {
			return err
		}
		return findOwnedBook(tx, userID, bookID, &book)
	})
	if err != nil {
		return nil, wrap(err, "get book %d", bookID)
	}

	return &book, nil
}

// CreateBook inserts a book owned by userID. A taken name yields
// ErrDuplicateBookName.
func (r *Repository) CreateBook(ctx context.Context, userID uint, name string, description *string) (*entities.Book, error) {
	book := &entities.Book{
		Name:        name,
		Description: description,
		UserID:      userID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.EnsureUserExists(tx, userID); err != nil {
			return err
		}
		return tx.Create(book).Error
	})
	if database.IsUniqueViolation(err) {
		return nil, database.ErrDuplicateBookName
	}
	if err != nil {
		return nil, wrap(err, "create book for user %d", userID)
	}

	return book, nil
}

// UpdateBook overwrites the name of a book and, when description is non-nil,
// its description. A nil description keeps the stored one.
func (r *Repository) UpdateBook(ctx context.Context, userID, bookID uint, name string, description *string) (*entities.Book, error) {
	var book entities.Book

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.EnsureUserExists(tx, userID); err != nil {
			return err
		}
		if err := findOwnedBook(tx, userID, bookID, &book); err != nil {
			return err
		}

		book.Name = name
		if description != nil {
			book.Description = description
		}
		return tx.Save(&book).Error
	})
	if database.IsUniqueViolation(err) {
		return nil, database.ErrDuplicateBookName
	}
	if err != nil {
		return nil, wrap(err, "update book %d", bookID)
	}

	return &book, nil
}

// DeleteBook removes a book owned by userID.
func (r *Repository) DeleteBook(ctx context.Context, userID, bookID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.EnsureUserExists(tx, userID); err != nil {
			return err
		}
		result := tx.Where("user_id = ?", userID).Delete(&entities.Book{}, bookID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.ErrBookNotFound
		}
		return nil
	})
	if err != nil {
		return wrap(err, "delete book %d", bookID)
	}
	return nil
}

func findOwnedBook(tx *gorm.DB, userID, bookID uint, book *entities.Book) error {
	err := tx.Where("user_id = ?", userID).First(book, bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.ErrBookNotFound
	}
	return err
}

// wrap leaves sentinel errors bare so callers can compare them directly.
func wrap(err error, format string, args ...any) error {
	if errors.Is(err, database.ErrUserNotFound) || errors.Is(err, database.ErrBookNotFound) {
		return err
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.CreateUser(ctx, "Ann", "a@x.com")
package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListUsers returns every user in storage order.
func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	users := make([]entities.User, 0)
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// GetUserWithBooks retrieves a user together with the books it owns.
func (r *Repository) GetUserWithBooks(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Preload("Books").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d with books: %w", id, err)
	}
	if user.Books == nil {
		user.Books = []entities.Book{}
	}
	return &user, nil
}

// CreateUser inserts a new user. A taken email yields ErrDuplicateEmail.
func (r *Repository) CreateUser(ctx context.Context, name, email string) (*entities.User, error) {
	user := &entities.User{
		Name:  name,
		Email: email,
	}

	err := r.db.WithContext(ctx).Create(user).Error
	if database.IsUniqueViolation(err) {
		return nil, database.ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// UpdateUser overwrites name and email of an existing user.
func (r *Repository) UpdateUser(ctx context.Context, id uint, name, email string) (*entities.User, error) {
	var user entities.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.ErrUserNotFound
			}
			return err
		}

		user.Name = name
		user.Email = email
		return tx.Save(&user).Error
	})
	if database.IsUniqueViolation(err) {
		return nil, database.ErrDuplicateEmail
	}
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	return &user, nil
}

// DeleteUser removes a user. Books owned by the user are left untouched.
func (r *Repository) DeleteUser(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrUserNotFound
	}
	return nil
}

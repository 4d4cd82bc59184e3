package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database) {
	dbPath := filepath.Join(t.TempDir(), "books.db")

	db, err := database.NewDatabase(dbPath, database.WithLogger(logger.Default.LogMode(logger.Silent)))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB), db
}

func createUser(t *testing.T, db *database.Database, name, email string) *entities.User {
	t.Helper()
	user := &entities.User{Name: name, Email: email}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

func strPtr(s string) *string {
	return &s
}

func TestRepository_CreateBook(t *testing.T) {
	repo, db := setupTestDB(t)
	user := createUser(t, db, "Ann", "a@x.com")

	book, err := repo.CreateBook(context.Background(), user.ID, "Go", strPtr("book"))

	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "Go", book.Name)
	require.NotNil(t, book.Description)
	assert.Equal(t, "book", *book.Description)
	assert.Equal(t, user.ID, book.UserID)
}

func TestRepository_CreateBook_WithoutDescription(t *testing.T) {
	repo, db := setupTestDB(t)
	user := createUser(t, db, "Ann", "a@x.com")

	book, err := repo.CreateBook(context.Background(), user.ID, "Go", nil)

	require.NoError(t, err)
	assert.Nil(t, book.Description)
}

func TestRepository_CreateBook_UserNotFound(t *testing.T) {
	repo, db := setupTestDB(t)

	_, err := repo.CreateBook(context.Background(), 42, "Go", nil)
	assert.ErrorIs(t, err, database.ErrUserNotFound)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRepository_CreateBook_DuplicateNameAcrossUsers(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	ann := createUser(t, db, "Ann", "a@x.com")
	bob := createUser(t, db, "Bob", "b@x.com")

	_, err := repo.CreateBook(ctx, ann.ID, "Go", nil)
	require.NoError(t, err)

	_, err = repo.CreateBook(ctx, bob.ID, "Go", nil)
	assert.ErrorIs(t, err, database.ErrDuplicateBookName)
}

func TestRepository_ListBooks(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)

	ann := createUser(t, db, "Ann", "a@x.com")
	bob := createUser(t, db, "Bob", "b@x.com")
	_, err = repo.CreateBook(ctx, ann.ID, "Go", nil)
	require.NoError(t, err)
	_, err = repo.CreateBook(ctx, bob.ID, "Rust", nil)
	require.NoError(t, err)

	books, err = repo.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestRepository_UpdateBook(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "Ann", "a@x.com")

	book, err := repo.CreateBook(ctx, user.ID, "Go", strPtr("first"))
	require.NoError(t, err)

	t.Run("nil description keeps the stored one", func(t *testing.T) {
		updated, err := repo.UpdateBook(ctx, user.ID, book.ID, "Go 2", nil)
		require.NoError(t, err)
		assert.Equal(t, "Go 2", updated.Name)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "first", *updated.Description)
	})

	t.Run("non-nil description replaces the stored one", func(t *testing.T) {
		updated, err := repo.UpdateBook(ctx, user.ID, book.ID, "Go 3", strPtr("second"))
		require.NoError(t, err)
		assert.Equal(t, "Go 3", updated.Name)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "second", *updated.Description)

		stored, err := repo.GetBookForUser(ctx, user.ID, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "second", *stored.Description)
		assert.Equal(t, user.ID, stored.UserID)
	})
}

func TestRepository_UpdateBook_NotFound(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	ann := createUser(t, db, "Ann", "a@x.com")
	bob := createUser(t, db, "Bob", "b@x.com")

	book, err := repo.CreateBook(ctx, ann.ID, "Go", nil)
	require.NoError(t, err)

	_, err = repo.UpdateBook(ctx, 999, book.ID, "Go", nil)
	assert.ErrorIs(t, err, database.ErrUserNotFound)

	_, err = repo.UpdateBook(ctx, ann.ID, 999, "Go", nil)
	assert.ErrorIs(t, err, database.ErrBookNotFound)

	// Books of other users are not reachable through a foreign user path
	_, err = repo.UpdateBook(ctx, bob.ID, book.ID, "Hijacked", nil)
	assert.ErrorIs(t, err, database.ErrBookNotFound)

	stored, err := repo.GetBookForUser(ctx, ann.ID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", stored.Name)
}

func TestRepository_UpdateBook_DuplicateName(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	user := createUser(t, db, "Ann", "a@x.com")

	_, err := repo.CreateBook(ctx, user.ID, "Go", nil)
	require.NoError(t, err)
	rust, err := repo.CreateBook(ctx, user.ID, "Rust", nil)
	require.NoError(t, err)

	_, err = repo.UpdateBook(ctx, user.ID, rust.ID, "Go", nil)
	assert.ErrorIs(t, err, database.ErrDuplicateBookName)
}

func TestRepository_DeleteBook(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()
	ann := createUser(t, db, "Ann", "a@x.com")
	bob := createUser(t, db, "Bob", "b@x.com")

	book, err := repo.CreateBook(ctx, ann.ID, "Go", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.DeleteBook(ctx, 999, book.ID), database.ErrUserNotFound)
	assert.ErrorIs(t, repo.DeleteBook(ctx, bob.ID, book.ID), database.ErrBookNotFound)
	assert.ErrorIs(t, repo.DeleteBook(ctx, ann.ID, 999), database.ErrBookNotFound)

	require.NoError(t, repo.DeleteBook(ctx, ann.ID, book.ID))

	_, err = repo.GetBookForUser(ctx, ann.ID, book.ID)
	assert.ErrorIs(t, err, database.ErrBookNotFound)
}

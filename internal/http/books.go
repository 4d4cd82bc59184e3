package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookStore defines database operations for books. Every lookup by book ID
// is scoped to the owning user.
type BookStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBookForUser(ctx context.Context, userID, bookID uint) (*entities.Book, error)
	CreateBook(ctx context.Context, userID uint, name string, description *string) (*entities.Book, error)
	UpdateBook(ctx context.Context, userID, bookID uint, name string, description *string) (*entities.Book, error)
	DeleteBook(ctx context.Context, userID, bookID uint) error
}

// OwnerReader loads a user together with the books it owns.
type OwnerReader interface {
	GetUserWithBooks(ctx context.Context, id uint) (*entities.User, error)
}

type BooksController struct {
	store        BookStore
	owners       OwnerReader
	auditService *audit.Service
}

func NewBooksController(store BookStore, owners OwnerReader, auditService *audit.Service) *BooksController {
	return &BooksController{
		store:        store,
		owners:       owners,
		auditService: auditService,
	}
}

// ListBooks returns the books of all users.
// GET /users/books
func (bc *BooksController) ListBooks(c *gin.Context) {
	books, err := bc.store.ListBooks(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

// ListUserBooks returns the books owned by one user.
// GET /users/:user_id/books
func (bc *BooksController) ListUserBooks(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	user, err := bc.owners.GetUserWithBooks(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err, "list user books")
		return
	}
	c.JSON(http.StatusOK, user.Books)
}

// GetBook returns one book of a user.
// GET /users/:user_id/:book_id
func (bc *BooksController) GetBook(c *gin.Context) {
	userID, bookID, ok := parseBookPath(c)
	if !ok {
		return
	}

	book, err := bc.store.GetBookForUser(c.Request.Context(), userID, bookID)
	if err != nil {
		respondStoreError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook adds a book to a user. Book names are unique across all users.
// POST /users/:user_id/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.store.CreateBook(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		recordFailure(c, bc.auditService, entities.AuditEventCreate, "book", 0, err)
		respondStoreError(c, err, "create book")
		return
	}

	if bc.auditService != nil {
		bc.auditService.LogCreate(requestMeta(c), "book", book.ID, book.Name)
	}

	c.JSON(http.StatusOK, book)
}

// UpdateBook renames a book and replaces its description when one is given.
// PUT /users/:user_id/:book_id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	userID, bookID, ok := parseBookPath(c)
	if !ok {
		return
	}

	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.store.UpdateBook(c.Request.Context(), userID, bookID, req.Name, req.Description)
	if err != nil {
		recordFailure(c, bc.auditService, entities.AuditEventUpdate, "book", bookID, err)
		respondStoreError(c, err, "update book")
		return
	}

	if bc.auditService != nil {
		bc.auditService.LogUpdate(requestMeta(c), "book", book.ID, book.Name)
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book of a user.
// DELETE /users/:user_id/:book_id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	userID, bookID, ok := parseBookPath(c)
	if !ok {
		return
	}

	if err := bc.store.DeleteBook(c.Request.Context(), userID, bookID); err != nil {
		recordFailure(c, bc.auditService, entities.AuditEventDelete, "book", bookID, err)
		respondStoreError(c, err, "delete book")
		return
	}

	if bc.auditService != nil {
		bc.auditService.LogDelete(requestMeta(c), "book", bookID)
	}

	c.JSON(http.StatusOK, InfoResponse{Info: infoBookDeleted})
}

func parseBookPath(c *gin.Context) (userID, bookID uint, ok bool) {
	if userID, ok = parseIDParam(c, "user_id"); !ok {
		return 0, 0, false
	}
	if bookID, ok = parseIDParam(c, "book_id"); !ok {
		return 0, 0, false
	}
	return userID, bookID, true
}

// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and schema creation
//	├── errors.go        # Sentinel errors and constraint-violation detection
//	├── users/           # User CRUD operations
//	├── books/           # Book CRUD operations scoped to their owner
//	└── audit/           # Audit event storage and retention
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./database.db")
//
//	usersRepo := users.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	user, err := usersRepo.CreateUser(ctx, "Ann", "a@x.com")
//	book, err := booksRepo.CreateBook(ctx, user.ID, "Go", nil)
//
// # Transactions
//
// Every repository method that reads before it writes runs inside a single
// transaction bound to the caller's context. The transaction commits when
// the method returns nil and rolls back otherwise, so a request never leaves
// a half-applied change behind.
//
// # Uniqueness
//
// User emails and book names carry unique indexes. Repositories do not query
// before inserting; they translate the constraint violation into
// ErrDuplicateEmail or ErrDuplicateBookName instead.
package database

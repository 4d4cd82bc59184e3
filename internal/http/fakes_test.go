package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// memStore is an in-memory UserStore, BookStore and OwnerReader.
type memStore struct {
	mu     sync.Mutex
	users  map[uint]entities.User
	books  map[uint]entities.Book
	nextID uint
	err    error
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[uint]entities.User),
		books: make(map[uint]entities.Book),
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) ListUsers(context.Context) ([]entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	users := make([]entities.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memStore) GetUserByID(_ context.Context, id uint) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, database.ErrUserNotFound
	}
	return &u, nil
}

func (m *memStore) GetUserWithBooks(ctx context.Context, id uint) (*entities.User, error) {
	u, err := m.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Books = []entities.Book{}
	for _, b := range m.books {
		if b.UserID == id {
			u.Books = append(u.Books, b)
		}
	}
	sort.Slice(u.Books, func(i, j int) bool { return u.Books[i].ID < u.Books[j].ID })
	return u, nil
}

func (m *memStore) CreateUser(_ context.Context, name, email string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return nil, database.ErrDuplicateEmail
		}
	}
	u := entities.User{ID: m.id(), Name: name, Email: email}
	m.users[u.ID] = u
	return &u, nil
}

func (m *memStore) UpdateUser(_ context.Context, id uint, name, email string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, database.ErrUserNotFound
	}
	for _, other := range m.users {
		if other.ID != id && other.Email == email {
			return nil, database.ErrDuplicateEmail
		}
	}
	u.Name, u.Email = name, email
	m.users[id] = u
	return &u, nil
}

func (m *memStore) DeleteUser(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return database.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) ListBooks(context.Context) ([]entities.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	books := make([]entities.Book, 0, len(m.books))
	for _, b := range m.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (m *memStore) ownedBook(userID, bookID uint) (entities.Book, error) {
	if _, ok := m.users[userID]; !ok {
		return entities.Book{}, database.ErrUserNotFound
	}
	b, ok := m.books[bookID]
	if !ok || b.UserID != userID {
		return entities.Book{}, database.ErrBookNotFound
	}
	return b, nil
}

func (m *memStore) GetBookForUser(_ context.Context, userID, bookID uint) (*entities.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.ownedBook(userID, bookID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (m *memStore) CreateBook(_ context.Context, userID uint, name string, description *string) (*entities.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return nil, database.ErrUserNotFound
	}
	for _, b := range m.books {
		if b.Name == name {
			return nil, database.ErrDuplicateBookName
		}
	}
	b := entities.Book{ID: m.id(), Name: name, Description: description, UserID: userID}
	m.books[b.ID] = b
	return &b, nil
}

func (m *memStore) UpdateBook(_ context.Context, userID, bookID uint, name string, description *string) (*entities.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.ownedBook(userID, bookID)
	if err != nil {
		return nil, err
	}
	b.Name = name
	if description != nil {
		b.Description = description
	}
	m.books[bookID] = b
	return &b, nil
}

func (m *memStore) DeleteBook(_ context.Context, userID, bookID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.ownedBook(userID, bookID); err != nil {
		return err
	}
	delete(m.books, bookID)
	return nil
}

// recordingAudit captures events handed to the audit service.
type recordingAudit struct {
	mu     sync.Mutex
	events []entities.AuditEvent
}

func (r *recordingAudit) LogEvent(_ context.Context, event *entities.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *recordingAudit) Events() []entities.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.AuditEvent(nil), r.events...)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

func decodeIssues(t *testing.T, w *httptest.ResponseRecorder) []ValidationIssue {
	t.Helper()

	var body struct {
		Detail []ValidationIssue `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

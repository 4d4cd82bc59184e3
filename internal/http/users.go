package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// UserStore defines database operations for users.
type UserStore interface {
	ListUsers(ctx context.Context) ([]entities.User, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	GetUserWithBooks(ctx context.Context, id uint) (*entities.User, error)
	CreateUser(ctx context.Context, name, email string) (*entities.User, error)
	UpdateUser(ctx context.Context, id uint, name, email string) (*entities.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// UsersController handles the /users endpoints.
type UsersController struct {
	store        UserStore
	auditService *audit.Service
}

// NewUsersController creates a new UsersController. auditService may be nil.
func NewUsersController(store UserStore, auditService *audit.Service) *UsersController {
	return &UsersController{store: store, auditService: auditService}
}

// ListUsers returns every user.
// GET /users
func (uc *UsersController) ListUsers(c *gin.Context) {
	users, err := uc.store.ListUsers(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns a single user.
// GET /users/:user_id
func (uc *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	user, err := uc.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser registers a new user. Emails are unique.
// POST /users
func (uc *UsersController) CreateUser(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.store.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		recordFailure(c, uc.auditService, entities.AuditEventCreate, "user", 0, err)
		respondStoreError(c, err, "create user")
		return
	}

	if uc.auditService != nil {
		uc.auditService.LogCreate(requestMeta(c), "user", user.ID, user.Name)
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser replaces name and email of a user.
// PUT /users/:user_id
func (uc *UsersController) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.store.UpdateUser(c.Request.Context(), id, req.Name, req.Email)
	if err != nil {
		recordFailure(c, uc.auditService, entities.AuditEventUpdate, "user", id, err)
		respondStoreError(c, err, "update user")
		return
	}

	if uc.auditService != nil {
		uc.auditService.LogUpdate(requestMeta(c), "user", user.ID, user.Name)
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user. The user's books stay in place.
// DELETE /users/:user_id
func (uc *UsersController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := uc.store.DeleteUser(c.Request.Context(), id); err != nil {
		recordFailure(c, uc.auditService, entities.AuditEventDelete, "user", id, err)
		respondStoreError(c, err, "delete user")
		return
	}

	if uc.auditService != nil {
		uc.auditService.LogDelete(requestMeta(c), "user", id)
	}

	c.JSON(http.StatusOK, InfoResponse{Info: infoUserDeleted})
}

package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// --- Response Types ---

// ErrorResponse is the error body for every failure. Detail is a plain
// message for not-found and conflict errors and a list of ValidationIssue
// for rejected input.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// ValidationIssue describes one rejected input field.
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// InfoResponse confirms a completed deletion.
type InfoResponse struct {
	Info string `json:"info"`
}

const (
	detailUserNotFound      = "user with this ID not found!"
	detailBookNotFound      = "book with this ID not found!"
	detailDuplicateEmail    = "user with this email already exists!"
	detailDuplicateBookName = "book with this name already exists!"
	detailInternalError     = "internal server error"

	infoUserDeleted = "user succesfully deleted"
	infoBookDeleted = "book succesfully deleted"
)

// --- Error Response Helpers ---

// respondDetail sends an error response with a plain-text detail.
func respondDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorResponse{Detail: detail})
}

// respondValidation sends a 422 Unprocessable Entity response.
func respondValidation(c *gin.Context, issues []ValidationIssue) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: issues})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, operation string) {
	requestLogger(c).Error("internal error", zap.String("operation", operation), zap.Error(err))
	respondDetail(c, http.StatusInternalServerError, detailInternalError)
}

// respondStoreError maps repository errors onto HTTP responses.
func respondStoreError(c *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, database.ErrUserNotFound):
		respondDetail(c, http.StatusNotFound, detailUserNotFound)
	case errors.Is(err, database.ErrBookNotFound):
		respondDetail(c, http.StatusNotFound, detailBookNotFound)
	case errors.Is(err, database.ErrDuplicateEmail):
		respondDetail(c, http.StatusBadRequest, detailDuplicateEmail)
	case errors.Is(err, database.ErrDuplicateBookName):
		respondDetail(c, http.StatusBadRequest, detailDuplicateBookName)
	default:
		respondInternalError(c, err, operation)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 422 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondValidation(c, []ValidationIssue{{
			Loc:  []string{"path", paramName},
			Msg:  "Input should be a valid integer",
			Type: "int_parsing",
		}})
		return 0, false
	}
	return uint(id), true
}

// requestMeta collects the request identity recorded with audit events.
func requestMeta(c *gin.Context) audit.RequestMeta {
	return audit.RequestMeta{
		RequestID: c.GetString(ContextKeyRequestID),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// recordFailure notes a rejected mutation in the audit trail when auditing is on.
func recordFailure(c *gin.Context, svc *audit.Service, eventType entities.AuditEventType, entityType string, entityID uint, err error) {
	if svc == nil {
		return
	}
	svc.LogFailure(requestMeta(c), eventType, entityType, entityID, err)
}

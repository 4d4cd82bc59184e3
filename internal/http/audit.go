package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const defaultAuditWindow = 24 * time.Hour

// AuditReader defines read access to recorded audit events.
type AuditReader interface {
	GetEventsForEntity(ctx context.Context, entityType string, entityID uint) ([]entities.AuditEvent, error)
	GetRecentEvents(ctx context.Context, since time.Time) ([]entities.AuditEvent, error)
}

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{reader: reader}
}

// RecentEvents returns events recorded within the "since" window, 24h by default.
// GET /audit/events?since=1h
func (ac *AuditController) RecentEvents(c *gin.Context) {
	window := defaultAuditWindow
	if raw := c.Query("since"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			respondValidation(c, []ValidationIssue{{
				Loc:  []string{"query", "since"},
				Msg:  "Input should be a positive duration",
				Type: "duration_parsing",
			}})
			return
		}
		window = d
	}

	events, err := ac.reader.GetRecentEvents(c.Request.Context(), time.Now().Add(-window))
	if err != nil {
		respondInternalError(c, err, "list recent audit events")
		return
	}
	c.JSON(http.StatusOK, nonNilEvents(events))
}

// EntityEvents returns the history of one user or book.
// GET /audit/events/:entity_type/:entity_id
func (ac *AuditController) EntityEvents(c *gin.Context) {
	entityType := c.Param("entity_type")
	if entityType != "user" && entityType != "book" {
		respondValidation(c, []ValidationIssue{{
			Loc:  []string{"path", "entity_type"},
			Msg:  "Input should be 'user' or 'book'",
			Type: "enum",
		}})
		return
	}

	entityID, ok := parseIDParam(c, "entity_id")
	if !ok {
		return
	}

	events, err := ac.reader.GetEventsForEntity(c.Request.Context(), entityType, entityID)
	if err != nil {
		respondInternalError(c, err, "list entity audit events")
		return
	}
	c.JSON(http.StatusOK, nonNilEvents(events))
}

func nonNilEvents(events []entities.AuditEvent) []entities.AuditEvent {
	if events == nil {
		return []entities.AuditEvent{}
	}
	return events
}

package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.UserStore = (*users.Repository)(nil)
var _ http.OwnerReader = (*users.Repository)(nil)
var _ http.BookStore = (*books.Repository)(nil)
var _ http.AuditReader = (*auditrepo.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ audit.EventRecorder = (*auditrepo.Repository)(nil)
var _ tasks.AuditEventCleaner = (*auditrepo.Repository)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ scheduler.AuditCleanupEnqueuer = (*tasks.Client)(nil)
var _ http.TaskRunner = (*tasks.Client)(nil)
var _ backlite.Logger = (*logging.TaskLogger)(nil)
var _ backlite.Task = tasks.CleanupAuditEventsTask{}

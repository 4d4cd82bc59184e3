package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/audit"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Users  UserStore
	Books  BookStore
	Owners OwnerReader

	// Audit exposes recorded events. Optional.
	Audit AuditReader

	// Database is pinged by the health endpoint. Optional.
	Database Pinger

	// AuditService records mutations. Optional.
	AuditService *audit.Service

	// TaskClient runs background maintenance. Optional.
	TaskClient TaskRunner
	// AuditRetentionDays is passed to audit cleanup runs started over HTTP.
	AuditRetentionDays int

	Logger *zap.Logger

	// Application info
	Version string
}

// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - UserStore: user CRUD (internal/http/users.go)
//   - OwnerReader: a user together with its books (internal/http/books.go)
//   - BookStore: book CRUD scoped to the owning user (internal/http/books.go)
//   - AuditReader: read access to recorded audit events (internal/http/audit.go)
//   - Pinger: storage liveness for the health check (internal/http/health.go)
//
// ## Audit Interfaces
//
//   - EventRecorder: persists audit events (internal/audit/service.go)
//   - AuditEventCleaner: removes expired audit events (internal/tasks/cleanup_audit.go)
//
// ## Background Work
//
//   - AuditCleanupEnqueuer: puts a cleanup task on the queue (internal/scheduler/audit_cleanup.go)
//   - TaskRunner: task status lookups and on-demand cleanup runs (internal/http/tasks.go)
//   - backlite.Logger: implemented by logging.TaskLogger
//
// Compile-time checks live in checks.go.
//
// # Adding a New Store
//
//  1. Define the interface next to the controller that consumes it
//  2. Implement it in a repository under internal/database
//  3. Add a compile-time check to checks.go
//  4. Wire the repository in internal/entrypoint
package interfaces

package audit

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditRepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	repo := auditRepo.NewRepository(db)
	svc := NewService(repo, zap.NewNop())

	return svc, db
}

var testMeta = RequestMeta{
	RequestID: "req-1",
	IPAddress: "127.0.0.1",
	UserAgent: "go-test",
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "user_create",
		Description: "Created user: Ann",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(context.Background(), event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "user_create", saved.Action)
}

func TestService_LogCreate(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogCreate(testMeta, "user", 3, "Ann")
	svc.Wait()

	var event entities.AuditEvent
	err := db.Where("action = ?", "user_create").First(&event).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditEventCreate, event.EventType)
	assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	assert.Equal(t, "user", event.EntityType)
	require.NotNil(t, event.EntityID)
	assert.Equal(t, uint(3), *event.EntityID)
	assert.Equal(t, "Created user: Ann", event.Description)
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, "127.0.0.1", event.IPAddress)
	assert.Equal(t, "go-test", event.UserAgent)
}

func TestService_LogUpdateAndDelete(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogUpdate(testMeta, "book", 5, "Go")
	svc.LogDelete(testMeta, "book", 5)
	svc.Wait()

	var events []entities.AuditEvent
	require.NoError(t, db.Where("entity_type = ?", "book").Order("id").Find(&events).Error)
	require.Len(t, events, 2)

	actions := []string{events[0].Action, events[1].Action}
	assert.ElementsMatch(t, []string{"book_update", "book_delete"}, actions)
}

func TestService_LogFailure(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogFailure(testMeta, entities.AuditEventCreate, "user", 0, errors.New("user email already exists"))
	svc.LogFailure(testMeta, entities.AuditEventDelete, "book", 9, errors.New("book not found"))
	svc.Wait()

	var created entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "user_create").First(&created).Error)
	assert.Equal(t, entities.AuditStatusFailed, created.Status)
	assert.Equal(t, "user email already exists", created.ErrorMsg)
	assert.Equal(t, "Failed to create user", created.Description)
	assert.Nil(t, created.EntityID)

	var deleted entities.AuditEvent
	require.NoError(t, db.Where("action = ?", "book_delete").First(&deleted).Error)
	assert.Equal(t, entities.AuditStatusFailed, deleted.Status)
	require.NotNil(t, deleted.EntityID)
	assert.Equal(t, uint(9), *deleted.EntityID)
}

func TestService_TruncatesLongFields(t *testing.T) {
	svc, db := setupTestService(t)

	meta := testMeta
	meta.UserAgent = strings.Repeat("a", 1000)
	svc.LogCreate(meta, "book", 1, strings.Repeat("n", 1000))
	svc.Wait()

	var event entities.AuditEvent
	require.NoError(t, db.First(&event).Error)
	assert.Len(t, event.UserAgent, 500)
	assert.Len(t, event.Description, 500)
}

type failingRecorder struct {
	mu    sync.Mutex
	calls int
}

func (f *failingRecorder) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("disk full")
}

func TestService_LogAsync_LogsFailures(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	recorder := &failingRecorder{}
	svc := NewService(recorder, zap.New(core))

	svc.LogDelete(testMeta, "user", 9)
	svc.Wait()

	assert.Equal(t, 1, recorder.calls)
	entries := logs.FilterMessage("failed to log audit event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "user_delete", entries[0].ContextMap()["action"])
}

package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/sessions"
	"github.com/transferdesk/advising-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.SourceProgram{},
		&types.ContentBlock{},
		&types.StudentRequest{},
		&types.Template{},
		&types.TemplateSection{},
		&types.Packet{},
		&types.PacketSection{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// memorySessionStore stands in for redis during tests.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessions.Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]*sessions.Session{}}
}

func (m *memorySessionStore) Create(ctx context.Context, userID uuid.UUID, role string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.sessions[id] = &sessions.Session{UserID: userID, Role: role}
	return id, nil
}

func (m *memorySessionStore) Get(ctx context.Context, sessionID string) (*sessions.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, apierr.Unauthorized("session expired or revoked")
	}
	return sess, nil
}

func (m *memorySessionStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memorySessionStore) Ping(ctx context.Context) error { return nil }

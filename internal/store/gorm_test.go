package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tasktrack/internal/models"
)

func newTestGorm(t *testing.T) *Gorm {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&models.Organization{}, &models.User{}, &models.Task{}, &models.AuditLog{}))
	return NewGorm(gdb)
}

func TestGorm_tasksAreOrgScoped(t *testing.T) {
	ctx := context.Background()
	s := newTestGorm(t)

	mine := &models.Task{Title: "mine", Description: "d", Status: models.TaskPending, Category: "Work", CreatedByID: 1, OrgID: 1}
	theirs := &models.Task{Title: "theirs", Status: models.TaskPending, Category: "Work", CreatedByID: 2, OrgID: 2}
	require.NoError(t, s.CreateTask(ctx, mine))
	require.NoError(t, s.CreateTask(ctx, theirs))
	require.NotZero(t, mine.ID)

	list, err := s.ListTasks(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "mine", list[0].Title)

	_, err = s.FindTask(ctx, theirs.ID, 1)
	require.ErrorIs(t, err, ErrNotFound)

	status := models.TaskCompleted
	n, err := s.UpdateTask(ctx, theirs.ID, 1, TaskFields{Status: &status})
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = s.UpdateTask(ctx, mine.ID, 1, TaskFields{Status: &status})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	got, err := s.FindTask(ctx, mine.ID, 1)
	require.NoError(t, err)
	require.Equal(t, models.TaskCompleted, got.Status)
	require.Equal(t, "mine", got.Title)

	n, err = s.DeleteTask(ctx, theirs.ID, 1)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = s.DeleteTask(ctx, mine.ID, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = s.DeleteTask(ctx, mine.ID, 1)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestGorm_updateWithNoFieldsIsNoop(t *testing.T) {
	s := newTestGorm(t)

	n, err := s.UpdateTask(context.Background(), 1, 1, TaskFields{})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestGorm_auditListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestGorm(t)

	for i := 1; i <= 3; i++ {
		entry := &models.AuditLog{OrgID: 1, UserID: 1, Action: "update", ResourceType: "task", ResourceID: int64(i), Metadata: datatypes.JSON(`{"fields":["title"]}`)}
		require.NoError(t, s.AppendAudit(ctx, entry))
		require.Equal(t, int64(i), entry.ID)
	}
	require.NoError(t, s.AppendAudit(ctx, &models.AuditLog{OrgID: 2, Action: "delete", ResourceType: "task"}))

	logs, err := s.ListAudit(ctx, AuditQuery{OrgID: 1})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	require.Equal(t, int64(3), logs[0].ResourceID)
	require.JSONEq(t, `{"fields":["title"]}`, string(logs[0].Metadata))

	page, err := s.ListAudit(ctx, AuditQuery{OrgID: 1, Limit: 1, AfterID: 3})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, int64(2), page[0].ID)
}

func TestGorm_findUser(t *testing.T) {
	ctx := context.Background()
	s := newTestGorm(t)

	require.NoError(t, s.DB.Create(&models.User{ID: 4, OrgID: 3, Email: "v@example.com", Role: "viewer"}).Error)

	u, err := s.FindUser(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, int64(3), u.OrgID)
	require.Equal(t, models.UserActive, u.Status)

	_, err = s.FindUser(ctx, 5)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGorm_concurrentAuditAppendsStampInIDOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestGorm(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var clockMu sync.Mutex
	tick := 0
	s.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			require.NoError(t, s.AppendAudit(ctx, &models.AuditLog{OrgID: 1, Action: "update", ResourceType: "task", ResourceID: int64(i)}))
		}(i)
	}
	wg.Wait()

	logs, err := s.ListAudit(ctx, AuditQuery{OrgID: 1})
	require.NoError(t, err)
	require.Len(t, logs, 20)
	for i := 1; i < len(logs); i++ {
		require.True(t, logs[i-1].CreatedAt.After(logs[i].CreatedAt), "id %d stamped before id %d", logs[i-1].ID, logs[i].ID)
	}
}

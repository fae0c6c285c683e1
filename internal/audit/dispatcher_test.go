package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func setupLogger(t *testing.T) *Logger {
	t.Helper()
	dsn := fmt.Sprintf("file:audit_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return New(db)
}

func TestDispatcherWritesOnClose(t *testing.T) {
	l := setupLogger(t)
	d := NewDispatcher(l, nil)

	d.Dispatch(Event{
		TenantID: "t1",
		BranchID: "b1",
		UserID:   "u1",
		Action:   "appointment_override",
		Entity:   "appointment",
		EntityID: "ap-1",
		Metadata: map[string]any{"reason": "vip"},
	})
	d.Dispatch(Event{TenantID: "t1", Action: "queue_called", Entity: "walk_in"})
	d.Close()

	rows, total, err := l.List(context.Background(), ListFilter{TenantID: "t1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)

	rows, _, err = l.List(context.Background(), ListFilter{TenantID: "t1", Action: "appointment_override"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, `{"reason":"vip"}`, rows[0].Metadata)
	require.NotNil(t, rows[0].EntityID)
	assert.Equal(t, "ap-1", *rows[0].EntityID)
}

func TestListIsTenantScoped(t *testing.T) {
	l := setupLogger(t)
	ctx := context.Background()

	require.NoError(t, l.Log(ctx, Event{TenantID: "t1", Action: "a"}))
	require.NoError(t, l.Log(ctx, Event{TenantID: "t2", Action: "a"}))

	rows, total, err := l.List(ctx, ListFilter{TenantID: "t2"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Nil(t, rows[0].UserID)
}

package walkin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/walkin"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	db     *gorm.DB
	salon  testutil.Salon
	clock  *clock
	svc    models.Service
	add    *AddToQueue
	update *UpdateQueueEntry
	serve  *StartServing
	query  *GetQueue
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	repo := repository.NewWalkInGormRepository(db)
	locker := lock.NewLocal()
	c := &clock{t: testutil.At(testutil.Monday, "09:00")}

	creator := appointment.NewCreateAppointment(repository.NewAppointmentGormRepository(db), nil, nil)
	creator.SetClock(c.now)

	f := &fixture{
		db:     db,
		salon:  testutil.SeedSalon(t, db, "ana", "bia"),
		clock:  c,
		svc:    testutil.SeedService(t, db, "Corte", 30, 60, 0),
		add:    NewAddToQueue(repo, locker, nil, 30),
		update: NewUpdateQueueEntry(repo, locker, nil),
		serve:  NewStartServing(repo, locker, creator, nil),
		query:  NewGetQueue(repo),
	}
	f.add.SetClock(c.now)
	f.update.SetClock(c.now)
	f.serve.SetClock(c.now)
	f.query.SetClock(c.now)
	return f
}

func (f *fixture) enqueue(t *testing.T, name string) *models.WalkInQueueEntry {
	t.Helper()
	e, err := f.add.Execute(context.Background(), AddToQueueInput{
		TenantID:     testutil.TenantID,
		BranchID:     f.salon.Branch.ID,
		UserID:       "user-1",
		CustomerName: name,
		ServiceIDs:   []string{f.svc.ID},
	})
	require.NoError(t, err)
	return e
}

// waitingPositions maps token to position for every waiting entry.
func (f *fixture) waitingPositions(t *testing.T) map[int]int {
	t.Helper()
	entries, err := f.query.Execute(context.Background(), testutil.TenantID, f.salon.Branch.ID, "", domain.StatusWaiting)
	require.NoError(t, err)
	out := make(map[int]int, len(entries))
	for _, e := range entries {
		out[e.TokenNumber] = e.Position
	}
	return out
}

func TestAddToQueue_TokensWaitAndDailyReset(t *testing.T) {
	f := setup(t)

	var last *models.WalkInQueueEntry
	for i := 1; i <= 4; i++ {
		last = f.enqueue(t, "cliente")
		assert.Equal(t, i, last.TokenNumber)
		assert.Equal(t, i, last.Position)
		assert.Equal(t, testutil.Monday, last.QueueDate)
		assert.Equal(t, "waiting", last.Status)
		f.clock.advance(time.Minute)
	}
	assert.Equal(t, 45, last.EstimatedWait, "3 ahead, 30 minutes each, 2 stylists")

	f.clock.advance(24 * time.Hour)
	next := f.enqueue(t, "amanhã")
	assert.Equal(t, 1, next.TokenNumber)
	assert.Equal(t, "2025-06-03", next.QueueDate)
	assert.Equal(t, 0, next.EstimatedWait)
}

func TestAddToQueue_Validation(t *testing.T) {
	f := setup(t)

	_, err := f.add.Execute(context.Background(), AddToQueueInput{
		TenantID: testutil.TenantID,
		BranchID: f.salon.Branch.ID,
	})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	_, err = f.add.Execute(context.Background(), AddToQueueInput{
		TenantID:     testutil.TenantID,
		BranchID:     "nope",
		CustomerName: "x",
	})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestPositions_StayDense(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var entries []*models.WalkInQueueEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, f.enqueue(t, "cliente"))
		f.clock.advance(time.Minute)
	}

	called, err := f.update.CallCustomer(ctx, testutil.TenantID, entries[1].ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "called", called.Status)
	assert.Equal(t, 0, called.Position)
	assert.NotNil(t, called.CalledAt)
	assert.Equal(t, map[int]int{1: 1, 3: 2, 4: 3, 5: 4}, f.waitingPositions(t))

	_, err = f.update.MarkLeft(ctx, testutil.TenantID, entries[0].ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: 1, 4: 2, 5: 3}, f.waitingPositions(t))

	_, err = f.update.MarkComplete(ctx, testutil.TenantID, entries[3].ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: 1, 5: 2}, f.waitingPositions(t))

	_, err = f.update.CallCustomer(ctx, testutil.TenantID, entries[1].ID, "user-1")
	assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))

	_, err = f.update.MarkLeft(ctx, testutil.TenantID, entries[0].ID, "user-1")
	assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err), "left is terminal")
}

func TestStartServing_CreatesWalkInAppointment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first := f.enqueue(t, "Paula")
	second := f.enqueue(t, "Rita")
	f.clock.advance(time.Hour)

	_, err := f.serve.Execute(ctx, StartServingInput{TenantID: testutil.TenantID, EntryID: first.ID})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	e, err := f.serve.Execute(ctx, StartServingInput{
		TenantID:  testutil.TenantID,
		EntryID:   first.ID,
		StylistID: "ana",
		UserID:    "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "serving", e.Status)
	require.NotNil(t, e.AppointmentID)
	assert.Equal(t, map[int]int{second.TokenNumber: 1}, f.waitingPositions(t))

	var ap models.Appointment
	require.NoError(t, f.db.Preload("Services").First(&ap, "id = ?", *e.AppointmentID).Error)
	assert.Equal(t, "walk_in", ap.BookingType)
	assert.Equal(t, "10:00", ap.ScheduledTime)
	assert.Equal(t, "10:30", ap.EndTime)
	assert.Equal(t, testutil.Monday, ap.ScheduledDate)
	assert.Equal(t, "Paula", ap.CustomerName)
	assert.Equal(t, "ana", *ap.StylistID)
	assert.Len(t, ap.Services, 1)

	// ana is now busy, the second customer can't take the same slot.
	_, err = f.serve.Execute(ctx, StartServingInput{
		TenantID: testutil.TenantID, EntryID: second.ID, StylistID: "ana",
	})
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	done, err := f.update.MarkComplete(ctx, testutil.TenantID, first.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	assert.NotNil(t, done.CompletedAt)

	_, err = f.serve.Execute(ctx, StartServingInput{
		TenantID: testutil.TenantID, EntryID: first.ID, StylistID: "bia",
	})
	assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))
}

func TestStats(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a := f.enqueue(t, "a") // 09:00
	f.clock.advance(5 * time.Minute)
	b := f.enqueue(t, "b") // 09:05
	c := f.enqueue(t, "c")
	f.enqueue(t, "d")

	f.clock.advance(5 * time.Minute) // 09:10
	_, err := f.update.CallCustomer(ctx, testutil.TenantID, a.ID, "u")
	require.NoError(t, err)
	_, err = f.update.MarkComplete(ctx, testutil.TenantID, a.ID, "u")
	require.NoError(t, err)

	f.clock.advance(25 * time.Minute) // 09:35
	_, err = f.update.CallCustomer(ctx, testutil.TenantID, b.ID, "u")
	require.NoError(t, err)
	_, err = f.update.MarkComplete(ctx, testutil.TenantID, b.ID, "u")
	require.NoError(t, err)

	_, err = f.update.MarkLeft(ctx, testutil.TenantID, c.ID, "u")
	require.NoError(t, err)

	stats, err := f.query.Stats(ctx, testutil.TenantID, f.salon.Branch.ID, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Counts["completed"])
	assert.Equal(t, 1, stats.Counts["left"])
	assert.Equal(t, 1, stats.Counts["waiting"])
	assert.Equal(t, 0, stats.Counts["serving"])
	assert.Equal(t, 20.0, stats.AverageWaitMinutes)

	_, err = f.query.Stats(ctx, testutil.TenantID, f.salon.Branch.ID, "03-06-2025")
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestRecalculatePositions_RepairsGaps(t *testing.T) {
	f := setup(t)
	for i := 0; i < 3; i++ {
		f.enqueue(t, "x")
		f.clock.advance(time.Minute)
	}
	require.NoError(t, f.db.Model(&models.WalkInQueueEntry{}).Where("token_number = ?", 2).Update("position", 7).Error)

	uc := NewRecalculatePositions(repository.NewWalkInGormRepository(f.db), lock.NewLocal())
	require.NoError(t, uc.Execute(context.Background(), testutil.TenantID, f.salon.Branch.ID, testutil.Monday))
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 3}, f.waitingPositions(t))
}

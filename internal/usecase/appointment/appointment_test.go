package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	availability "github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
)

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	db      *gorm.DB
	salon   testutil.Salon
	sink    *recorder
	cut     models.Service
	beard   models.Service
	create  *CreateAppointment
	step    *TransitionAppointment
	cancel  *CancelAppointment
	moves   *RescheduleAppointment
	resolve *ResolveConflict
	assign  *ReassignStylist
	get     *GetAppointment
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	repo := repository.NewAppointmentGormRepository(db)
	engine := availability.NewEngine(repository.NewAvailabilityGormReader(db), 15, 30)
	sink := &recorder{}
	clock := testutil.Clock(testutil.At(testutil.Monday, "08:00"))

	f := &fixture{
		db:      db,
		salon:   testutil.SeedSalon(t, db, "ana", "bia"),
		sink:    sink,
		cut:     testutil.SeedService(t, db, "Corte", 45, 80, 0.1),
		beard:   testutil.SeedService(t, db, "Barba", 20, 30, 0),
		create:  NewCreateAppointment(repo, engine, sink),
		step:    NewTransitionAppointment(repo, sink),
		cancel:  NewCancelAppointment(repo, sink),
		moves:   NewRescheduleAppointment(repo, sink, 3),
		resolve: NewResolveConflict(repo, sink),
		assign:  NewReassignStylist(repo, sink),
		get:     NewGetAppointment(repo),
	}
	f.create.SetClock(clock)
	f.step.SetClock(clock)
	f.cancel.SetClock(clock)
	f.moves.SetClock(clock)
	return f
}

func (f *fixture) input(stylistID, date, hm string, services ...models.Service) CreateAppointmentInput {
	ids := make([]string, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
	}
	return CreateAppointmentInput{
		TenantID:     testutil.TenantID,
		BranchID:     f.salon.Branch.ID,
		UserID:       "user-1",
		CustomerName: "Maria",
		ServiceIDs:   ids,
		StylistID:    stylistID,
		Date:         date,
		Time:         hm,
		BookingType:  domain.BookingPhone,
	}
}

func (f *fixture) book(t *testing.T, in CreateAppointmentInput) *models.Appointment {
	t.Helper()
	ap, err := f.create.Execute(context.Background(), in)
	require.NoError(t, err)
	return ap
}

// ======================================================
// CREATE
// ======================================================

func TestCreate_LocksPriceAndWritesHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	ap := f.book(t, f.input("ana", testutil.Monday, "10:00", f.cut, f.beard))

	assert.Equal(t, "booked", ap.Status)
	assert.Equal(t, "11:05", ap.EndTime)
	assert.Equal(t, 65, ap.TotalDuration)
	assert.Equal(t, 110.0, ap.Subtotal)
	assert.Equal(t, 8.0, ap.TaxAmount)
	assert.Equal(t, 118.0, ap.TotalAmount)
	require.Len(t, ap.Services, 2)
	assert.Equal(t, "ana", *ap.Services[0].StylistID)

	require.NoError(t, f.db.Model(&models.Service{}).Where("id = ?", f.cut.ID).Update("price", 999).Error)

	stored, err := f.get.Execute(ctx, testutil.TenantID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, 118.0, stored.TotalAmount)
	assert.True(t, stored.PriceLockedAt.Equal(ap.PriceLockedAt))
	require.Len(t, stored.Services, 2)

	hist, err := f.get.GetStatusHistory(ctx, testutil.TenantID, ap.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Nil(t, hist[0].FromStatus)
	assert.Equal(t, "booked", hist[0].ToStatus)

	assert.Equal(t, []string{"appointment_created"}, f.sink.actions())
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	both := f.input("ana", testutil.Monday, "10:00", f.cut)
	both.CustomerID = "someone"

	neither := f.input("ana", testutil.Monday, "10:00", f.cut)
	neither.CustomerName = ""

	walkInLater := f.input("", testutil.Monday, "10:00", f.cut)
	walkInLater.BookingType = domain.BookingWalkIn
	walkInLater.AssignLater = true

	walkInNoStylist := f.input("", testutil.Monday, "10:00", f.cut)
	walkInNoStylist.BookingType = domain.BookingWalkIn

	badTime := f.input("ana", testutil.Monday, "25:00", f.cut)
	noServices := f.input("ana", testutil.Monday, "10:00")

	forcedNoReason := f.input("ana", testutil.Monday, "10:00", f.cut)
	forcedNoReason.ForceOverride = true

	for name, in := range map[string]CreateAppointmentInput{
		"both customer fields": both,
		"no customer":          neither,
		"walk-in assign later": walkInLater,
		"walk-in no stylist":   walkInNoStylist,
		"bad time":             badTime,
		"no services":          noServices,
		"override no reason":   forcedNoReason,
	} {
		_, err := f.create.Execute(ctx, in)
		assert.Equal(t, httperr.KindValidation, httperr.KindOf(err), name)
	}

	unknown := f.input("ana", testutil.Monday, "10:00", f.cut)
	unknown.ServiceIDs = append(unknown.ServiceIDs, "nope")
	_, err := f.create.Execute(ctx, unknown)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	var count int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreate_BlockedCustomer(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	blocked := testutil.SeedCustomer(t, f.db, "Joana", models.BookingStatusBlocked)

	in := f.input("ana", testutil.Monday, "10:00", f.cut)
	in.CustomerName = ""
	in.CustomerID = blocked.ID
	in.BookingType = domain.BookingOnline

	_, err := f.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "customer_blocked"))

	in.BookingType = domain.BookingPhone
	ap, err := f.create.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Joana", ap.CustomerName)
	assert.Equal(t, blocked.ID, *ap.CustomerID)
}

func TestCreate_ConflictThenOverride(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	existing := testutil.SeedAppointment(t, f.db, f.salon.Branch.ID, "ana", testutil.Monday, "10:00", "11:00")

	in := f.input("ana", testutil.Monday, "10:30", f.beard)
	_, err := f.create.Execute(ctx, in)
	require.Error(t, err)

	e, ok := httperr.As(err)
	require.True(t, ok)
	assert.Equal(t, httperr.KindConflict, e.Kind)
	assert.Equal(t, []string{existing.ID}, e.EntityIDs)
	details, ok := e.Details.([]domain.ConflictingAppointment)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "10:00", details[0].StartTime)

	// Back-to-back is fine.
	f.book(t, f.input("ana", testutil.Monday, "11:00", f.beard))

	in.ForceOverride = true
	in.OverrideReason = "vip"
	forced := f.book(t, in)
	assert.True(t, forced.HasConflict)
	assert.Contains(t, forced.ConflictNotes, existing.ID)

	var kept models.Appointment
	require.NoError(t, f.db.First(&kept, "id = ?", existing.ID).Error)
	assert.Equal(t, "booked", kept.Status)
	assert.True(t, kept.HasConflict)

	cancelIt := f.input("bia", testutil.Monday, "14:00", f.beard)
	victim := f.book(t, cancelIt)
	cancelIt.ForceOverride = true
	cancelIt.OverrideReason = "owner request"
	cancelIt.ConflictActions = map[string]domain.ConflictAction{victim.ID: domain.ConflictCancel}
	replacement := f.book(t, cancelIt)
	assert.False(t, replacement.HasConflict)

	var cancelled models.Appointment
	require.NoError(t, f.db.First(&cancelled, "id = ?", victim.ID).Error)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.True(t, cancelled.IsSalonCancelled)
	assert.NotNil(t, cancelled.CancelledAt)

	assert.Contains(t, f.sink.actions(), "appointment_override")
}

func TestCreate_AutoAssign(t *testing.T) {
	f := setup(t)
	testutil.SeedAppointment(t, f.db, f.salon.Branch.ID, "ana", testutil.Monday, "10:00", "11:00")

	ap := f.book(t, f.input("", testutil.Monday, "10:00", f.cut))
	require.NotNil(t, ap.StylistID)
	assert.Equal(t, "bia", *ap.StylistID)

	_, err := f.create.Execute(context.Background(), f.input("", testutil.Sunday, "10:00", f.cut))
	assert.True(t, httperr.IsBusiness(err, "no_stylist_available"))
}

func TestCreate_AutoAssignHonoursGender(t *testing.T) {
	f := setup(t)
	testutil.SeedStylist(t, f.db, f.salon.Branch.ID, "cris", "female")

	in := f.input("", testutil.Monday, "10:00", f.cut)
	in.GenderPreference = "female"
	ap := f.book(t, in)
	require.NotNil(t, ap.StylistID)
	assert.Equal(t, "cris", *ap.StylistID)

	in = f.input("", testutil.Monday, "10:00", f.cut)
	in.GenderPreference = "male"
	_, err := f.create.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "no_stylist_available"))
}

func TestCreate_RejectsZeroDuration(t *testing.T) {
	f := setup(t)
	fringe := testutil.SeedService(t, f.db, "Franja", 0, 15, 0)
	testutil.SeedAppointment(t, f.db, f.salon.Branch.ID, "ana", testutil.Monday, "15:00", "15:20")

	_, err := f.create.Execute(context.Background(), f.input("ana", testutil.Monday, "10:00", fringe))
	e, ok := httperr.As(err)
	require.True(t, ok, err)
	assert.Equal(t, httperr.KindValidation, e.Kind)
	assert.Equal(t, "invalid_duration", e.Code)

	// a real service at the same time is unaffected by the afternoon booking
	ap := f.book(t, f.input("ana", testutil.Monday, "10:00", fringe, f.beard))
	assert.Equal(t, "10:20", ap.EndTime)
}

func TestCreate_AssignLater(t *testing.T) {
	f := setup(t)
	testutil.SeedAppointment(t, f.db, f.salon.Branch.ID, "ana", testutil.Monday, "10:00", "11:00")
	testutil.SeedAppointment(t, f.db, f.salon.Branch.ID, "bia", testutil.Monday, "10:00", "11:00")

	in := f.input("", testutil.Monday, "10:00", f.cut)
	in.AssignLater = true
	ap := f.book(t, in)
	assert.Nil(t, ap.StylistID)
	assert.False(t, ap.HasConflict)
}

// ======================================================
// TRANSITIONS
// ======================================================

func TestTransitions_HappyPath(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ap := f.book(t, f.input("ana", testutil.Monday, "10:00", f.cut))

	steps := []func(context.Context, string, string, string) (*models.Appointment, error){
		f.step.Confirm, f.step.CheckIn, f.step.Start, f.step.Complete,
	}
	want := []string{"confirmed", "checked_in", "in_progress", "completed"}

	for i, step := range steps {
		got, err := step(ctx, testutil.TenantID, ap.ID, "user-1")
		require.NoError(t, err)
		assert.Equal(t, want[i], got.Status)
	}

	done, err := f.get.Execute(ctx, testutil.TenantID, ap.ID)
	require.NoError(t, err)
	assert.NotNil(t, done.CheckedInAt)
	assert.NotNil(t, done.StartedAt)
	assert.NotNil(t, done.CompletedAt)

	hist, err := f.get.GetStatusHistory(ctx, testutil.TenantID, ap.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 5)

	_, err = f.cancel.Execute(ctx, CancelAppointmentInput{
		TenantID: testutil.TenantID, AppointmentID: ap.ID, Reason: "late", UserID: "user-1",
	})
	assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))
	assert.Contains(t, err.Error(), "completed")
}

func TestTransitions_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ap := f.book(t, f.input("ana", testutil.Monday, "10:00", f.cut))

	_, err := f.step.Start(ctx, testutil.TenantID, ap.ID, "user-1")
	assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))
	assert.Contains(t, err.Error(), "booked")

	_, err = f.step.CheckIn(ctx, testutil.TenantID, ap.ID, "user-1")
	require.NoError(t, err)

	_, err = f.step.MarkNoShow(ctx, testutil.TenantID, ap.ID, "user-1")
	assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))

	_, err = f.step.Execute(ctx, TransitionInput{TenantID: testutil.TenantID, AppointmentID: ap.ID, Action: domain.ActionCancel})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	_, err = f.step.Confirm(ctx, testutil.TenantID, "missing", "user-1")
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestCancel(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ap := f.book(t, f.input("ana", testutil.Monday, "10:00", f.cut))

	_, err := f.cancel.Execute(ctx, CancelAppointmentInput{TenantID: testutil.TenantID, AppointmentID: ap.ID})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	got, err := f.cancel.Execute(ctx, CancelAppointmentInput{
		TenantID:       testutil.TenantID,
		AppointmentID:  ap.ID,
		UserID:         "user-1",
		Reason:         "sick",
		SalonCancelled: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, "sick", got.CancellationReason)
	assert.Equal(t, "user-1", *got.CancelledBy)
	assert.True(t, got.IsSalonCancelled)

	// The slot is free again.
	f.book(t, f.input("ana", testutil.Monday, "10:00", f.cut))
}

// ======================================================
// RESCHEDULE
// ======================================================

func TestReschedule_ChainPriceLockAndCap(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.book(t, f.input("ana", testutil.Monday, "10:00", f.cut, f.beard))

	dates := []string{"2025-06-03", "2025-06-04", "2025-06-05"}
	current := a
	var chain []*models.Appointment

	for i, date := range dates {
		res, err := f.moves.Execute(ctx, RescheduleInput{
			TenantID:      testutil.TenantID,
			AppointmentID: current.ID,
			UserID:        "user-1",
			NewDate:       date,
			NewTime:       "10:00",
			Reason:        "customer asked",
		})
		require.NoError(t, err, "reschedule %d", i+1)

		assert.Equal(t, "rescheduled", res.Original.Status)
		assert.Equal(t, i+1, res.RescheduleCount)
		assert.Equal(t, a.ID, *res.Appointment.OriginalAppointmentID)
		assert.Equal(t, current.ID, *res.Appointment.RescheduledFromID)
		assert.Equal(t, "booked", res.Appointment.Status)
		assert.Equal(t, date, res.Appointment.ScheduledDate)
		assert.Equal(t, "11:05", res.Appointment.EndTime)

		chain = append(chain, res.Appointment)
		current = res.Appointment
	}

	for _, ap := range chain {
		stored, err := f.get.Execute(ctx, testutil.TenantID, ap.ID)
		require.NoError(t, err)
		assert.Equal(t, a.Subtotal, stored.Subtotal)
		assert.Equal(t, a.TaxAmount, stored.TaxAmount)
		assert.Equal(t, a.TotalAmount, stored.TotalAmount)
		assert.True(t, a.PriceLockedAt.Equal(stored.PriceLockedAt))
		assert.Len(t, stored.Services, 2)
		assert.Equal(t, a.ID, *stored.OriginalAppointmentID)
	}

	_, err := f.moves.Execute(ctx, RescheduleInput{
		TenantID:      testutil.TenantID,
		AppointmentID: current.ID,
		NewDate:       "2025-06-06",
		NewTime:       "10:00",
	})
	assert.True(t, httperr.IsBusiness(err, "reschedule_limit_reached"))

	_, err = f.moves.Execute(ctx, RescheduleInput{
		TenantID:      testutil.TenantID,
		AppointmentID: a.ID,
		NewDate:       "2025-06-06",
		NewTime:       "10:00",
	})
	assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))

	hist, err := f.get.GetStatusHistory(ctx, testutil.TenantID, a.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}

func TestReschedule_ConflictAndSameSlot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ap := f.book(t, f.input("ana", testutil.Monday, "10:00", f.cut))
	testutil.SeedAppointment(t, f.db, f.salon.Branch.ID, "bia", testutil.Monday, "10:00", "11:00")

	_, err := f.moves.Execute(ctx, RescheduleInput{
		TenantID:      testutil.TenantID,
		AppointmentID: ap.ID,
		NewDate:       testutil.Monday,
		NewTime:       "10:30",
		StylistID:     "bia",
	})
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	// Moving within its own slot does not conflict with itself.
	res, err := f.moves.Execute(ctx, RescheduleInput{
		TenantID:      testutil.TenantID,
		AppointmentID: ap.ID,
		NewDate:       testutil.Monday,
		NewTime:       "10:15",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", *res.Appointment.StylistID)
}

// ======================================================
// CONFLICTS AND REASSIGNMENT
// ======================================================

func TestResolveConflict(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	plain := f.book(t, f.input("ana", testutil.Monday, "10:00", f.cut))

	_, err := f.resolve.Execute(ctx, ResolveConflictInput{TenantID: testutil.TenantID, AppointmentID: plain.ID})
	assert.True(t, httperr.IsBusiness(err, "no_conflict"))

	in := f.input("ana", testutil.Monday, "10:15", f.beard)
	in.ForceOverride = true
	in.OverrideReason = "double booking agreed"
	forced := f.book(t, in)
	require.True(t, forced.HasConflict)

	got, err := f.resolve.Execute(ctx, ResolveConflictInput{
		TenantID: testutil.TenantID, AppointmentID: forced.ID, UserID: "user-1", Notes: "ana takes both",
	})
	require.NoError(t, err)
	assert.False(t, got.HasConflict)
	assert.Equal(t, "booked", got.Status)
	assert.Contains(t, got.ConflictNotes, "ana takes both")
}

func TestReassignStylist(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	later := f.input("", testutil.Monday, "10:00", f.cut)
	later.AssignLater = true
	ap := f.book(t, later)

	got, err := f.assign.Execute(ctx, ReassignStylistInput{
		TenantID: testutil.TenantID, AppointmentID: ap.ID, StylistID: "ana", UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", *got.StylistID)

	stored, err := f.get.Execute(ctx, testutil.TenantID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", *stored.Services[0].StylistID)

	testutil.SeedAppointment(t, f.db, f.salon.Branch.ID, "bia", testutil.Monday, "10:30", "11:00")
	_, err = f.assign.Execute(ctx, ReassignStylistInput{
		TenantID: testutil.TenantID, AppointmentID: ap.ID, StylistID: "bia",
	})
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	_, err = f.step.CheckIn(ctx, testutil.TenantID, ap.ID, "user-1")
	require.NoError(t, err)
	_, err = f.assign.Execute(ctx, ReassignStylistInput{
		TenantID: testutil.TenantID, AppointmentID: ap.ID, StylistID: "bia",
	})
	assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))
}

package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestNext_Table(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		to     Status
		ok     bool
	}{
		{StatusBooked, ActionConfirm, StatusConfirmed, true},
		{StatusBooked, ActionCheckIn, StatusCheckedIn, true},
		{StatusConfirmed, ActionCheckIn, StatusCheckedIn, true},
		{StatusCheckedIn, ActionStart, StatusInProgress, true},
		{StatusInProgress, ActionComplete, StatusCompleted, true},
		{StatusCheckedIn, ActionCancel, StatusCancelled, true},
		{StatusConfirmed, ActionNoShow, StatusNoShow, true},
		{StatusCheckedIn, ActionReschedule, StatusRescheduled, true},

		{StatusCheckedIn, ActionNoShow, "", false},
		{StatusInProgress, ActionCancel, "", false},
		{StatusCompleted, ActionCheckIn, "", false},
		{StatusCancelled, ActionReschedule, "", false},
		{StatusRescheduled, ActionConfirm, "", false},
		{StatusBooked, ActionComplete, "", false},
		{StatusNoShow, ActionStart, "", false},
	}

	for _, tc := range cases {
		to, err := Next(tc.from, tc.action)
		if !tc.ok {
			require.Error(t, err, "%s/%s", tc.from, tc.action)
			assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(err))
			assert.Contains(t, err.Error(), string(tc.from))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.to, to)
	}
}

func TestTransition_StampsTimes(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{ID: "ap-1", Status: string(StatusBooked)}

	from, err := Transition(ap, ActionCheckIn, now)
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, from)
	require.NotNil(t, ap.CheckedInAt)

	_, err = Transition(ap, ActionStart, now)
	require.NoError(t, err)
	require.NotNil(t, ap.StartedAt)

	_, err = Transition(ap, ActionComplete, now)
	require.NoError(t, err)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, string(StatusCompleted), ap.Status)

	_, err = Transition(ap, ActionCheckIn, now)
	e, ok := httperr.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"ap-1"}, e.EntityIDs)
}

func TestCancel_RequiresReason(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{ID: "ap-1", Status: string(StatusConfirmed)}

	_, err := Cancel(ap, Cancellation{CancelledBy: "u1"}, now)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	_, err = Cancel(ap, Cancellation{Reason: "sick", CancelledBy: "u1", SalonCancelled: true}, now)
	require.NoError(t, err)
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, "sick", ap.CancellationReason)
	assert.True(t, ap.IsSalonCancelled)
	require.NotNil(t, ap.CancelledBy)
	assert.Equal(t, "u1", *ap.CancelledBy)
}

func TestCanReschedule(t *testing.T) {
	ap := &models.Appointment{ID: "a", Status: string(StatusBooked), RescheduleCount: 2}
	assert.NoError(t, CanReschedule(ap, MaxReschedules))

	ap.RescheduleCount = 3
	assert.True(t, httperr.IsBusiness(CanReschedule(ap, MaxReschedules), "reschedule_limit_reached"))

	ap.RescheduleCount = 0
	ap.Status = string(StatusCompleted)
	assert.Equal(t, httperr.KindInvalidTransition, httperr.KindOf(CanReschedule(ap, MaxReschedules)))
}

func TestRootID(t *testing.T) {
	root := "a"
	assert.Equal(t, "a", RootID(&models.Appointment{ID: "a"}))
	assert.Equal(t, "a", RootID(&models.Appointment{ID: "c", OriginalAppointmentID: &root}))
}

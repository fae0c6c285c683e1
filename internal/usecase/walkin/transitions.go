package walkin

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/walkin"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// UpdateQueueEntry runs call, complete and leave. Serving creates an
// appointment and lives in StartServing.
type UpdateQueueEntry struct {
	deps
}

func NewUpdateQueueEntry(
	repo domain.Repository,
	locker Locker,
	sink audit.Sink,
) *UpdateQueueEntry {
	return &UpdateQueueEntry{deps: newDeps(repo, locker, sink)}
}

// CallCustomer invites a waiting customer.
func (uc *UpdateQueueEntry) CallCustomer(ctx context.Context, tenantID, entryID, userID string) (*models.WalkInQueueEntry, error) {
	return uc.apply(ctx, tenantID, entryID, userID, domain.ActionCall)
}

// MarkComplete finishes an entry.
func (uc *UpdateQueueEntry) MarkComplete(ctx context.Context, tenantID, entryID, userID string) (*models.WalkInQueueEntry, error) {
	return uc.apply(ctx, tenantID, entryID, userID, domain.ActionComplete)
}

// MarkLeft records a customer who went away unserved.
func (uc *UpdateQueueEntry) MarkLeft(ctx context.Context, tenantID, entryID, userID string) (*models.WalkInQueueEntry, error) {
	return uc.apply(ctx, tenantID, entryID, userID, domain.ActionLeave)
}

func (uc *UpdateQueueEntry) apply(
	ctx context.Context,
	tenantID string,
	entryID string,
	userID string,
	action domain.Action,
) (*models.WalkInQueueEntry, error) {

	current, err := uc.repo.Get(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	var e *models.WalkInQueueEntry
	err = uc.withQueue(ctx, current.BranchID, current.QueueDate, func(tx domain.Repository) error {
		var err error
		e, err = tx.Get(ctx, tenantID, entryID)
		if err != nil {
			return err
		}

		from := domain.Status(e.Status)
		to, err := domain.Next(from, action)
		if err != nil {
			return withID(err, e.ID)
		}

		stamp(e, to, uc.now())
		if err := tx.Update(ctx, e); err != nil {
			return err
		}

		// Completing a called or serving entry leaves the waiting ranks
		// untouched.
		if from == domain.StatusWaiting || to == domain.StatusLeft {
			return recalculate(ctx, tx, tenantID, e.BranchID, e.QueueDate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(e, userID, "queue_"+e.Status, nil)
	return e, nil
}

// stamp moves e to status and records when. Entries out of the waiting pool
// hold position 0.
func stamp(e *models.WalkInQueueEntry, to domain.Status, now time.Time) {
	switch to {
	case domain.StatusCalled:
		e.CalledAt = &now
	case domain.StatusServing:
		e.ServingAt = &now
	case domain.StatusCompleted:
		e.CompletedAt = &now
	case domain.StatusLeft:
		e.LeftAt = &now
	}
	e.Status = string(to)
	if to != domain.StatusWaiting {
		e.Position = 0
	}
}

package walkin

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/walkin"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Locker serializes queue writes per (branch, day).
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type deps struct {
	repo   domain.Repository
	locker Locker
	audit  audit.Sink
	now    func() time.Time
}

func newDeps(repo domain.Repository, locker Locker, sink audit.Sink) deps {
	return deps{repo: repo, locker: locker, audit: sink, now: time.Now}
}

// SetClock replaces time.Now, for tests.
func (d *deps) SetClock(now func() time.Time) {
	d.now = now
}

func queueKey(branchID, date string) string {
	return "queue:" + branchID + ":" + date
}

// today is the branch-local calendar day.
func (d *deps) today(ctx context.Context, tenantID, branchID string) (*models.Branch, string, error) {
	b, err := d.repo.GetBranch(ctx, tenantID, branchID)
	if err != nil {
		return nil, "", err
	}
	return b, timezone.Day(d.now(), b.Timezone), nil
}

// withQueue holds the (branch, day) lock around a transaction.
func (d *deps) withQueue(
	ctx context.Context,
	branchID string,
	date string,
	fn func(tx domain.Repository) error,
) error {
	unlock, err := d.locker.Lock(ctx, queueKey(branchID, date))
	if err != nil {
		return err
	}
	defer unlock()

	return d.repo.WithinTx(ctx, fn)
}

func (d *deps) dispatch(e *models.WalkInQueueEntry, userID, action string, meta any) {
	if d.audit == nil {
		return
	}
	d.audit.Dispatch(audit.Event{
		TenantID: e.TenantID,
		BranchID: e.BranchID,
		UserID:   userID,
		Action:   action,
		Entity:   "walk_in",
		EntityID: e.ID,
		Metadata: meta,
	})
}

// recalculate ranks the waiting entries 1..N by arrival. It always rescans
// the whole day.
func recalculate(ctx context.Context, tx domain.Repository, tenantID, branchID, date string) error {
	waiting, err := tx.ListWaiting(ctx, tenantID, branchID, date)
	if err != nil {
		return err
	}
	for i, e := range waiting {
		if e.Position == i+1 {
			continue
		}
		if err := tx.SetPosition(ctx, e.ID, i+1); err != nil {
			return err
		}
	}
	return nil
}

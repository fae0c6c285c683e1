package walkin

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/walkin"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AddToQueueInput struct {
	TenantID string
	BranchID string
	UserID   string

	CustomerID    string
	CustomerName  string
	CustomerPhone string

	ServiceIDs         []string
	PreferredStylistID string
	GenderPreference   string
}

// ======================================================
// USE CASE
// ======================================================

type AddToQueue struct {
	deps
	defaultMinutes int
}

func NewAddToQueue(
	repo domain.Repository,
	locker Locker,
	sink audit.Sink,
	defaultMinutes int,
) *AddToQueue {
	if defaultMinutes <= 0 {
		defaultMinutes = domain.DefaultServiceMinutes
	}
	return &AddToQueue{
		deps:           newDeps(repo, locker, sink),
		defaultMinutes: defaultMinutes,
	}
}

func (uc *AddToQueue) Execute(
	ctx context.Context,
	in AddToQueueInput,
) (*models.WalkInQueueEntry, error) {

	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if (in.CustomerID == "") == (in.CustomerName == "") {
		return nil, httperr.ErrValidation("customer_required", "exactly one of customer id or customer name is required")
	}

	// --------------------------------------------------
	// 1️⃣ Today, branch-local
	// --------------------------------------------------
	_, today, err := uc.today(ctx, in.TenantID, in.BranchID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	e := &models.WalkInQueueEntry{
		TenantID:         in.TenantID,
		BranchID:         in.BranchID,
		QueueDate:        today,
		CustomerName:     in.CustomerName,
		CustomerPhone:    in.CustomerPhone,
		ServiceIDs:       in.ServiceIDs,
		GenderPreference: in.GenderPreference,
		Status:           string(domain.StatusWaiting),
		CreatedBy:        in.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.CustomerID != "" {
		e.CustomerID = &in.CustomerID
	}
	if in.PreferredStylistID != "" {
		e.PreferredStylistID = &in.PreferredStylistID
	}
	if e.ServiceIDs == nil {
		e.ServiceIDs = []string{}
	}

	err = uc.withQueue(ctx, in.BranchID, today, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 2️⃣ Token
		// --------------------------------------------------
		top, err := tx.MaxToken(ctx, in.TenantID, in.BranchID, today)
		if err != nil {
			return err
		}
		e.TokenNumber = top + 1

		// --------------------------------------------------
		// 3️⃣ Estimated wait
		// --------------------------------------------------
		ahead, err := tx.CountByStatus(ctx, in.TenantID, in.BranchID, today, domain.StatusWaiting)
		if err != nil {
			return err
		}

		services, err := tx.GetServices(ctx, in.TenantID, in.ServiceIDs)
		if err != nil {
			return err
		}
		durations := make([]int, 0, len(services))
		for _, s := range services {
			durations = append(durations, s.DurationMinutes)
		}

		stylists, err := tx.CountActiveStylists(ctx, in.TenantID, in.BranchID)
		if err != nil {
			return err
		}
		e.EstimatedWait = domain.EstimateWait(
			ahead,
			domain.AverageDuration(durations, uc.defaultMinutes),
			stylists,
		)

		// --------------------------------------------------
		// 4️⃣ Position
		// --------------------------------------------------
		inQueue, err := tx.CountByStatus(ctx, in.TenantID, in.BranchID, today, domain.StatusWaiting, domain.StatusCalled)
		if err != nil {
			return err
		}
		e.Position = inQueue + 1

		return tx.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatch(e, in.UserID, "queue_added", map[string]any{
		"token":          e.TokenNumber,
		"estimated_wait": e.EstimatedWait,
	})
	return e, nil
}

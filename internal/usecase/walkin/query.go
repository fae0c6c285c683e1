package walkin

import (
	"context"
	"math"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/walkin"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timeutil"
)

type QueueStats struct {
	Date               string         `json:"date"`
	Total              int            `json:"total"`
	Counts             map[string]int `json:"counts"`
	AverageWaitMinutes float64        `json:"average_wait_minutes"`
}

// GetQueue reads a branch queue. An empty date means today at the branch.
type GetQueue struct {
	deps
}

func NewGetQueue(repo domain.Repository) *GetQueue {
	return &GetQueue{deps: newDeps(repo, nil, nil)}
}

func (uc *GetQueue) Execute(
	ctx context.Context,
	tenantID string,
	branchID string,
	date string,
	status domain.Status,
) ([]models.WalkInQueueEntry, error) {

	date, err := uc.resolveDate(ctx, tenantID, branchID, date)
	if err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, tenantID, branchID, date, status)
}

// Stats counts entries per status. The average wait covers completed
// entries that were called, as called minus arrival time.
func (uc *GetQueue) Stats(
	ctx context.Context,
	tenantID string,
	branchID string,
	date string,
) (*QueueStats, error) {

	date, err := uc.resolveDate(ctx, tenantID, branchID, date)
	if err != nil {
		return nil, err
	}

	entries, err := uc.repo.List(ctx, tenantID, branchID, date, "")
	if err != nil {
		return nil, err
	}

	stats := &QueueStats{
		Date:   date,
		Total:  len(entries),
		Counts: make(map[string]int, len(domain.AllStatuses())),
	}
	for _, s := range domain.AllStatuses() {
		stats.Counts[string(s)] = 0
	}

	var (
		waited  float64
		sampled int
	)
	for _, e := range entries {
		stats.Counts[e.Status]++
		if e.Status == string(domain.StatusCompleted) && e.CalledAt != nil {
			waited += e.CalledAt.Sub(e.CreatedAt).Minutes()
			sampled++
		}
	}
	if sampled > 0 {
		stats.AverageWaitMinutes = math.Round(waited/float64(sampled)*100) / 100
	}
	return stats, nil
}

func (uc *GetQueue) resolveDate(ctx context.Context, tenantID, branchID, date string) (string, error) {
	if date == "" {
		_, today, err := uc.today(ctx, tenantID, branchID)
		return today, err
	}
	if _, err := time.Parse(timeutil.DateLayout, date); err != nil {
		return "", httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}
	return date, nil
}

// RecalculatePositions re-ranks the waiting entries of a day from scratch.
type RecalculatePositions struct {
	deps
}

func NewRecalculatePositions(repo domain.Repository, locker Locker) *RecalculatePositions {
	return &RecalculatePositions{deps: newDeps(repo, locker, nil)}
}

func (uc *RecalculatePositions) Execute(ctx context.Context, tenantID, branchID, date string) error {
	return uc.withQueue(ctx, branchID, date, func(tx domain.Repository) error {
		return recalculate(ctx, tx, tenantID, branchID, date)
	})
}

package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type DayHours struct {
	DayOfWeek int    `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

type WorkingHours struct {
	repo domain.Repository
}

func NewWorkingHours(repo domain.Repository) *WorkingHours {
	return &WorkingHours{repo: repo}
}

func (uc *WorkingHours) Get(ctx context.Context, tenantID, branchID string) ([]models.BranchWorkingHours, error) {
	if _, err := uc.repo.GetBranch(ctx, tenantID, branchID); err != nil {
		return nil, err
	}
	return uc.repo.GetWorkingHours(ctx, tenantID, branchID)
}

// Replace swaps the whole week. Weekdays left out are closed.
func (uc *WorkingHours) Replace(ctx context.Context, tenantID, branchID string, days []DayHours) ([]models.BranchWorkingHours, error) {
	seen := make(map[int]bool, len(days))
	hours := make([]models.BranchWorkingHours, 0, len(days))

	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return nil, httperr.ErrValidation("invalid_day_of_week", "day of week must be between 0 and 6")
		}
		if seen[d.DayOfWeek] {
			return nil, httperr.ErrValidation("duplicate_day_of_week", "each weekday may appear once")
		}
		seen[d.DayOfWeek] = true

		if !d.IsClosed {
			if err := domain.ValidateRange(d.OpenTime, d.CloseTime); err != nil {
				return nil, err
			}
		}

		hours = append(hours, models.BranchWorkingHours{
			TenantID:  tenantID,
			BranchID:  branchID,
			DayOfWeek: d.DayOfWeek,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
			IsClosed:  d.IsClosed,
		})
	}

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetBranch(ctx, tenantID, branchID); err != nil {
			return err
		}
		return tx.ReplaceWorkingHours(ctx, tenantID, branchID, hours)
	})
	if err != nil {
		return nil, err
	}
	return hours, nil
}

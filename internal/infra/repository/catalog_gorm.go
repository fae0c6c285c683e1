package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Shared catalog lookups. Every port that needs them delegates here.

func findServices(ctx context.Context, db *gorm.DB, tenantID string, ids []string) ([]models.Service, error) {
	if len(ids) == 0 {
		return []models.Service{}, nil
	}

	var services []models.Service
	if err := db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ? AND is_active = ?", tenantID, ids, true).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func findStylist(ctx context.Context, db *gorm.DB, tenantID, stylistID string) (*models.Staff, error) {
	var s models.Staff
	if err := db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", stylistID, tenantID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "stylist_not_found", "stylist not found", stylistID)
	}
	return &s, nil
}

func findBranch(ctx context.Context, db *gorm.DB, tenantID, branchID string) (*models.Branch, error) {
	var b models.Branch
	if err := db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", branchID, tenantID).
		First(&b).Error; err != nil {
		return nil, notFound(err, "branch_not_found", "branch not found", branchID)
	}
	return &b, nil
}

func activeStylists(db *gorm.DB, tenantID, branchID string) *gorm.DB {
	return db.
		Model(&models.Staff{}).
		Where(
			"tenant_id = ? AND branch_id = ? AND role = ? AND is_active = ?",
			tenantID, branchID, models.RoleStylist, true,
		)
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// transaction runs fn in one transaction, serializable on postgres. Racing
// bookings surface as retryable conflicts.
func transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var opts []*sql.TxOptions
	if dbpkg.IsPostgres(db) {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}
	return httperr.FromStore(db.WithContext(ctx).Transaction(fn, opts...))
}

// forUpdate adds FOR UPDATE where the dialect supports it.
func forUpdate(db *gorm.DB) *gorm.DB {
	if dbpkg.IsPostgres(db) {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func notFound(err error, code, message, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code, message, id)
	}
	return err
}

func activeAppointments(db *gorm.DB, tenantID, stylistID, date string, inactive []string) *gorm.DB {
	return db.
		Where(
			"tenant_id = ? AND stylist_id = ? AND scheduled_date = ? AND status NOT IN ?",
			tenantID, stylistID, date, inactive,
		).
		Order("scheduled_time ASC")
}

package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Open connects to postgres for postgres:// URLs and to sqlite for anything
// else.
func Open(dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{
			PrepareStmt: true,
			Logger:      gormLogger,
		})
	}

	return gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
}

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := Open(cfg.DBUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	slog.Info("database ready", "dialect", db.Dialector.Name())
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Branch{},
		&models.BranchWorkingHours{},
		&models.Staff{},
		&models.Service{},
		&models.Customer{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.AppointmentStatusHistory{},
		&models.StylistBreak{},
		&models.StylistBlockedSlot{},
		&models.WalkInQueueEntry{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// IsPostgres is used to enable row locks and serializable isolation, which
// sqlite does not support.
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// Package testutil builds in-memory sqlite databases and seed rows for
// service and handler tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const TenantID = "tenant-1"

// Monday is a Monday. Monday+6 days is a Sunday.
const (
	Monday = "2025-06-02"
	Sunday = "2025-06-08"
)

// Clock returns a fixed time function.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// At is the UTC instant of date and HH:mm.
func At(date, hm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", date+" "+hm)
	if err != nil {
		panic(err)
	}
	return t
}

// NewDB opens a private in-memory database for the running test. A single
// connection keeps sqlite from reporting locked tables while a transaction
// is open.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

// --------------------------------------------------
// Seeds
// --------------------------------------------------

// Salon is a branch open 09:00-18:00 Monday to Saturday and closed on
// Sunday.
type Salon struct {
	Branch   models.Branch
	Stylists []models.Staff
}

func SeedSalon(t *testing.T, db *gorm.DB, stylists ...string) Salon {
	t.Helper()

	s := Salon{Branch: SeedBranch(t, db)}
	for dow := 0; dow < 7; dow++ {
		SeedWorkingHours(t, db, s.Branch.ID, dow, "09:00", "18:00", dow == 0)
	}
	for _, name := range stylists {
		s.Stylists = append(s.Stylists, SeedStylist(t, db, s.Branch.ID, name, ""))
	}
	return s
}

func SeedBranch(t *testing.T, db *gorm.DB) models.Branch {
	t.Helper()
	b := models.Branch{TenantID: TenantID, Name: "Centro", Timezone: "UTC"}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func SeedWorkingHours(t *testing.T, db *gorm.DB, branchID string, dow int, open, close string, closed bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.BranchWorkingHours{
		TenantID:  TenantID,
		BranchID:  branchID,
		DayOfWeek: dow,
		OpenTime:  open,
		CloseTime: close,
		IsClosed:  closed,
	}).Error)
}

// SeedStylist uses the name as id so tests can rely on id ordering.
func SeedStylist(t *testing.T, db *gorm.DB, branchID, name, gender string) models.Staff {
	t.Helper()
	s := models.Staff{
		ID:       name,
		TenantID: TenantID,
		BranchID: branchID,
		Name:     name,
		Role:     models.RoleStylist,
		Gender:   gender,
		IsActive: true,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func SeedService(t *testing.T, db *gorm.DB, name string, minutes int, price, taxRate float64) models.Service {
	t.Helper()
	s := models.Service{
		TenantID:        TenantID,
		Name:            name,
		DurationMinutes: minutes,
		Price:           price,
		TaxRate:         taxRate,
		CommissionRate:  0.4,
		IsActive:        true,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func SeedCustomer(t *testing.T, db *gorm.DB, name, bookingStatus string) models.Customer {
	t.Helper()
	c := models.Customer{
		TenantID:      TenantID,
		Name:          name,
		Phone:         "11999990000",
		BookingStatus: bookingStatus,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// SeedAppointment inserts a booked appointment directly, bypassing the
// lifecycle service.
func SeedAppointment(t *testing.T, db *gorm.DB, branchID, stylistID, date, start, end string) models.Appointment {
	t.Helper()
	sid := stylistID
	ap := models.Appointment{
		TenantID:      TenantID,
		BranchID:      branchID,
		CustomerName:  "Seeded",
		ScheduledDate: date,
		ScheduledTime: start,
		EndTime:       end,
		StylistID:     &sid,
		Status:        "booked",
		BookingType:   "phone",
		PriceLockedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&ap).Error)
	return ap
}

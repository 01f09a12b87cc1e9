// Package postgres provides the GORM-backed stores of the parcel service.
//
// The service has four independent stores (users, riders, parcels,
// payments) plus the tracking log. They deliberately share no transaction:
// every repository method is a single statement, atomic and durable on its
// own, and the workflow commands sequence them as sagas. Stores therefore
// hands out repositories bound to the plain connection instead of a unit of
// work.
//
// Usage:
//
//	db, err := postgres.Open(dsn)
//	if err != nil {
//	    return err
//	}
//	stores := postgres.NewStores(db)
//	if err = stores.Migrate(ctx); err != nil {
//	    return err
//	}
//	handler := commands.NewApplyAsRiderCommandHandler(stores.Riders())
//
// Concurrency Considerations:
//   - Repositories are safe for concurrent use; *gorm.DB pools connections
//   - Conditional updates (MarkPaid, TransitionStatus, SetWorkStatus) make
//     the read-check-write of each transition a single statement
//   - Duplicate detection relies on unique indexes, which requires
//     gorm.Config.TranslateError (Open sets it)
package postgres

import (
	"context"

	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/paymentrepo"
	"parcels/internal/adapters/out/postgres/riderrepo"
	"parcels/internal/adapters/out/postgres/trackingrepo"
	"parcels/internal/adapters/out/postgres/userrepo"
	"parcels/internal/core/ports"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	_ ports.UserRepository   = (*userrepo.GormUserRepository)(nil)
	_ ports.RiderRepository  = (*riderrepo.GormRiderRepository)(nil)
	_ ports.ParcelRepository = (*parcelrepo.GormParcelRepository)(nil)
	_ ports.PaymentLedger    = (*paymentrepo.GormPaymentLedger)(nil)
	_ ports.TrackingLog      = (*trackingrepo.GormTrackingLog)(nil)
)

// Open connects to postgres with the settings every store relies on.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

// Stores creates repositories sharing one connection pool.
//
// Example:
//
//	stores := NewStores(db)
//	riders := stores.Riders()
//	if err := riders.Apply(ctx, application); errors.Is(err, rider.ErrAlreadyApplied) {
//	    ...
//	}
type Stores struct {
	db *gorm.DB
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{db: db}
}

// DB exposes the connection for read models that join across tables.
func (s *Stores) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates every table and index the stores use.
func (s *Stores) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&userrepo.UserDTO{},
		&riderrepo.RiderDTO{},
		&parcelrepo.ParcelDTO{},
		&paymentrepo.PaymentDTO{},
		&trackingrepo.EntryDTO{},
	)
}

// Ping reports whether the database answers.
func (s *Stores) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Stores) Users() *userrepo.GormUserRepository {
	return userrepo.NewGormUserRepository(s.db)
}

func (s *Stores) Riders() *riderrepo.GormRiderRepository {
	return riderrepo.NewGormRiderRepository(s.db)
}

func (s *Stores) Parcels() *parcelrepo.GormParcelRepository {
	return parcelrepo.NewGormParcelRepository(s.db)
}

func (s *Stores) Payments() *paymentrepo.GormPaymentLedger {
	return paymentrepo.NewGormPaymentLedger(s.db)
}

func (s *Stores) Tracking() *trackingrepo.GormTrackingLog {
	return trackingrepo.NewGormTrackingLog(s.db)
}

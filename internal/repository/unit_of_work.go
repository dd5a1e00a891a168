package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	"gorm.io/gorm"
)

// lockTimeout bounds how long a transaction waits on a row lock before the
// attempt is reported as a conflict.
const lockTimeout = "5s"

// pgLockNotAvailable is the PostgreSQL error code raised when lock_timeout
// expires while waiting on a row lock.
const pgLockNotAvailable = "55P03"

// GormUnitOfWork runs booking workflows inside a single database
// transaction with a bounded lock wait.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// WithinTx opens a transaction, binds fresh repositories to it and runs fn.
// Any error rolls the whole transaction back. SET LOCAL scopes the lock
// timeout to this transaction only.
func (u *GormUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos bookingDomain.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout)).Error; err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}

		repos := bookingDomain.TxRepositories{
			Bookings: NewGormBookingRepository(tx),
			Payments: NewGormPaymentRepository(tx),
			Returns:  NewGormReturnRepository(tx),
			Trips:    NewGormTripRepository(tx),
			Vehicles: NewGormVehicleRepository(tx),
		}
		return fn(ctx, repos)
	})
}

// isLockTimeout reports whether the error is the PostgreSQL lock_timeout
// expiry raised while waiting on a locked row.
func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable
}

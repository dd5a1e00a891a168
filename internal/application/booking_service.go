package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	"github.com/rideon-rentals/service-rental/internal/events"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	CustomerID      uuid.UUID `json:"customer_id" binding:"required"`
	VehicleID       uuid.UUID `json:"vehicle_id" binding:"required"`
	StartAt         time.Time `json:"start_at" binding:"required"`
	EndAt           time.Time `json:"end_at" binding:"required"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	Notes           string    `json:"notes"`
}

// InitiateTripRequest holds the handover details that start a trip.
type InitiateTripRequest struct {
	Customer           bookingDomain.CustomerSnapshot `json:"customer" binding:"required"`
	VehicleNumber      string                         `json:"vehicle_number"`
	Documents          []bookingDomain.DocumentRecord `json:"documents"`
	ChecklistCompleted bool                           `json:"checklist_completed"`
	TermsAccepted      bool                           `json:"terms_accepted"`
	Notes              string                         `json:"notes"`
}

// CollectPaymentRequest records an incoming payment against a booking.
type CollectPaymentRequest struct {
	Amount    int64  `json:"amount" binding:"required"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
}

// ExtendBookingRequest moves a booking's end time forward.
type ExtendBookingRequest struct {
	NewEndAt time.Time `json:"new_end_at" binding:"required"`
}

// UpdateBookingRequest applies field changes and an optional status
// transition to a booking in one atomic step. Nil fields are left untouched.
type UpdateBookingRequest struct {
	TargetStatus    string     `json:"target_status"`
	StartAt         *time.Time `json:"start_at"`
	EndAt           *time.Time `json:"end_at"`
	VehicleID       *uuid.UUID `json:"vehicle_id"`
	PickupLocation  *string    `json:"pickup_location"`
	DropoffLocation *string    `json:"dropoff_location"`
	TotalPrice      *int64     `json:"total_price"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID  `json:"id"`
	BookingNumber   string     `json:"booking_number"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	VehicleID       uuid.UUID  `json:"vehicle_id"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           time.Time  `json:"end_at"`
	Status          string     `json:"status"`
	TotalPrice      int64      `json:"total_price"`
	PaidAmount      int64      `json:"paid_amount"`
	PendingAmount   int64      `json:"pending_amount"`
	PaymentStatus   string     `json:"payment_status"`
	PaymentMethod   string     `json:"payment_method,omitempty"`
	PickupLocation  string     `json:"pickup_location,omitempty"`
	DropoffLocation string     `json:"dropoff_location,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CancelNote      string     `json:"cancel_note,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// AvailabilityDTO is the response for an availability probe.
type AvailabilityDTO struct {
	VehicleID uuid.UUID `json:"vehicle_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Available bool      `json:"available"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// BookingService is the application service orchestrating booking use cases.
// Reads go straight through the repositories; every write runs inside the
// unit of work so availability checks and state changes commit atomically.
type BookingService struct {
	uow      bookingDomain.UnitOfWork
	repo     bookingDomain.BookingRepository
	trips    bookingDomain.TripInitiationRepository
	vehicles bookingDomain.VehicleStore
	notifier bookingDomain.Notifier
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	uow bookingDomain.UnitOfWork,
	repo bookingDomain.BookingRepository,
	trips bookingDomain.TripInitiationRepository,
	vehicles bookingDomain.VehicleStore,
	notifier bookingDomain.Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		uow:      uow,
		repo:     repo,
		trips:    trips,
		vehicles: vehicles,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateBooking prices the rental and creates a pending booking. The
// availability check and the insert run in one transaction, so two customers
// racing for the same vehicle and period cannot both get a booking.
func (s *BookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	period, err := bookingDomain.NewInterval(req.StartAt, req.EndAt)
	if err != nil {
		return nil, err
	}

	var bk *bookingDomain.Booking
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos bookingDomain.TxRepositories) error {
		// Locking the vehicle row serializes concurrent creations for the
		// same vehicle, so the overlap check below cannot race.
		snapshot, err := repos.Vehicles.SnapshotForUpdate(ctx, req.VehicleID)
		if err != nil {
			return err
		}
		if !snapshot.Active {
			return domain.NewValidationError("vehicle is not open for booking")
		}
		if snapshot.MinBookingHours > 0 && period.Hours() < snapshot.MinBookingHours {
			return domain.NewValidationError(
				fmt.Sprintf("booking must be at least %d hours for this vehicle", snapshot.MinBookingHours))
		}

		overlapping, err := repos.Bookings.CountActiveOverlapping(ctx, req.VehicleID, period, nil)
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if overlapping > 0 {
			return domain.NewConflictError("vehicle is already booked for this period")
		}

		totalPrice, err := bookingDomain.Quote(snapshot.Rates, period.Start, period.End)
		if err != nil {
			return err
		}

		bk, err = bookingDomain.NewBooking(
			customerID,
			req.VehicleID,
			period,
			totalPrice,
			req.PickupLocation,
			req.DropoffLocation,
			req.Notes,
		)
		if err != nil {
			return err
		}

		return repos.Bookings.Save(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, events.BookingCreated, bookingEventFrom(bk))

	result := toBookingDTO(bk)
	return &result, nil
}

// CheckAvailability reports whether a vehicle is free for the period. A
// failed lookup reports the vehicle as unavailable rather than guessing.
func (s *BookingService) CheckAvailability(ctx context.Context, vehicleID uuid.UUID, startAt, endAt time.Time) (*AvailabilityDTO, error) {
	period, err := bookingDomain.NewInterval(startAt, endAt)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityDTO{
		VehicleID: vehicleID,
		StartAt:   period.Start,
		EndAt:     period.End,
		Available: false,
	}

	snapshot, err := s.vehicles.Snapshot(ctx, vehicleID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, err
		}
		s.logger.Warn("availability probe failed, reporting unavailable",
			zap.String("vehicle_id", vehicleID.String()), zap.Error(err))
		return result, nil
	}
	if !snapshot.Active {
		return result, nil
	}

	overlapping, err := s.repo.CountActiveOverlapping(ctx, vehicleID, period, nil)
	if err != nil {
		s.logger.Warn("availability probe failed, reporting unavailable",
			zap.String("vehicle_id", vehicleID.String()), zap.Error(err))
		return result, nil
	}

	result.Available = overlapping == 0
	return result, nil
}

// ConfirmBooking moves a pending booking to confirmed and takes the vehicle
// off the available list.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	var bk *bookingDomain.Booking
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos bookingDomain.TxRepositories) error {
		var err error
		bk, err = repos.Bookings.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := bk.Confirm(); err != nil {
			return err
		}

		if err := repos.Vehicles.SetAvailability(ctx, bk.VehicleID(), false); err != nil {
			return err
		}

		bk.IncrementVersion()
		return repos.Bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, events.BookingConfirmed, bookingEventFrom(bk))

	result := toBookingDTO(bk)
	return &result, nil
}

// InitiateTrip records the vehicle handover and moves the booking from
// confirmed to initiated.
func (s *BookingService) InitiateTrip(ctx context.Context, bookingID uuid.UUID, req InitiateTripRequest) (*BookingDTO, error) {
	var bk *bookingDomain.Booking
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos bookingDomain.TxRepositories) error {
		var err error
		bk, err = repos.Bookings.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		trip, err := bookingDomain.NewTripInitiation(
			bk.ID(),
			req.Customer,
			req.VehicleNumber,
			req.Documents,
			req.ChecklistCompleted,
			req.TermsAccepted,
			req.Notes,
		)
		if err != nil {
			return err
		}

		if err := bk.Initiate(); err != nil {
			return err
		}

		if err := repos.Trips.Upsert(ctx, trip); err != nil {
			return err
		}

		bk.IncrementVersion()
		return repos.Bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, events.BookingInitiated, bookingEventFrom(bk))

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a booking that is not yet in a terminal state. If
// the booking was holding the vehicle, the vehicle goes back on the
// available list in the same transaction.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	var bk *bookingDomain.Booking
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos bookingDomain.TxRepositories) error {
		var err error
		bk, err = repos.Bookings.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		heldVehicle := bk.Status().HoldsVehicle()

		if err := bk.Cancel(reason); err != nil {
			return err
		}

		if heldVehicle {
			if err := repos.Vehicles.SetAvailability(ctx, bk.VehicleID(), true); err != nil {
				return err
			}
		}

		bk.IncrementVersion()
		return repos.Bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, events.BookingCancelled, bookingEventFrom(bk))

	result := toBookingDTO(bk)
	return &result, nil
}

// CollectPayment appends a payment ledger entry and updates the booking's
// cached ledger projection in one transaction.
func (s *BookingService) CollectPayment(ctx context.Context, bookingID uuid.UUID, req CollectPaymentRequest) (*BookingDTO, error) {
	var bk *bookingDomain.Booking
	var entry *bookingDomain.PaymentEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos bookingDomain.TxRepositories) error {
		var err error
		bk, err = repos.Bookings.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		if bk.Status() == bookingDomain.StatusCancelled {
			return domain.NewConflictError("cannot collect payment on a cancelled booking")
		}

		if err := bk.RecordPayment(req.Amount, req.Method); err != nil {
			return err
		}

		entry, err = bookingDomain.NewPaymentEntry(bk.ID(), req.Amount, req.Method, req.Reference)
		if err != nil {
			return err
		}
		if err := repos.Payments.Append(ctx, entry); err != nil {
			return err
		}

		bk.IncrementVersion()
		return repos.Bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, events.PaymentRecorded, events.PaymentRecordedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		Amount:        entry.Amount,
		Method:        entry.Method,
		Refund:        entry.IsRefund(),
		OccurredAt:    time.Now().UTC(),
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// ExtendBooking moves the booking's end time forward, re-checks availability
// for the extension and reprices the whole rental.
func (s *BookingService) ExtendBooking(ctx context.Context, bookingID uuid.UUID, req ExtendBookingRequest) (*BookingDTO, error) {
	var bk *bookingDomain.Booking
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos bookingDomain.TxRepositories) error {
		var err error
		bk, err = repos.Bookings.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		current := bk.Period()
		if !req.NewEndAt.After(current.End) {
			return domain.NewValidationError("new end time must be after the current end time")
		}
		extended := bookingDomain.Interval{Start: current.Start, End: req.NewEndAt}

		// Lock the vehicle row before checking overlaps so a concurrent
		// creation for the same vehicle cannot slip into the added window.
		snapshot, err := repos.Vehicles.SnapshotForUpdate(ctx, bk.VehicleID())
		if err != nil {
			return err
		}

		// Only the added window can collide with other bookings.
		id := bk.ID()
		extension := bookingDomain.Interval{Start: current.End, End: req.NewEndAt}
		overlapping, err := repos.Bookings.CountActiveOverlapping(ctx, bk.VehicleID(), extension, &id)
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}
		if overlapping > 0 {
			return domain.NewConflictError("vehicle is already booked for the extended period")
		}
		totalPrice, err := bookingDomain.Quote(snapshot.Rates, extended.Start, extended.End)
		if err != nil {
			return err
		}

		if err := bk.Reschedule(extended); err != nil {
			return err
		}
		if err := bk.SetTotalPrice(totalPrice); err != nil {
			return err
		}

		bk.IncrementVersion()
		return repos.Bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, events.BookingExtended, bookingEventFrom(bk))

	result := toBookingDTO(bk)
	return &result, nil
}

// UpdateBooking applies revised dates, vehicle, locations or total price
// together with an optional status transition, all in one transaction.
// An interval or vehicle change re-runs the overlap check (excluding the
// booking itself) before anything commits.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID uuid.UUID, req UpdateBookingRequest) (*BookingDTO, error) {
	var target bookingDomain.BookingStatus
	if req.TargetStatus != "" {
		target = bookingDomain.BookingStatus(req.TargetStatus)
		if !target.IsValid() || target == bookingDomain.StatusPending {
			return nil, domain.NewValidationError(fmt.Sprintf("unsupported target status %q", req.TargetStatus))
		}
	}

	var bk *bookingDomain.Booking
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos bookingDomain.TxRepositories) error {
		var err error
		bk, err = repos.Bookings.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		previousVehicle := bk.VehicleID()
		heldVehicle := bk.Status().HoldsVehicle()

		period := bk.Period()
		intervalChanged := req.StartAt != nil || req.EndAt != nil
		if intervalChanged {
			start, end := period.Start, period.End
			if req.StartAt != nil {
				start = *req.StartAt
			}
			if req.EndAt != nil {
				end = *req.EndAt
			}
			period, err = bookingDomain.NewInterval(start, end)
			if err != nil {
				return err
			}
			if err := bk.Reschedule(period); err != nil {
				return err
			}
		}

		vehicleChanged := req.VehicleID != nil && *req.VehicleID != previousVehicle
		if vehicleChanged {
			if err := bk.ReassignVehicle(*req.VehicleID); err != nil {
				return err
			}
		}

		if intervalChanged || vehicleChanged {
			snapshot, err := repos.Vehicles.SnapshotForUpdate(ctx, bk.VehicleID())
			if err != nil {
				return err
			}
			if !snapshot.Active {
				return domain.NewValidationError("vehicle is not open for booking")
			}

			id := bk.ID()
			overlapping, err := repos.Bookings.CountActiveOverlapping(ctx, bk.VehicleID(), period, &id)
			if err != nil {
				return fmt.Errorf("failed to check availability: %w", err)
			}
			if overlapping > 0 {
				return domain.NewConflictError("vehicle is already booked for this period")
			}
		}

		if vehicleChanged && heldVehicle {
			if err := repos.Vehicles.SetAvailability(ctx, previousVehicle, true); err != nil {
				return err
			}
			if err := repos.Vehicles.SetAvailability(ctx, bk.VehicleID(), false); err != nil {
				return err
			}
		}

		if req.PickupLocation != nil {
			bk.SetPickupLocation(*req.PickupLocation)
		}
		if req.DropoffLocation != nil {
			bk.SetDropoffLocation(*req.DropoffLocation)
		}
		if req.TotalPrice != nil {
			if err := bk.SetTotalPrice(*req.TotalPrice); err != nil {
				return err
			}
		}

		if target != "" && target != bk.Status() {
			if err := s.applyStatus(ctx, repos, bk, target); err != nil {
				return err
			}
		}

		bk.IncrementVersion()
		return repos.Bookings.Update(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, updateEventKind(bk.Status(), target), bookingEventFrom(bk))

	result := toBookingDTO(bk)
	return &result, nil
}

// applyStatus performs a status transition with its vehicle and ledger side
// effects. Entering completed auto-settles any outstanding balance so the
// booking never finishes with money still pending.
func (s *BookingService) applyStatus(ctx context.Context, repos bookingDomain.TxRepositories, bk *bookingDomain.Booking, target bookingDomain.BookingStatus) error {
	switch target {
	case bookingDomain.StatusConfirmed:
		if err := bk.Confirm(); err != nil {
			return err
		}
		return repos.Vehicles.SetAvailability(ctx, bk.VehicleID(), false)

	case bookingDomain.StatusInitiated:
		if err := bk.Initiate(); err != nil {
			return err
		}
		return repos.Vehicles.SetAvailability(ctx, bk.VehicleID(), false)

	case bookingDomain.StatusCompleted:
		settled, err := bk.Complete()
		if err != nil {
			return err
		}
		if settled > 0 {
			entry, err := bookingDomain.NewPaymentEntry(bk.ID(), settled, bk.SettlementMethod(), "auto settlement")
			if err != nil {
				return err
			}
			if err := repos.Payments.Append(ctx, entry); err != nil {
				return err
			}
		}
		return repos.Vehicles.SetAvailability(ctx, bk.VehicleID(), true)

	case bookingDomain.StatusCancelled:
		heldVehicle := bk.Status().HoldsVehicle()
		if err := bk.Cancel(""); err != nil {
			return err
		}
		if heldVehicle {
			return repos.Vehicles.SetAvailability(ctx, bk.VehicleID(), true)
		}
		return nil

	default:
		return domain.NewValidationError(fmt.Sprintf("unsupported target status %q", target))
	}
}

func updateEventKind(status, target bookingDomain.BookingStatus) string {
	if target == "" {
		return events.BookingUpdated
	}
	switch status {
	case bookingDomain.StatusConfirmed:
		return events.BookingConfirmed
	case bookingDomain.StatusInitiated:
		return events.BookingInitiated
	case bookingDomain.StatusCompleted:
		return events.BookingCompleted
	case bookingDomain.StatusCancelled:
		return events.BookingCancelled
	default:
		return events.BookingUpdated
	}
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingByNumber retrieves a single booking by its booking number.
func (s *BookingService) GetBookingByNumber(ctx context.Context, number string) (*BookingDTO, error) {
	bk, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetTripInitiation retrieves the handover record for a booking.
func (s *BookingService) GetTripInitiation(ctx context.Context, bookingID uuid.UUID) (*bookingDomain.TripInitiation, error) {
	return s.trips.FindByBookingID(ctx, bookingID)
}

// GetCustomerBookings retrieves paginated bookings for a customer.
func (s *BookingService) GetCustomerBookings(ctx context.Context, customerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByCustomerID(ctx, customerID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	period := bk.Period()
	return BookingDTO{
		ID:              bk.ID(),
		BookingNumber:   bk.BookingNumber(),
		CustomerID:      bk.CustomerID(),
		VehicleID:       bk.VehicleID(),
		StartAt:         period.Start,
		EndAt:           period.End,
		Status:          string(bk.Status()),
		TotalPrice:      bk.TotalPrice(),
		PaidAmount:      bk.PaidAmount(),
		PendingAmount:   bk.PendingAmount(),
		PaymentStatus:   string(bk.PaymentStatus()),
		PaymentMethod:   bk.PaymentMethod(),
		PickupLocation:  bk.PickupLocation(),
		DropoffLocation: bk.DropoffLocation(),
		Notes:           bk.Notes(),
		CancelNote:      bk.CancelNote(),
		CancelledAt:     bk.CancelledAt(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func bookingEventFrom(bk *bookingDomain.Booking) events.BookingEvent {
	period := bk.Period()
	return events.BookingEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		CustomerID:    bk.CustomerID(),
		VehicleID:     bk.VehicleID(),
		Status:        string(bk.Status()),
		StartAt:       period.Start,
		EndAt:         period.End,
		TotalPrice:    bk.TotalPrice(),
		PendingAmount: bk.PendingAmount(),
		OccurredAt:    time.Now().UTC(),
	}
}

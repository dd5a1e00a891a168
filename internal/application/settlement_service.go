package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	"github.com/rideon-rentals/service-rental/internal/events"
	"go.uber.org/zap"
)

// CloseBookingRequest holds the return inspection details that settle a
// booking.
type CloseBookingRequest struct {
	ConditionNotes    string    `json:"condition_notes"`
	OdometerReading   int64     `json:"odometer_reading"`
	FuelLevel         string    `json:"fuel_level"`
	AdditionalCharges int64     `json:"additional_charges"`
	DepositRefund     int64     `json:"deposit_refund"`
	CollectionMethod  string    `json:"collection_method"`
	ProcessedBy       uuid.UUID `json:"processed_by" binding:"required"`
}

// SettlementDTO is the response for a settled booking.
type SettlementDTO struct {
	Booking BookingDTO                   `json:"booking"`
	Return  *bookingDomain.VehicleReturn `json:"vehicle_return"`
	Ledger  []bookingDomain.PaymentEntry `json:"ledger"`
}

// SettlementService closes rentals. The whole close-out runs in one
// transaction: the return record, the completion transition, the settlement
// ledger entries and the vehicle release commit together or not at all.
type SettlementService struct {
	uow      bookingDomain.UnitOfWork
	returns  bookingDomain.ReturnRepository
	notifier bookingDomain.Notifier
	logger   *zap.Logger
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(
	uow bookingDomain.UnitOfWork,
	returns bookingDomain.ReturnRepository,
	notifier bookingDomain.Notifier,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		uow:      uow,
		returns:  returns,
		notifier: notifier,
		logger:   logger,
	}
}

// CloseBooking settles a rental: it records the return inspection, completes
// the booking, writes the settlement ledger entries and puts the vehicle
// back on the available list. The booking row is locked first, so two staff
// members closing the same booking resolve to one success and one conflict.
func (s *SettlementService) CloseBooking(ctx context.Context, bookingID uuid.UUID, req CloseBookingRequest) (*SettlementDTO, error) {
	var bk *bookingDomain.Booking
	var ret *bookingDomain.VehicleReturn
	var ledger []bookingDomain.PaymentEntry

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos bookingDomain.TxRepositories) error {
		var err error
		bk, err = repos.Bookings.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		ret, err = bookingDomain.NewVehicleReturn(bk.ID(), bookingDomain.ReturnDetails{
			ConditionNotes:    req.ConditionNotes,
			OdometerReading:   req.OdometerReading,
			FuelLevel:         req.FuelLevel,
			AdditionalCharges: req.AdditionalCharges,
			DepositRefund:     req.DepositRefund,
			ProcessedBy:       req.ProcessedBy,
		})
		if err != nil {
			return err
		}

		// The unique booking index turns a concurrent second close into a
		// conflict here, before any money moves.
		if err := repos.Returns.Create(ctx, ret); err != nil {
			return err
		}

		// Damage or late fees raise the agreed price before completion, so
		// the auto-settlement below covers them too.
		if req.AdditionalCharges > 0 {
			if err := bk.SetTotalPrice(bk.TotalPrice() + req.AdditionalCharges); err != nil {
				return err
			}
		}

		settled, err := bk.Complete()
		if err != nil {
			return err
		}

		method := req.CollectionMethod
		if method == "" {
			method = bk.SettlementMethod()
		}

		balance := settled - req.AdditionalCharges
		if balance > 0 {
			entry, err := bookingDomain.NewPaymentEntry(bk.ID(), balance, method, "closing balance")
			if err != nil {
				return err
			}
			if err := repos.Payments.Append(ctx, entry); err != nil {
				return err
			}
		}
		if req.AdditionalCharges > 0 {
			entry, err := bookingDomain.NewPaymentEntry(bk.ID(), req.AdditionalCharges, method, "additional charges")
			if err != nil {
				return err
			}
			if err := repos.Payments.Append(ctx, entry); err != nil {
				return err
			}
		}
		if req.DepositRefund > 0 {
			entry, err := bookingDomain.NewRefundEntry(bk.ID(), req.DepositRefund, method, "deposit refund")
			if err != nil {
				return err
			}
			if err := repos.Payments.Append(ctx, entry); err != nil {
				return err
			}
		}

		if err := repos.Vehicles.SetAvailability(ctx, bk.VehicleID(), true); err != nil {
			return err
		}

		bk.IncrementVersion()
		if err := repos.Bookings.Update(ctx, bk); err != nil {
			return err
		}

		ledger, err = repos.Payments.ListByBookingID(ctx, bk.ID())
		return err
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s.notifier.Notify(ctx, events.VehicleReturned, events.VehicleReturnedEvent{
		BookingID:         bk.ID(),
		BookingNumber:     bk.BookingNumber(),
		VehicleID:         bk.VehicleID(),
		AdditionalCharges: ret.AdditionalCharges,
		DepositRefund:     ret.DepositRefund,
		ProcessedBy:       ret.ProcessedBy,
		OccurredAt:        now,
	})
	s.notifier.Notify(ctx, events.BookingCompleted, bookingEventFrom(bk))

	return &SettlementDTO{
		Booking: toBookingDTO(bk),
		Return:  ret,
		Ledger:  ledger,
	}, nil
}

// GetReturn retrieves the return record for a booking.
func (s *SettlementService) GetReturn(ctx context.Context, bookingID uuid.UUID) (*bookingDomain.VehicleReturn, error) {
	return s.returns.FindByBookingID(ctx, bookingID)
}

// ListReturns retrieves return records with pagination (admin).
func (s *SettlementService) ListReturns(ctx context.Context, page, limit int) (*domain.PaginatedResult[*bookingDomain.VehicleReturn], error) {
	returns, total, err := s.returns.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(returns, total, page, limit)
	return &result, nil
}

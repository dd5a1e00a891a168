package application

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
)

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
	failWith error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookingRepo) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bk := range r.bookings {
		if bk.BookingNumber() == number {
			return bk, nil
		}
	}
	return nil, domain.NewNotFoundError("Booking", number)
}

func (r *fakeBookingRepo) FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.CustomerID() == customerID {
			out = append(out, bk)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		out = append(out, bk)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[string(bk.Status())]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) CountActiveOverlapping(ctx context.Context, vehicleID uuid.UUID, period bookingDomain.Interval, exclude *uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return 0, r.failWith
	}
	var count int64
	for _, bk := range r.bookings {
		if bk.VehicleID() != vehicleID || bk.Status() == bookingDomain.StatusCancelled {
			continue
		}
		if exclude != nil && bk.ID() == *exclude {
			continue
		}
		if bk.Period().Overlaps(period) {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) Save(ctx context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID()]; !ok {
		return domain.NewNotFoundError("Booking", b.ID().String())
	}
	r.bookings[b.ID()] = b
	return nil
}

// fakePaymentRepo is an in-memory append-only ledger.
type fakePaymentRepo struct {
	mu      sync.Mutex
	entries []bookingDomain.PaymentEntry
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{}
}

func (r *fakePaymentRepo) Append(ctx context.Context, entry *bookingDomain.PaymentEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakePaymentRepo) ListByBookingID(ctx context.Context, bookingID uuid.UUID) ([]bookingDomain.PaymentEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []bookingDomain.PaymentEntry
	for _, e := range r.entries {
		if e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	entries, _ := r.ListByBookingID(ctx, bookingID)
	var sum int64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum, nil
}

// fakeReturnRepo enforces the one-return-per-booking rule like the unique
// index does.
type fakeReturnRepo struct {
	mu      sync.Mutex
	returns map[uuid.UUID]*bookingDomain.VehicleReturn
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{returns: make(map[uuid.UUID]*bookingDomain.VehicleReturn)}
}

func (r *fakeReturnRepo) Create(ctx context.Context, ret *bookingDomain.VehicleReturn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.returns[ret.BookingID]; ok {
		return domain.NewConflictError("booking has already been settled")
	}
	r.returns[ret.BookingID] = ret
	return nil
}

func (r *fakeReturnRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*bookingDomain.VehicleReturn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret, ok := r.returns[bookingID]
	if !ok {
		return nil, domain.NewNotFoundError("VehicleReturn", bookingID.String())
	}
	return ret, nil
}

func (r *fakeReturnRepo) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.VehicleReturn, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.VehicleReturn
	for _, ret := range r.returns {
		out = append(out, ret)
	}
	return out, int64(len(out)), nil
}

// fakeTripRepo is an in-memory TripInitiationRepository.
type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[uuid.UUID]*bookingDomain.TripInitiation
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[uuid.UUID]*bookingDomain.TripInitiation)}
}

func (r *fakeTripRepo) Upsert(ctx context.Context, trip *bookingDomain.TripInitiation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[trip.BookingID] = trip
	return nil
}

func (r *fakeTripRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*bookingDomain.TripInitiation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trip, ok := r.trips[bookingID]
	if !ok {
		return nil, domain.NewNotFoundError("TripInitiation", bookingID.String())
	}
	return trip, nil
}

// fakeVehicleStore is an in-memory VehicleStore.
type fakeVehicleStore struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]bookingDomain.VehicleSnapshot
	failWith error
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{vehicles: make(map[uuid.UUID]bookingDomain.VehicleSnapshot)}
}

func (s *fakeVehicleStore) add(snap bookingDomain.VehicleSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[snap.ID] = snap
}

func (s *fakeVehicleStore) Snapshot(ctx context.Context, vehicleID uuid.UUID) (bookingDomain.VehicleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return bookingDomain.VehicleSnapshot{}, s.failWith
	}
	snap, ok := s.vehicles[vehicleID]
	if !ok {
		return bookingDomain.VehicleSnapshot{}, domain.NewNotFoundError("Vehicle", vehicleID.String())
	}
	return snap, nil
}

func (s *fakeVehicleStore) SnapshotForUpdate(ctx context.Context, vehicleID uuid.UUID) (bookingDomain.VehicleSnapshot, error) {
	return s.Snapshot(ctx, vehicleID)
}

func (s *fakeVehicleStore) SetAvailability(ctx context.Context, vehicleID uuid.UUID, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.vehicles[vehicleID]
	if !ok {
		return nil // mirrors the store: flipping an absent row is a no-op
	}
	snap.IsAvailable = available
	s.vehicles[vehicleID] = snap
	return nil
}

// fakeUnitOfWork hands the same fake repositories to every workflow. It does
// not roll back, which is fine for the behaviors under test here; the
// transactional guarantees are covered by the integration tests.
type fakeUnitOfWork struct {
	repos bookingDomain.TxRepositories
}

func (u *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos bookingDomain.TxRepositories) error) error {
	return fn(ctx, u.repos)
}

// recordingNotifier captures every notification for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(ctx context.Context, eventKind string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, eventKind)
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

var errStorageDown = errors.New("storage down")

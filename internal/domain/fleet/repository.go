package fleet

import (
	"context"

	"github.com/google/uuid"
)

// VehicleRepository defines persistence operations for fleet vehicles.
type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	ListAll(ctx context.Context, page, limit int) ([]*Vehicle, int64, error)
	ListActive(ctx context.Context, page, limit int) ([]*Vehicle, int64, error)
	Save(ctx context.Context, v *Vehicle) error
	Update(ctx context.Context, v *Vehicle) error
}

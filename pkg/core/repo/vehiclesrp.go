package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/vehicles-api/pkg/core/model"
)

type VehiclesConnQueryer interface {
	VehiclesQueryer
}

type VehiclesTxQueryer interface {
	VehiclesQueryer
}

// VehiclesQueryer lists the vehicles repository operations.
// FindByID and Delete report a missing vehicle id as a cerr.NotFound
// error. Save persists a new vehicle (assigning a fresh uuid when the
// given model carries a zero id) or replaces an existing one, and
// returns the persisted model.
type VehiclesQueryer interface {
	FindAll(ctx context.Context) ([]model.Vehicle, error)
	FindByID(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error)
	Save(ctx context.Context, v model.Vehicle) (*model.Vehicle, error)
	Delete(ctx context.Context, vid uuid.UUID) error
}

type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}

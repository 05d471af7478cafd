package vehiclesrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/vehicles-api/pkg/adapter/db/postgres"
	"github.com/momeni/vehicles-api/pkg/core/cerr"
	"github.com/momeni/vehicles-api/pkg/core/model"
)

// gVehicle adapts the model.Vehicle struct to the vehicles table.
// Only the coordinates of a vehicle location are persisted; the
// resolved address fields (and the price string) are transient
// decorations which are owned by the collaborator services.
type gVehicle struct {
	VID        uuid.UUID `gorm:"primaryKey;type:uuid;column:vid"`
	Condition  string
	Details    model.Details `gorm:"embedded"`
	Lat, Lon   float64
	CreatedAt  time.Time
	ModifiedAt time.Time
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

func (gv *gVehicle) Model() (*model.Vehicle, error) {
	cond, err := model.ParseCondition(gv.Condition)
	if err != nil {
		return nil, fmt.Errorf("condition %q: %w", gv.Condition, err)
	}
	return &model.Vehicle{
		ID:         gv.VID,
		Condition:  cond,
		Details:    gv.Details,
		Location:   model.Location{Lat: gv.Lat, Lon: gv.Lon},
		CreatedAt:  gv.CreatedAt,
		ModifiedAt: gv.ModifiedAt,
	}, nil
}

func newGVehicle(v model.Vehicle) *gVehicle {
	return &gVehicle{
		VID:        v.ID,
		Condition:  v.Condition.String(),
		Details:    v.Details,
		Lat:        v.Location.Lat,
		Lon:        v.Location.Lon,
		CreatedAt:  v.CreatedAt,
		ModifiedAt: v.ModifiedAt,
	}
}

func FindAll[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gvl []gVehicle
	if err := gdb.Find(&gvl).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	vl := make([]model.Vehicle, 0, len(gvl))
	for i := range gvl {
		v, err := gvl[i].Model()
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", gvl[i].VID, err)
		}
		vl = append(vl, *v)
	}
	return vl, nil
}

func FindByID[Q postgres.Queryer](ctx context.Context, q Q, vid uuid.UUID) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	var gvl []gVehicle
	if err := gdb.Where("vid=?", vid).Find(&gvl).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gvl); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gvl[0].Model()
}

// Save persists `v` as a new row, assigning a fresh uuid when its id
// is zero, or replaces all columns of the existing row otherwise.
func Save[Q postgres.Queryer](ctx context.Context, q Q, v model.Vehicle) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	gv := newGVehicle(v)
	if gv.VID == uuid.Nil {
		gv.VID = uuid.New()
		if err := gdb.Create(gv).Error; err != nil {
			return nil, fmt.Errorf("insert: %w", err)
		}
		return gv.Model()
	}
	if err := gdb.Save(gv).Error; err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	return gv.Model()
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, vid uuid.UUID) error {
	gdb := q.GORM(ctx)
	tt := gdb.Where("vid=?", vid).Delete(&gVehicle{})
	if err := tt.Error; err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if n := tt.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}

package vehiclesrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/vehicles-api/pkg/adapter/db/postgres"
	"github.com/momeni/vehicles-api/pkg/core/model"
	"github.com/momeni/vehicles-api/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) FindAll(ctx context.Context) ([]model.Vehicle, error) {
	return FindAll(ctx, cq.Conn)
}

func (cq connQueryer) FindByID(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error) {
	return FindByID(ctx, cq.Conn, vid)
}

func (cq connQueryer) Save(ctx context.Context, v model.Vehicle) (*model.Vehicle, error) {
	return Save(ctx, cq.Conn, v)
}

func (cq connQueryer) Delete(ctx context.Context, vid uuid.UUID) error {
	return Delete(ctx, cq.Conn, vid)
}

type txQueryer struct {
	*postgres.Tx
}

func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) FindAll(ctx context.Context) ([]model.Vehicle, error) {
	return FindAll(ctx, tq.Tx)
}

func (tq txQueryer) FindByID(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error) {
	return FindByID(ctx, tq.Tx, vid)
}

func (tq txQueryer) Save(ctx context.Context, v model.Vehicle) (*model.Vehicle, error) {
	return Save(ctx, tq.Tx, v)
}

func (tq txQueryer) Delete(ctx context.Context, vid uuid.UUID) error {
	return Delete(ctx, tq.Tx, vid)
}

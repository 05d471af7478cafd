// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakes is an internal helper for the test packages.
// It provides in-memory implementations of the repo.Pool, the
// vehicles repository, and the pricing and maps collaborator
// contracts, so the use cases and REST layers may be exercised
// without a real database or network.
package fakes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/vehicles-api/pkg/core/cerr"
	"github.com/momeni/vehicles-api/pkg/core/model"
	"github.com/momeni/vehicles-api/pkg/core/repo"
)

// Pool is a degenerate repo.Pool which hands a stub connection to its
// handler functions; the in-memory repositories of this package keep
// their state themselves and ignore that connection.
type Pool struct{}

func (p Pool) Conn(ctx context.Context, f repo.ConnHandler) error {
	return f(ctx, conn{})
}

type conn struct{}

func (conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("not implemented")
}

func (conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("not implemented")
}

func (conn) Tx(ctx context.Context, f repo.TxHandler) error {
	return f(ctx, tx{})
}

func (conn) IsConn() {
}

type tx struct{}

func (tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("not implemented")
}

func (tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("not implemented")
}

func (tx) IsTx() {
}

// VehiclesRepo is an in-memory implementation of the repo.Vehicles
// contract. The NextID field, when non-zero, predetermines the id of
// the next created vehicle, so tests can assert on it. The SaveErr,
// when non-nil, is reported by the Save operation instead of saving.
type VehiclesRepo struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]model.Vehicle
	txUses   int

	NextID  uuid.UUID
	SaveErr error
}

func NewVehiclesRepo(vl ...model.Vehicle) *VehiclesRepo {
	r := &VehiclesRepo{
		vehicles: make(map[uuid.UUID]model.Vehicle, len(vl)),
	}
	for _, v := range vl {
		r.vehicles[v.ID] = v
	}
	return r
}

func (r *VehiclesRepo) Conn(repo.Conn) repo.VehiclesConnQueryer {
	return queryer{r}
}

func (r *VehiclesRepo) Tx(repo.Tx) repo.VehiclesTxQueryer {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txUses++
	return queryer{r}
}

// TxUses counts how many times a transactional queryer was obtained.
func (r *VehiclesRepo) TxUses() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.txUses
}

// Stored returns a snapshot of the vid vehicle as it is persisted,
// without any transient decoration.
func (r *VehiclesRepo) Stored(vid uuid.UUID) (model.Vehicle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[vid]
	return v, ok
}

type queryer struct {
	r *VehiclesRepo
}

func (q queryer) FindAll(context.Context) ([]model.Vehicle, error) {
	q.r.mu.Lock()
	defer q.r.mu.Unlock()
	vl := make([]model.Vehicle, 0, len(q.r.vehicles))
	for _, v := range q.r.vehicles {
		vl = append(vl, v)
	}
	sort.Slice(vl, func(i, j int) bool {
		return vl[i].ID.String() < vl[j].ID.String()
	})
	return vl, nil
}

func (q queryer) FindByID(_ context.Context, vid uuid.UUID) (*model.Vehicle, error) {
	q.r.mu.Lock()
	defer q.r.mu.Unlock()
	v, ok := q.r.vehicles[vid]
	if !ok {
		return nil, cerr.NotFound(
			fmt.Errorf("no vehicle with id %s", vid),
		)
	}
	return &v, nil
}

func (q queryer) Save(_ context.Context, v model.Vehicle) (*model.Vehicle, error) {
	q.r.mu.Lock()
	defer q.r.mu.Unlock()
	if err := q.r.SaveErr; err != nil {
		return nil, err
	}
	if v.ID == uuid.Nil {
		if v.ID = q.r.NextID; v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		q.r.NextID = uuid.Nil
	}
	q.r.vehicles[v.ID] = v
	return &v, nil
}

func (q queryer) Delete(_ context.Context, vid uuid.UUID) error {
	q.r.mu.Lock()
	defer q.r.mu.Unlock()
	if _, ok := q.r.vehicles[vid]; !ok {
		return cerr.NotFound(
			fmt.Errorf("no vehicle with id %s", vid),
		)
	}
	delete(q.r.vehicles, vid)
	return nil
}

// Pricing is an in-memory implementation of the client.Pricing
// contract, recording the Store and Delete calls which it receives
// and reporting the injected errors (if any) per operation.
type Pricing struct {
	mu      sync.Mutex
	prices  map[uuid.UUID]model.Price
	quotes  map[uuid.UUID]model.Price
	stored  []model.Price
	deleted []uuid.UUID

	QuoteErr  error
	FetchErr  error
	StoreErr  error
	DeleteErr error
}

func NewPricing() *Pricing {
	return &Pricing{
		prices: make(map[uuid.UUID]model.Price),
		quotes: make(map[uuid.UUID]model.Price),
	}
}

// SetPrice seeds the stored price of the vid vehicle, parsing `s` in
// the "<CURRENCY> <AMOUNT>" format.
func (pc *Pricing) SetPrice(vid uuid.UUID, s string) error {
	p, err := model.ParsePrice(s, vid)
	if err != nil {
		return err
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.prices[vid] = p
	return nil
}

// SetQuote seeds the quote which is originated for the vid vehicle.
func (pc *Pricing) SetQuote(vid uuid.UUID, s string) error {
	p, err := model.ParsePrice(s, vid)
	if err != nil {
		return err
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.quotes[vid] = p
	return nil
}

func (pc *Pricing) Quote(_ context.Context, vid uuid.UUID) (model.Price, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if err := pc.QuoteErr; err != nil {
		return model.Price{}, err
	}
	p, ok := pc.quotes[vid]
	if !ok {
		return model.Price{}, fmt.Errorf("no quote for vehicle %s", vid)
	}
	return p, nil
}

func (pc *Pricing) Price(_ context.Context, vid uuid.UUID) (model.Price, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if err := pc.FetchErr; err != nil {
		return model.Price{}, err
	}
	p, ok := pc.prices[vid]
	if !ok {
		return model.Price{}, fmt.Errorf("no price for vehicle %s", vid)
	}
	return p, nil
}

func (pc *Pricing) Store(_ context.Context, p model.Price) (model.Price, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if err := pc.StoreErr; err != nil {
		return model.Price{}, err
	}
	pc.stored = append(pc.stored, p)
	pc.prices[p.VehicleID] = p
	return p, nil
}

func (pc *Pricing) Delete(_ context.Context, vid uuid.UUID) error {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if err := pc.DeleteErr; err != nil {
		return err
	}
	pc.deleted = append(pc.deleted, vid)
	delete(pc.prices, vid)
	return nil
}

// StoreCalls returns the prices which were pushed by Store calls,
// in their order of arrival.
func (pc *Pricing) StoreCalls() []model.Price {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return append([]model.Price(nil), pc.stored...)
}

// DeleteCalls returns the vehicle ids of the received Delete calls,
// in their order of arrival.
func (pc *Pricing) DeleteCalls() []uuid.UUID {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return append([]uuid.UUID(nil), pc.deleted...)
}

// Maps is an in-memory implementation of the client.Maps contract,
// decorating each given location with the fixed Resolved address
// fields or failing with the injected Err.
type Maps struct {
	mu    sync.Mutex
	calls []model.Location

	Resolved model.Location
	Err      error
}

func NewMaps(address, city, state, zip string) *Maps {
	return &Maps{
		Resolved: model.Location{
			Address: address, City: city, State: state, Zip: zip,
		},
	}
}

func (mc *Maps) Address(_ context.Context, l model.Location) (model.Location, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.calls = append(mc.calls, l)
	if err := mc.Err; err != nil {
		return model.Location{}, err
	}
	r := mc.Resolved
	r.Lat, r.Lon = l.Lat, l.Lon
	return r, nil
}

// AddressCalls returns the locations which were asked to be resolved,
// in their order of arrival.
func (mc *Maps) AddressCalls() []model.Location {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return append([]model.Location(nil), mc.calls...)
}

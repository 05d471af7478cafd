// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesuc contains the vehicles use case which aggregates
// vehicle records from the local vehicles repository with the price
// and address data of two collaborator microservices.
// Five use cases are supported:
//  1. Listing all vehicles,
//  2. Finding one vehicle by its id,
//  3. Creating a vehicle (obtaining a price quote when necessary),
//  4. Updating a vehicle,
//  5. Deleting a vehicle (cascading its stored price deletion).
//
// Collaborator failures are handled by two explicitly named policies.
// Strict call sites (fetching an existing price) propagate the failure
// since a price is expected to exist there and its absence is notable.
// Best-effort call sites (quoting a price for a brand-new vehicle,
// resolving an address, deleting a price) degrade gracefully and never
// fail the enclosing operation.
package vehiclesuc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/vehicles-api/pkg/core/cerr"
	"github.com/momeni/vehicles-api/pkg/core/client"
	"github.com/momeni/vehicles-api/pkg/core/log"
	"github.com/momeni/vehicles-api/pkg/core/model"
	"github.com/momeni/vehicles-api/pkg/core/repo"
)

// DefaultQuoteFallback is the human-readable placeholder which is
// reported as the price of a freshly created vehicle when the pricing
// service fails to provide a quote. It is never stored as a real price.
const DefaultQuoteFallback = "price unavailable, consult seller"

// UseCase represents a vehicles use case. It holds a database
// connection pool, the vehicles repository instance (to be guided
// with the DB pool), the pricing and maps collaborator clients, and
// the vehicles use case specific settings. The use case itself is
// stateless between calls; all state lives in the repository and the
// pricing service.
type UseCase struct {
	pool    repo.Pool
	vehsrp  repo.Vehicles
	pricing client.Pricing
	maps    client.Maps

	quoteFallback string
	now           func() time.Time
}

// New instantiates a vehicles use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, r repo.Vehicles,
	pc client.Pricing, mc client.Maps,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, vehsrp: r, pricing: pc, maps: mc}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.quoteFallback == "" {
		uc.quoteFallback = DefaultQuoteFallback
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// List use case returns all vehicles of the repository, decorating
// each of them with its resolved address (best-effort) and its
// current price as stored by the pricing service (strict).
// The decoration is view-only and is never written back.
func (vehs *UseCase) List(ctx context.Context) (vl []model.Vehicle, err error) {
	err = vehs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehs.vehsrp.Conn(c)
		vl, err = q.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	for i := range vl {
		if err := vehs.decorate(ctx, &vl[i]); err != nil {
			return nil, err
		}
	}
	return vl, nil
}

// FindByID use case returns the vid vehicle, decorated like the List
// use case entries. The price is always re-fetched from the pricing
// service; the copy of the repository is never trusted.
// A missing vid is reported as a cerr.NotFound error.
func (vehs *UseCase) FindByID(ctx context.Context, vid uuid.UUID) (*model.Vehicle, error) {
	veh, err := vehs.find(ctx, vid)
	if err != nil {
		return nil, err
	}
	if err := vehs.decorate(ctx, veh); err != nil {
		return nil, err
	}
	return veh, nil
}

// Create use case persists the `v` vehicle as a new record, letting
// the repository assign a fresh id. If `v` carries no price, a quote
// is requested from the pricing service for the new id (best-effort;
// a vehicle must remain creatable while the pricing service is down,
// so a failed quote degrades to the configured fallback text).
// The resulting price, when it is a real price and not the fallback
// text, is pushed to the pricing service as the stored price of the
// new vehicle. The returned vehicle is decorated with its resolved
// address (best-effort).
// A malformed non-empty price is reported as a cerr.BadRequest error
// before anything is persisted.
func (vehs *UseCase) Create(ctx context.Context, v model.Vehicle) (*model.Vehicle, error) {
	if err := v.Condition.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if v.Price != "" {
		if _, err := model.ParsePrice(v.Price, uuid.Nil); err != nil {
			return nil, cerr.BadRequest(err)
		}
	}
	now := vehs.now()
	v.ID = uuid.Nil
	v.CreatedAt = now
	v.ModifiedAt = now
	veh, err := vehs.save(ctx, v)
	if err != nil {
		return nil, err
	}
	if veh.Price == "" {
		veh.Price = vehs.quotePrice(ctx, veh.ID)
	}
	if p, perr := model.ParsePrice(veh.Price, veh.ID); perr == nil {
		if _, err := vehs.pricing.Store(ctx, p); err != nil {
			return nil, fmt.Errorf(
				"storing price of vehicle %s: %w", veh.ID, err,
			)
		}
	} // otherwise, the fallback text is not a price and is not stored
	veh.Location = vehs.resolveAddress(ctx, veh.Location)
	return veh, nil
}

// Update use case overwrites the details, location, price, and
// condition of the existing vid vehicle with the fields of `v`,
// preserving its creation time and advancing its modification time.
// The find and save pair runs in one transaction, so a concurrently
// deleted vehicle cannot be resurrected by a half-applied update.
// A non-empty price is pushed to the pricing service before the
// repository record is replaced (strict). The returned vehicle is
// decorated with the address of its updated location (best-effort)
// and with an authoritative price re-fetch (strict), not with the
// value which was just pushed.
// A missing vid is reported as a cerr.NotFound error and causes no
// repository mutation.
func (vehs *UseCase) Update(ctx context.Context, vid uuid.UUID, v model.Vehicle) (*model.Vehicle, error) {
	if err := v.Condition.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	var veh *model.Vehicle
	err := vehs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := vehs.vehsrp.Tx(tx)
			cur, err := q.FindByID(ctx, vid)
			if err != nil {
				return err
			}
			cur.ModifiedAt = vehs.now()
			cur.Details = v.Details
			cur.Location = v.Location
			cur.Price = v.Price
			cur.Condition = v.Condition
			if cur.Price != "" {
				p, err := model.ParsePrice(cur.Price, vid)
				if err != nil {
					return cerr.BadRequest(err)
				}
				if _, err := vehs.pricing.Store(ctx, p); err != nil {
					return fmt.Errorf(
						"storing price of vehicle %s: %w", vid, err,
					)
				}
			}
			veh, err = q.Save(ctx, *cur)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	veh.Location = vehs.resolveAddress(ctx, veh.Location)
	p, err := vehs.pricing.Price(ctx, vid)
	if err != nil {
		return nil, fmt.Errorf(
			"fetching price of vehicle %s: %w", vid, err,
		)
	}
	veh.Price = p.String()
	return veh, nil
}

// Delete use case removes the vid vehicle from the repository and
// then asks the pricing service to delete its stored price too.
// The operation is committed as soon as the repository deletion
// succeeds; a failing price deletion is logged and tolerated since
// there is no cross-service transaction to roll back.
// A missing vid is reported as a cerr.NotFound error.
func (vehs *UseCase) Delete(ctx context.Context, vid uuid.UUID) error {
	err := vehs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehs.vehsrp.Conn(c)
		return q.Delete(ctx, vid)
	})
	if err != nil {
		return err
	}
	if err := vehs.pricing.Delete(ctx, vid); err != nil {
		log.Warn(ctx, "deleting vehicle price",
			slog.String("vid", vid.String()), log.Err("error", err),
		)
	}
	return nil
}

// decorate overwrites the transient price and address fields of `v`
// from the collaborator services. The address resolution is
// best-effort while the price fetch is strict, since every persisted
// vehicle is expected to have a stored price.
func (vehs *UseCase) decorate(ctx context.Context, v *model.Vehicle) error {
	v.Location = vehs.resolveAddress(ctx, v.Location)
	p, err := vehs.pricing.Price(ctx, v.ID)
	if err != nil {
		return fmt.Errorf("fetching price of vehicle %s: %w", v.ID, err)
	}
	v.Price = p.String()
	return nil
}

// resolveAddress implements the best-effort address resolution
// policy; on failure, `l` is returned untouched with its coordinates
// only and the enclosing operation proceeds.
func (vehs *UseCase) resolveAddress(ctx context.Context, l model.Location) model.Location {
	r, err := vehs.maps.Address(ctx, l)
	if err != nil {
		log.Warn(ctx, "resolving address",
			slog.Float64("lat", l.Lat), slog.Float64("lon", l.Lon),
			log.Err("error", err),
		)
		return l
	}
	return l.WithAddress(r)
}

// quotePrice implements the best-effort price origination policy;
// on failure, the configured fallback text is adopted as the reported
// (but never stored) price of the vid vehicle.
func (vehs *UseCase) quotePrice(ctx context.Context, vid uuid.UUID) string {
	p, err := vehs.pricing.Quote(ctx, vid)
	if err != nil {
		log.Warn(ctx, "quoting vehicle price",
			slog.String("vid", vid.String()), log.Err("error", err),
		)
		return vehs.quoteFallback
	}
	return p.String()
}

func (vehs *UseCase) find(ctx context.Context, vid uuid.UUID) (veh *model.Vehicle, err error) {
	err = vehs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehs.vehsrp.Conn(c)
		veh, err = q.FindByID(ctx, vid)
		return err
	})
	if err != nil {
		veh = nil
	}
	return
}

func (vehs *UseCase) save(ctx context.Context, v model.Vehicle) (veh *model.Vehicle, err error) {
	err = vehs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		q := vehs.vehsrp.Conn(c)
		veh, err = q.Save(ctx, v)
		return err
	})
	if err != nil {
		veh = nil
	}
	return
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package client declares the contracts of the external collaborator
// microservices, namely the pricing service which owns the canonical
// price-by-vehicle-id data and the maps service which resolves raw
// coordinates into human-readable addresses.
// Both services sit behind an unreliable network boundary; no retry,
// caching, or circuit-breaking policy is imposed at this layer and
// each use case decides per call site whether a failure is tolerable
// (best-effort) or must propagate (strict).
package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/vehicles-api/pkg/core/model"
)

// Pricing represents the pricing collaborator service.
type Pricing interface {
	// Quote asks the pricing service to originate a price opinion
	// for the vid vehicle which has no stored price yet.
	Quote(ctx context.Context, vid uuid.UUID) (model.Price, error)

	// Price fetches the stored price of the vid vehicle.
	// It fails loudly when the pricing service is unreachable or
	// knows no price for vid; callers decide how to degrade.
	Price(ctx context.Context, vid uuid.UUID) (model.Price, error)

	// Store records `p` as the price of its vehicle, inserting or
	// replacing the stored value, and returns the stored price.
	Store(ctx context.Context, p model.Price) (model.Price, error)

	// Delete removes the stored price of the vid vehicle.
	Delete(ctx context.Context, vid uuid.UUID) error
}

// Maps represents the maps collaborator service.
type Maps interface {
	// Address resolves the coordinates of `l` into a location with
	// populated address fields. The coordinates of the returned
	// location are the ones of `l` itself.
	Address(ctx context.Context, l model.Location) (model.Location, error)
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle models a vehicle record which may be persisted in a
// database. The ID field is assigned by the vehicles repository
// when a vehicle is persisted for the first time; a zero uuid
// indicates a not-yet-persisted vehicle.
// The Price and Location.Address fields are transient decorations
// which are (re)computed from the pricing and maps collaborator
// services on each read, so they never act as a second source of
// truth besides those services.
type Vehicle struct {
	ID        uuid.UUID // zero until persisted
	Condition Condition // USED or NEW
	Details   Details   // opaque descriptive payload
	Location  Location  // coordinates, plus resolved address if any
	Price     string    // formatted as "<CURRENCY> <AMOUNT>", may be empty

	CreatedAt  time.Time // set once at creation time
	ModifiedAt time.Time // advanced on every successful update
}

// Details describes a vehicle make and model in addition to some
// auxiliary production information.
type Details struct {
	Make          string // manufacturer name
	Model         string
	ModelYear     int
	Body          string // e.g., sedan
	Fuel          string // e.g., gasoline
	Engine        string // e.g., 3.6L V6
	Mileage       int
	ExternalColor string
	NumberOfDoors int
}

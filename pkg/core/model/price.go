// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Price represents the price of a given vehicle, including currency.
// The pricing collaborator service owns the canonical price-by-vehicle
// mapping; a Price instance is a request-scoped copy of that data.
// The amount is kept as an arbitrary-precision decimal, so it does not
// drift by floating-point rounding while crossing service boundaries.
type Price struct {
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"price"`
	VehicleID uuid.UUID       `json:"vehicleId"`
}

// ParsePrice decodes the "<CURRENCY> <AMOUNT>" formatted `s` string
// into a Price for the vid vehicle. The currency code is taken
// verbatim; the amount must be a valid decimal number.
func ParsePrice(s string, vid uuid.UUID) (Price, error) {
	currency, amount, found := strings.Cut(s, " ")
	if !found || currency == "" {
		return Price{}, fmt.Errorf("malformed price: %q", s)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, fmt.Errorf("price amount %q: %w", amount, err)
	}
	return Price{Currency: currency, Amount: d, VehicleID: vid}, nil
}

// String formats `p` as "<CURRENCY> <AMOUNT>", reproducing the
// representation which ParsePrice accepts.
func (p Price) String() string {
	return fmt.Sprintf("%s %s", p.Currency, p.Amount.String())
}

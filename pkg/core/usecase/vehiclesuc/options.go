// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc

import (
	"errors"
	"time"
)

// Option is a functional option for the vehicles use case.
type Option func(uc *UseCase) error

// WithQuoteFallback option configures a vehicles UseCase instance to
// report the given human-readable text as the price of a freshly
// created vehicle when the pricing service fails to provide a quote.
// This option may be passed to the New() function.
func WithQuoteFallback(fallback string) Option {
	return func(uc *UseCase) error {
		if fallback == "" {
			return errors.New("quote fallback text is empty")
		}
		if uc.quoteFallback != "" {
			return errors.New("quote fallback is already configured")
		}
		uc.quoteFallback = fallback
		return nil
	}
}

// WithClock option configures a vehicles UseCase instance to read the
// current time from the given function instead of time.Now, so tests
// may observe deterministic creation/modification timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock function is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

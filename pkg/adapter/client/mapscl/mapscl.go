// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package mapscl adapts the maps microservice REST API with the core
// client.Maps contract, resolving raw coordinates into human-readable
// addresses. Like the pricing adapter, it carries no resilience
// policy of its own; callers treat address resolution as best-effort.
package mapscl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/vehicles-api/pkg/core/client"
	"github.com/momeni/vehicles-api/pkg/core/model"
)

// Client implements the client.Maps contract over HTTP.
type Client struct {
	base string
	hc   *http.Client
}

var _ client.Maps = (*Client)(nil)

// New instantiates a maps client for the service at baseURL.
// The timeout bounds each single request/response exchange; a zero
// timeout leaves requests bounded by their context only.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: baseURL,
		hc:   &http.Client{Timeout: timeout},
	}
}

// address is the wire representation of a resolved address.
type address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Address resolves the coordinates of `l` and returns a location
// carrying the same coordinates and the resolved address fields.
func (cl *Client) Address(ctx context.Context, l model.Location) (model.Location, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(l.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(l.Lon, 'f', -1, 64))
	u := fmt.Sprintf("%s/maps?%s", cl.base, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Location{}, fmt.Errorf("preparing request: %w", err)
	}
	resp, err := cl.hc.Do(req)
	if err != nil {
		return model.Location{}, fmt.Errorf("getting address: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if c := resp.StatusCode; c < 200 || c > 299 {
		return model.Location{}, fmt.Errorf(
			"maps service status: %s", resp.Status,
		)
	}
	var a address
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return model.Location{}, fmt.Errorf("decoding address: %w", err)
	}
	return model.Location{
		Lat: l.Lat, Lon: l.Lon,
		Address: a.Address, City: a.City, State: a.State, Zip: a.Zip,
	}, nil
}

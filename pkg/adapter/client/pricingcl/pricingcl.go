// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package pricingcl adapts the pricing microservice REST API with the
// core client.Pricing contract. Resilience concerns such as retries,
// caching, or circuit breaking are deliberately absent; the use cases
// layer decides per call site how a failure should be handled.
package pricingcl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/vehicles-api/pkg/core/client"
	"github.com/momeni/vehicles-api/pkg/core/model"
)

// Client implements the client.Pricing contract over HTTP.
type Client struct {
	base string
	hc   *http.Client
}

var _ client.Pricing = (*Client)(nil)

// New instantiates a pricing client for the service at baseURL.
// The timeout bounds each single request/response exchange; a zero
// timeout leaves requests bounded by their context only.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: baseURL,
		hc:   &http.Client{Timeout: timeout},
	}
}

// Quote asks the pricing service to originate a price for the vid
// vehicle, using the quote endpoint of the service.
func (cl *Client) Quote(ctx context.Context, vid uuid.UUID) (model.Price, error) {
	u := fmt.Sprintf(
		"%s/services/price?vehicleId=%s",
		cl.base, url.QueryEscape(vid.String()),
	)
	return cl.getPrice(ctx, u, vid)
}

// Price fetches the stored price of the vid vehicle.
func (cl *Client) Price(ctx context.Context, vid uuid.UUID) (model.Price, error) {
	u := fmt.Sprintf("%s/prices/%s", cl.base, vid)
	return cl.getPrice(ctx, u, vid)
}

// Store records `p` as the stored price of its vehicle and returns
// the price as echoed back by the service.
func (cl *Client) Store(ctx context.Context, p model.Price) (model.Price, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return model.Price{}, fmt.Errorf("encoding price: %w", err)
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, cl.base+"/prices", bytes.NewReader(body),
	)
	if err != nil {
		return model.Price{}, fmt.Errorf("preparing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := cl.hc.Do(req)
	if err != nil {
		return model.Price{}, fmt.Errorf("posting price: %w", err)
	}
	defer closeBody(resp)
	if err := checkStatus(resp); err != nil {
		return model.Price{}, err
	}
	return decodePrice(resp.Body, p.VehicleID)
}

// Delete removes the stored price of the vid vehicle.
func (cl *Client) Delete(ctx context.Context, vid uuid.UUID) error {
	u := fmt.Sprintf("%s/prices/%s", cl.base, vid)
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, u, nil,
	)
	if err != nil {
		return fmt.Errorf("preparing request: %w", err)
	}
	resp, err := cl.hc.Do(req)
	if err != nil {
		return fmt.Errorf("deleting price: %w", err)
	}
	defer closeBody(resp)
	return checkStatus(resp)
}

func (cl *Client) getPrice(ctx context.Context, u string, vid uuid.UUID) (model.Price, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Price{}, fmt.Errorf("preparing request: %w", err)
	}
	resp, err := cl.hc.Do(req)
	if err != nil {
		return model.Price{}, fmt.Errorf("getting price: %w", err)
	}
	defer closeBody(resp)
	if err := checkStatus(resp); err != nil {
		return model.Price{}, err
	}
	return decodePrice(resp.Body, vid)
}

func decodePrice(r io.Reader, vid uuid.UUID) (model.Price, error) {
	var p model.Price
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return model.Price{}, fmt.Errorf("decoding price: %w", err)
	}
	if p.VehicleID == uuid.Nil {
		p.VehicleID = vid
	}
	return p, nil
}

func checkStatus(resp *http.Response) error {
	if c := resp.StatusCode; c < 200 || c > 299 {
		return fmt.Errorf("pricing service status: %s", resp.Status)
	}
	return nil
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package mapscl_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/momeni/vehicles-api/pkg/adapter/client/mapscl"
	"github.com/momeni/vehicles-api/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/maps", r.URL.Path)
			assert.Equal(t, "40.73061", r.URL.Query().Get("lat"))
			assert.Equal(t, "-73.935242", r.URL.Query().Get("lon"))
			fmt.Fprint(w, `{
				"address": "291 Broadway",
				"city": "New York",
				"state": "NY",
				"zip": "10007"
			}`)
		},
	))
	defer ts.Close()

	cl := mapscl.New(ts.URL, time.Second)
	l, err := cl.Address(context.Background(), model.Location{
		Lat: 40.73061, Lon: -73.935242,
	})
	require.NoError(t, err)
	assert.InDelta(t, 40.73061, l.Lat, 1e-9)
	assert.InDelta(t, -73.935242, l.Lon, 1e-9)
	assert.Equal(t, "291 Broadway", l.Address)
	assert.Equal(t, "New York", l.City)
	assert.Equal(t, "NY", l.State)
	assert.Equal(t, "10007", l.Zip)
}

func TestAddressErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "oops", http.StatusBadGateway)
		},
	))
	defer ts.Close()

	cl := mapscl.New(ts.URL, time.Second)
	_, err := cl.Address(context.Background(), model.Location{})
	assert.ErrorContains(t, err, "maps service status: 502")
}

func TestAddressMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `["not", "an", "address"]`)
		},
	))
	defer ts.Close()

	cl := mapscl.New(ts.URL, time.Second)
	_, err := cl.Address(context.Background(), model.Location{})
	assert.ErrorContains(t, err, "decoding address")
}

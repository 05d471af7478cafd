// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/vehicles-api/internal/test/fakes"
	"github.com/momeni/vehicles-api/pkg/core/cerr"
	"github.com/momeni/vehicles-api/pkg/core/model"
	"github.com/momeni/vehicles-api/pkg/core/usecase/vehiclesuc"
	"github.com/stretchr/testify/suite"
)

type VehiclesUseCaseTestSuite struct {
	suite.Suite

	Ctx     context.Context
	Repo    *fakes.VehiclesRepo
	Pricing *fakes.Pricing
	Maps    *fakes.Maps
	Clock   time.Time
}

func TestVehiclesUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &VehiclesUseCaseTestSuite{})
}

func (s *VehiclesUseCaseTestSuite) SetupTest() {
	s.Ctx = context.Background()
	s.Repo = fakes.NewVehiclesRepo()
	s.Pricing = fakes.NewPricing()
	s.Maps = fakes.NewMaps("291 Broadway", "New York", "NY", "10007")
	s.Clock = time.Date(2025, 8, 14, 10, 30, 0, 0, time.UTC)
}

func (s *VehiclesUseCaseTestSuite) useCase() *vehiclesuc.UseCase {
	uc, err := vehiclesuc.New(
		fakes.Pool{}, s.Repo, s.Pricing, s.Maps,
		vehiclesuc.WithClock(func() time.Time { return s.Clock }),
	)
	s.Require().NoError(err, "cannot instantiate vehicles use case")
	return uc
}

// seedVehicle persists a vehicle directly, bypassing the use case, so
// the recorded pricing interactions stay empty for the test body.
func (s *VehiclesUseCaseTestSuite) seedVehicle(price string) uuid.UUID {
	vid := uuid.New()
	_, err := s.Repo.Conn(nil).Save(s.Ctx, model.Vehicle{
		ID:         vid,
		Condition:  model.ConditionUsed,
		Details:    model.Details{Make: "Chevrolet", Model: "Impala"},
		Location:   model.Location{Lat: 40.730610, Lon: -73.935242},
		CreatedAt:  s.Clock,
		ModifiedAt: s.Clock,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.Pricing.SetPrice(vid, price))
	return vid
}

func (s *VehiclesUseCaseTestSuite) TestFindByIDDecoratesVehicle() {
	vid := s.seedVehicle("USD 15000.00")
	uc := s.useCase()

	veh, err := uc.FindByID(s.Ctx, vid)
	s.Require().NoError(err)
	s.Equal(vid, veh.ID)
	s.Equal("USD 15000.00", veh.Price)
	s.Equal("291 Broadway", veh.Location.Address)
	s.Equal("New York", veh.Location.City)
	s.InDelta(40.730610, veh.Location.Lat, 1e-9)

	stored, ok := s.Repo.Stored(vid)
	s.Require().True(ok)
	s.Empty(stored.Price, "decoration must not be written back")
	s.Empty(stored.Location.Address)
}

func (s *VehiclesUseCaseTestSuite) TestFindByIDMissingVehicle() {
	uc := s.useCase()
	_, err := uc.FindByID(s.Ctx, uuid.New())
	var ce *cerr.Error
	s.Require().ErrorAs(err, &ce)
	s.Equal(http.StatusNotFound, ce.HTTPStatusCode)
}

func (s *VehiclesUseCaseTestSuite) TestFindByIDPriceFetchIsStrict() {
	vid := s.seedVehicle("USD 15000.00")
	s.Pricing.FetchErr = errors.New("pricing service is down")
	uc := s.useCase()
	_, err := uc.FindByID(s.Ctx, vid)
	s.ErrorIs(err, s.Pricing.FetchErr)
}

func (s *VehiclesUseCaseTestSuite) TestFindByIDAddressIsBestEffort() {
	vid := s.seedVehicle("USD 15000.00")
	s.Maps.Err = errors.New("maps service is down")
	uc := s.useCase()
	veh, err := uc.FindByID(s.Ctx, vid)
	s.Require().NoError(err)
	s.InDelta(40.730610, veh.Location.Lat, 1e-9)
	s.Empty(veh.Location.Address, "no address on resolution failure")
	s.Equal("USD 15000.00", veh.Price)
}

func (s *VehiclesUseCaseTestSuite) TestListDecoratesAllVehicles() {
	vid1 := s.seedVehicle("USD 15000.00")
	vid2 := s.seedVehicle("EUR 20000.00")
	uc := s.useCase()

	vl, err := uc.List(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(vl, 2)
	prices := map[uuid.UUID]string{}
	for _, v := range vl {
		prices[v.ID] = v.Price
		s.Equal("291 Broadway", v.Location.Address)
	}
	s.Equal("USD 15000.00", prices[vid1])
	s.Equal("EUR 20000.00", prices[vid2])
}

func (s *VehiclesUseCaseTestSuite) TestCreateQuotesMissingPrice() {
	vid := uuid.New()
	s.Repo.NextID = vid
	s.Require().NoError(s.Pricing.SetQuote(vid, "USD 12345.67"))
	uc := s.useCase()

	veh, err := uc.Create(s.Ctx, model.Vehicle{
		Condition: model.ConditionNew,
		Details:   model.Details{Make: "Audi", Model: "A4"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
	})
	s.Require().NoError(err)
	s.Equal(vid, veh.ID)
	s.Equal("USD 12345.67", veh.Price)

	calls := s.Pricing.StoreCalls()
	s.Require().Len(calls, 1)
	s.Equal(vid, calls[0].VehicleID)
	s.Equal("USD 12345.67", calls[0].String())

	s.Equal(s.Clock, veh.CreatedAt)
	s.Equal(s.Clock, veh.ModifiedAt)
}

func (s *VehiclesUseCaseTestSuite) TestCreateKeepsUserSuppliedPrice() {
	uc := s.useCase()
	veh, err := uc.Create(s.Ctx, model.Vehicle{
		Condition: model.ConditionUsed,
		Details:   model.Details{Make: "Audi", Model: "A4"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
		Price:     "USD 9500.50",
	})
	s.Require().NoError(err)
	s.Equal("USD 9500.50", veh.Price)

	calls := s.Pricing.StoreCalls()
	s.Require().Len(calls, 1)
	s.Equal("USD 9500.50", calls[0].String())
	s.Equal(veh.ID, calls[0].VehicleID)
}

func (s *VehiclesUseCaseTestSuite) TestCreateToleratesQuoteFailure() {
	s.Pricing.QuoteErr = errors.New("pricing service is down")
	uc := s.useCase()

	veh, err := uc.Create(s.Ctx, model.Vehicle{
		Condition: model.ConditionUsed,
		Details:   model.Details{Make: "Audi", Model: "A4"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
	})
	s.Require().NoError(err, "creation must survive a pricing outage")
	s.Equal(vehiclesuc.DefaultQuoteFallback, veh.Price)
	s.Empty(
		s.Pricing.StoreCalls(),
		"the fallback text must not be stored as a price",
	)
	s.NotEqual(uuid.Nil, veh.ID)
	_, ok := s.Repo.Stored(veh.ID)
	s.True(ok)
}

func (s *VehiclesUseCaseTestSuite) TestCreateCustomQuoteFallback() {
	s.Pricing.QuoteErr = errors.New("pricing service is down")
	uc, err := vehiclesuc.New(
		fakes.Pool{}, s.Repo, s.Pricing, s.Maps,
		vehiclesuc.WithQuoteFallback("call the dealership"),
	)
	s.Require().NoError(err)

	veh, err := uc.Create(s.Ctx, model.Vehicle{
		Condition: model.ConditionUsed,
		Details:   model.Details{Make: "Audi", Model: "A4"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
	})
	s.Require().NoError(err)
	s.Equal("call the dealership", veh.Price)
}

func (s *VehiclesUseCaseTestSuite) TestCreateInvalidCondition() {
	uc := s.useCase()
	_, err := uc.Create(s.Ctx, model.Vehicle{
		Details:  model.Details{Make: "Audi", Model: "A4"},
		Location: model.Location{Lat: 40.0, Lon: -73.0},
	})
	var ce *cerr.Error
	s.Require().ErrorAs(err, &ce)
	s.Equal(http.StatusBadRequest, ce.HTTPStatusCode)
}

func (s *VehiclesUseCaseTestSuite) TestCreateMalformedPrice() {
	uc := s.useCase()
	_, err := uc.Create(s.Ctx, model.Vehicle{
		Condition: model.ConditionUsed,
		Details:   model.Details{Make: "Audi", Model: "A4"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
		Price:     "fifteen grand",
	})
	var ce *cerr.Error
	s.Require().ErrorAs(err, &ce)
	s.Equal(http.StatusBadRequest, ce.HTTPStatusCode)
	s.Empty(s.Pricing.StoreCalls())
}

func (s *VehiclesUseCaseTestSuite) TestUpdateOverwritesFields() {
	vid := s.seedVehicle("USD 100.00")
	s.Clock = s.Clock.Add(time.Hour)
	uc := s.useCase()

	veh, err := uc.Update(s.Ctx, vid, model.Vehicle{
		Condition: model.ConditionNew,
		Details:   model.Details{Make: "Chevrolet", Model: "Malibu"},
		Location:  model.Location{Lat: 41.0, Lon: -74.0},
		Price:     "USD 150.00",
	})
	s.Require().NoError(err)
	s.Equal("Malibu", veh.Details.Model)
	s.Equal(model.ConditionNew, veh.Condition)

	calls := s.Pricing.StoreCalls()
	s.Require().Len(calls, 1)
	s.Equal("USD 150.00", calls[0].String())
	s.Equal(vid, calls[0].VehicleID)
	// the returned price comes from the authoritative re-fetch
	s.Equal("USD 150.00", veh.Price)

	resolved := s.Maps.AddressCalls()
	s.Require().NotEmpty(resolved)
	last := resolved[len(resolved)-1]
	s.InDelta(41.0, last.Lat, 1e-9, "pre-persist location is resolved")
}

func (s *VehiclesUseCaseTestSuite) TestUpdateTimestamps() {
	vid := s.seedVehicle("USD 100.00")
	created := s.Clock
	s.Clock = s.Clock.Add(2 * time.Hour)
	uc := s.useCase()

	_, err := uc.Update(s.Ctx, vid, model.Vehicle{
		Condition: model.ConditionUsed,
		Details:   model.Details{Make: "Chevrolet", Model: "Impala"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
		Price:     "USD 100.00",
	})
	s.Require().NoError(err)

	stored, ok := s.Repo.Stored(vid)
	s.Require().True(ok)
	s.Equal(created, stored.CreatedAt, "creation time is preserved")
	s.Equal(s.Clock, stored.ModifiedAt, "modification time advances")
}

func (s *VehiclesUseCaseTestSuite) TestUpdateRunsInOneTransaction() {
	vid := s.seedVehicle("USD 100.00")
	uc := s.useCase()

	_, err := uc.Update(s.Ctx, vid, model.Vehicle{
		Condition: model.ConditionUsed,
		Details:   model.Details{Make: "Chevrolet", Model: "Impala"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
		Price:     "USD 100.00",
	})
	s.Require().NoError(err)
	s.Equal(
		1, s.Repo.TxUses(),
		"the find and save pair shares one transaction",
	)
}

func (s *VehiclesUseCaseTestSuite) TestUpdateMissingVehicle() {
	uc := s.useCase()
	_, err := uc.Update(s.Ctx, uuid.New(), model.Vehicle{
		Condition: model.ConditionUsed,
		Details:   model.Details{Make: "Audi", Model: "A4"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
	})
	var ce *cerr.Error
	s.Require().ErrorAs(err, &ce)
	s.Equal(http.StatusNotFound, ce.HTTPStatusCode)
	s.Empty(s.Pricing.StoreCalls(), "no price push for a missing id")
}

func (s *VehiclesUseCaseTestSuite) TestUpdateRefetchesPriceStrictly() {
	vid := s.seedVehicle("USD 100.00")
	s.Pricing.FetchErr = errors.New("pricing service is down")
	uc := s.useCase()

	_, err := uc.Update(s.Ctx, vid, model.Vehicle{
		Condition: model.ConditionUsed,
		Details:   model.Details{Make: "Chevrolet", Model: "Impala"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
		Price:     "USD 150.00",
	})
	s.ErrorIs(err, s.Pricing.FetchErr,
		"the pushed value must not stand in for a failed re-fetch",
	)
}

func (s *VehiclesUseCaseTestSuite) TestUpdateMalformedPrice() {
	vid := s.seedVehicle("USD 100.00")
	uc := s.useCase()
	_, err := uc.Update(s.Ctx, vid, model.Vehicle{
		Condition: model.ConditionUsed,
		Details:   model.Details{Make: "Chevrolet", Model: "Impala"},
		Location:  model.Location{Lat: 40.0, Lon: -73.0},
		Price:     "fifteen grand",
	})
	var ce *cerr.Error
	s.Require().ErrorAs(err, &ce)
	s.Equal(http.StatusBadRequest, ce.HTTPStatusCode)
}

func (s *VehiclesUseCaseTestSuite) TestDeleteCascadesPriceDeletion() {
	vid := s.seedVehicle("USD 100.00")
	uc := s.useCase()

	s.Require().NoError(uc.Delete(s.Ctx, vid))

	_, err := uc.FindByID(s.Ctx, vid)
	var ce *cerr.Error
	s.Require().ErrorAs(err, &ce)
	s.Equal(http.StatusNotFound, ce.HTTPStatusCode)

	s.Equal([]uuid.UUID{vid}, s.Pricing.DeleteCalls(),
		"exactly one price-deletion request",
	)
}

func (s *VehiclesUseCaseTestSuite) TestDeleteToleratesPriceFailure() {
	vid := s.seedVehicle("USD 100.00")
	s.Pricing.DeleteErr = errors.New("pricing service is down")
	uc := s.useCase()

	s.NoError(uc.Delete(s.Ctx, vid),
		"the local deletion is not rolled back",
	)
	_, ok := s.Repo.Stored(vid)
	s.False(ok)
}

func (s *VehiclesUseCaseTestSuite) TestDeleteMissingVehicle() {
	uc := s.useCase()
	err := uc.Delete(s.Ctx, uuid.New())
	var ce *cerr.Error
	s.Require().ErrorAs(err, &ce)
	s.Equal(http.StatusNotFound, ce.HTTPStatusCode)
	s.Empty(s.Pricing.DeleteCalls())
}

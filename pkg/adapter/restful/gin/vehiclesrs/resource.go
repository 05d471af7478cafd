// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrs realizes the vehicles resource, allowing the
// vehicles manipulation REST APIs to be accepted and delegated to the
// vehicles use cases respectively.
package vehiclesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/vehicles-api/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/vehicles-api/pkg/core/usecase/vehiclesuc"
)

type resource struct {
	vehicles *vehiclesuc.UseCase
}

// Register instantiates a resource adapting the vehicles use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/vehweb/v1/vehicles
//     in order to list all vehicles,
//  2. GET request to /api/vehweb/v1/vehicles/:vid
//     in order to find one vehicle,
//  3. POST request to /api/vehweb/v1/vehicles
//     in order to create a vehicle,
//  4. PUT request to /api/vehweb/v1/vehicles/:vid
//     in order to update a vehicle,
//  5. DELETE request to /api/vehweb/v1/vehicles/:vid
//     in order to delete a vehicle.
func Register(r *gin.RouterGroup, vehicles *vehiclesuc.UseCase) {
	rs := &resource{vehicles: vehicles}
	r.GET("vehicles", rs.ListVehicles)
	r.GET("vehicles/:vid", rs.GetVehicle)
	r.POST("vehicles", rs.CreateVehicle)
	r.PUT("vehicles/:vid", rs.UpdateVehicle)
	r.DELETE("vehicles/:vid", rs.DeleteVehicle)
}

func (rs *resource) ListVehicles(c *gin.Context) {
	vl, err := rs.vehicles.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerVehicles(vl))
}

func (rs *resource) GetVehicle(c *gin.Context) {
	vid, ok := rs.DserVehicleID(c)
	if !ok {
		return
	}
	veh, err := rs.vehicles.FindByID(c, vid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerVehicle(*veh))
}

func (rs *resource) CreateVehicle(c *gin.Context) {
	v := rs.DserVehicleReq(c)
	if v == nil {
		return
	}
	veh, err := rs.vehicles.Create(c, *v)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerVehicle(*veh))
}

func (rs *resource) UpdateVehicle(c *gin.Context) {
	vid, ok := rs.DserVehicleID(c)
	if !ok {
		return
	}
	v := rs.DserVehicleReq(c)
	if v == nil {
		return
	}
	veh, err := rs.vehicles.Update(c, vid, *v)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerVehicle(*veh))
}

func (rs *resource) DeleteVehicle(c *gin.Context) {
	vid, ok := rs.DserVehicleID(c)
	if !ok {
		return
	}
	if err := rs.vehicles.Delete(c, vid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

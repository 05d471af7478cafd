// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, client, and
// resource packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/vehicles-api/pkg/adapter/config"
	"github.com/momeni/vehicles-api/pkg/adapter/db/postgres/vehiclesrp"
	"github.com/momeni/vehicles-api/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/momeni/vehicles-api/pkg/core/repo"
)

// Register instantiates the relevant repositories, collaborator
// service clients, and use cases based on the c configuration
// settings. The p connections pool is passed to the use case
// instances, so they may acquire/release connections on demand.
// These connections will be passed to the repositories later in order
// to run relevant queries on them and accomplish those use cases.
// Each use case package is named like vehiclesuc, each repository
// package is named like vehiclesrp, and each collaborator client
// package is named like pricingcl.
// Register instantiates a series of "resource" structs, from packages
// which are named like vehiclesrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) error {
	vehiclesRepo := vehiclesrp.New()
	pricingClient := c.NewPricingClient()
	mapsClient := c.NewMapsClient()

	vehiclesUseCase, err := c.NewVehiclesUseCase(
		p, vehiclesRepo, pricingClient, mapsClient,
	)
	if err != nil {
		return fmt.Errorf("creating vehicles use case: %w", err)
	}
	r := e.Group("/api/vehweb/v1")
	vehiclesrs.Register(r, vehiclesUseCase)
	return nil
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config loads the YAML configuration file of the vehicles
// web service and acts as its composition root: it knows how to
// instantiate the database connection pool, the gin engine, the
// collaborator service clients, and the use case objects based on the
// user provided settings.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/momeni/vehicles-api/pkg/adapter/client/mapscl"
	"github.com/momeni/vehicles-api/pkg/adapter/client/pricingcl"
	"github.com/momeni/vehicles-api/pkg/adapter/db/postgres"
	"github.com/momeni/vehicles-api/pkg/adapter/restful/gin"
	"github.com/momeni/vehicles-api/pkg/core/client"
	"github.com/momeni/vehicles-api/pkg/core/repo"
	"github.com/momeni/vehicles-api/pkg/core/usecase/vehiclesuc"
	"gopkg.in/yaml.v3"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration format can be kept intact while other
// layers change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Pricing  Service  // pricing collaborator service settings
	Maps     Service  // maps collaborator service settings
	Usecases Usecases // Supported use cases configuration settings
}

// Load reads the configuration file at the given path, decodes it as
// YAML, validates it, and normalizes missing settings with their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates all settings and replaces the zero
// values with their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	c.Gin.Normalize()
	if err := c.Pricing.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("pricing: %w", err)
	}
	if err := c.Maps.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("maps: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
// The concrete pool type is returned (instead of the repo.Pool
// interface), so the caller may close it when it is not needed.
func (c *Config) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	p, err := postgres.NewPool(ctx, c.Database.URL())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return p, nil
}

// NewVehiclesUseCase instantiates a vehicles use case based on the
// settings in the `c` instance, injecting the given connection pool,
// vehicles repository, and collaborator client instances.
func (c *Config) NewVehiclesUseCase(
	p repo.Pool, r repo.Vehicles,
	pc client.Pricing, mc client.Maps,
) (*vehiclesuc.UseCase, error) {
	opts := make([]vehiclesuc.Option, 0, 1)
	if f := c.Usecases.Vehicles.QuoteFallback; f != "" {
		opts = append(opts, vehiclesuc.WithQuoteFallback(f))
	}
	return vehiclesuc.New(p, r, pc, mc, opts...)
}

// NewPricingClient instantiates a pricing service client based on
// the `c` settings.
func (c *Config) NewPricingClient() *pricingcl.Client {
	return pricingcl.New(c.Pricing.BaseURL, c.Pricing.timeout())
}

// NewMapsClient instantiates a maps service client based on the `c`
// settings.
func (c *Config) NewMapsClient() *mapscl.Client {
	return mapscl.New(c.Maps.BaseURL, c.Maps.timeout())
}

// Database contains the PostgreSQL database connection settings.
type Database struct {
	Host string // domain name or IP address of the DBMS server
	Port int    // port number of the DBMS server
	Name string // database name, like vehweb
	User string
	Pass string
}

// URL returns the database connection URL based on the `d` settings.
func (d Database) URL() string {
	return fmt.Sprintf(
		"postgres://%s@%s:%d/%s",
		url.UserPassword(d.User, d.Pass),
		d.Host, d.Port, d.Name,
	)
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It can also modify settings in
// order to replace some zero values with their expected defaults.
func (d *Database) ValidateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("host is missing")
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Name == "" {
		return fmt.Errorf("database name is missing")
	}
	return nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill the missing ones with their
// default values (both middlewares are enabled by default).
type Gin struct {
	Logger   *bool // Whether to register the gin.Logger() middleware
	Recovery *bool // Whether to register the gin.Recovery() middleware
}

// Normalize replaces uninitialized middleware settings with true.
func (g *Gin) Normalize() {
	if g.Logger == nil {
		g.Logger = new(bool)
		*g.Logger = true
	}
	if g.Recovery == nil {
		g.Recovery = new(bool)
		*g.Recovery = true
	}
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Service contains the connection settings of one collaborator
// microservice, sitting behind an unreliable network boundary.
type Service struct {
	// BaseURL is the service base URL without a trailing slash,
	// like http://pricing-service:8082
	BaseURL string `yaml:"base-url"`
	// Timeout bounds each single request/response exchange.
	// A nil value indicates that timeout is left uninitialized, so
	// its default value (10s) will be taken.
	Timeout *Duration
}

// ValidateAndNormalize validates the collaborator service settings,
// filling the default request timeout if it is left uninitialized.
func (s *Service) ValidateAndNormalize() error {
	if s.BaseURL == "" {
		return fmt.Errorf("base-url is missing")
	}
	if s.Timeout == nil {
		s.Timeout = new(Duration)
		*s.Timeout = Duration(10 * time.Second)
	} else if *s.Timeout <= 0 {
		return fmt.Errorf("timeout (%d) is not positive", *s.Timeout)
	}
	return nil
}

func (s Service) timeout() time.Duration {
	if s.Timeout == nil {
		return 0
	}
	return time.Duration(*s.Timeout)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Vehicles Vehicles // vehicles use cases related settings
}

// Vehicles contains the configuration settings for the vehicles use
// cases.
type Vehicles struct {
	// QuoteFallback is the human-readable text which is reported as
	// the price of a freshly created vehicle when the pricing service
	// fails to provide a quote. An empty value asks the use cases
	// layer to select its default text.
	QuoteFallback string `yaml:"quote-fallback"`
}

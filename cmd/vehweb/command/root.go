// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the vehicles
// web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used to initialize the database schema.
//
//	./vehweb [-c /path/of/main/config.yaml]          # start web server
//	./vehweb db init [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/momeni/vehicles-api/pkg/adapter/config"
	"github.com/momeni/vehicles-api/pkg/adapter/restful/gin/routes"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "vehweb",
	Short: "A vehicle-information aggregation web service",
	Long: `A vehicle-information aggregation web service which stores
vehicle records in a PostgreSQL database and enriches them, on read
and write, with the price and address data of two collaborator
microservices: a pricing service owning the price-by-vehicle-id data
and a maps service resolving coordinates into addresses.
The project follows the Clean Architecture, keeping the core use cases
and models layers independent of the third-party dependent adapters
layer (GORM and Pgx for database interactions, the Gin Gonic web
framework for the REST API implementation, and plain HTTP clients for
the collaborator microservices) while interacting with them through a
series of interfaces.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	e := c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath, initLogger)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}

// initLogger installs a JSON handler as the default slog logger, so
// all log records which are emitted through the pkg/core/log helper
// functions are serialized uniformly on the standard error stream.
func initLogger() {
	slog.SetDefault(slog.New(
		slog.NewJSONHandler(os.Stderr, nil),
	))
}

// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/vehicles-api/pkg/adapter/config"
	"github.com/momeni/vehicles-api/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database initialization actions",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database schema",
	Long: `Initialize the database schema, creating the vehicles table
if it does not exist yet. The database connection information are read
from the config file. Stored prices and resolved addresses are owned
by the pricing and maps collaborator services respectively, hence, no
table is created for them.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

const vehiclesDDL = `CREATE TABLE IF NOT EXISTS vehicles (
	vid UUID PRIMARY KEY,
	condition VARCHAR(8) NOT NULL,
	make VARCHAR(80) NOT NULL,
	model VARCHAR(80) NOT NULL,
	model_year INTEGER NOT NULL DEFAULT 0,
	body VARCHAR(40) NOT NULL DEFAULT '',
	fuel VARCHAR(40) NOT NULL DEFAULT '',
	engine VARCHAR(80) NOT NULL DEFAULT '',
	mileage INTEGER NOT NULL DEFAULT 0,
	external_color VARCHAR(40) NOT NULL DEFAULT '',
	number_of_doors INTEGER NOT NULL DEFAULT 0,
	lat DOUBLE PRECISION NOT NULL,
	lon DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL,
	modified_at TIMESTAMP WITH TIME ZONE NOT NULL
)`

func initDB(_ *cobra.Command, _ []string) error {
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
	err = p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		_, err := conn.Exec(ctx, vehiclesDDL)
		return err
	})
	if err != nil {
		return fmt.Errorf("creating vehicles table: %w", err)
	}
	return nil
}

func init() {
	dbCmd.AddCommand(initCmd)
	rootCmd.AddCommand(dbCmd)
}

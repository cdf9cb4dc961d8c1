// Package myschema provides a programmatic API for MySQL column and constraint changes.
// It renders ALTER TABLE statements, compares declared defaults with the
// database, and plans and applies operations files.
package myschema

import (
	"context"
	"fmt"
	"io"

	"github.com/myschema/myschema/cmd/apply"
	planCmd "github.com/myschema/myschema/cmd/plan"
	"github.com/myschema/myschema/cmd/util"
	"github.com/myschema/myschema/internal/diff"
	"github.com/myschema/myschema/internal/plan"
	"github.com/myschema/myschema/ir"
)

// DatabaseConfig holds connection details for a MySQL database.
type DatabaseConfig struct {
	Host     string // Database server host
	Port     int    // Database server port (default: 3306)
	Database string // Database name
	User     string // Database user
	Password string // Database password (optional)
	TLS      string // Driver tls parameter (optional)
}

func (c DatabaseConfig) connection() *util.ConnectionConfig {
	port := c.Port
	if port == 0 {
		port = 3306
	}
	return &util.ConnectionConfig{
		Host:     c.Host,
		Port:     port,
		Database: c.Database,
		User:     c.User,
		Password: c.Password,
		TLS:      c.TLS,
	}
}

// PlanOptions configures how an operations file is planned.
type PlanOptions struct {
	DatabaseConfig
	File string // Path to the operations file
	// Offline renders without reading existing column definitions from the database
	Offline bool
}

// ApplyOptions configures how a plan is applied.
type ApplyOptions struct {
	DatabaseConfig
	File        string     // Path to the operations file (alternative to Plan)
	Plan        *plan.Plan // Pre-generated plan (alternative to File)
	AutoApprove bool       // Apply changes without prompting for approval
	NoColor     bool       // Disable colored output
	Quiet       bool       // Suppress plan display and progress messages
	LockTimeout int        // Session lock_wait_timeout in seconds
	Out         io.Writer  // Progress output (default: discarded)
}

// Client provides the database-backed myschema operations.
type Client struct {
	defaultDB DatabaseConfig
}

// NewClient creates a new myschema client with default database configuration.
func NewClient(dbConfig DatabaseConfig) *Client {
	return &Client{defaultDB: dbConfig}
}

// InspectColumn reads the current definition of a column. An empty schema
// means the connection's database.
func (c *Client) InspectColumn(ctx context.Context, schema, table, column string) (*ir.InspectedColumn, error) {
	return util.InspectColumn(ctx, c.defaultDB.connection(), schema, table, column)
}

// DefaultDiffers reports whether the column's stored default must be altered
// to match declared.
func (c *Client) DefaultDiffers(ctx context.Context, schema, table, column string, declared ir.DefaultValue) (bool, error) {
	live, err := c.InspectColumn(ctx, schema, table, column)
	if err != nil {
		return false, err
	}
	return diff.ServerDefaultDiffers(declared, live.Default), nil
}

// AlterColumn renders req, reading whatever the request leaves out of the
// existing column from the database first.
func (c *Client) AlterColumn(ctx context.Context, req *ir.AlterColumnRequest) (string, error) {
	if req == nil {
		return diff.AlterColumn(nil)
	}
	existing := req.Existing
	if existing.Type == nil || existing.Nullable == nil {
		live, err := c.InspectColumn(ctx, req.Schema, req.Table, existing.Name)
		if err != nil {
			return "", fmt.Errorf("failed to read existing column: %w", err)
		}
		if existing.Type == nil {
			existing.Type = live.Type
		}
		if existing.Nullable == nil {
			existing.Nullable = live.Nullable
		}
		if existing.ServerDefault == nil {
			existing.ServerDefault = live.ServerDefault
		}
		if !existing.Autoincrement {
			existing.Autoincrement = live.Autoincrement
		}
		if existing.OnUpdate == "" {
			existing.OnUpdate = live.OnUpdate
		}
	}

	filled := *req
	filled.Existing = existing
	return diff.AlterColumn(&filled)
}

// Plan renders an operations file.
func (c *Client) Plan(ctx context.Context, opts PlanOptions) (*plan.Plan, error) {
	if opts.Host == "" {
		opts.DatabaseConfig = c.defaultDB
	}
	if opts.Offline {
		return planCmd.GeneratePlan(ctx, opts.File, nil)
	}
	return planCmd.GeneratePlan(ctx, opts.File, opts.connection())
}

// Apply executes a plan. You can either provide a pre-generated plan
// (opts.Plan) or an operations file (opts.File).
func (c *Client) Apply(ctx context.Context, opts ApplyOptions) error {
	if opts.Host == "" {
		opts.DatabaseConfig = c.defaultDB
	}

	return apply.ApplyMigration(ctx, &apply.ApplyConfig{
		Connection:  opts.connection(),
		File:        opts.File,
		Plan:        opts.Plan,
		AutoApprove: opts.AutoApprove,
		NoColor:     opts.NoColor,
		Quiet:       opts.Quiet,
		LockTimeout: opts.LockTimeout,
		Out:         opts.Out,
	})
}

package util

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/myschema/myschema/internal/logger"
	"github.com/myschema/myschema/ir"
)

// ConnectionConfig holds database connection parameters
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	// TLS is passed to the driver's tls parameter ("true", "skip-verify", "preferred" or a registered name)
	TLS string
}

// Connect establishes a database connection using the provided configuration
func Connect(ctx context.Context, config *ConnectionConfig) (*sql.DB, error) {
	log := logger.Get()

	log.Debug("Attempting database connection",
		"host", config.Host,
		"port", config.Port,
		"database", config.Database,
		"user", config.User,
		"tls", config.TLS,
	)

	conn, err := sql.Open("mysql", buildDSN(config))
	if err != nil {
		log.Debug("Database connection failed", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Debug("Database ping failed", "error", err)
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Debug("Database connection established successfully")
	return conn, nil
}

// buildDSN constructs a go-sql-driver/mysql DSN from connection parameters
func buildDSN(config *ConnectionConfig) string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	cfg.DBName = config.Database
	cfg.User = config.User
	cfg.Passwd = config.Password
	cfg.Timeout = 10 * time.Second
	if config.TLS != "" {
		cfg.TLSConfig = config.TLS
	}
	return cfg.FormatDSN()
}

// InspectColumn connects, reads one column and disconnects
func InspectColumn(ctx context.Context, config *ConnectionConfig, schema, table, column string) (*ir.InspectedColumn, error) {
	conn, err := Connect(ctx, config)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return ir.NewInspector(conn).InspectColumn(ctx, schema, table, column)
}

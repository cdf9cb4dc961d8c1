// Package testutil provides shared test utilities for myschema
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

var suppressedLogger = log.New(io.Discard, "", 0)

// getMySQLImage returns the image to test against. It reads the
// MYSCHEMA_MYSQL_IMAGE environment variable, defaulting to "mysql:8.0".
func getMySQLImage() string {
	if image := os.Getenv("MYSCHEMA_MYSQL_IMAGE"); image != "" {
		return image
	}
	return "mysql:8.0"
}

// ContainerInfo holds MySQL container connection details
type ContainerInfo struct {
	Container testcontainers.Container
	Host      string
	Port      int
	Database  string
	User      string
	Password  string
	DSN       string
	Conn      *sql.DB
}

// SetupMySQLContainer creates a new MySQL test container
func SetupMySQLContainer(ctx context.Context, t *testing.T) *ContainerInfo {
	return SetupMySQLContainerWithDB(ctx, t, "testdb", "testuser", "testpass")
}

// SetupMySQLContainerWithDB creates a new MySQL test container with custom database settings
func SetupMySQLContainerWithDB(ctx context.Context, t *testing.T, database, username, password string) *ContainerInfo {
	t.Helper()

	mysqlContainer, err := mysql.Run(ctx,
		getMySQLImage(),
		mysql.WithDatabase(database),
		mysql.WithUsername(username),
		mysql.WithPassword(password),
		testcontainers.WithLogger(suppressedLogger),
	)
	if err != nil {
		t.Fatalf("Failed to start container: %v", err)
	}

	testDSN, err := mysqlContainer.ConnectionString(ctx, "multiStatements=true")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	conn, err := sql.Open("mysql", testDSN)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	containerHost, err := mysqlContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	containerPort, err := mysqlContainer.MappedPort(ctx, "3306/tcp")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	return &ContainerInfo{
		Container: mysqlContainer,
		Host:      containerHost,
		Port:      containerPort.Int(),
		Database:  database,
		User:      username,
		Password:  password,
		DSN:       testDSN,
		Conn:      conn,
	}
}

// Terminate cleans up the container and connection
func (ci *ContainerInfo) Terminate(ctx context.Context, t *testing.T) {
	ci.Conn.Close()
	if err := ci.Container.Terminate(ctx); err != nil {
		t.Logf("Failed to terminate container: %v", err)
	}
}

// ServerVersion returns the server's VERSION() string
func (ci *ContainerInfo) ServerVersion(ctx context.Context, t *testing.T) string {
	t.Helper()
	var version string
	if err := ci.Conn.QueryRowContext(ctx, "SELECT VERSION()").Scan(&version); err != nil {
		t.Fatalf("Failed to read server version: %v", err)
	}
	return version
}

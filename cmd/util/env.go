package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// Environment variables read by the MySQL client programs
const (
	EnvHost     = "MYSQL_HOST"
	EnvPort     = "MYSQL_TCP_PORT"
	EnvDatabase = "MYSQL_DATABASE"
	EnvUser     = "MYSQL_USER"
	EnvPassword = "MYSQL_PWD"
)

// GetEnvWithDefault returns the value of an environment variable or a default value if not set
func GetEnvWithDefault(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvIntWithDefault returns the value of an environment variable as int or a default value if not set
func GetEnvIntWithDefault(envVar string, defaultValue int) int {
	if value := os.Getenv(envVar); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ConnectionFlags holds the database flags shared by commands that talk to MySQL
type ConnectionFlags struct {
	Host     string
	Port     int
	DB       string
	User     string
	Password string
}

// AddConnectionFlags registers --host, --port, --db, --user and --password on cmd
func AddConnectionFlags(cmd *cobra.Command, flags *ConnectionFlags) {
	cmd.Flags().StringVar(&flags.Host, "host", "localhost", "Database server host (env: MYSQL_HOST)")
	cmd.Flags().IntVar(&flags.Port, "port", 3306, "Database server port (env: MYSQL_TCP_PORT)")
	cmd.Flags().StringVar(&flags.DB, "db", "", "Database name (env: MYSQL_DATABASE)")
	cmd.Flags().StringVar(&flags.User, "user", "", "Database user name (env: MYSQL_USER)")
	cmd.Flags().StringVar(&flags.Password, "password", "", "Database password (env: MYSQL_PWD)")
}

// ApplyEnvVars fills flags the user did not set explicitly from the environment
func ApplyEnvVars(cmd *cobra.Command, flags *ConnectionFlags) {
	if v := GetEnvWithDefault(EnvHost, ""); v != "" && !cmd.Flags().Changed("host") {
		flags.Host = v
	}
	if v := GetEnvIntWithDefault(EnvPort, 0); v != 0 && !cmd.Flags().Changed("port") {
		flags.Port = v
	}
	if v := GetEnvWithDefault(EnvDatabase, ""); v != "" && !cmd.Flags().Changed("db") {
		flags.DB = v
	}
	if v := GetEnvWithDefault(EnvUser, ""); v != "" && !cmd.Flags().Changed("user") {
		flags.User = v
	}
	if v := GetEnvWithDefault(EnvPassword, ""); v != "" && !cmd.Flags().Changed("password") {
		flags.Password = v
	}
}

// Validate checks that the required connection values are present
func (f *ConnectionFlags) Validate() error {
	if f.DB == "" {
		return fmt.Errorf("database name is required (use --db flag or %s environment variable)", EnvDatabase)
	}
	if f.User == "" {
		return fmt.Errorf("database user is required (use --user flag or %s environment variable)", EnvUser)
	}
	return nil
}

// Config converts the flags into a connection configuration
func (f *ConnectionFlags) Config() *ConnectionConfig {
	return &ConnectionConfig{
		Host:     f.Host,
		Port:     f.Port,
		Database: f.DB,
		User:     f.User,
		Password: f.Password,
	}
}

// PreRunEWithEnvVars creates a PreRunE function that fills connection flags
// from the environment and validates them
func PreRunEWithEnvVars(flags *ConnectionFlags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ApplyEnvVars(cmd, flags)
		return flags.Validate()
	}
}

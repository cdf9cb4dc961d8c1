package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/myschema/myschema/cmd"
	"github.com/myschema/myschema/cmd/apply"
	"github.com/myschema/myschema/cmd/plan"
	"github.com/myschema/myschema/testutil"
)

const integrationOperations = `operations:
  - op: alter_column
    table: accounts
    column: nickname
    new_name: display_name
    type: varchar(64)
  - op: alter_column
    table: accounts
    column: created_at
    default_expr: now()
  - op: drop_constraint
    table: accounts
    name: uq_accounts_email
    kind: unique
`

func TestIntegrationPlanAndApply(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container := testutil.SetupMySQLContainer(ctx, t)
	defer container.Terminate(ctx, t)

	_, err := container.Conn.ExecContext(ctx, `CREATE TABLE accounts (
    id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    email VARCHAR(100) NOT NULL,
    nickname VARCHAR(32) NOT NULL DEFAULT 'anon',
    created_at DATETIME NULL,
    UNIQUE KEY uq_accounts_email (email)
)`)
	if err != nil {
		t.Fatalf("failed to create accounts table: %v", err)
	}

	opsFile := filepath.Join(t.TempDir(), "operations.yaml")
	if err := os.WriteFile(opsFile, []byte(integrationOperations), 0644); err != nil {
		t.Fatalf("failed to write operations file: %v", err)
	}

	connArgs := []string{
		"--host", container.Host,
		"--port", strconv.Itoa(container.Port),
		"--db", container.Database,
		"--user", container.User,
		"--password", container.Password,
	}

	// plan fills the existing columns from the database
	plan.ResetFlags()
	var planOut bytes.Buffer
	cmd.RootCmd.SetOut(&planOut)
	cmd.RootCmd.SetErr(&bytes.Buffer{})
	cmd.RootCmd.SetArgs(append([]string{"plan", "--file", opsFile, "--from-db", "--output-sql", "stdout"}, connArgs...))
	if err := cmd.RootCmd.Execute(); err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	wantSQL := "ALTER TABLE accounts CHANGE nickname display_name VARCHAR(64) NOT NULL DEFAULT 'anon';\n" +
		"ALTER TABLE accounts CHANGE created_at created_at DATETIME NULL DEFAULT now();\n" +
		"ALTER TABLE accounts DROP INDEX uq_accounts_email;\n"
	if got := planOut.String(); got != wantSQL {
		t.Fatalf("plan SQL = %q, want %q", got, wantSQL)
	}

	apply.ResetFlags()
	var applyOut bytes.Buffer
	cmd.RootCmd.SetOut(&applyOut)
	cmd.RootCmd.SetArgs(append([]string{"apply", "--file", opsFile, "--auto-approve", "--no-color", "--lock-timeout", "10"}, connArgs...))
	if err := cmd.RootCmd.Execute(); err != nil {
		t.Fatalf("apply failed: %v\n%s", err, applyOut.String())
	}
	if !strings.Contains(applyOut.String(), "Changes applied successfully!") {
		t.Errorf("apply output missing success message:\n%s", applyOut.String())
	}

	var columnType, isNullable string
	err = container.Conn.QueryRowContext(ctx,
		`SELECT COLUMN_TYPE, IS_NULLABLE FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = 'accounts' AND COLUMN_NAME = 'display_name'`,
	).Scan(&columnType, &isNullable)
	if err != nil {
		t.Fatalf("display_name not found after apply: %v", err)
	}
	if columnType != "varchar(64)" || isNullable != "NO" {
		t.Errorf("display_name = %s nullable=%s, want varchar(64) NOT NULL", columnType, isNullable)
	}

	var indexCount int
	err = container.Conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.STATISTICS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = 'accounts' AND INDEX_NAME = 'uq_accounts_email'`,
	).Scan(&indexCount)
	if err != nil {
		t.Fatalf("failed to query indexes: %v", err)
	}
	if indexCount != 0 {
		t.Error("uq_accounts_email still exists after apply")
	}
}

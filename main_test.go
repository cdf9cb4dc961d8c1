package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/myschema/myschema/cmd"
	"github.com/myschema/myschema/cmd/alter"
	"github.com/myschema/myschema/cmd/compare"
	"github.com/myschema/myschema/cmd/drop"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	alter.ResetFlags()
	drop.ResetFlags()
	compare.ResetFlags()

	var out bytes.Buffer
	cmd.RootCmd.SetOut(&out)
	cmd.RootCmd.SetErr(&bytes.Buffer{})
	cmd.RootCmd.SetArgs(args)
	err := cmd.RootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		want        string
		expectError bool
		errorMsg    string
	}{
		{
			name: "alter column",
			args: []string{"alter-column", "--table", "t1", "--column", "c1", "--nullable=false", "--existing-type", "integer"},
			want: "ALTER TABLE t1 CHANGE c1 c1 INTEGER NOT NULL;\n",
		},
		{
			name: "drop constraint",
			args: []string{"drop-constraint", "--table", "t1", "--name", "f1", "--type", "unique"},
			want: "ALTER TABLE t1 DROP INDEX f1;\n",
		},
		{
			name:        "alter column without existing type",
			args:        []string{"alter-column", "--table", "t1", "--column", "c1", "--nullable=false"},
			expectError: true,
			errorMsg:    "All MySQL ALTER COLUMN operations require the existing type.",
		},
		{
			name:        "drop check constraint",
			args:        []string{"drop-constraint", "--table", "t1", "--name", "ck", "--type", "check"},
			expectError: true,
			errorMsg:    "MySQL does not support CHECK constraints.",
		},
		{
			name:        "drop without type",
			args:        []string{"drop-constraint", "--table", "t1", "--name", "f1"},
			expectError: true,
			errorMsg:    "No generic 'DROP CONSTRAINT' in MySQL - please specify constraint type",
		},
		{
			name:        "missing table",
			args:        []string{"drop-constraint", "--name", "f1", "--type", "unique"},
			expectError: true,
			errorMsg:    `required flag(s) "table" not set`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runRoot(t, tt.args...)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

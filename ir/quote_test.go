package ir

import (
	"fmt"
	"testing"
)

func TestNeedsQuoting(t *testing.T) {
	type testCase struct {
		name       string
		identifier string
		expected   bool
	}
	tests := []testCase{
		{"simple lowercase", "users", false},
		{"short name", "t1", false},
		{"non-reserved keyword", "user", false},
		{"reserved word", "order", true},
		{"limit keyword", "limit", true},
		{"bigint type", "bigint", true},
		{"change keyword", "change", true},
		{"primary keyword", "primary", true},
		{"index keyword", "index", true},
		{"reserved word mixed case", "Select", true},
		{"camelCase", "firstName", true},
		{"UPPERCASE", "USERS", true},
		{"MixedCase", "MyTable", true},
		{"embedded space", "my table", true},
		{"with underscore", "user_name", false},
		{"starts with underscore", "_private", false},
		{"starts with number", "1table", true},
		{"contains dash", "user-table", true},
		{"contains dollar", "price$", true},
		{"non ascii", "naïve", true},
		{"empty string", "", false},
	}

	for reservedWord := range reservedWords {
		tests = append(tests, testCase{
			name:       fmt.Sprintf("reserved word: %q", reservedWord),
			identifier: reservedWord,
			expected:   true,
		})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NeedsQuoting(tt.identifier)
			if result != tt.expected {
				t.Errorf("NeedsQuoting(%q) = %v; want %v", tt.identifier, result, tt.expected)
			}
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		expected   string
	}{
		{"simple lowercase", "t1", "t1"},
		{"reserved word", "order", "`order`"},
		{"MixedCase", "ColumnOne", "`ColumnOne`"},
		{"embedded space", "column two", "`column two`"},
		{"embedded backtick", "we`ird", "`we``ird`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteIdentifier(tt.identifier); got != tt.expected {
				t.Errorf("QuoteIdentifier(%q) = %q; want %q", tt.identifier, got, tt.expected)
			}
		})
	}
}

func TestQualifyTableName(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		table  string
		want   string
	}{
		{"no schema", "", "t1", "t1"},
		{"no schema quoted table", "", "MyTable", "`MyTable`"},
		{"schema lowercase", "app", "users", "app.users"},
		{"schema needs quoting", "My App", "users", "`My App`.users"},
		{"both need quoting", "select", "order", "`select`.`order`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QualifyTableName(tt.schema, tt.table); got != tt.want {
				t.Errorf("QualifyTableName(%q, %q) = %q, want %q", tt.schema, tt.table, got, tt.want)
			}
		})
	}
}

package ir

import (
	"testing"
)

func TestNormalizeDefault(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare keyword", "CURRENT_TIMESTAMP", "CURRENT_TIMESTAMP"},
		{"lowercase keyword", "current_timestamp", "CURRENT_TIMESTAMP"},
		{"surrounding whitespace", "  now()  ", "NOW()"},
		{"enclosing parentheses", "(now())", "NOW()"},
		{"only one pair stripped", "((1))", "(1)"},
		{"parentheses that do not enclose", "(1) + (2)", "(1) + (2)"},
		{"whitespace collapsed", "utc_thing(   CURRENT_TIMESTAMP )", "UTC_THING(CURRENT_TIMESTAMP)"},
		{"space before call parenthesis", "now ( )", "NOW()"},
		{"comma spacing", "concat('a',  'b' ,'c')", "CONCAT('a', 'b', 'c')"},
		{"string literal untouched", "'hello  World'", "'hello  World'"},
		{"doubled quote kept", "'it''s'", "'it''s'"},
		{"backslash escape kept", `'a\'b'`, `'a\'b'`},
		{"parenthesis inside literal", "('(x')", "'(x'"},
		{"backtick identifier untouched", "`MyCol` + 1", "`MyCol` + 1"},
		{"newline and tab", "NOW(\n\t)", "NOW()"},
		{"empty", "", ""},
		{"number", " 5 ", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDefault(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeDefault(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDefaultIdempotent(t *testing.T) {
	inputs := []string{
		"(now())",
		"utc_thing( current_timestamp )",
		"'Mixed Case'",
		"concat( 'a' , b )",
	}

	for _, input := range inputs {
		once := NormalizeDefault(input)
		twice := NormalizeDefault(once)
		if once != twice {
			t.Errorf("NormalizeDefault not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTypeSQL(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Integer{}, "INTEGER"},
		{BigInt{}, "BIGINT"},
		{SmallInt{}, "SMALLINT"},
		{Boolean{}, "BOOL"},
		{Text{}, "TEXT"},
		{Timestamp{}, "TIMESTAMP"},
		{DateTime{}, "DATETIME"},
		{Varchar{Length: 20}, "VARCHAR(20)"},
		{Numeric{Precision: 10}, "NUMERIC(10)"},
		{Numeric{Precision: 10, Scale: 2}, "NUMERIC(10, 2)"},
		{RawType("INT(11) UNSIGNED"), "INT(11) UNSIGNED"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.SQL(); got != tt.want {
				t.Errorf("%T.SQL() = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  Type
	}{
		{"", nil},
		{"   ", nil},
		{"int", Integer{}},
		{"INTEGER", Integer{}},
		{"BigInt", BigInt{}},
		{"smallint", SmallInt{}},
		{"boolean", Boolean{}},
		{"text", Text{}},
		{"timestamp", Timestamp{}},
		{"datetime", DateTime{}},
		{"varchar(20)", Varchar{Length: 20}},
		{"VARCHAR ( 255 )", Varchar{Length: 255}},
		{"numeric(10)", Numeric{Precision: 10}},
		{"decimal(10,2)", Numeric{Precision: 10, Scale: 2}},
		{"enum('a','b')", RawType("enum('a','b')")},
		{"int unsigned", RawType("INT UNSIGNED")},
		{"tinyint(1)", RawType("TINYINT(1)")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseType(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseType(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

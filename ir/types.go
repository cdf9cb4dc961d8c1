package ir

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type is a column type as it appears in a MySQL column definition
type Type interface {
	SQL() string
}

// Integer is the standard INTEGER type
type Integer struct{}

func (Integer) SQL() string { return "INTEGER" }

// BigInt is the 8-byte integer type
type BigInt struct{}

func (BigInt) SQL() string { return "BIGINT" }

// SmallInt is the 2-byte integer type
type SmallInt struct{}

func (SmallInt) SQL() string { return "SMALLINT" }

// Boolean renders as BOOL, which MySQL stores as TINYINT(1)
type Boolean struct{}

func (Boolean) SQL() string { return "BOOL" }

// Text is an unbounded character type
type Text struct{}

func (Text) SQL() string { return "TEXT" }

// Timestamp is the TIMESTAMP type
type Timestamp struct{}

func (Timestamp) SQL() string { return "TIMESTAMP" }

// DateTime is the DATETIME type
type DateTime struct{}

func (DateTime) SQL() string { return "DATETIME" }

// Varchar is a bounded character type
type Varchar struct {
	Length int
}

func (v Varchar) SQL() string {
	return fmt.Sprintf("VARCHAR(%d)", v.Length)
}

// Numeric is a fixed-point type; Scale is omitted when zero
type Numeric struct {
	Precision int
	Scale     int
}

func (n Numeric) SQL() string {
	if n.Scale == 0 {
		return fmt.Sprintf("NUMERIC(%d)", n.Precision)
	}
	return fmt.Sprintf("NUMERIC(%d, %d)", n.Precision, n.Scale)
}

// RawType is emitted verbatim. Introspected COLUMN_TYPE values end up here.
type RawType string

func (r RawType) SQL() string { return string(r) }

var (
	simpleTypes = map[string]Type{
		"int":       Integer{},
		"integer":   Integer{},
		"bigint":    BigInt{},
		"smallint":  SmallInt{},
		"bool":      Boolean{},
		"boolean":   Boolean{},
		"text":      Text{},
		"timestamp": Timestamp{},
		"datetime":  DateTime{},
	}
	varcharPattern = regexp.MustCompile(`^(?:varchar|character varying)\s*\(\s*(\d+)\s*\)$`)
	numericPattern = regexp.MustCompile(`^(?:numeric|decimal)\s*\(\s*(\d+)\s*(?:,\s*(\d+)\s*)?\)$`)
)

// ParseType maps a type spelling such as "integer", "VARCHAR(20)" or
// "numeric(10,2)" to a Type. Unknown spellings become an upper-cased RawType,
// unless they contain quoted members.
func ParseType(s string) Type {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	lower := strings.ToLower(trimmed)

	if t, ok := simpleTypes[lower]; ok {
		return t
	}

	if m := varcharPattern.FindStringSubmatch(lower); m != nil {
		length, _ := strconv.Atoi(m[1])
		return Varchar{Length: length}
	}

	if m := numericPattern.FindStringSubmatch(lower); m != nil {
		precision, _ := strconv.Atoi(m[1])
		scale := 0
		if m[2] != "" {
			scale, _ = strconv.Atoi(m[2])
		}
		return Numeric{Precision: precision, Scale: scale}
	}

	// enum('a','b') and set(...) keep the case of their members
	if strings.ContainsAny(trimmed, "'\"") {
		return RawType(trimmed)
	}
	return RawType(strings.ToUpper(trimmed))
}

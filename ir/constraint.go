package ir

import (
	"fmt"
	"strings"
)

// ConstraintKind is the kind of constraint named in a drop request
type ConstraintKind string

const (
	ConstraintKindUnspecified ConstraintKind = ""
	ConstraintKindForeignKey  ConstraintKind = "foreignkey"
	ConstraintKindPrimaryKey  ConstraintKind = "primary"
	ConstraintKindUnique      ConstraintKind = "unique"
	ConstraintKindCheck       ConstraintKind = "check"
)

var constraintKindAliases = map[string]ConstraintKind{
	"":            ConstraintKindUnspecified,
	"foreignkey":  ConstraintKindForeignKey,
	"foreign-key": ConstraintKindForeignKey,
	"foreign_key": ConstraintKindForeignKey,
	"fk":          ConstraintKindForeignKey,
	"primary":     ConstraintKindPrimaryKey,
	"primary-key": ConstraintKindPrimaryKey,
	"primary_key": ConstraintKindPrimaryKey,
	"pk":          ConstraintKindPrimaryKey,
	"unique":      ConstraintKindUnique,
	"check":       ConstraintKindCheck,
}

// InvalidKindError reports a constraint kind outside the known vocabulary
type InvalidKindError struct {
	Kind string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("constraint type %q is invalid: type can be one of 'check', 'foreignkey', 'primary', 'unique', or empty", e.Kind)
}

func (e *InvalidKindError) Is(target error) bool {
	return target == ErrContractViolation
}

// ParseConstraintKind maps a user-supplied kind, case-insensitively, onto the vocabulary
func ParseConstraintKind(s string) (ConstraintKind, error) {
	kind, ok := constraintKindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &InvalidKindError{Kind: s}
	}
	return kind, nil
}

// Valid reports whether k is part of the vocabulary
func (k ConstraintKind) Valid() bool {
	switch k {
	case ConstraintKindUnspecified, ConstraintKindForeignKey, ConstraintKindPrimaryKey,
		ConstraintKindUnique, ConstraintKindCheck:
		return true
	}
	return false
}

// DropConstraintRequest asks for a named constraint to be dropped from a table
type DropConstraintRequest struct {
	Schema string
	Table  string
	Name   string
	Kind   ConstraintKind
}

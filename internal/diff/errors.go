package diff

import (
	"fmt"

	"github.com/myschema/myschema/ir"
)

// Error categories, shared with package ir so one errors.Is check covers both
var (
	ErrContractViolation    = ir.ErrContractViolation
	ErrUnsupportedByDialect = ir.ErrUnsupportedByDialect
)

// MissingTypeError is returned when a column alteration cannot resolve the
// column type. MySQL's CHANGE syntax restates the whole column definition.
type MissingTypeError struct {
	Table  string
	Column string
}

func (e *MissingTypeError) Error() string {
	return "All MySQL ALTER COLUMN operations require the existing type."
}

func (e *MissingTypeError) Is(target error) bool {
	return target == ErrContractViolation
}

// MissingNameError is returned when a drop needs a constraint name and none was given
type MissingNameError struct {
	Table string
	Kind  ir.ConstraintKind
}

func (e *MissingNameError) Error() string {
	return fmt.Sprintf("dropping a %s constraint on %s requires a constraint name", e.Kind, e.Table)
}

func (e *MissingNameError) Is(target error) bool {
	return target == ErrContractViolation
}

// UnsupportedConstraintError is returned for constraint kinds MySQL cannot drop
type UnsupportedConstraintError struct {
	Kind ir.ConstraintKind
}

func (e *UnsupportedConstraintError) Error() string {
	return "MySQL does not support CHECK constraints."
}

func (e *UnsupportedConstraintError) Is(target error) bool {
	return target == ErrUnsupportedByDialect
}

// AmbiguousDropError is returned when no constraint kind is given.
// MySQL has no generic DROP CONSTRAINT.
type AmbiguousDropError struct {
	Name string
}

func (e *AmbiguousDropError) Error() string {
	return "No generic 'DROP CONSTRAINT' in MySQL - please specify constraint type"
}

func (e *AmbiguousDropError) Is(target error) bool {
	return target == ErrUnsupportedByDialect
}

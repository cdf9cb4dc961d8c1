package myschema

import (
	"github.com/myschema/myschema/internal/diff"
	"github.com/myschema/myschema/internal/plan"
	"github.com/myschema/myschema/ir"
)

// Re-export important types for external consumption

// Plan is the ordered list of statements an operations file turns into.
type Plan = plan.Plan

// OperationFile is a decoded operations file.
type OperationFile = plan.OperationFile

// Operation is a single alter_column or drop_constraint entry.
type Operation = plan.Operation

// Type is a column type rendered in MySQL form.
type Type = ir.Type

// DefaultValue is a column default: a Literal, RawSQL or Call.
type DefaultValue = ir.DefaultValue

// Literal is a default value rendered as a quoted literal or number.
type Literal = ir.Literal

// RawSQL is a default expression rendered verbatim.
type RawSQL = ir.RawSQL

// ColumnSnapshot is the definition of a column before a change.
type ColumnSnapshot = ir.ColumnSnapshot

// ColumnChange lists the attributes a column change sets.
type ColumnChange = ir.ColumnChange

// AlterColumnRequest is the input of AlterColumn.
type AlterColumnRequest = ir.AlterColumnRequest

// ConstraintKind selects the MySQL drop syntax for a constraint.
type ConstraintKind = ir.ConstraintKind

// DropConstraintRequest is the input of DropConstraint.
type DropConstraintRequest = ir.DropConstraintRequest

// InspectedColumn is a column as read from information_schema.
type InspectedColumn = ir.InspectedColumn

// DefaultComparison is the outcome of comparing a declared and an introspected default.
type DefaultComparison = diff.DefaultComparison

// MissingTypeError is returned when a column change has no existing type.
type MissingTypeError = diff.MissingTypeError

// Error categories, for use with errors.Is.
var (
	ErrContractViolation    = ir.ErrContractViolation
	ErrUnsupportedByDialect = ir.ErrUnsupportedByDialect
)

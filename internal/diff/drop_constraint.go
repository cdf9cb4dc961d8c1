package diff

import (
	"fmt"

	"github.com/myschema/myschema/ir"
)

// DropConstraint renders the MySQL statement dropping a named constraint.
// MySQL has a separate drop syntax per kind and models unique constraints as indexes.
func DropConstraint(req *ir.DropConstraintRequest) (string, error) {
	if req == nil || req.Table == "" {
		return "", fmt.Errorf("drop constraint requires a table: %w", ErrContractViolation)
	}
	if !req.Kind.Valid() {
		return "", &ir.InvalidKindError{Kind: string(req.Kind)}
	}

	table := ir.QualifyTableName(req.Schema, req.Table)

	switch req.Kind {
	case ir.ConstraintKindForeignKey:
		if req.Name == "" {
			return "", &MissingNameError{Table: req.Table, Kind: req.Kind}
		}
		return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s", table, ir.QuoteIdentifier(req.Name)), nil
	case ir.ConstraintKindPrimaryKey:
		// the name is ignored, a table has at most one primary key
		return fmt.Sprintf("ALTER TABLE %s DROP PRIMARY KEY", table), nil
	case ir.ConstraintKindUnique:
		if req.Name == "" {
			return "", &MissingNameError{Table: req.Table, Kind: req.Kind}
		}
		return fmt.Sprintf("ALTER TABLE %s DROP INDEX %s", table, ir.QuoteIdentifier(req.Name)), nil
	case ir.ConstraintKindCheck:
		return "", &UnsupportedConstraintError{Kind: req.Kind}
	default:
		return "", &AmbiguousDropError{Name: req.Name}
	}
}

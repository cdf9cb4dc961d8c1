package diff

import (
	"fmt"
	"strings"

	"github.com/myschema/myschema/ir"
)

// AlterColumn renders the single ALTER TABLE ... CHANGE statement that brings
// a column from req.Existing to the requested state.
//
// Every attribute falls back to the snapshot when the change leaves it unset.
// CHANGE restates the whole definition, so a type must be known even for a
// plain rename.
func AlterColumn(req *ir.AlterColumnRequest) (string, error) {
	if req == nil || req.Table == "" || req.Existing.Name == "" {
		return "", fmt.Errorf("alter column requires a table and a column name: %w", ErrContractViolation)
	}

	existing := req.Existing
	change := req.Change
	table := ir.QualifyTableName(req.Schema, req.Table)

	finalName := existing.Name
	if change.NewName != "" {
		finalName = change.NewName
	}

	finalType := change.Type
	if finalType == nil {
		finalType = existing.Type
	}

	if finalType == nil {
		return "", &MissingTypeError{Table: req.Table, Column: existing.Name}
	}

	// Nullable unless something says otherwise
	nullable := true
	if change.Nullable != nil {
		nullable = *change.Nullable
	} else if existing.Nullable != nil {
		nullable = *existing.Nullable
	}

	autoincrement := existing.Autoincrement
	if change.Autoincrement != nil {
		autoincrement = *change.Autoincrement
	}

	parts := []string{
		"ALTER TABLE", table,
		"CHANGE", ir.QuoteIdentifier(existing.Name), ir.QuoteIdentifier(finalName),
		finalType.SQL(),
	}

	if nullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}

	if def := change.ServerDefault.Resolve(existing.ServerDefault); def != nil {
		if rendered := ir.RenderDefault(def); rendered != "" {
			parts = append(parts, "DEFAULT", rendered)
		}
	}

	if existing.OnUpdate != "" {
		parts = append(parts, "ON UPDATE", existing.OnUpdate)
	}

	if autoincrement {
		parts = append(parts, "AUTO_INCREMENT")
	}

	return strings.Join(parts, " "), nil
}

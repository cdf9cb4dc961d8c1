package plan

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/myschema/myschema/ir"
	"github.com/spf13/viper"
)

// Operation kinds accepted in an operations file
const (
	OpAlterColumn    = "alter_column"
	OpDropConstraint = "drop_constraint"
)

// OperationFile is the decoded form of an operations file:
//
//	schema: app
//	operations:
//	  - op: alter_column
//	    table: t1
//	    column: c1
//	    new_name: c2
//	    existing:
//	      type: integer
//	  - op: drop_constraint
//	    table: t1
//	    name: uq_email
//	    kind: unique
type OperationFile struct {
	// Schema applies to every operation that does not name its own
	Schema     string      `mapstructure:"schema" json:"schema,omitempty"`
	Operations []Operation `mapstructure:"operations" json:"operations"`
}

// Operation is a single alter_column or drop_constraint entry
type Operation struct {
	Op     string `mapstructure:"op" json:"op"`
	Schema string `mapstructure:"schema" json:"schema,omitempty"`
	Table  string `mapstructure:"table" json:"table"`

	// alter_column
	Column        string         `mapstructure:"column" json:"column,omitempty"`
	NewName       string         `mapstructure:"new_name" json:"new_name,omitempty"`
	Type          string         `mapstructure:"type" json:"type,omitempty"`
	Nullable      *bool          `mapstructure:"nullable" json:"nullable,omitempty"`
	Default       any            `mapstructure:"default" json:"default,omitempty"`
	DefaultExpr   string         `mapstructure:"default_expr" json:"default_expr,omitempty"`
	DropDefault   bool           `mapstructure:"drop_default" json:"drop_default,omitempty"`
	Autoincrement *bool          `mapstructure:"autoincrement" json:"autoincrement,omitempty"`
	Existing      ExistingColumn `mapstructure:"existing" json:"existing,omitempty"`

	// drop_constraint
	Name string `mapstructure:"name" json:"name,omitempty"`
	Kind string `mapstructure:"kind" json:"kind,omitempty"`
}

// ExistingColumn describes the column before an alter_column runs.
// Fields left empty can be filled from a live database.
type ExistingColumn struct {
	Type          string `mapstructure:"type" json:"type,omitempty"`
	Nullable      *bool  `mapstructure:"nullable" json:"nullable,omitempty"`
	Default       any    `mapstructure:"default" json:"default,omitempty"`
	DefaultExpr   string `mapstructure:"default_expr" json:"default_expr,omitempty"`
	Autoincrement *bool  `mapstructure:"autoincrement" json:"autoincrement,omitempty"`
	OnUpdate      string `mapstructure:"on_update" json:"on_update,omitempty"`
}

// LoadOperations reads an operations file. The format follows the file
// extension: yaml, yml, json or toml.
func LoadOperations(path string) (*OperationFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read operations file %s: %w", path, err)
	}
	return decodeOperations(v)
}

// ParseOperations decodes operations from data in the given format
func ParseOperations(data []byte, format string) (*OperationFile, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse %s operations: %w", format, err)
	}
	return decodeOperations(v)
}

func decodeOperations(v *viper.Viper) (*OperationFile, error) {
	var file OperationFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode operations: %w", err)
	}

	for i := range file.Operations {
		op := &file.Operations[i]
		op.Op = strings.ToLower(strings.TrimSpace(op.Op))
		if op.Schema == "" {
			op.Schema = file.Schema
		}
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
	}
	return &file, nil
}

// Validate checks the fields an operation needs regardless of database state
func (o *Operation) Validate() error {
	if o.Table == "" {
		return fmt.Errorf("%s requires a table: %w", o.describe(), ir.ErrContractViolation)
	}

	switch o.Op {
	case OpAlterColumn:
		if o.Column == "" {
			return fmt.Errorf("alter_column on %s requires a column: %w", o.Table, ir.ErrContractViolation)
		}
		if o.Default != nil && o.DefaultExpr != "" {
			return fmt.Errorf("alter_column %s.%s sets both default and default_expr: %w", o.Table, o.Column, ir.ErrContractViolation)
		}
		if o.Existing.Default != nil && o.Existing.DefaultExpr != "" {
			return fmt.Errorf("alter_column %s.%s has both existing default and default_expr: %w", o.Table, o.Column, ir.ErrContractViolation)
		}
	case OpDropConstraint:
		if _, err := ir.ParseConstraintKind(o.Kind); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown operation %q: op can be one of %q or %q: %w", o.Op, OpAlterColumn, OpDropConstraint, ir.ErrContractViolation)
	}
	return nil
}

func (o *Operation) describe() string {
	if o.Op == "" {
		return "operation"
	}
	return o.Op
}

// NeedsSnapshot reports whether an alter_column leaves part of the existing column unspecified
func (o *Operation) NeedsSnapshot() bool {
	if o.Op != OpAlterColumn {
		return false
	}
	e := o.Existing
	return e.Type == "" || e.Nullable == nil || e.Autoincrement == nil ||
		(e.Default == nil && e.DefaultExpr == "")
}

// AlterColumnRequest builds the request for an alter_column operation.
// live, when non-nil, supplies whatever the file leaves out of the existing column.
func (o *Operation) AlterColumnRequest(live *ir.InspectedColumn) (*ir.AlterColumnRequest, error) {
	if o.Op != OpAlterColumn {
		return nil, fmt.Errorf("%s is not an alter_column operation", o.describe())
	}

	existing := ir.ColumnSnapshot{
		Name:          o.Column,
		Type:          ir.ParseType(o.Existing.Type),
		Nullable:      o.Existing.Nullable,
		ServerDefault: defaultValue(o.Existing.Default, o.Existing.DefaultExpr),
		OnUpdate:      o.Existing.OnUpdate,
	}
	if o.Existing.Autoincrement != nil {
		existing.Autoincrement = *o.Existing.Autoincrement
	}

	if live != nil {
		if existing.Type == nil {
			existing.Type = live.Type
		}
		if existing.Nullable == nil {
			existing.Nullable = live.Nullable
		}
		if existing.ServerDefault == nil {
			existing.ServerDefault = live.ServerDefault
		}
		if o.Existing.Autoincrement == nil {
			existing.Autoincrement = live.Autoincrement
		}
		if existing.OnUpdate == "" {
			existing.OnUpdate = live.OnUpdate
		}
	}

	change := ir.ColumnChange{
		NewName:       o.NewName,
		Type:          ir.ParseType(o.Type),
		Nullable:      o.Nullable,
		Autoincrement: o.Autoincrement,
	}
	// A new value wins over a removal
	switch {
	case o.Default != nil || o.DefaultExpr != "":
		change.ServerDefault = ir.SetDefault(defaultValue(o.Default, o.DefaultExpr))
	case o.DropDefault:
		change.ServerDefault = ir.DropDefault()
	}

	return &ir.AlterColumnRequest{
		Schema:   o.Schema,
		Table:    o.Table,
		Existing: existing,
		Change:   change,
	}, nil
}

// DropConstraintRequest builds the request for a drop_constraint operation
func (o *Operation) DropConstraintRequest() (*ir.DropConstraintRequest, error) {
	if o.Op != OpDropConstraint {
		return nil, fmt.Errorf("%s is not a drop_constraint operation", o.describe())
	}
	kind, err := ir.ParseConstraintKind(o.Kind)
	if err != nil {
		return nil, err
	}
	return &ir.DropConstraintRequest{
		Schema: o.Schema,
		Table:  o.Table,
		Name:   o.Name,
		Kind:   kind,
	}, nil
}

func defaultValue(literal any, expr string) ir.DefaultValue {
	if expr != "" {
		return ir.RawSQL(expr)
	}
	if literal != nil {
		return ir.Literal{Value: literal}
	}
	return nil
}

package diff

import (
	"errors"
	"testing"

	"github.com/myschema/myschema/ir"
)

func TestDropConstraint(t *testing.T) {
	tests := []struct {
		name string
		req  ir.DropConstraintRequest
		want string
	}{
		{
			name: "unique drops the index",
			req:  ir.DropConstraintRequest{Table: "t1", Name: "f1", Kind: ir.ConstraintKindUnique},
			want: "ALTER TABLE t1 DROP INDEX f1",
		},
		{
			name: "primary key ignores the name",
			req:  ir.DropConstraintRequest{Table: "t1", Name: "primary", Kind: ir.ConstraintKindPrimaryKey},
			want: "ALTER TABLE t1 DROP PRIMARY KEY",
		},
		{
			name: "primary key without name",
			req:  ir.DropConstraintRequest{Table: "t1", Kind: ir.ConstraintKindPrimaryKey},
			want: "ALTER TABLE t1 DROP PRIMARY KEY",
		},
		{
			name: "foreign key",
			req:  ir.DropConstraintRequest{Table: "t1", Name: "f1", Kind: ir.ConstraintKindForeignKey},
			want: "ALTER TABLE t1 DROP FOREIGN KEY f1",
		},
		{
			name: "quoted names",
			req:  ir.DropConstraintRequest{Schema: "App", Table: "Orders", Name: "fk_Customer", Kind: ir.ConstraintKindForeignKey},
			want: "ALTER TABLE `App`.`Orders` DROP FOREIGN KEY `fk_Customer`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DropConstraint(&tt.req)
			if err != nil {
				t.Fatalf("DropConstraint() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DropConstraint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDropConstraintErrors(t *testing.T) {
	tests := []struct {
		name     string
		req      *ir.DropConstraintRequest
		category error
		message  string
	}{
		{
			name:     "check is unsupported",
			req:      &ir.DropConstraintRequest{Table: "t1", Name: "ck1", Kind: ir.ConstraintKindCheck},
			category: ErrUnsupportedByDialect,
			message:  "MySQL does not support CHECK constraints.",
		},
		{
			name:     "unspecified kind is ambiguous",
			req:      &ir.DropConstraintRequest{Table: "t1", Name: "f1"},
			category: ErrUnsupportedByDialect,
			message:  "No generic 'DROP CONSTRAINT' in MySQL - please specify constraint type",
		},
		{
			name:     "invalid kind",
			req:      &ir.DropConstraintRequest{Table: "t1", Name: "f1", Kind: "exclude"},
			category: ErrContractViolation,
			message:  `constraint type "exclude" is invalid: type can be one of 'check', 'foreignkey', 'primary', 'unique', or empty`,
		},
		{
			name:     "unique without name",
			req:      &ir.DropConstraintRequest{Table: "t1", Kind: ir.ConstraintKindUnique},
			category: ErrContractViolation,
			message:  "dropping a unique constraint on t1 requires a constraint name",
		},
		{
			name:     "foreign key without name",
			req:      &ir.DropConstraintRequest{Table: "t1", Kind: ir.ConstraintKindForeignKey},
			category: ErrContractViolation,
			message:  "dropping a foreignkey constraint on t1 requires a constraint name",
		},
		{
			name:     "nil request",
			req:      nil,
			category: ErrContractViolation,
			message:  "drop constraint requires a table: contract violation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DropConstraint(tt.req)
			if err == nil {
				t.Fatalf("DropConstraint() = %q, want error", got)
			}
			if got != "" {
				t.Errorf("DropConstraint() = %q, want no output", got)
			}
			if !errors.Is(err, tt.category) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.category)
			}
			if err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestDropConstraintErrorTypes(t *testing.T) {
	_, err := DropConstraint(&ir.DropConstraintRequest{Table: "t1", Name: "ck1", Kind: ir.ConstraintKindCheck})
	var unsupported *UnsupportedConstraintError
	if !errors.As(err, &unsupported) {
		t.Errorf("check drop error = %T, want *UnsupportedConstraintError", err)
	}

	_, err = DropConstraint(&ir.DropConstraintRequest{Table: "t1", Name: "f1"})
	var ambiguous *AmbiguousDropError
	if !errors.As(err, &ambiguous) {
		t.Errorf("unspecified drop error = %T, want *AmbiguousDropError", err)
	}

	_, err = DropConstraint(&ir.DropConstraintRequest{Table: "t1", Name: "f1", Kind: "bogus"})
	var invalid *ir.InvalidKindError
	if !errors.As(err, &invalid) {
		t.Errorf("invalid kind error = %T, want *ir.InvalidKindError", err)
	}
}

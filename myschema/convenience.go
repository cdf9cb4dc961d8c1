package myschema

import (
	"context"

	"github.com/myschema/myschema/internal/diff"
	"github.com/myschema/myschema/internal/plan"
	"github.com/myschema/myschema/ir"
)

// AlterColumn renders the single ALTER TABLE statement for a column change.
// The request must carry the existing type.
func AlterColumn(req *AlterColumnRequest) (string, error) {
	return diff.AlterColumn(req)
}

// DropConstraint renders the ALTER TABLE statement dropping a constraint.
func DropConstraint(req *DropConstraintRequest) (string, error) {
	return diff.DropConstraint(req)
}

// CompareDefault normalizes a declared and an introspected default and reports
// whether they differ. introspected is nil when the column has no default.
func CompareDefault(declared DefaultValue, introspected *string) DefaultComparison {
	return diff.CompareDefault(declared, introspected)
}

// ServerDefaultDiffers reports whether the stored default must be altered.
func ServerDefaultDiffers(declared DefaultValue, introspected *string) bool {
	return diff.ServerDefaultDiffers(declared, introspected)
}

// ParseType converts a MySQL type string such as "varchar(20)" into a Type.
func ParseType(s string) Type {
	return ir.ParseType(s)
}

// ParseOperations decodes an operations file held in memory. format is one
// of yaml, json or toml.
func ParseOperations(data []byte, format string) (*OperationFile, error) {
	return plan.ParseOperations(data, format)
}

// RenderOperations renders a decoded operations file without a database.
func RenderOperations(ctx context.Context, file *OperationFile) (*Plan, error) {
	return plan.Generate(ctx, file, nil)
}

// GeneratePlan is a convenience function to plan an operations file against a database.
func GeneratePlan(ctx context.Context, dbConfig DatabaseConfig, operationsFile string) (*Plan, error) {
	client := NewClient(dbConfig)
	return client.Plan(ctx, PlanOptions{
		File: operationsFile,
	})
}

// ApplyOperationsFile plans an operations file and applies it in one operation.
func ApplyOperationsFile(ctx context.Context, dbConfig DatabaseConfig, operationsFile string, autoApprove bool) error {
	client := NewClient(dbConfig)
	return client.Apply(ctx, ApplyOptions{
		File:        operationsFile,
		AutoApprove: autoApprove,
	})
}

// ApplyPlan is a convenience function to apply a pre-generated plan.
func ApplyPlan(ctx context.Context, dbConfig DatabaseConfig, migrationPlan *Plan, autoApprove bool) error {
	client := NewClient(dbConfig)
	return client.Apply(ctx, ApplyOptions{
		Plan:        migrationPlan,
		AutoApprove: autoApprove,
	})
}

// QuietApplyPlan is like ApplyPlan but suppresses all output except errors.
func QuietApplyPlan(ctx context.Context, dbConfig DatabaseConfig, migrationPlan *Plan) error {
	client := NewClient(dbConfig)
	return client.Apply(ctx, ApplyOptions{
		Plan:        migrationPlan,
		AutoApprove: true,
		Quiet:       true,
	})
}

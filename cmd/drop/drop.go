package drop

import (
	"fmt"

	"github.com/myschema/myschema/internal/diff"
	"github.com/myschema/myschema/internal/plan"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	dropSchema string
	dropTable  string
	dropName   string
	dropKind   string
)

var DropConstraintCmd = &cobra.Command{
	Use:   "drop-constraint",
	Short: "Render the ALTER TABLE statement dropping a constraint",
	Long: `Render the MySQL statement dropping a named constraint.

MySQL has no generic DROP CONSTRAINT, so --type is required:
  foreignkey  ALTER TABLE t DROP FOREIGN KEY name
  primary     ALTER TABLE t DROP PRIMARY KEY
  unique      ALTER TABLE t DROP INDEX name
CHECK constraints cannot be dropped.`,
	RunE:         runDropConstraint,
	SilenceUsage: true,
}

func init() {
	DropConstraintCmd.Flags().StringVar(&dropSchema, "schema", "", "Database (schema) that holds the table")
	DropConstraintCmd.Flags().StringVar(&dropTable, "table", "", "Table name (required)")
	DropConstraintCmd.Flags().StringVar(&dropName, "name", "", "Constraint name")
	DropConstraintCmd.Flags().StringVar(&dropKind, "type", "", "Constraint type: foreignkey, primary, unique or check")

	DropConstraintCmd.MarkFlagRequired("table")
}

func runDropConstraint(cmd *cobra.Command, args []string) error {
	op := &plan.Operation{
		Op:     plan.OpDropConstraint,
		Schema: dropSchema,
		Table:  dropTable,
		Name:   dropName,
		Kind:   dropKind,
	}

	req, err := op.DropConstraintRequest()
	if err != nil {
		return err
	}

	sql, err := diff.DropConstraint(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", sql)
	return nil
}

// ResetFlags resets all global flag variables to their default values for testing
func ResetFlags() {
	dropSchema, dropTable, dropName, dropKind = "", "", "", ""
	DropConstraintCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

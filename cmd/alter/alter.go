package alter

import (
	"context"
	"fmt"

	"github.com/myschema/myschema/cmd/util"
	"github.com/myschema/myschema/internal/diff"
	"github.com/myschema/myschema/internal/plan"
	"github.com/myschema/myschema/ir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	alterSchema        string
	alterTable         string
	alterColumn        string
	alterNewName       string
	alterType          string
	alterNullable      bool
	alterDefault       string
	alterDefaultExpr   string
	alterDropDefault   bool
	alterAutoincrement bool

	existingType          string
	existingNullable      bool
	existingDefault       string
	existingDefaultExpr   string
	existingAutoincrement bool
	existingOnUpdate      string

	alterFromDB bool
	alterConn   util.ConnectionFlags
)

var AlterColumnCmd = &cobra.Command{
	Use:   "alter-column",
	Short: "Render the ALTER TABLE statement for a column change",
	Long: `Render the single MySQL ALTER TABLE ... CHANGE statement for a column change.

MySQL restates the whole column definition on every change, so the existing
type is required. Pass it with --existing-type or read the current column from
the database with --from-db.`,
	RunE:         runAlterColumn,
	SilenceUsage: true,
}

func init() {
	flags := AlterColumnCmd.Flags()
	flags.StringVar(&alterSchema, "schema", "", "Database (schema) that holds the table")
	flags.StringVar(&alterTable, "table", "", "Table name (required)")
	flags.StringVar(&alterColumn, "column", "", "Column name (required)")

	flags.StringVar(&alterNewName, "new-name", "", "Rename the column")
	flags.StringVar(&alterType, "type", "", "New column type, e.g. integer or varchar(20)")
	flags.BoolVar(&alterNullable, "nullable", true, "Set nullability (--nullable=false for NOT NULL)")
	flags.StringVar(&alterDefault, "default", "", "New default as a string literal")
	flags.StringVar(&alterDefaultExpr, "default-expr", "", "New default as SQL, e.g. CURRENT_TIMESTAMP")
	flags.BoolVar(&alterDropDefault, "drop-default", false, "Remove the default")
	flags.BoolVar(&alterAutoincrement, "autoincrement", false, "Set AUTO_INCREMENT on or off")

	flags.StringVar(&existingType, "existing-type", "", "Current column type")
	flags.BoolVar(&existingNullable, "existing-nullable", true, "Current nullability")
	flags.StringVar(&existingDefault, "existing-default", "", "Current default as a string literal")
	flags.StringVar(&existingDefaultExpr, "existing-default-expr", "", "Current default as SQL")
	flags.BoolVar(&existingAutoincrement, "existing-autoincrement", false, "Whether the column currently has AUTO_INCREMENT")
	flags.StringVar(&existingOnUpdate, "existing-on-update", "", "Current ON UPDATE expression, kept on the changed column")

	flags.BoolVar(&alterFromDB, "from-db", false, "Read the current column from the database")
	util.AddConnectionFlags(AlterColumnCmd, &alterConn)

	AlterColumnCmd.MarkFlagRequired("table")
	AlterColumnCmd.MarkFlagRequired("column")
	AlterColumnCmd.MarkFlagsMutuallyExclusive("default", "default-expr")
	AlterColumnCmd.MarkFlagsMutuallyExclusive("existing-default", "existing-default-expr")
}

func runAlterColumn(cmd *cobra.Command, args []string) error {
	op := OperationFromFlags(cmd)
	if err := op.Validate(); err != nil {
		return err
	}

	var live *ir.InspectedColumn
	if alterFromDB {
		util.ApplyEnvVars(cmd, &alterConn)
		if err := alterConn.Validate(); err != nil {
			return err
		}
		var err error
		live, err = util.InspectColumn(context.Background(), alterConn.Config(), op.Schema, op.Table, op.Column)
		if err != nil {
			return fmt.Errorf("failed to read current column: %w", err)
		}
	}

	req, err := op.AlterColumnRequest(live)
	if err != nil {
		return err
	}

	sql, err := diff.AlterColumn(req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", sql)
	return nil
}

// OperationFromFlags turns the parsed flags into an alter_column operation.
// Only flags the user set explicitly take part.
func OperationFromFlags(cmd *cobra.Command) *plan.Operation {
	flags := cmd.Flags()
	op := &plan.Operation{
		Op:          plan.OpAlterColumn,
		Schema:      alterSchema,
		Table:       alterTable,
		Column:      alterColumn,
		NewName:     alterNewName,
		Type:        alterType,
		DefaultExpr: alterDefaultExpr,
		DropDefault: alterDropDefault,
		Existing: plan.ExistingColumn{
			Type:        existingType,
			DefaultExpr: existingDefaultExpr,
			OnUpdate:    existingOnUpdate,
		},
	}

	if flags.Changed("nullable") {
		op.Nullable = ir.Bool(alterNullable)
	}
	if flags.Changed("default") {
		op.Default = alterDefault
	}
	if flags.Changed("autoincrement") {
		op.Autoincrement = ir.Bool(alterAutoincrement)
	}
	if flags.Changed("existing-nullable") {
		op.Existing.Nullable = ir.Bool(existingNullable)
	}
	if flags.Changed("existing-default") {
		op.Existing.Default = existingDefault
	}
	if flags.Changed("existing-autoincrement") {
		op.Existing.Autoincrement = ir.Bool(existingAutoincrement)
	}
	return op
}

// ResetFlags resets all global flag variables to their default values for testing
func ResetFlags() {
	alterSchema, alterTable, alterColumn, alterNewName, alterType = "", "", "", "", ""
	alterNullable = true
	alterDefault, alterDefaultExpr = "", ""
	alterDropDefault, alterAutoincrement = false, false
	existingType, existingDefault, existingDefaultExpr, existingOnUpdate = "", "", "", ""
	existingNullable = true
	existingAutoincrement = false
	alterFromDB = false
	alterConn = util.ConnectionFlags{Host: "localhost", Port: 3306}

	AlterColumnCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

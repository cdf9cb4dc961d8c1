package compare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/myschema/myschema/cmd/util"
	"github.com/myschema/myschema/internal/diff"
	"github.com/myschema/myschema/ir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	compareSchema       string
	compareTable        string
	compareColumn       string
	compareDefault      string
	compareDefaultExpr  string
	compareIntrospected string
	compareNoDefault    bool
	compareJSON         bool
	compareExitCode     bool
	compareConn         util.ConnectionFlags
)

// ErrDefaultDiffers is returned with --exit-code when the defaults differ
var ErrDefaultDiffers = errors.New("server default differs")

var CompareDefaultCmd = &cobra.Command{
	Use:   "compare-default",
	Short: "Check whether a declared default matches the database",
	Long: `Compare a declared column default with the default MySQL reports.

The current default is read from information_schema unless it is given with
--introspected (or --introspected-none for a column without a default).
Spellings MySQL treats as the same, such as NOW() and CURRENT_TIMESTAMP,
compare equal.`,
	RunE:         runCompareDefault,
	SilenceUsage: true,
}

func init() {
	flags := CompareDefaultCmd.Flags()
	flags.StringVar(&compareSchema, "schema", "", "Database (schema) that holds the table")
	flags.StringVar(&compareTable, "table", "", "Table name")
	flags.StringVar(&compareColumn, "column", "", "Column name")
	flags.StringVar(&compareDefault, "default", "", "Declared default as a string literal")
	flags.StringVar(&compareDefaultExpr, "default-expr", "", "Declared default as SQL")
	flags.StringVar(&compareIntrospected, "introspected", "", "Use this introspected default instead of querying the database")
	flags.BoolVar(&compareNoDefault, "introspected-none", false, "The column has no default; do not query the database")
	flags.BoolVar(&compareJSON, "json", false, "Print the comparison as JSON")
	flags.BoolVar(&compareExitCode, "exit-code", false, "Fail when the defaults differ")
	util.AddConnectionFlags(CompareDefaultCmd, &compareConn)

	CompareDefaultCmd.MarkFlagsMutuallyExclusive("default", "default-expr")
	CompareDefaultCmd.MarkFlagsMutuallyExclusive("introspected", "introspected-none")
}

func runCompareDefault(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	var declared ir.DefaultValue
	switch {
	case flags.Changed("default-expr"):
		declared = ir.RawSQL(compareDefaultExpr)
	case flags.Changed("default"):
		declared = ir.Literal{Value: compareDefault}
	}

	var introspected *string
	switch {
	case flags.Changed("introspected"):
		introspected = &compareIntrospected
	case compareNoDefault:
	default:
		if compareTable == "" || compareColumn == "" {
			return fmt.Errorf("--table and --column are required to read the default from the database")
		}
		util.ApplyEnvVars(cmd, &compareConn)
		if err := compareConn.Validate(); err != nil {
			return err
		}
		column, err := util.InspectColumn(context.Background(), compareConn.Config(), compareSchema, compareTable, compareColumn)
		if err != nil {
			return fmt.Errorf("failed to read current column: %w", err)
		}
		introspected = column.Default
	}

	result := diff.CompareDefault(declared, introspected)

	out := cmd.OutOrStdout()
	if compareJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal comparison to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprintln(out, formatResult(result))
	}

	if compareExitCode && result.Differs {
		return ErrDefaultDiffers
	}
	return nil
}

func formatResult(r diff.DefaultComparison) string {
	declared, introspected := r.Declared, r.Introspected
	if declared == "" {
		declared = "(none)"
	}
	if introspected == "" {
		introspected = "(none)"
	}

	verdict := "equivalent"
	switch {
	case r.Differs:
		verdict = "differs"
	case r.Rule != "":
		verdict = fmt.Sprintf("equivalent (rule %s)", r.Rule)
	}
	return fmt.Sprintf("declared:     %s\nintrospected: %s\nresult:       %s", declared, introspected, verdict)
}

// ResetFlags resets all global flag variables to their default values for testing
func ResetFlags() {
	compareSchema, compareTable, compareColumn = "", "", ""
	compareDefault, compareDefaultExpr, compareIntrospected = "", "", ""
	compareNoDefault, compareJSON, compareExitCode = false, false, false
	compareConn = util.ConnectionFlags{Host: "localhost", Port: 3306}
	CompareDefaultCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

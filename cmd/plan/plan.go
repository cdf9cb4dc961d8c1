package plan

import (
	"context"
	"fmt"
	"os"

	"github.com/myschema/myschema/cmd/util"
	"github.com/myschema/myschema/internal/plan"
	"github.com/myschema/myschema/ir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	planFile    string
	planFromDB  bool
	outputHuman string
	outputJSON  string
	outputSQL   string
	planNoColor bool
	planConn    util.ConnectionFlags
)

var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Render the statements for an operations file",
	Long: `Render the MySQL statements for every operation in an operations file
(YAML, JSON or TOML). With --from-db, columns whose existing definition is
incomplete in the file are read from the database first.`,
	RunE:         runPlan,
	SilenceUsage: true,
}

func init() {
	PlanCmd.Flags().StringVar(&planFile, "file", "", "Path to the operations file (required)")
	PlanCmd.Flags().BoolVar(&planFromDB, "from-db", false, "Fill in existing column definitions from the database")
	util.AddConnectionFlags(PlanCmd, &planConn)

	// Output flags
	PlanCmd.Flags().StringVar(&outputHuman, "output-human", "", "Output human-readable format to stdout or file path")
	PlanCmd.Flags().StringVar(&outputJSON, "output-json", "", "Output JSON format to stdout or file path")
	PlanCmd.Flags().StringVar(&outputSQL, "output-sql", "", "Output SQL format to stdout or file path")
	PlanCmd.Flags().BoolVar(&planNoColor, "no-color", false, "Disable colored output")

	PlanCmd.MarkFlagRequired("file")
}

func runPlan(cmd *cobra.Command, args []string) error {
	var conn *util.ConnectionConfig
	if planFromDB {
		util.ApplyEnvVars(cmd, &planConn)
		if err := planConn.Validate(); err != nil {
			return err
		}
		conn = planConn.Config()
	}

	migrationPlan, err := GeneratePlan(context.Background(), planFile, conn)
	if err != nil {
		return err
	}

	// Determine which outputs to generate
	outputs, err := determineOutputs()
	if err != nil {
		return err
	}

	for _, output := range outputs {
		if err := processOutput(migrationPlan, output, cmd); err != nil {
			return err
		}
	}

	return nil
}

// GeneratePlan loads the operations file and renders it. conn, when non-nil,
// is used to read existing column definitions the file leaves out.
func GeneratePlan(ctx context.Context, file string, conn *util.ConnectionConfig) (*plan.Plan, error) {
	ops, err := plan.LoadOperations(file)
	if err != nil {
		return nil, err
	}

	if conn == nil {
		return plan.Generate(ctx, ops, nil)
	}

	db, err := util.Connect(ctx, conn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return plan.Generate(ctx, ops, ir.NewInspector(db))
}

// outputSpec is one requested output: a format and its destination
type outputSpec struct {
	format string // "human", "json", or "sql"
	target string // "stdout" or file path
}

// determineOutputs parses the output flags and returns the list of outputs to generate
func determineOutputs() ([]outputSpec, error) {
	var outputs []outputSpec
	stdoutCount := 0

	if outputHuman != "" {
		if outputHuman == "stdout" {
			stdoutCount++
		}
		outputs = append(outputs, outputSpec{format: "human", target: outputHuman})
	}

	if outputJSON != "" {
		if outputJSON == "stdout" {
			stdoutCount++
		}
		outputs = append(outputs, outputSpec{format: "json", target: outputJSON})
	}

	if outputSQL != "" {
		if outputSQL == "stdout" {
			stdoutCount++
		}
		outputs = append(outputs, outputSpec{format: "sql", target: outputSQL})
	}

	if stdoutCount > 1 {
		return nil, fmt.Errorf("only one output format can use stdout")
	}

	// Default behavior: if no outputs specified, output human to stdout
	if len(outputs) == 0 {
		outputs = append(outputs, outputSpec{format: "human", target: "stdout"})
	}

	return outputs, nil
}

// processOutput writes the plan in the specified format to the target destination
func processOutput(migrationPlan *plan.Plan, output outputSpec, cmd *cobra.Command) error {
	var content string
	var err error

	switch output.format {
	case "human":
		// Color only on stdout, unless explicitly disabled
		useColor := output.target == "stdout" && !planNoColor
		content = migrationPlan.HumanColored(useColor)
	case "json":
		content, err = migrationPlan.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to generate JSON output: %w", err)
		}
		content += "\n"
	case "sql":
		content = migrationPlan.ToSQL()
	default:
		return fmt.Errorf("unknown output format: %s", output.format)
	}

	if output.target == "stdout" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(output.target, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s output to %s: %w", output.format, output.target, err)
	}
	return nil
}

// ResetFlags resets all global flag variables to their default values for testing
func ResetFlags() {
	planFile = ""
	planFromDB = false
	outputHuman = ""
	outputJSON = ""
	outputSQL = ""
	planNoColor = false
	planConn = util.ConnectionFlags{Host: "localhost", Port: 3306}
	PlanCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

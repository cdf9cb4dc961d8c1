package cmd

import (
	"fmt"
	"os"

	"github.com/myschema/myschema/cmd/alter"
	"github.com/myschema/myschema/cmd/apply"
	"github.com/myschema/myschema/cmd/compare"
	"github.com/myschema/myschema/cmd/drop"
	"github.com/myschema/myschema/cmd/plan"
	"github.com/myschema/myschema/internal/logger"
	"github.com/myschema/myschema/internal/version"
	"github.com/spf13/cobra"
)

var Debug bool

var RootCmd = &cobra.Command{
	Use:   "myschema",
	Short: "MySQL column and constraint DDL generator",
	Long: fmt.Sprintf(`myschema renders MySQL ALTER TABLE statements for column changes and
constraint drops, and checks declared column defaults against the database.

Version: %s

Commands:
  alter-column     Render a column change
  drop-constraint  Render a constraint drop
  compare-default  Compare a declared default with the database
  plan             Render the statements for an operations file
  apply            Execute the statements for an operations file

Use "myschema [command] --help" for more information about a command.`, version.String()),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable debug logging")
	RootCmd.AddCommand(alter.AlterColumnCmd)
	RootCmd.AddCommand(drop.DropConstraintCmd)
	RootCmd.AddCommand(compare.CompareDefaultCmd)
	RootCmd.AddCommand(plan.PlanCmd)
	RootCmd.AddCommand(apply.ApplyCmd)
	RootCmd.AddCommand(VersionCmd)
}

func setupLogger() {
	logger.SetGlobal(logger.New(os.Stderr, Debug), Debug)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package apply

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/myschema/myschema/cmd/util"
	"github.com/myschema/myschema/internal/plan"
	"github.com/myschema/myschema/ir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	applyFile        string
	applyPlan        string
	applyAutoApprove bool
	applyNoColor     bool
	applyDryRun      bool
	applyLockTimeout int
	applyConn        util.ConnectionFlags
)

var ApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Execute the statements for an operations file",
	Long: `Render the operations file against the live database and execute the
statements in order. Each statement commits on its own: MySQL DDL is not
transactional, so a failure leaves earlier statements applied.`,
	RunE:         runApply,
	SilenceUsage: true,
	PreRunE:      util.PreRunEWithEnvVars(&applyConn),
}

func init() {
	util.AddConnectionFlags(ApplyCmd, &applyConn)

	ApplyCmd.Flags().StringVar(&applyFile, "file", "", "Path to the operations file")
	ApplyCmd.Flags().StringVar(&applyPlan, "plan", "", "Path to a plan written by 'plan --output-json'")

	// Apply behavior flags
	ApplyCmd.Flags().BoolVar(&applyAutoApprove, "auto-approve", false, "Apply changes without prompting for approval")
	ApplyCmd.Flags().BoolVar(&applyNoColor, "no-color", false, "Disable colored output")
	ApplyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show plan without applying changes")
	ApplyCmd.Flags().IntVar(&applyLockTimeout, "lock-timeout", 0, "Seconds to wait for metadata locks (lock_wait_timeout); 0 keeps the server setting")

	ApplyCmd.MarkFlagsOneRequired("file", "plan")
	ApplyCmd.MarkFlagsMutuallyExclusive("file", "plan")
}

func runApply(cmd *cobra.Command, args []string) error {
	var migrationPlan *plan.Plan
	if applyPlan != "" {
		data, err := os.ReadFile(applyPlan)
		if err != nil {
			return fmt.Errorf("failed to read plan file: %w", err)
		}
		if migrationPlan, err = plan.FromJSON(data); err != nil {
			return err
		}
	}

	config := &ApplyConfig{
		Connection:  applyConn.Config(),
		File:        applyFile,
		Plan:        migrationPlan,
		AutoApprove: applyAutoApprove,
		NoColor:     applyNoColor,
		DryRun:      applyDryRun,
		LockTimeout: applyLockTimeout,
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
	}
	return ApplyMigration(context.Background(), config)
}

// ApplyConfig holds the settings of one apply run
type ApplyConfig struct {
	Connection *util.ConnectionConfig
	// File is rendered against the live database unless Plan is set
	File string
	Plan *plan.Plan

	AutoApprove bool
	NoColor     bool
	DryRun      bool
	// Quiet suppresses the plan display and progress messages
	Quiet bool
	// LockTimeout is the session lock_wait_timeout in seconds, 0 to keep the server setting
	LockTimeout int

	In  io.Reader
	Out io.Writer
}

// ApplyMigration renders (or takes) a plan and executes it statement by statement
func ApplyMigration(ctx context.Context, config *ApplyConfig) error {
	if config.File == "" && config.Plan == nil {
		return fmt.Errorf("either File or Plan must be provided")
	}

	out := config.Out
	if out == nil || config.Quiet {
		out = io.Discard
	}

	conn, err := util.Connect(ctx, config.Connection)
	if err != nil {
		return err
	}
	defer conn.Close()

	migrationPlan := config.Plan
	if migrationPlan != nil {
		if err := migrationPlan.CheckSource(ctx, ir.NewInspector(conn)); err != nil {
			return err
		}
	} else {
		ops, err := plan.LoadOperations(config.File)
		if err != nil {
			return err
		}
		migrationPlan, err = plan.Generate(ctx, ops, ir.NewInspector(conn))
		if err != nil {
			return err
		}
	}

	if !migrationPlan.HasAnyChanges() {
		fmt.Fprintln(out, "No changes to apply.")
		return nil
	}

	fmt.Fprint(out, migrationPlan.HumanColored(!config.NoColor))

	if config.DryRun {
		return nil
	}

	if !config.AutoApprove {
		in := config.In
		if in == nil {
			in = os.Stdin
		}
		approved, err := approve(in, out)
		if err != nil {
			return err
		}
		if !approved {
			fmt.Fprintln(out, "Apply cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "\nApplying changes...")
	if err := executePlan(ctx, conn, migrationPlan, config.LockTimeout, out); err != nil {
		return err
	}
	fmt.Fprintln(out, "Changes applied successfully!")
	return nil
}

// approve prompts on in. A terminal file is required so a piped or redirected
// stdin cannot answer by accident; other readers are scripted input.
func approve(in io.Reader, out io.Writer) (bool, error) {
	if f, ok := in.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false, fmt.Errorf("stdin is not a terminal; use --auto-approve to apply without confirmation")
	}
	return confirm(in, out)
}

// confirm asks for approval and reports whether the answer was yes
func confirm(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "\nDo you want to apply these changes? (yes/no): ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}

// executePlan runs the plan's statements one at a time and stops at the first failure
func executePlan(ctx context.Context, db util.Execer, migrationPlan *plan.Plan, lockTimeout int, out io.Writer) error {
	if lockTimeout > 0 {
		stmt := fmt.Sprintf("SET SESSION lock_wait_timeout = %d", lockTimeout)
		if _, err := util.ExecContextWithLogging(ctx, db, stmt, "set lock timeout"); err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	for i, step := range migrationPlan.Steps {
		fmt.Fprintf(out, "Executing: %s;\n", step.SQL)
		if _, err := util.ExecContextWithLogging(ctx, db, step.SQL, step.Address()); err != nil {
			return fmt.Errorf("failed to apply statement %d '%s' (%d of %d applied): %w",
				i+1, step.SQL, i, len(migrationPlan.Steps), err)
		}
	}
	return nil
}

// ResetFlags resets all global flag variables to their default values for testing
func ResetFlags() {
	applyFile = ""
	applyPlan = ""
	applyAutoApprove = false
	applyNoColor = false
	applyDryRun = false
	applyLockTimeout = 0
	applyConn = util.ConnectionFlags{Host: "localhost", Port: 3306}
	ApplyCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/myschema/myschema/internal/color"
	"github.com/myschema/myschema/internal/diff"
	"github.com/myschema/myschema/internal/fingerprint"
	"github.com/myschema/myschema/internal/logger"
	"github.com/myschema/myschema/internal/version"
	"github.com/myschema/myschema/ir"
)

// planFormatVersion is bumped when the JSON layout changes
const planFormatVersion = "1.0.0"

// Plan is the ordered list of statements an operations file turns into
type Plan struct {
	Steps     []Step    `json:"steps"`
	CreatedAt time.Time `json:"created_at"`

	// InspectedTables lists, per schema, the tables read from the database
	InspectedTables map[string][]string `json:"inspected_tables,omitempty"`
	// SourceFingerprint hashes those tables as they were when the plan was rendered
	SourceFingerprint *fingerprint.SchemaFingerprint `json:"source_fingerprint,omitempty"`
}

// Step is one rendered statement and the operation it came from
type Step struct {
	Operation string `json:"operation"`
	// Action is "change" for column alterations and "destroy" for drops
	Action string `json:"action"`
	Schema string `json:"schema,omitempty"`
	Table  string `json:"table"`
	Target string `json:"target"`
	SQL    string `json:"sql"`
}

// Address identifies the object a step touches, e.g. "app.t1.c1"
func (s Step) Address() string {
	parts := []string{s.Table, s.Target}
	if s.Schema != "" {
		parts = append([]string{s.Schema}, parts...)
	}
	return strings.Join(parts, ".")
}

// ObjectType groups steps in the summary
func (s Step) ObjectType() string {
	if s.Operation == OpDropConstraint {
		return "constraints"
	}
	return "columns"
}

// PlanJSON is the structured JSON output format
type PlanJSON struct {
	Version           string                         `json:"version"`
	MyschemaVersion   string                         `json:"myschema_version"`
	CreatedAt         time.Time                      `json:"created_at"`
	SourceFingerprint *fingerprint.SchemaFingerprint `json:"source_fingerprint,omitempty"`
	InspectedTables   map[string][]string            `json:"inspected_tables,omitempty"`
	Summary           PlanSummary                    `json:"summary"`
	Steps             []Step                         `json:"steps"`
}

// PlanSummary provides counts of changes by type
type PlanSummary struct {
	Add     int                    `json:"add"`
	Change  int                    `json:"change"`
	Destroy int                    `json:"destroy"`
	Total   int                    `json:"total"`
	ByType  map[string]TypeSummary `json:"by_type"`
}

// TypeSummary provides counts for a specific object type
type TypeSummary struct {
	Add     int `json:"add"`
	Change  int `json:"change"`
	Destroy int `json:"destroy"`
}

// objectOrder is the display order of object types
var objectOrder = []string{"columns", "constraints"}

// SnapshotSource supplies the live state of tables referenced by alter_column operations
type SnapshotSource interface {
	InspectTables(ctx context.Context, schema string, tables []string) (map[string]*ir.InspectedTable, error)
}

// Generate renders every operation of file in order. When source is non-nil,
// tables whose alter_column operations leave the existing column incomplete
// are inspected first, one concurrent batch per schema.
func Generate(ctx context.Context, file *OperationFile, source SnapshotSource) (*Plan, error) {
	p := &Plan{CreatedAt: time.Now()}

	var snapshots map[string]map[string]*ir.InspectedTable
	if source != nil {
		p.InspectedTables = tablesToInspect(file)

		var err error
		snapshots, err = inspect(ctx, source, p.InspectedTables)
		if err != nil {
			return nil, err
		}
		if len(snapshots) > 0 {
			if p.SourceFingerprint, err = fingerprint.ComputeFingerprint(snapshots); err != nil {
				return nil, err
			}
		}
	}

	for i := range file.Operations {
		op := &file.Operations[i]

		step, err := renderStep(op, snapshots)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s %s): %w", i+1, op.Op, op.Table, err)
		}
		logger.Get().Debug("Rendered operation", "index", i+1, "op", op.Op, "sql", step.SQL)
		p.Steps = append(p.Steps, step)
	}
	return p, nil
}

// tablesToInspect groups, per schema, the tables whose alter_column
// operations leave the existing column incomplete
func tablesToInspect(file *OperationFile) map[string][]string {
	tablesBySchema := make(map[string][]string)
	seen := make(map[string]bool)
	for i := range file.Operations {
		op := &file.Operations[i]
		if !op.NeedsSnapshot() {
			continue
		}
		key := op.Schema + "." + op.Table
		if seen[key] {
			continue
		}
		seen[key] = true
		tablesBySchema[op.Schema] = append(tablesBySchema[op.Schema], op.Table)
	}
	if len(tablesBySchema) == 0 {
		return nil
	}
	return tablesBySchema
}

func inspect(ctx context.Context, source SnapshotSource, tablesBySchema map[string][]string) (map[string]map[string]*ir.InspectedTable, error) {
	snapshots := make(map[string]map[string]*ir.InspectedTable, len(tablesBySchema))
	for schema, tables := range tablesBySchema {
		inspected, err := source.InspectTables(ctx, schema, tables)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect tables: %w", err)
		}
		snapshots[schema] = inspected
	}
	return snapshots, nil
}

// CheckSource re-reads the tables the plan was rendered against and fails
// if any of them changed since. Plans rendered without a database always pass.
func (p *Plan) CheckSource(ctx context.Context, source SnapshotSource) error {
	if p.SourceFingerprint == nil || len(p.InspectedTables) == 0 {
		return nil
	}

	snapshots, err := inspect(ctx, source, p.InspectedTables)
	if err != nil {
		return err
	}
	current, err := fingerprint.ComputeFingerprint(snapshots)
	if err != nil {
		return err
	}
	if err := fingerprint.Compare(p.SourceFingerprint, current); err != nil {
		return fmt.Errorf("tables changed since the plan was generated: %w", err)
	}
	return nil
}

// FromJSON loads a plan written by ToJSON
func FromJSON(data []byte) (*Plan, error) {
	var planJSON PlanJSON
	if err := json.Unmarshal(data, &planJSON); err != nil {
		return nil, fmt.Errorf("failed to parse plan JSON: %w", err)
	}
	if planJSON.Version != planFormatVersion {
		return nil, fmt.Errorf("unsupported plan format version %q (expected %q)", planJSON.Version, planFormatVersion)
	}

	return &Plan{
		Steps:             planJSON.Steps,
		CreatedAt:         planJSON.CreatedAt,
		InspectedTables:   planJSON.InspectedTables,
		SourceFingerprint: planJSON.SourceFingerprint,
	}, nil
}

func renderStep(op *Operation, snapshots map[string]map[string]*ir.InspectedTable) (Step, error) {
	step := Step{Operation: op.Op, Schema: op.Schema, Table: op.Table}

	switch op.Op {
	case OpAlterColumn:
		var live *ir.InspectedColumn
		if table := snapshots[op.Schema][op.Table]; table != nil {
			if live = table.Column(op.Column); live == nil {
				return step, fmt.Errorf("column '%s' does not exist in table '%s'", op.Column, op.Table)
			}
		}
		req, err := op.AlterColumnRequest(live)
		if err != nil {
			return step, err
		}
		sql, err := diff.AlterColumn(req)
		if err != nil {
			return step, err
		}
		step.Action = "change"
		step.Target = op.Column
		step.SQL = sql
	case OpDropConstraint:
		req, err := op.DropConstraintRequest()
		if err != nil {
			return step, err
		}
		sql, err := diff.DropConstraint(req)
		if err != nil {
			return step, err
		}
		step.Action = "destroy"
		step.Target = op.Name
		if step.Target == "" {
			step.Target = string(req.Kind)
		}
		step.SQL = sql
	default:
		return step, fmt.Errorf("unknown operation %q", op.Op)
	}
	return step, nil
}

// HumanColored returns a human-readable summary of the plan with color support
func (p *Plan) HumanColored(enableColor bool) string {
	return p.human(color.New(enableColor))
}

func (p *Plan) human(c *color.Color) string {
	var summary strings.Builder

	planJSON := p.convertToStructuredJSON()
	if planJSON.Summary.Total == 0 {
		summary.WriteString("No changes detected.\n")
		return summary.String()
	}

	summary.WriteString(c.FormatPlanHeader(planJSON.Summary.Add, planJSON.Summary.Change, planJSON.Summary.Destroy) + "\n\n")

	summary.WriteString(c.Bold("Summary by type:") + "\n")
	for _, objType := range objectOrder {
		if ts, ok := planJSON.Summary.ByType[objType]; ok {
			summary.WriteString(c.FormatSummaryLine(objType, ts.Add, ts.Change, ts.Destroy) + "\n")
		}
	}
	summary.WriteString("\n")

	for _, objType := range objectOrder {
		if _, ok := planJSON.Summary.ByType[objType]; !ok {
			continue
		}
		displayName := strings.ToUpper(objType[:1]) + objType[1:]
		fmt.Fprintf(&summary, "%s:\n", c.Bold(displayName))

		var steps []Step
		for _, step := range p.Steps {
			if step.ObjectType() == objType {
				steps = append(steps, step)
			}
		}
		sort.SliceStable(steps, func(i, j int) bool {
			return steps[i].Address() < steps[j].Address()
		})
		for _, step := range steps {
			fmt.Fprintf(&summary, "  %s %s\n", c.PlanSymbol(step.Action), step.Address())
		}
		summary.WriteString("\n")
	}

	summary.WriteString(c.Bold("DDL to be executed:") + "\n")
	summary.WriteString(strings.Repeat("-", 50) + "\n\n")
	summary.WriteString(p.ToSQL())

	return summary.String()
}

// ToJSON returns the plan as structured JSON
func (p *Plan) ToJSON() (string, error) {
	data, err := json.MarshalIndent(p.convertToStructuredJSON(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan to JSON: %w", err)
	}
	return string(data), nil
}

// ToSQL returns the statements in execution order, one per line, each terminated by a semicolon
func (p *Plan) ToSQL() string {
	var b strings.Builder
	for _, stmt := range p.Statements() {
		b.WriteString(stmt)
		b.WriteString(";\n")
	}
	return b.String()
}

// Statements returns the bare statements in execution order
func (p *Plan) Statements() []string {
	stmts := make([]string, 0, len(p.Steps))
	for _, step := range p.Steps {
		stmts = append(stmts, step.SQL)
	}
	return stmts
}

// HasAnyChanges reports whether the plan contains any statement
func (p *Plan) HasAnyChanges() bool {
	return len(p.Steps) > 0
}

func (p *Plan) convertToStructuredJSON() *PlanJSON {
	planJSON := &PlanJSON{
		Version:           planFormatVersion,
		MyschemaVersion:   version.App(),
		CreatedAt:         p.CreatedAt,
		SourceFingerprint: p.SourceFingerprint,
		InspectedTables:   p.InspectedTables,
		Steps:             p.Steps,
		Summary:           PlanSummary{ByType: make(map[string]TypeSummary)},
	}
	if planJSON.Steps == nil {
		planJSON.Steps = []Step{}
	}

	for _, step := range p.Steps {
		stats := planJSON.Summary.ByType[step.ObjectType()]
		switch step.Action {
		case "add":
			stats.Add++
			planJSON.Summary.Add++
		case "change":
			stats.Change++
			planJSON.Summary.Change++
		case "destroy":
			stats.Destroy++
			planJSON.Summary.Destroy++
		}
		planJSON.Summary.ByType[step.ObjectType()] = stats
	}
	planJSON.Summary.Total = planJSON.Summary.Add + planJSON.Summary.Change + planJSON.Summary.Destroy

	return planJSON
}

package color

import (
	"fmt"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color is a colorizer that can be enabled or disabled
type Color struct {
	enabled bool

	add     *fcolor.Color
	change  *fcolor.Color
	destroy *fcolor.Color
	bold    *fcolor.Color
	cyan    *fcolor.Color
}

// New creates a Color. Color is only emitted when enabled is true and
// stdout is a color-capable terminal.
func New(enabled bool) *Color {
	return newColor(enabled && shouldEnableColor(os.Stdout.Fd()))
}

func newColor(enabled bool) *Color {
	c := &Color{
		enabled: enabled,
		add:     fcolor.New(fcolor.FgGreen),
		change:  fcolor.New(fcolor.FgYellow),
		destroy: fcolor.New(fcolor.FgRed),
		bold:    fcolor.New(fcolor.Bold),
		cyan:    fcolor.New(fcolor.FgCyan),
	}
	// fatih/color disables itself globally when stdout is not a terminal;
	// our own flag decides instead
	for _, fc := range []*fcolor.Color{c.add, c.change, c.destroy, c.bold, c.cyan} {
		if enabled {
			fc.EnableColor()
		} else {
			fc.DisableColor()
		}
	}
	return c
}

// shouldEnableColor checks NO_COLOR (https://no-color.org/), TERM and whether fd is a terminal
func shouldEnableColor(fd uintptr) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Enabled reports whether output is colored
func (c *Color) Enabled() bool {
	return c.enabled
}

// Add colors a string to indicate additions (green, like Terraform)
func (c *Color) Add(text string) string {
	return c.add.Sprint(text)
}

// Change colors a string to indicate modifications (yellow, like Terraform)
func (c *Color) Change(text string) string {
	return c.change.Sprint(text)
}

// Destroy colors a string to indicate deletions (red, like Terraform)
func (c *Color) Destroy(text string) string {
	return c.destroy.Sprint(text)
}

// Bold makes text bold
func (c *Color) Bold(text string) string {
	return c.bold.Sprint(text)
}

// Cyan colors text cyan (for headers and labels)
func (c *Color) Cyan(text string) string {
	return c.cyan.Sprint(text)
}

// PlanSymbol returns the symbol for a plan action
func (c *Color) PlanSymbol(action string) string {
	switch action {
	case "add", "create":
		return c.Add("+")
	case "change", "modify", "update":
		return c.Change("~")
	case "destroy", "drop", "delete":
		return c.Destroy("-")
	default:
		return " "
	}
}

// FormatPlanLine formats a line in Terraform plan style
func (c *Color) FormatPlanLine(objectType, name, action string) string {
	symbol := c.PlanSymbol(action)
	if name == "" {
		return fmt.Sprintf("  %s %s", symbol, objectType)
	}
	return fmt.Sprintf("  %s %s.%s", symbol, objectType, name)
}

// FormatSummaryLine formats summary counts with colors
func (c *Color) FormatSummaryLine(objectType string, added, modified, dropped int) string {
	return fmt.Sprintf("  %s: %s", objectType, c.counts(added, modified, dropped))
}

// FormatPlanHeader formats the main plan header
func (c *Color) FormatPlanHeader(added, modified, dropped int) string {
	return fmt.Sprintf("Plan: %s.", c.counts(added, modified, dropped))
}

// counts always shows all three categories, even if zero
func (c *Color) counts(added, modified, dropped int) string {
	parts := []string{
		c.Add(fmt.Sprintf("%d to add", added)),
		c.Change(fmt.Sprintf("%d to modify", modified)),
		c.Destroy(fmt.Sprintf("%d to drop", dropped)),
	}
	return strings.Join(parts, ", ")
}

package diff

import (
	"regexp"

	"github.com/myschema/myschema/internal/logger"
	"github.com/myschema/myschema/ir"
)

// Spellings MySQL accepts for "current time at row write"
var currentTimestampSpellings = []string{
	"CURRENT_TIMESTAMP",
	"CURRENT_TIMESTAMP()",
	"NOW()",
	"LOCALTIME",
	"LOCALTIME()",
	"LOCALTIMESTAMP",
	"LOCALTIMESTAMP()",
}

type defaultPair struct {
	declared     string
	introspected string
	// absent marks a column with no introspected default
	absent bool
}

// equivalenceRules is the closed allow-list of (declared, introspected)
// pairs that are equal despite differing text. Keys are normalized.
var equivalenceRules = buildEquivalenceRules()

func buildEquivalenceRules() map[defaultPair]string {
	rules := map[defaultPair]string{
		{declared: "NULL", absent: true}: "null-default",
	}
	for _, d := range currentTimestampSpellings {
		for _, i := range currentTimestampSpellings {
			if d != i {
				rules[defaultPair{declared: d, introspected: i}] = "current-timestamp"
			}
		}
	}
	return rules
}

var numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// DefaultComparison is the outcome of comparing a declared and an introspected default
type DefaultComparison struct {
	Declared     string `json:"declared"`
	Introspected string `json:"introspected"`
	Differs      bool   `json:"differs"`
	// Rule names the equivalence rule that matched, if any
	Rule string `json:"rule,omitempty"`
}

// CompareDefault normalizes both defaults and decides whether they differ.
// introspected is the text the server reports, nil when the column has no default.
func CompareDefault(declared ir.DefaultValue, introspected *string) DefaultComparison {
	var result DefaultComparison

	if declared != nil {
		result.Declared = ir.NormalizeDefault(ir.RenderDefault(declared))
	}
	if introspected != nil {
		result.Introspected = ir.NormalizeDefault(*introspected)
	}

	switch {
	case declared == nil && introspected == nil:
		return result
	case declared == nil:
		result.Differs = true
		return result
	}

	if introspected != nil && result.Declared == result.Introspected {
		return result
	}

	if rule, ok := matchEquivalenceRule(result.Declared, result.Introspected, introspected != nil); ok {
		result.Rule = rule
		logger.Get().Debug("default equivalence rule matched",
			"rule", rule,
			"declared", result.Declared,
			"introspected", result.Introspected)
		return result
	}

	result.Differs = true
	return result
}

// ServerDefaultDiffers reports whether the stored default must be altered
// to match the declared one
func ServerDefaultDiffers(declared ir.DefaultValue, introspected *string) bool {
	return CompareDefault(declared, introspected).Differs
}

func matchEquivalenceRule(declared, introspected string, present bool) (string, bool) {
	key := defaultPair{declared: declared, introspected: introspected, absent: !present}
	if rule, ok := equivalenceRules[key]; ok {
		return rule, true
	}

	// MySQL reports numeric defaults as quoted strings
	if present && numberPattern.MatchString(declared) && introspected == "'"+declared+"'" {
		return "quoted-number", true
	}

	return "", false
}

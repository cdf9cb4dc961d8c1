package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultValue is a server default: a Literal, a RawSQL fragment or a Call tree
type DefaultValue interface {
	isDefaultValue()
}

// Literal is a scalar default rendered in MySQL literal syntax.
// Value may be a string, any integer or float kind, a bool, or nil.
type Literal struct {
	Value any
}

// RawSQL is already valid SQL (e.g. CURRENT_TIMESTAMP) and is rendered verbatim
type RawSQL string

// Call is a function call over other default values
type Call struct {
	Name string
	Args []DefaultValue
}

func (Literal) isDefaultValue() {}
func (RawSQL) isDefaultValue()  {}
func (Call) isDefaultValue()    {}

// Func is shorthand for building a Call
func Func(name string, args ...DefaultValue) Call {
	return Call{Name: name, Args: args}
}

// ANSI functions MySQL accepts without parentheses when called with no arguments
var niladicFunctions = map[string]bool{
	"current_date":      true,
	"current_time":      true,
	"current_timestamp": true,
	"current_user":      true,
	"localtime":         true,
	"localtimestamp":    true,
}

// RenderDefault renders a default value as MySQL SQL text.
// A nil value, including a nil pointer, renders as the empty string.
func RenderDefault(value DefaultValue) string {
	switch v := value.(type) {
	case Literal:
		return renderLiteral(v.Value)
	case *Literal:
		if v == nil {
			return ""
		}
		return renderLiteral(v.Value)
	case RawSQL:
		return string(v)
	case *RawSQL:
		if v == nil {
			return ""
		}
		return string(*v)
	case Call:
		return renderCall(v)
	case *Call:
		if v == nil {
			return ""
		}
		return renderCall(*v)
	default:
		// isDefaultValue is unexported, so only the kinds above reach here
		return ""
	}
}

func renderCall(call Call) string {
	if len(call.Args) == 0 && niladicFunctions[strings.ToLower(call.Name)] {
		return strings.ToUpper(call.Name)
	}

	args := make([]string, len(call.Args))
	for i, arg := range call.Args {
		args[i] = RenderDefault(arg)
	}
	return call.Name + "(" + strings.Join(args, ", ") + ")"
}

func renderLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return QuoteString(v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return QuoteString(fmt.Sprintf("%v", v))
	}
}

// QuoteString renders s as a single-quoted MySQL string literal
func QuoteString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", "''")
	return "'" + s + "'"
}

package ir

import (
	"strings"
	"unicode"
)

// NormalizeDefault turns a default expression into a canonical text form so
// that two spellings MySQL treats identically compare equal as strings.
//
// Normalization steps:
//   - surrounding whitespace is trimmed
//   - one pair of parentheses enclosing the whole expression is removed
//     (MySQL 8 requires expression defaults to be written as "(expr)")
//   - outside quoted strings and backtick identifiers, whitespace runs are
//     collapsed, spaces next to parentheses are dropped, commas are followed
//     by exactly one space, and everything is upper-cased
//
// Quoted content is never altered.
func NormalizeDefault(value string) string {
	value = strings.TrimSpace(value)
	value = stripEnclosingParentheses(value)

	var b strings.Builder
	var last rune
	pendingSpace := false
	runes := []rune(value)

	// writeSpace emits the collapsed whitespace run, never right after "(" or
	// at the start of the output
	writeSpace := func() {
		if pendingSpace && last != 0 && last != '(' && last != ' ' {
			b.WriteByte(' ')
		}
		pendingSpace = false
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case r == '\'' || r == '"' || r == '`':
			writeSpace()
			end := scanQuoted(runes, i)
			b.WriteString(string(runes[i:end]))
			last = runes[end-1]
			i = end - 1
		case unicode.IsSpace(r):
			pendingSpace = true
		case r == '(':
			// "now ()" and "now()" are the same call, "+ (" keeps its space
			if isWordRune(last) {
				pendingSpace = false
			}
			writeSpace()
			b.WriteRune(r)
			last = r
		case r == ')':
			pendingSpace = false
			b.WriteRune(r)
			last = r
		case r == ',':
			b.WriteString(", ")
			last = ' '
			pendingSpace = false
		default:
			writeSpace()
			r = unicode.ToUpper(r)
			b.WriteRune(r)
			last = r
		}
	}

	return strings.TrimSpace(b.String())
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanQuoted returns the index just past the quoted run starting at start.
// A doubled quote character and a backslash escape stay inside the run. An
// unterminated run extends to the end of the input.
func scanQuoted(runes []rune, start int) int {
	quote := runes[start]
	for i := start + 1; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			if quote != '`' {
				i++
			}
		case quote:
			if i+1 < len(runes) && runes[i+1] == quote {
				i++
				continue
			}
			return i + 1
		}
	}
	return len(runes)
}

// stripEnclosingParentheses removes one pair of parentheses when the opening
// one at position 0 is closed by the last character
func stripEnclosingParentheses(expr string) string {
	if len(expr) < 2 || expr[0] != '(' || expr[len(expr)-1] != ')' {
		return expr
	}

	runes := []rune(expr)
	depth := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\'', '"', '`':
			i = scanQuoted(runes, i) - 1
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(runes)-1 {
				// the first paren closes early: "(a) + (b)"
				return expr
			}
		}
	}

	if depth != 0 {
		return expr
	}
	return strings.TrimSpace(string(runes[1 : len(runes)-1]))
}

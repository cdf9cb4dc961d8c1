package ir

import (
	"strings"
)

// MySQL reserved words that need quoting
// Based on MySQL 8.0 documentation: https://dev.mysql.com/doc/refman/8.0/en/keywords.html
var reservedWords = map[string]bool{
	// A-C
	"accessible":        true,
	"add":               true,
	"all":               true,
	"alter":             true,
	"analyze":           true,
	"and":               true,
	"as":                true,
	"asc":               true,
	"asensitive":        true,
	"before":            true,
	"between":           true,
	"bigint":            true,
	"binary":            true,
	"blob":              true,
	"both":              true,
	"by":                true,
	"call":              true,
	"cascade":           true,
	"case":              true,
	"change":            true,
	"char":              true,
	"character":         true,
	"check":             true,
	"collate":           true,
	"column":            true,
	"condition":         true,
	"constraint":        true,
	"continue":          true,
	"convert":           true,
	"create":            true,
	"cross":             true,
	"cube":              true,
	"current_date":      true,
	"current_time":      true,
	"current_timestamp": true,
	"current_user":      true,
	"cursor":            true,
	// D-F
	"database":  true,
	"databases": true,
	"day_hour":  true,
	"dec":       true,
	"decimal":   true,
	"declare":   true,
	"default":   true,
	"delayed":   true,
	"delete":    true,
	"desc":      true,
	"describe":  true,
	"distinct":  true,
	"div":       true,
	"double":    true,
	"drop":      true,
	"dual":      true,
	"each":      true,
	"else":      true,
	"elseif":    true,
	"enclosed":  true,
	"escaped":   true,
	"except":    true,
	"exists":    true,
	"exit":      true,
	"explain":   true,
	"false":     true,
	"fetch":     true,
	"float":     true,
	"for":       true,
	"force":     true,
	"foreign":   true,
	"from":      true,
	"fulltext":  true,
	"function":  true,
	// G-L
	"generated":      true,
	"get":            true,
	"grant":          true,
	"group":          true,
	"groups":         true,
	"having":         true,
	"if":             true,
	"ignore":         true,
	"in":             true,
	"index":          true,
	"inner":          true,
	"inout":          true,
	"insert":         true,
	"int":            true,
	"integer":        true,
	"intersect":      true,
	"interval":       true,
	"into":           true,
	"is":             true,
	"iterate":        true,
	"join":           true,
	"key":            true,
	"keys":           true,
	"kill":           true,
	"lateral":        true,
	"leading":        true,
	"leave":          true,
	"left":           true,
	"like":           true,
	"limit":          true,
	"lines":          true,
	"load":           true,
	"localtime":      true,
	"localtimestamp": true,
	"lock":           true,
	"long":           true,
	"loop":           true,
	// M-P
	"match":     true,
	"mod":       true,
	"modifies":  true,
	"natural":   true,
	"not":       true,
	"null":      true,
	"numeric":   true,
	"of":        true,
	"on":        true,
	"optimize":  true,
	"option":    true,
	"or":        true,
	"order":     true,
	"out":       true,
	"outer":     true,
	"over":      true,
	"partition": true,
	"precision": true,
	"primary":   true,
	"procedure": true,
	"purge":     true,
	// R-S
	"range":      true,
	"rank":       true,
	"read":       true,
	"real":       true,
	"references": true,
	"regexp":     true,
	"release":    true,
	"rename":     true,
	"repeat":     true,
	"replace":    true,
	"require":    true,
	"restrict":   true,
	"return":     true,
	"revoke":     true,
	"right":      true,
	"rlike":      true,
	"row":        true,
	"rows":       true,
	"schema":     true,
	"schemas":    true,
	"select":     true,
	"set":        true,
	"show":       true,
	"signal":     true,
	"smallint":   true,
	"spatial":    true,
	"sql":        true,
	"ssl":        true,
	"starting":   true,
	"stored":     true,
	"system":     true,
	// T-Z
	"table":         true,
	"terminated":    true,
	"then":          true,
	"to":            true,
	"trailing":      true,
	"trigger":       true,
	"true":          true,
	"undo":          true,
	"union":         true,
	"unique":        true,
	"unlock":        true,
	"unsigned":      true,
	"update":        true,
	"usage":         true,
	"use":           true,
	"using":         true,
	"utc_date":      true,
	"utc_time":      true,
	"utc_timestamp": true,
	"values":        true,
	"varchar":       true,
	"varying":       true,
	"virtual":       true,
	"when":          true,
	"where":         true,
	"while":         true,
	"window":        true,
	"with":          true,
	"write":         true,
	"xor":           true,
	"year_month":    true,
	"zerofill":      true,
}

// NeedsQuoting checks if an identifier needs to be quoted
func NeedsQuoting(identifier string) bool {
	if identifier == "" {
		return false
	}

	// Check if it's a reserved word
	if reservedWords[strings.ToLower(identifier)] {
		return true
	}

	// Only lowercase ASCII letters, digits and underscores pass unquoted, and
	// the first character cannot be a digit
	for i, r := range identifier {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}

	return false
}

// QuoteIdentifier adds backticks to an identifier if needed
func QuoteIdentifier(identifier string) string {
	if NeedsQuoting(identifier) {
		return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
	}
	return identifier
}

// QualifyTableName returns the quoted table name, prefixed with the quoted
// schema when one is given. Each part is quoted on its own.
func QualifyTableName(schema, table string) string {
	quotedName := QuoteIdentifier(table)

	if schema == "" {
		return quotedName
	}

	return QuoteIdentifier(schema) + "." + quotedName
}

// Package templatize provides functionality for SQL templating, turning
// literal query fragments and Go values into a single, safely escaped SQL
// string. It never parses the SQL it produces; it only encodes values and
// concatenates text.
//
// Values are encoded according to their kind: NULL for nil and Absent, bare
// numbers and booleans, quoted and escaped strings and dates, X'..' for binary
// data, comma separated lists, parenthesised tuples for lists of lists, and
// "`key` = value" pairs for maps. Raw values are written verbatim, which lets
// previously generated SQL be spliced into another query without being
// escaped twice. String and identifier escaping is delegated to the TiDB
// parser's restore context, using MySQL quoting rules.
//
// Key Components:
//   - SQLTemplatizer: holds configuration and a pool of encoders, and exposes
//     Encode, Compose, Format and UpdateCase.
//   - encoder: walks a models.Value and appends its SQL literal text.
//
// Example usage:
//
//	templatizer := templatize.NewSQLTemplatizer()
//	query, err := templatizer.Compose(
//		[]string{"SELECT * FROM users WHERE id IN (", ")"},
//		[]int{1, 2, 3},
//	)
//	// SELECT * FROM users WHERE id IN (1, 2, 3)
//
// UpdateCase builds the SET part of a bulk UPDATE from partial records, one
// CASE expression per column, falling back to the current column value for
// rows that do not set it.
package templatize

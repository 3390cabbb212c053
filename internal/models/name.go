package models

import "strings"

// Name is a possibly qualified identifier such as "schema.table" or
// "table.column".
type Name struct {
	parts []string
}

// ParseName splits name on dots. No quoting rules apply: every dot separates
// two parts.
func ParseName(name string) Name {
	return Name{parts: strings.Split(name, ".")}
}

// Parts returns the dot separated parts, outermost first.
func (n Name) Parts() []string { return n.parts }

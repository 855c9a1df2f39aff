// Package textutil provides the small string helpers shared by the extraction
// engine: whitespace collapsing, digit checks, and case-folded lookup keys.
//
// Case folding goes through golang.org/x/text/cases so wiki headers such as
// "Data Type" and "DATA TYPE" compare equal without ad hoc lowercasing.
package textutil

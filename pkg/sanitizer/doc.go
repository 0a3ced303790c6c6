// Package sanitizer provides small string and numeric transforms for cleaning
// user input before or after validation.
//
// All helpers are plain functions and can be combined with Apply and Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.NormalizeWhitespace,
//	    sanitizer.Title,
//	)
//
//	name := clean("  juan   PÉREZ ") // "Juan Pérez"
//
// Schema documents reference transforms by name ("trim", "title",
// "round:2"...). Lookup resolves those names; Names lists them.
//
// RoundTo uses decimal arithmetic (github.com/shopspring/decimal) and rounds
// half away from zero. Title uses the Unicode casing rules of
// golang.org/x/text/cases.
package sanitizer

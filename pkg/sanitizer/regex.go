package sanitizer

import "regexp"

var (
	dotRegex        = regexp.MustCompile(`\.+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

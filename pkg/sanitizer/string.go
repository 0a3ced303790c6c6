package sanitizer

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

func ToLower(s string) string {
	return strings.ToLower(s)
}

func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// Title upper-cases the first letter of every word and lower-cases the rest,
// so "juan PÉREZ" becomes "Juan Pérez".
func Title(s string) string {
	return TitleIn(language.Und)(s)
}

// TitleIn returns a title-casing function using the casing rules of tag.
func TitleIn(tag language.Tag) func(string) string {
	return func(s string) string {
		// cases.Caser keeps state, so one is created per call.
		return cases.Title(tag).String(s)
	}
}

// NormalizeWhitespace collapses runs of whitespace into single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// MaxLength truncates a string to at most maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// KeepDigits keeps only numeric digits.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// KeepAlphanumeric keeps letters, digits and spaces.
func KeepAlphanumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// RemoveControlChars drops control characters except newlines and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// StripHTML removes HTML tags and unescapes HTML entities.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// NormalizeEmail trims and lower-cases an address and collapses repeated
// dots in the local part. Values without exactly one "@" are only trimmed
// and lower-cased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = strings.Trim(dotRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// NormalizePhone keeps the digits of a phone number and a leading "+".
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	digits := KeepDigits(phone)
	if strings.HasPrefix(phone, "+") {
		return "+" + digits
	}
	return digits
}

package validator

import (
	"errors"
	"fmt"
	"strings"
)

// IssueKind classifies a validation failure.
type IssueKind string

const (
	// MissingField is reported for a required field absent from the input.
	MissingField IssueKind = "missing_field"
	// TypeMismatch is reported when a value cannot be coerced to the declared type.
	TypeMismatch IssueKind = "type_mismatch"
	// ConstraintViolation is reported for the first failing constraint of a field.
	ConstraintViolation IssueKind = "constraint_violation"
	// RuleViolation is reported when a custom hook rejects a value.
	RuleViolation IssueKind = "rule_violation"
)

// Issue describes a single validation failure with translation support.
type Issue struct {
	Field             string         `json:"field"`
	Kind              IssueKind      `json:"kind"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"translation_key,omitempty"`
	TranslationValues map[string]any `json:"translation_values,omitempty"`
}

// Report is the ordered list of every failure found in one input.
type Report []Issue

func (r Report) Error() string {
	if len(r) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(r))
	for _, issue := range r {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(report, ErrValidationFailed) hold.
func (r Report) Is(target error) bool {
	return target == ErrValidationFailed
}

func (r *Report) Add(issue Issue) {
	*r = append(*r, issue)
}

func (r Report) Has(field string) bool {
	for _, issue := range r {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// Get returns the first issue reported for field.
func (r Report) Get(field string) (Issue, bool) {
	for _, issue := range r {
		if issue.Field == field {
			return issue, true
		}
	}
	return Issue{}, false
}

// Kinds returns the issue kinds in report order.
func (r Report) Kinds() []IssueKind {
	kinds := make([]IssueKind, len(r))
	for i, issue := range r {
		kinds[i] = issue.Kind
	}
	return kinds
}

// Fields returns the failing field paths in report order, without duplicates.
func (r Report) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, issue := range r {
		if !seen[issue.Field] {
			fields = append(fields, issue.Field)
			seen[issue.Field] = true
		}
	}
	return fields
}

// Count returns the number of issues of the given kind.
func (r Report) Count(kind IssueKind) int {
	n := 0
	for _, issue := range r {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

// Issues returns a copy of the issues.
func (r Report) Issues() []Issue {
	return append([]Issue(nil), r...)
}

func (r Report) IsEmpty() bool {
	return len(r) == 0
}

// ExtractReport returns the Report wrapped in err, or nil.
func ExtractReport(err error) Report {
	if err == nil {
		return nil
	}

	var report Report
	if errors.As(err, &report) {
		return report
	}
	return nil
}

func IsReport(err error) bool {
	if err == nil {
		return false
	}

	var report Report
	return errors.As(err, &report)
}

// prefixed rewrites nested issue paths below path.
func (r Report) prefixed(path string) Report {
	if path == "" {
		return r
	}
	out := make(Report, len(r))
	for i, issue := range r {
		if strings.HasPrefix(issue.Field, "[") {
			issue.Field = path + issue.Field
		} else {
			issue.Field = path + "." + issue.Field
		}
		out[i] = issue
	}
	return out
}

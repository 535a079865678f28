// Package validate implements the synchronous field rules forms run
// before any network call is made.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	mobileRe = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Errors maps field names to their first failing rule's message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator accumulates per-field failures. Only the first failing rule
// per field is kept.
type Validator struct {
	errs Errors
}

func New() *Validator {
	return &Validator{errs: Errors{}}
}

func (v *Validator) fail(field, msg string) {
	if _, ok := v.errs[field]; !ok {
		v.errs[field] = msg
	}
}

// Check records msg for field when ok is false. Used for rules that do
// not fit the common helpers, e.g. the stock check on sale creation.
func (v *Validator) Check(ok bool, field, msg string) {
	if !ok {
		v.fail(field, msg)
	}
}

func (v *Validator) Require(field, value, label string) {
	if strings.TrimSpace(value) == "" {
		v.fail(field, label+" is required")
	}
}

func (v *Validator) MinLen(field, value string, n int, label string) {
	if strings.TrimSpace(value) != "" && len(value) < n {
		v.fail(field, fmt.Sprintf("%s must be at least %d characters", label, n))
	}
}

func (v *Validator) Positive(field string, value float64, label string) {
	if value <= 0 {
		v.fail(field, label+" must be greater than 0")
	}
}

func (v *Validator) NonNegative(field string, value float64, label string) {
	if value < 0 {
		v.fail(field, label+" cannot be negative")
	}
}

// Mobile requires a 10-digit number starting with 6-9. Empty values pass;
// combine with Require when the field is mandatory.
func (v *Validator) Mobile(field, value string) {
	if value != "" && !mobileRe.MatchString(value) {
		v.fail(field, "Mobile number must be a 10-digit number starting with 6-9")
	}
}

// Email checks basic address shape. Empty values pass.
func (v *Validator) Email(field, value string) {
	if value != "" && !emailRe.MatchString(value) {
		v.fail(field, "Enter a valid email address")
	}
}

// Err returns the accumulated failures, or nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

// Fields exposes the raw per-field messages for rendering.
func (v *Validator) Fields() Errors {
	return v.errs
}

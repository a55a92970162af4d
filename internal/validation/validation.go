// Package validation implements the declarative field rule engine shared by
// every create/edit flow in the admin panel.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

type (
	// Values holds the current field values of one form session,
	// keyed by field name.
	Values map[string]any

	// Errors maps a field name to a single error message. A missing
	// key means the field is valid.
	Errors map[string]string

	// Required fails when the field is empty: nil, a blank string or
	// an empty slice. The number 0 is not empty.
	Required struct {
		Value   bool
		Message string
	}

	// Length bounds the length of a string or slice field. Other
	// value kinds are skipped, not failed.
	Length struct {
		Value   int
		Message string
	}

	// Pattern matches string fields against a regular expression.
	// Non-string values are skipped.
	Pattern struct {
		Regexp  *regexp.Regexp
		Message string
	}

	// Match requires the field to equal another field's current value.
	Match struct {
		Field   string
		Message string
	}

	// CustomRule is the dispatcher over the two custom rule shapes.
	CustomRule interface {
		check(value any, values Values) string
	}

	// Predicate is the bare-function custom shape: it returns the
	// error message, or "" when the value is valid.
	Predicate func(value any, values Values) string

	// PredicateObject is the isValid+message custom shape.
	PredicateObject struct {
		IsValid func(value any, values Values) bool
		Message string
	}

	// Rule declares the checks for one field. Sub-rules run in a fixed
	// order and the first failure wins for that field.
	Rule struct {
		Required   *Required
		Min        *Length
		Max        *Length
		Pattern    *Pattern
		MatchField *Match
		Match      *Match
		Custom     CustomRule
	}

	// RuleSet is the static per-form declaration of validated fields.
	RuleSet map[string]Rule
)

func (p Predicate) check(value any, values Values) string {
	return p(value, values)
}

func (p PredicateObject) check(value any, values Values) string {
	if p.IsValid == nil || p.IsValid(value, values) {
		return ""
	}
	return p.Message
}

// Evaluate checks every field declared in rules against values and returns
// the resulting error map. It is pure: identical inputs yield identical
// results and neither argument is mutated. Fields absent from rules are
// never reported.
func Evaluate(values Values, rules RuleSet) Errors {
	errors := make(Errors)

	for field, rule := range rules {
		value := values[field]

		if msg := evaluateField(field, value, rule, values); msg != "" {
			errors[field] = msg
		}
	}

	return errors
}

// evaluateField applies the sub-rules in order and short-circuits on the
// first failure, so a field carries at most one error.
func evaluateField(field string, value any, rule Rule, values Values) string {
	if rule.Required != nil && rule.Required.Value && isEmpty(value) {
		return rule.Required.Message
	}

	if rule.Min != nil {
		if length, ok := lengthOf(value); ok && length < rule.Min.Value {
			return rule.Min.Message
		}
	}

	if rule.Max != nil {
		if length, ok := lengthOf(value); ok && length > rule.Max.Value {
			return rule.Max.Message
		}
	}

	if rule.Pattern != nil && rule.Pattern.Regexp != nil {
		if s, ok := value.(string); ok && !rule.Pattern.Regexp.MatchString(s) {
			if rule.Pattern.Message != "" {
				return rule.Pattern.Message
			}
			return fmt.Sprintf("Invalid %s", field)
		}
	}

	for _, match := range []*Match{rule.MatchField, rule.Match} {
		if match == nil {
			continue
		}
		if !reflect.DeepEqual(value, values[match.Field]) {
			if match.Message != "" {
				return match.Message
			}
			return fmt.Sprintf("%s does not match", field)
		}
	}

	if rule.Custom != nil {
		if msg := rule.Custom.check(value, values); msg != "" {
			return msg
		}
	}

	return ""
}

// isEmpty reports whether value counts as missing for a required check.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}

	return false
}

// lengthOf returns the length of string and slice values. For every other
// kind it reports ok=false so min/max rules skip the field entirely.
func lengthOf(value any) (int, bool) {
	if s, ok := value.(string); ok {
		return len([]rune(s)), true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	}

	return 0, false
}

package validation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_PureAndRepeatable(t *testing.T) {
	values := Values{"title": "ab", "tags": []string{}}
	rules := RuleSet{
		"title": {Min: &Length{Value: 3, Message: "too short"}},
		"tags":  {Required: &Required{Value: true, Message: "tags required"}},
	}

	first := Evaluate(values, rules)
	second := Evaluate(values, rules)

	assert.Equal(t, first, second)
	assert.Equal(t, "too short", first["title"])
	assert.Equal(t, "tags required", first["tags"])
}

func TestEvaluate_UnknownFieldsNeverReported(t *testing.T) {
	values := Values{"email": "", "other": ""}
	rules := RuleSet{
		"email": {Required: &Required{Value: true, Message: "Email is required."}},
	}

	errs := Evaluate(values, rules)

	assert.Len(t, errs, 1)
	assert.NotContains(t, errs, "other")
}

func TestEvaluate_RequiredEmptyShapes(t *testing.T) {
	rules := RuleSet{
		"field": {Required: &Required{Value: true, Message: "required"}},
	}

	for _, value := range []any{nil, "", "   ", []string{}, []any{}} {
		errs := Evaluate(Values{"field": value}, rules)
		assert.Equal(t, "required", errs["field"])
	}

	for _, value := range []any{0, false, "x", []string{"a"}, []int{1}} {
		errs := Evaluate(Values{"field": value}, rules)
		assert.Empty(t, errs["field"])
	}
}

func TestEvaluate_MinBoundaryInclusive(t *testing.T) {
	rules := RuleSet{
		"name": {Min: &Length{Value: 3, Message: "min 3"}},
	}

	errs := Evaluate(Values{"name": "ab"}, rules)
	assert.Equal(t, "min 3", errs["name"])

	errs = Evaluate(Values{"name": "abc"}, rules)
	assert.Empty(t, errs)
}

func TestEvaluate_MaxOnSlices(t *testing.T) {
	rules := RuleSet{
		"keywordIds": {Max: &Length{Value: 2, Message: "max 2"}},
	}

	errs := Evaluate(Values{"keywordIds": []string{"a", "b", "c"}}, rules)
	assert.Equal(t, "max 2", errs["keywordIds"])

	errs = Evaluate(Values{"keywordIds": []string{"a", "b"}}, rules)
	assert.Empty(t, errs)
}

func TestEvaluate_LengthRulesSkipNonLengthValues(t *testing.T) {
	rules := RuleSet{
		"sessionNo": {
			Min: &Length{Value: 3, Message: "min"},
			Max: &Length{Value: 5, Message: "max"},
		},
	}

	// numbers have no length, so the bounds neither pass nor fail
	errs := Evaluate(Values{"sessionNo": 1}, rules)
	assert.Empty(t, errs)
}

func TestEvaluate_PatternSkipsNonStrings(t *testing.T) {
	rules := RuleSet{
		"email": {Pattern: &Pattern{Regexp: emailRegex, Message: "bad email"}},
	}

	errs := Evaluate(Values{"email": 42}, rules)
	assert.Empty(t, errs)

	errs = Evaluate(Values{"email": "not-an-email"}, rules)
	assert.Equal(t, "bad email", errs["email"])

	errs = Evaluate(Values{"email": "admin@example.org"}, rules)
	assert.Empty(t, errs)
}

func TestEvaluate_PatternDefaultMessage(t *testing.T) {
	rules := RuleSet{
		"code": {Pattern: &Pattern{Regexp: regexp.MustCompile(`^\d+$`)}},
	}

	errs := Evaluate(Values{"code": "abc"}, rules)
	assert.Equal(t, "Invalid code", errs["code"])
}

func TestEvaluate_MatchTracksLiveValues(t *testing.T) {
	rules := RuleSet{
		"confirm": {Match: &Match{Field: "password", Message: "Passwords do not match."}},
	}

	values := Values{"password": "a", "confirm": "a"}
	assert.Empty(t, Evaluate(values, rules))

	// no rule-set reconstruction, only the values change
	values["password"] = "b"
	errs := Evaluate(values, rules)
	assert.Equal(t, "Passwords do not match.", errs["confirm"])
}

func TestEvaluate_MatchFieldAlias(t *testing.T) {
	rules := RuleSet{
		"confirm": {MatchField: &Match{Field: "password"}},
	}

	errs := Evaluate(Values{"password": "a", "confirm": "b"}, rules)
	assert.Equal(t, "confirm does not match", errs["confirm"])
}

func TestEvaluate_CustomPredicateObject(t *testing.T) {
	rules := RuleSet{
		"password": {
			Custom: PredicateObject{
				IsValid: func(value any, _ Values) bool {
					s, _ := value.(string)
					return StrongPassword(s)
				},
				Message: "weak password",
			},
		},
	}

	errs := Evaluate(Values{"password": "abc"}, rules)
	assert.Equal(t, "weak password", errs["password"])

	errs = Evaluate(Values{"password": "Str0ng!pass"}, rules)
	assert.Empty(t, errs)
}

func TestEvaluate_CustomBareFunction(t *testing.T) {
	rules := RuleSet{
		"age": {
			Custom: Predicate(func(value any, _ Values) string {
				if n, ok := value.(int); ok && n < 18 {
					return "must be an adult"
				}
				return ""
			}),
		},
	}

	errs := Evaluate(Values{"age": 15}, rules)
	assert.Equal(t, "must be an adult", errs["age"])

	// falsy return records no error
	errs = Evaluate(Values{"age": 30}, rules)
	assert.Empty(t, errs)
}

func TestEvaluate_ShortCircuitPerField(t *testing.T) {
	rules := RuleSet{
		"password": {
			Required: &Required{Value: true, Message: "required"},
			Min:      &Length{Value: 8, Message: "too short"},
			Custom: PredicateObject{
				IsValid: func(any, Values) bool { return false },
				Message: "custom",
			},
		},
	}

	// required wins over min and custom
	errs := Evaluate(Values{"password": "  "}, rules)
	assert.Equal(t, "required", errs["password"])

	// min wins over custom
	errs = Evaluate(Values{"password": "abc"}, rules)
	assert.Equal(t, "too short", errs["password"])

	errs = Evaluate(Values{"password": "abcdefgh"}, rules)
	assert.Equal(t, "custom", errs["password"])
}

func TestEvaluate_ZeroIsNotEmpty(t *testing.T) {
	rules := RuleSet{
		"sessionNo": {Required: &Required{Value: true, Message: "required"}},
	}

	errs := Evaluate(Values{"sessionNo": 0}, rules)
	assert.Empty(t, errs)
}

func TestModuleRules(t *testing.T) {
	values := Values{
		"title":       "Go",
		"description": "Learn the basics of the language.",
		"thumbnail":   "",
	}

	errs := Evaluate(values, ModuleRules)

	assert.Equal(t, "Module name must be between 3 and 50 characters.", errs["title"])
	assert.Equal(t, "Banner image is required.", errs["thumbnail"])
	assert.NotContains(t, errs, "description")
	assert.NotContains(t, errs, "keywordIds")
}

func TestUserRules_PhoneFormat(t *testing.T) {
	values := Values{
		"name":        "Jamie Doe",
		"email":       "jamie@example.org",
		"phoneNumber": "671-555-0110",
	}

	errs := Evaluate(values, UserRules)
	assert.Equal(t, "Phone Number must be in the format (671) 555-0110", errs["phoneNumber"])

	values["phoneNumber"] = "(671) 555-0110"
	assert.Empty(t, Evaluate(values, UserRules))
}

func TestContentRules_QuestionnaireCrossField(t *testing.T) {
	values := Values{
		"title":               "Session one",
		"description":         "Intro video.",
		"contentType":         "video",
		"url":                 "media/abc",
		"thumbnail":           "media/abc-thumb",
		"questionnaireStatus": true,
		"questions":           []any{},
	}

	errs := Evaluate(values, ContentRules)
	assert.Equal(t, "Please add at least one question.", errs["questions"])

	values["questionnaireStatus"] = false
	assert.Empty(t, Evaluate(values, ContentRules))
}

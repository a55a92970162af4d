package validation

import "regexp"

var (
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)

	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// StrongPassword reports whether s carries an uppercase letter, a lowercase
// letter, a digit and a special character.
func StrongPassword(s string) bool {
	return passwordUpper.MatchString(s) &&
		passwordLower.MatchString(s) &&
		passwordDigit.MatchString(s) &&
		passwordSpecial.MatchString(s)
}

// ForgotPasswordRules validates the forgot-password form.
var ForgotPasswordRules = RuleSet{
	"email": {
		Required: &Required{Value: true, Message: "Email is required."},
		Pattern:  &Pattern{Regexp: emailRegex},
	},
}

// LoginRules validates the login form.
var LoginRules = RuleSet{
	"email": {
		Required: &Required{Value: true, Message: "Email is required."},
		Pattern:  &Pattern{Regexp: emailRegex},
	},
	"password": {
		Required: &Required{Value: true, Message: "Password is required."},
		Min:      &Length{Value: 8, Message: "Password must be at least 8 characters."},
		Custom: PredicateObject{
			IsValid: func(value any, _ Values) bool {
				s, ok := value.(string)
				return ok && StrongPassword(s)
			},
			Message: "Password must contain uppercase, lowercase, number, and special character.",
		},
	},
}

// SetPasswordRules validates the set-password form, including the
// confirm-password match against the live password value.
var SetPasswordRules = RuleSet{
	"password": {
		Required: &Required{Value: true, Message: "Password is required."},
		Min:      &Length{Value: 8, Message: "Password must be at least 8 characters."},
		Custom: PredicateObject{
			IsValid: func(value any, _ Values) bool {
				s, ok := value.(string)
				return ok && StrongPassword(s)
			},
			Message: "Password must contain uppercase, lowercase, number, and special character.",
		},
	},
	"confirmPassword": {
		Required: &Required{Value: true, Message: "Please confirm your password."},
		Match:    &Match{Field: "password", Message: "Passwords do not match."},
	},
}

// ModuleRules validates the add/edit module form.
var ModuleRules = RuleSet{
	"title": {
		Required: &Required{Value: true, Message: "Module name is required."},
		Min:      &Length{Value: 3, Message: "Module name must be between 3 and 50 characters."},
		Max:      &Length{Value: 50, Message: "Module name must be between 3 and 50 characters."},
	},
	"description": {
		Required: &Required{Value: true, Message: "Description is required."},
		Min:      &Length{Value: 3, Message: "Description must be at least 3 characters."},
		Max:      &Length{Value: 500, Message: "Description must not exceed 500 characters."},
	},
	"thumbnail": {
		Required: &Required{Value: true, Message: "Banner image is required."},
	},
	"keywordIds": {},
}

// PlaylistRules validates the add/edit playlist form.
var PlaylistRules = RuleSet{
	"name": {
		Required: &Required{Value: true, Message: "Playlist name is required."},
		Min:      &Length{Value: 3, Message: "Playlist name must be between 3 and 50 characters."},
		Max:      &Length{Value: 50, Message: "Playlist name must be between 3 and 50 characters."},
	},
	"description": {
		Required: &Required{Value: true, Message: "Description is required."},
		Min:      &Length{Value: 3, Message: "Description must be at least 3 characters."},
		Max:      &Length{Value: 500, Message: "Description must not exceed 500 characters."},
	},
	"thumbnail": {
		Required: &Required{Value: true, Message: "Thumbnail is required."},
	},
	"content": {
		Required: &Required{Value: true, Message: "Content is required."},
	},
	"keywordIds": {},
}

// UserRules validates the add/edit user form.
var UserRules = RuleSet{
	"name": {
		Required: &Required{Value: true, Message: "Full Name is required."},
	},
	"email": {
		Required: &Required{Value: true, Message: "Email is required."},
		Pattern:  &Pattern{Regexp: emailRegex, Message: "Invalid email address"},
	},
	"phoneNumber": {
		Required: &Required{Value: true, Message: "Phone number is required."},
		Pattern:  &Pattern{Regexp: phoneRegex, Message: "Phone Number must be in the format (671) 555-0110"},
	},
}

// ContentRules validates the add/edit content form. The questions field is
// filled by the option set editor and only has to be present when the
// questionnaire is enabled, which is a cross-field constraint.
var ContentRules = RuleSet{
	"title": {
		Required: &Required{Value: true, Message: "Content title is required."},
		Min:      &Length{Value: 3, Message: "Content title must be between 3 and 100 characters."},
		Max:      &Length{Value: 100, Message: "Content title must be between 3 and 100 characters."},
	},
	"description": {
		Required: &Required{Value: true, Message: "Description is required."},
		Max:      &Length{Value: 500, Message: "Description must not exceed 500 characters."},
	},
	"contentType": {
		Required: &Required{Value: true, Message: "Content type is required."},
	},
	"url": {
		Required: &Required{Value: true, Message: "Media file is required."},
	},
	"thumbnail": {
		Required: &Required{Value: true, Message: "Thumbnail is required."},
	},
	"questions": {
		Custom: Predicate(func(value any, values Values) string {
			enabled, _ := values["questionnaireStatus"].(bool)
			if !enabled {
				return ""
			}
			if isEmpty(value) {
				return "Please add at least one question."
			}
			return ""
		}),
	},
}

// Package validation holds the client-side form checks run before a request
// is sent. The backend remains authoritative; these rules exist to surface
// obvious mistakes without a round trip, field by field.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Form limits, matching what the backend enforces.
const (
	TitleMin = 5
	TitleMax = 200
	BodyMin  = 20
	TagMin   = 1
	TagMax   = 10

	LoginPasswordMin  = 6
	SignupPasswordMin = 8
)

// Categories an insight may belong to.
var Categories = []string{"Macro", "Equities", "FixedIncome", "Alternatives"}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a field name to its validation message. Empty means valid.
type FieldErrors map[string]string

// InsightForm is the user-entered insight content before submission.
type InsightForm struct {
	Title    string
	Category string
	Body     string
	Tags     []string
}

// Validator provides the client-side validation rules for every form.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateLogin checks the login form. The identifier may be a username or
// an email; only identifiers that look like an email are held to the email
// format.
func (v *Validator) ValidateLogin(identifier, password string) FieldErrors {
	errs := FieldErrors{}

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		errs["identifier"] = "This field is required."
	} else if strings.Contains(identifier, "@") && !emailPattern.MatchString(identifier) {
		errs["identifier"] = "Please enter a valid email address."
	}

	if password == "" {
		errs["password"] = "Password is required."
	} else if len(password) < LoginPasswordMin {
		errs["password"] = fmt.Sprintf("Password must be at least %d characters.", LoginPasswordMin)
	}

	return errs
}

// ValidateSignup checks the signup form. Email is optional but must contain
// an @ when given.
func (v *Validator) ValidateSignup(username, email, password, confirmPassword string) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(username) == "" {
		errs["username"] = "Username is required."
	}

	if email != "" && !strings.Contains(email, "@") {
		errs["email"] = "Please enter a valid email."
	}

	switch {
	case password == "":
		errs["password"] = "Password is required."
	case len(password) < SignupPasswordMin:
		errs["password"] = fmt.Sprintf("Password must be at least %d characters.", SignupPasswordMin)
	}

	if confirmPassword == "" {
		errs["confirmPassword"] = "Confirm password is required."
	} else if password != "" && password != confirmPassword {
		errs["confirmPassword"] = "Passwords do not match."
	}

	return errs
}

// ValidateInsight checks the insight create/edit form.
func (v *Validator) ValidateInsight(form InsightForm) FieldErrors {
	errs := FieldErrors{}

	title := strings.TrimSpace(form.Title)
	switch {
	case title == "":
		errs["title"] = "Title is required."
	case len(title) < TitleMin:
		errs["title"] = fmt.Sprintf("Title must be at least %d characters.", TitleMin)
	case len(title) > TitleMax:
		errs["title"] = fmt.Sprintf("Title must be at most %d characters.", TitleMax)
	}

	body := strings.TrimSpace(form.Body)
	switch {
	case body == "":
		errs["body"] = "Body is required."
	case len(body) < BodyMin:
		errs["body"] = fmt.Sprintf("Body must be at least %d characters.", BodyMin)
	}

	if form.Category == "" {
		errs["category"] = "Category is required."
	} else if !knownCategory(form.Category) {
		errs["category"] = fmt.Sprintf("Category must be one of: %s.", strings.Join(Categories, ", "))
	}

	switch {
	case len(form.Tags) < TagMin:
		errs["tags"] = fmt.Sprintf("At least %d tag is required.", TagMin)
	case len(form.Tags) > TagMax:
		errs["tags"] = fmt.Sprintf("At most %d tags allowed.", TagMax)
	case hasDuplicateTags(form.Tags):
		errs["tags"] = "Tags must not contain duplicates."
	}

	return errs
}

// NormalizeTag trims whitespace and a single leading # from user tag input.
func NormalizeTag(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "#")
}

func knownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Duplicate detection is case-insensitive, matching how tags are matched on
// the list page.
func hasDuplicateTags(tags []string) bool {
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

package profile

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/elprofecharles/registration-api/internal/domain/catalog"
)

// Registration is the raw candidate input for creating a profile record.
// ConsentGiven is a pointer so a missing field and an explicit false can be
// told apart and reported with different messages.
type Registration struct {
	FullName      string `json:"fullName"`
	DocumentID    string `json:"documentId"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Profession    string `json:"profession"`
	City          string `json:"city"`
	Department    string `json:"department"`
	AcademicLevel string `json:"academicLevel"`
	ConsentGiven  *bool  `json:"consentGiven"`
}

// Update carries the fields a user may change after registration.
// Nil means "leave unchanged". DocumentID, the enums, consent and the
// timestamps are not updatable through this path.
type Update struct {
	FullName   *string `json:"fullName"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Profession *string `json:"profession"`
}

// FieldError reports a single failed field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every failed field, in field declaration order.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// Fields returns the names of the failed fields.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Field)
	}
	return out
}

var (
	documentRe = regexp.MustCompile(`^[0-9A-Za-z]{5,20}$`)
	phoneRe    = regexp.MustCompile(`^[+]?[0-9\s\-()]{7,15}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	msgNameLength    = "must be between 2 and 100 characters"
	msgDocument      = "must be 5 to 20 alphanumeric characters"
	msgPhone         = "must be a valid phone number"
	msgEmail         = "must be a valid email address"
	msgDepartment    = "must be a valid department"
	msgAcademicLevel = "must be a valid academic level"
	msgConsentNeeded = "must be accepted to continue"
	msgRequired      = "is required"
)

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// Validate trims every string field and checks the per-field rules on the
// trimmed, not yet recapitalized values. It never stops at the first failure:
// the returned FieldErrors names every violated field exactly once.
func Validate(in Registration) (Registration, FieldErrors) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.DocumentID = strings.TrimSpace(in.DocumentID)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Profession = strings.TrimSpace(in.Profession)
	in.City = strings.TrimSpace(in.City)
	in.Department = strings.TrimSpace(in.Department)
	in.AcademicLevel = strings.TrimSpace(in.AcademicLevel)

	var errs FieldErrors
	if !lengthBetween(in.FullName, 2, 100) {
		errs = append(errs, FieldError{"fullName", msgNameLength})
	}
	if !documentRe.MatchString(in.DocumentID) {
		errs = append(errs, FieldError{"documentId", msgDocument})
	}
	if !phoneRe.MatchString(in.Phone) {
		errs = append(errs, FieldError{"phone", msgPhone})
	}
	if !emailRe.MatchString(in.Email) {
		errs = append(errs, FieldError{"email", msgEmail})
	}
	if !lengthBetween(in.Profession, 2, 100) {
		errs = append(errs, FieldError{"profession", msgNameLength})
	}
	if !lengthBetween(in.City, 2, 100) {
		errs = append(errs, FieldError{"city", msgNameLength})
	}
	if !catalog.IsDepartment(in.Department) {
		errs = append(errs, FieldError{"department", msgDepartment})
	}
	if !catalog.IsAcademicLevel(in.AcademicLevel) {
		errs = append(errs, FieldError{"academicLevel", msgAcademicLevel})
	}
	switch {
	case in.ConsentGiven == nil:
		errs = append(errs, FieldError{"consentGiven", msgRequired})
	case !*in.ConsentGiven:
		errs = append(errs, FieldError{"consentGiven", msgConsentNeeded})
	}
	return in, errs
}

// ValidateAndNormalize runs Validate and, only when every field passes,
// applies the canonical casing rules.
func ValidateAndNormalize(in Registration) (Registration, FieldErrors) {
	trimmed, errs := Validate(in)
	if len(errs) > 0 {
		return trimmed, errs
	}
	return Normalize(trimmed), nil
}

// ValidateAndNormalizeUpdate validates only the fields that are present and
// canonicalizes them the same way registration does.
func ValidateAndNormalizeUpdate(in Update) (Update, FieldErrors) {
	var errs FieldErrors
	if in.FullName != nil {
		v := strings.TrimSpace(*in.FullName)
		if !lengthBetween(v, 2, 100) {
			errs = append(errs, FieldError{"fullName", msgNameLength})
		}
		in.FullName = &v
	}
	if in.Phone != nil {
		v := strings.TrimSpace(*in.Phone)
		if !phoneRe.MatchString(v) {
			errs = append(errs, FieldError{"phone", msgPhone})
		}
		in.Phone = &v
	}
	if in.Email != nil {
		v := strings.TrimSpace(*in.Email)
		if !emailRe.MatchString(v) {
			errs = append(errs, FieldError{"email", msgEmail})
		}
		in.Email = &v
	}
	if in.Profession != nil {
		v := strings.TrimSpace(*in.Profession)
		if !lengthBetween(v, 2, 100) {
			errs = append(errs, FieldError{"profession", msgNameLength})
		}
		in.Profession = &v
	}
	if len(errs) > 0 {
		return in, errs
	}
	if in.FullName != nil {
		v := titleCase(*in.FullName)
		in.FullName = &v
	}
	if in.Email != nil {
		v := strings.ToLower(*in.Email)
		in.Email = &v
	}
	if in.Profession != nil {
		v := capitalizeFirst(*in.Profession)
		in.Profession = &v
	}
	return in, nil
}

// ValidateDocumentID is the login-path shape check: trims the identifier and
// reports whether it matches the document pattern.
func ValidateDocumentID(doc string) (string, bool) {
	doc = strings.TrimSpace(doc)
	return doc, documentRe.MatchString(doc)
}

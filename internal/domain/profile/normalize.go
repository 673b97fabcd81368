package profile

import (
	"strings"
	"unicode"
)

// Normalize applies the canonical casing rules to an already validated
// registration: full name is title-cased per word, profession and city get
// only their first character capitalized, and the email is lower-cased.
// Normalizing an already normalized value is a no-op.
func Normalize(in Registration) Registration {
	in.FullName = titleCase(in.FullName)
	in.Email = strings.ToLower(in.Email)
	in.Profession = capitalizeFirst(in.Profession)
	in.City = capitalizeFirst(in.City)
	return in
}

// titleCase upper-cases the first rune and lower-cases the remainder of each
// space-separated word. Splitting is on single spaces so interior runs of
// whitespace survive unchanged.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = capitalizeFirst(w)
	}
	return strings.Join(words, " ")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}

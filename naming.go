package definitions

import (
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// Pluralizer derives a plural name from a singular one.
type Pluralizer func(string) string

// SuffixPluralizer appends "s". It is the default.
func SuffixPluralizer(name string) string {
	return name + "s"
}

// InflectPluralizer applies English inflection rules (Category -> Categories).
func InflectPluralizer(name string) string {
	if name == "" {
		return name
	}
	return inflect.Pluralize(name)
}

// CamelCase lower-cases the first character and leaves the rest untouched.
func CamelCase(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return text
	}
	return string(unicode.ToLower(r)) + text[size:]
}

// PluralName returns def.PluralName or, when empty, the pluralizer's result.
func PluralName(def ModelDefinition, p Pluralizer) string {
	if def.PluralName != "" {
		return def.PluralName
	}
	if p == nil {
		p = SuffixPluralizer
	}
	return p(def.Name)
}

// Package naming provides the case-convention and reserved-word policy
// shared by the backends.
//
// All conversions normalize to NFC first so that renaming is a pure
// function of the identifier's canonical form, independent of how the
// definition file happened to encode it. Emission is deterministic
// because of this: identical IR yields identical names, byte for byte.
package naming

import (
	"github.com/iancoleman/strcase"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the NFC canonical form of name.
func Normalize(name string) string {
	return norm.NFC.String(name)
}

// Camel converts name to lowerCamelCase.
func Camel(name string) string {
	return strcase.ToLowerCamel(Normalize(name))
}

// Pascal converts name to UpperCamelCase.
func Pascal(name string) string {
	return strcase.ToCamel(Normalize(name))
}

// ScreamingSnake converts name to SCREAMING_SNAKE_CASE, the constant
// convention shared by the current backends.
func ScreamingSnake(name string) string {
	return strcase.ToScreamingSnake(Normalize(name))
}

// KeywordSet builds a reserved-word set from a word list.
func KeywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// NeedsQuoting reports whether name cannot appear as a bare identifier
// for a backend with the given reserved words: either it collides with
// a keyword or it contains characters illegal in a bare identifier
// (e.g. a hyphen). Such names must go through the backend's raw/quoted
// literal form, preserving the literal exactly for wire compatibility.
func NeedsQuoting(name string, keywords map[string]struct{}) bool {
	if _, reserved := keywords[name]; reserved {
		return true
	}
	return !IsBareIdentifier(name)
}

// IsBareIdentifier reports whether name is a plain ASCII identifier:
// a letter or underscore followed by letters, digits or underscores.
func IsBareIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

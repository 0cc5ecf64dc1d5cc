// Package emit provides the backend capability interface and the shared
// emission pipeline that turns IR modules into target-language source.
//
// The split follows one rule: logic identical across target languages
// (declaration dispatch, comment branching, generic-parameter skeletons,
// map-key legality) lives here; logic that differs per language
// (special-type tokens, naming convention, enum strategy) lives behind
// the Backend interface in internal/language.
package emit

import (
	"io"

	"github.com/wiretype/wiretype/internal/ir"
)

// Version is the generator version stamped into the banner at the top
// of emitted files unless suppressed.
const Version = "0.3.0"

// Backend is the capability interface one target language implements.
//
// Backends are pure text emitters: they hold only the per-run rename
// table and flags, never mutable state, so one backend value can serve
// multiple modules (and could do so from multiple goroutines).
type Backend interface {
	// Name returns the backend's stable name. It keys per-field type
	// overrides and decorator lists in the IR.
	Name() string

	// CommentStyle returns the delimiter and indent tokens used by the
	// shared comment writer.
	CommentStyle() CommentStyle

	// FormatType renders a type node to a target-language token.
	// generics lists the open generic parameters of the enclosing
	// declaration.
	FormatType(t ir.TypeNode, generics []string) (string, error)

	// BeginModule writes the file prologue, including the version
	// banner unless the backend is configured to suppress it.
	BeginModule(w io.Writer, m *ir.Module) error

	// WriteImports renders the cross-module references for the module
	// being written.
	WriteImports(w io.Writer, imports []ir.Import) error

	WriteTypeAlias(w io.Writer, d *ir.TypeAlias) error
	WriteStruct(w io.Writer, d *ir.Struct) error
	WriteUnitEnum(w io.Writer, d *ir.UnitEnum) error
	WriteAlgebraicEnum(w io.Writer, d *ir.AlgebraicEnum) error
	WriteConst(w io.Writer, d *ir.Const) error

	// SupportsTaggedUnions reports whether the target syntax has a
	// union/variant construct. When false the pipeline degrades
	// algebraic enums to an explicit opaque placeholder instead of
	// emitting a silently wrong approximation.
	SupportsTaggedUnions() bool

	// WriteOpaqueType emits the backend's opaque/abstract type marker
	// for the named declaration. Used for the tagged-union degrade
	// path; backends also use it for field-less records.
	WriteOpaqueType(w io.Writer, id ir.Identifier) error
}

// GenericParams renders a generic-parameter skeleton from the declared
// names, e.g. ("(", "'", ", ", ")") yields "('t, 'u)" and
// ("<", "", ", ", ">") yields "<T, U>". No parameters yields "".
func GenericParams(names []string, open, prefix, sep, close string) string {
	if len(names) == 0 {
		return ""
	}
	out := open
	for i, name := range names {
		if i > 0 {
			out += sep
		}
		out += prefix + name
	}
	return out + close
}

// CheckMapKey enforces the shared map-key restriction: a key that
// resolves to an open generic parameter of the enclosing declaration
// cannot be constrained by most target syntaxes and fails with a
// GENERIC_KEY_FORBIDDEN error.
func CheckMapKey(key ir.TypeNode, generics []string) error {
	s, ok := key.(ir.Simple)
	if !ok || len(s.GenericArgs) != 0 {
		return nil
	}
	for _, g := range generics {
		if s.Name == g {
			return NewGenericKeyError(s.Name)
		}
	}
	return nil
}

package ir

// Identifier pairs a declared name with its serialized wire name.
// Renamed defaults to Original when the definition carries no explicit
// rename; both are fixed upstream, and renaming is deterministic.
type Identifier struct {
	Original string `json:"original"`
	Renamed  string `json:"renamed"`
}

// Ident builds an Identifier whose wire name equals the declared name.
func Ident(name string) Identifier {
	return Identifier{Original: name, Renamed: name}
}

// Field represents one field of a struct or anonymous variant record.
type Field struct {
	ID       Identifier `json:"id"`
	Type     TypeNode   `json:"type"`
	Comments []string   `json:"comments,omitempty"`

	// TypeOverrides maps a backend name to a literal type token that
	// replaces the formatted type for that backend only.
	TypeOverrides map[string]string `json:"type_overrides,omitempty"`

	// Decorators maps a backend name to modifier names recognized by
	// that backend (e.g. "readonly" for backends with immutability
	// markers). Unrecognized decorators are ignored.
	Decorators map[string][]string `json:"decorators,omitempty"`

	// HasDefault marks fields the decoder may fill in when absent,
	// which makes them optional on the wire.
	HasDefault bool `json:"has_default,omitempty"`
}

// TypeOverride returns the literal type token for the named backend.
func (f *Field) TypeOverride(backend string) (string, bool) {
	override, ok := f.TypeOverrides[backend]
	return override, ok
}

// HasDecorator reports whether the named backend carries the given
// decorator on this field.
func (f *Field) HasDecorator(backend, decorator string) bool {
	for _, d := range f.Decorators[backend] {
		if d == decorator {
			return true
		}
	}
	return false
}

// Decl represents a top-level declaration in a module.
//
// This is a sealed interface - only types in this package implement it.
// Declaration kinds: *TypeAlias, *Struct, *UnitEnum, *AlgebraicEnum,
// *Const. The kind set is fixed by the shared source type system;
// backends switch exhaustively over it.
type Decl interface {
	decl() // Marker method - seals interface to this package
}

// TypeAlias declares a name for an existing type expression.
type TypeAlias struct {
	ID            Identifier `json:"id"`
	GenericParams []string   `json:"generic_params,omitempty"`
	Type          TypeNode   `json:"type"`
	Comments      []string   `json:"comments,omitempty"`
}

func (*TypeAlias) decl() {}

// Struct declares a nominal record type with ordered fields.
type Struct struct {
	ID            Identifier `json:"id"`
	GenericParams []string   `json:"generic_params,omitempty"`
	Fields        []Field    `json:"fields"`
	Comments      []string   `json:"comments,omitempty"`
}

func (*Struct) decl() {}

// Const declares a named integer constant.
type Const struct {
	ID       Identifier `json:"id"`
	Type     TypeNode   `json:"type"`
	Value    int64      `json:"value"`
	Comments []string   `json:"comments,omitempty"`
}

func (*Const) decl() {}

// EnumShared holds the parts common to unit and algebraic enums.
type EnumShared struct {
	ID            Identifier `json:"id"`
	GenericParams []string   `json:"generic_params,omitempty"`
	Variants      []Variant  `json:"variants"`
	Comments      []string   `json:"comments,omitempty"`
}

// Shared returns the common enum parts; promoted through embedding so
// both enum kinds satisfy a uniform accessor.
func (s *EnumShared) Shared() *EnumShared { return s }

// UnitEnum declares a closed tag set with no payloads. Every variant
// must be a *UnitVariant.
type UnitEnum struct {
	EnumShared
}

func (*UnitEnum) decl() {}

// AlgebraicEnum declares a tagged union. The serialized form of every
// variant carries the discriminant under TagKey and, for non-unit
// variants, the payload under ContentKey. Both keys are fixed for all
// variants and appear literally in emitted declarations so values
// type-check against real payloads.
type AlgebraicEnum struct {
	EnumShared
	TagKey     string `json:"tag_key"`
	ContentKey string `json:"content_key"`
}

func (*AlgebraicEnum) decl() {}

// Variant represents one branch of an enum declaration.
//
// This is a sealed interface - only types in this package implement it.
// Variant kinds: *UnitVariant (tag only), *TupleVariant (tag plus one
// positional payload), *StructVariant (tag plus an inline record).
type Variant interface {
	variantNode() // Marker method - seals interface to this package
	Shared() *VariantShared
}

// VariantShared holds the parts common to all variant kinds.
type VariantShared struct {
	ID       Identifier `json:"id"`
	Comments []string   `json:"comments,omitempty"`
}

// Shared returns the common variant parts.
func (s *VariantShared) Shared() *VariantShared { return s }

// UnitVariant is a tag with no payload.
type UnitVariant struct {
	VariantShared
}

func (*UnitVariant) variantNode() {}

// TupleVariant is a tag with one positional payload of the wrapped type.
type TupleVariant struct {
	VariantShared
	Type TypeNode `json:"type"`
}

func (*TupleVariant) variantNode() {}

// StructVariant is a tag whose payload is an inline record built from
// the declared fields.
type StructVariant struct {
	VariantShared
	Fields []Field `json:"fields"`
}

func (*StructVariant) variantNode() {}

// Import names a cross-module dependency: the module path and the type
// names used from it. Resolution happens in the per-backend import
// emitter; the IR only records the pairs.
type Import struct {
	Path  string   `json:"path"`
	Types []string `json:"types"`
}

// Module is a finite ordered sequence of declarations. Declarations are
// emitted in source order. Built once by the definition compiler,
// read-only during emission.
type Module struct {
	Name    string   `json:"name"`
	Imports []Import `json:"imports,omitempty"`
	Decls   []Decl   `json:"decls"`
}

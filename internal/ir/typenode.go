package ir

// TypeNode represents an abstract type expression in the IR.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in backend formatters.
//
// TypeNode kinds:
//   - Simple: a nominal type reference with optional generic arguments
//   - Special: one of the fixed built-in shape vocabulary (list, map,
//     option, primitives, ...), optionally wrapping nested nodes
type TypeNode interface {
	typeNode() // Marker method - seals interface to this package
}

// Simple is a nominal type reference, e.g. "Uuid" or "Paged" with
// generic arguments. A Simple whose name matches a generic parameter of
// the enclosing declaration is an open type variable.
type Simple struct {
	Name        string
	GenericArgs []TypeNode
}

func (Simple) typeNode() {}

// SpecialKind identifies one of the fixed built-in shape kinds.
//
// The string value doubles as the lookup key in per-backend type
// mapping tables, so it must stay stable.
type SpecialKind string

const (
	KindList     SpecialKind = "list"     // growable list, wraps Elem
	KindArray    SpecialKind = "array"    // fixed-length array, wraps Elem with Len
	KindSlice    SpecialKind = "slice"    // borrowed view, wraps Elem
	KindOption   SpecialKind = "option"   // optional value, wraps Elem
	KindMap      SpecialKind = "map"      // associative map, wraps Key and Value
	KindUnit     SpecialKind = "unit"     // unit/void
	KindDateTime SpecialKind = "datetime" // wall-clock timestamp
	KindString   SpecialKind = "string"
	KindChar     SpecialKind = "char" // single-character string on the wire
	KindI8       SpecialKind = "i8"
	KindU8       SpecialKind = "u8"
	KindI16      SpecialKind = "i16"
	KindU16      SpecialKind = "u16"
	KindI32      SpecialKind = "i32"
	KindU32      SpecialKind = "u32"
	KindI54      SpecialKind = "i54" // widest JSON-safe signed integer
	KindU53      SpecialKind = "u53" // widest JSON-safe unsigned integer
	KindF32      SpecialKind = "f32"
	KindF64      SpecialKind = "f64"
	KindBool     SpecialKind = "bool"
	KindI64      SpecialKind = "i64"   // rejected: exceeds JSON-safe precision
	KindU64      SpecialKind = "u64"   // rejected: exceeds JSON-safe precision
	KindISize    SpecialKind = "isize" // rejected: platform-width integer
	KindUSize    SpecialKind = "usize" // rejected: platform-width integer
)

// Special is a built-in shape from the fixed vocabulary. Which of the
// nested fields are meaningful depends on Kind: Elem for list, array,
// slice and option; Key and Value for map; Len for array.
type Special struct {
	Kind  SpecialKind
	Elem  TypeNode
	Key   TypeNode
	Value TypeNode
	Len   int
}

func (Special) typeNode() {}

// List returns a growable-list node wrapping elem.
func List(elem TypeNode) Special {
	return Special{Kind: KindList, Elem: elem}
}

// FixedArray returns a fixed-length array node wrapping elem.
func FixedArray(elem TypeNode, n int) Special {
	return Special{Kind: KindArray, Elem: elem, Len: n}
}

// Slice returns a borrowed-view node wrapping elem.
func Slice(elem TypeNode) Special {
	return Special{Kind: KindSlice, Elem: elem}
}

// Option returns an optional node wrapping elem.
func Option(elem TypeNode) Special {
	return Special{Kind: KindOption, Elem: elem}
}

// Map returns an associative-map node over key and value.
func Map(key, value TypeNode) Special {
	return Special{Kind: KindMap, Key: key, Value: value}
}

// Primitive returns a node for a kind that wraps nothing.
func Primitive(kind SpecialKind) Special {
	return Special{Kind: kind}
}

// Named returns a nominal type reference.
func Named(name string, args ...TypeNode) Simple {
	return Simple{Name: name, GenericArgs: args}
}

// IsOption reports whether t is the optional shape, and returns the
// wrapped element when it is.
func IsOption(t TypeNode) (TypeNode, bool) {
	if s, ok := t.(Special); ok && s.Kind == KindOption {
		return s.Elem, true
	}
	return nil, false
}

// Is64BitClass reports whether kind is one of the categorically
// unrepresentable numeric kinds. Formatting any of these is an error;
// no backend may silently truncate precision.
func Is64BitClass(kind SpecialKind) bool {
	switch kind {
	case KindI64, KindU64, KindISize, KindUSize:
		return true
	default:
		return false
	}
}

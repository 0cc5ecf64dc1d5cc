// Package reasonml emits ReasonML type declarations from IR modules.
//
// Conventions: type names are lowerCamelCase (ReasonML requires a
// lowercase initial), constants are SCREAMING_SNAKE_CASE, and type
// parameters render as 't. Names that collide with a keyword or carry
// characters illegal in a bare identifier are emitted in quoted literal
// form so the wire name survives exactly.
//
// Double optional collapses structurally: option(option(t)) is valid
// ReasonML and keeps both missing states distinct, so no extra nullable
// marker is needed.
package reasonml

import (
	"fmt"
	"io"

	"github.com/wiretype/wiretype/internal/emit"
	"github.com/wiretype/wiretype/internal/ir"
	"github.com/wiretype/wiretype/internal/naming"
)

// keywords is the ReasonML reserved-word set.
var keywords = naming.KeywordSet(
	"and", "as", "assert", "begin", "class", "constraint", "do", "done", "downto",
	"else", "end", "exception", "external", "false", "for", "fun", "function",
	"functor", "if", "in", "include", "inherit", "initializer", "lazy", "let",
	"match", "method", "module", "mutable", "new", "nonrec", "object", "of",
	"open", "or", "private", "rec", "sig", "struct", "switch", "then", "to",
	"true", "try", "type", "val", "virtual", "when", "while", "with",
)

// Backend holds all configuration needed to generate ReasonML code.
// It is read-only during emission.
type Backend struct {
	// TypeMappings maps IR type names (and special-kind names) to
	// explicit ReasonML tokens, consulted before any convention.
	TypeMappings map[string]string

	// NoVersionHeader suppresses the banner at the top of generated
	// code. Useful for snapshot tests.
	NoVersionHeader bool
}

// Name implements emit.Backend.
func (b *Backend) Name() string { return "reasonml" }

// CommentStyle implements emit.Backend.
func (b *Backend) CommentStyle() emit.CommentStyle {
	return emit.CommentStyle{Open: "/*", Prefix: " * ", Close: " */", Indent: "  "}
}

// SupportsTaggedUnions implements emit.Backend. ReasonML variants carry
// the tag and content keys as labeled constructor fields.
func (b *Backend) SupportsTaggedUnions() bool { return true }

// BeginModule writes the version banner unless suppressed.
func (b *Backend) BeginModule(w io.Writer, _ *ir.Module) error {
	if b.NoVersionHeader {
		return nil
	}
	_, err := fmt.Fprintf(w, "/* Generated by wiretype %s */\n\n", emit.Version)
	return err
}

// WriteImports renders cross-module references as module opens.
func (b *Backend) WriteImports(w io.Writer, imports []ir.Import) error {
	for _, imp := range imports {
		if _, err := fmt.Fprintf(w, "open %s;\n", naming.Pascal(imp.Path)); err != nil {
			return err
		}
	}
	return nil
}

// FormatType implements emit.Backend.
func (b *Backend) FormatType(t ir.TypeNode, generics []string) (string, error) {
	switch t := t.(type) {
	case ir.Simple:
		return b.formatSimple(t, generics)
	case ir.Special:
		return b.formatSpecial(t, generics)
	default:
		return "", fmt.Errorf("unsupported type node: %T", t)
	}
}

// formatSimple consults the explicit rename table first, then renders
// type variables as 't and nominal references in camelCase.
func (b *Backend) formatSimple(t ir.Simple, generics []string) (string, error) {
	if mapped, ok := b.TypeMappings[t.Name]; ok {
		return mapped, nil
	}
	for _, g := range generics {
		if t.Name == g {
			return "'" + naming.Camel(t.Name), nil
		}
	}
	base := naming.Camel(t.Name)
	if len(t.GenericArgs) == 0 {
		return base, nil
	}
	args := ""
	for i, arg := range t.GenericArgs {
		formatted, err := b.FormatType(arg, generics)
		if err != nil {
			return "", err
		}
		if i > 0 {
			args += ", "
		}
		args += formatted
	}
	return fmt.Sprintf("%s(%s)", base, args), nil
}

func (b *Backend) formatSpecial(t ir.Special, generics []string) (string, error) {
	if mapped, ok := b.TypeMappings[string(t.Kind)]; ok {
		return mapped, nil
	}
	switch t.Kind {
	case ir.KindList, ir.KindArray, ir.KindSlice:
		elem, err := b.FormatType(t.Elem, generics)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("array(%s)", elem), nil
	case ir.KindOption:
		elem, err := b.FormatType(t.Elem, generics)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("option(%s)", elem), nil
	case ir.KindMap:
		if err := emit.CheckMapKey(t.Key, generics); err != nil {
			return "", err
		}
		// Js.Dict.t keys are always strings; only the value type varies.
		value, err := b.FormatType(t.Value, generics)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Js.Dict.t(%s)", value), nil
	case ir.KindUnit:
		return "unit", nil
	case ir.KindDateTime:
		return "Js.Date.t", nil
	case ir.KindString, ir.KindChar:
		return "string", nil
	case ir.KindI8, ir.KindU8, ir.KindI16, ir.KindU16, ir.KindI32, ir.KindU32,
		ir.KindI54, ir.KindU53, ir.KindF32, ir.KindF64:
		return "float", nil
	case ir.KindBool:
		return "bool", nil
	case ir.KindI64, ir.KindU64, ir.KindISize, ir.KindUSize:
		return "", emit.NewUnsupportedWidthError(t.Kind)
	default:
		return "", fmt.Errorf("unknown special kind: %q", t.Kind)
	}
}

// WriteTypeAlias implements emit.Backend.
func (b *Backend) WriteTypeAlias(w io.Writer, d *ir.TypeAlias) error {
	if err := emit.WriteComments(w, b.CommentStyle(), 0, d.Comments); err != nil {
		return err
	}
	formatted, err := b.FormatType(d.Type, d.GenericParams)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "type %s%s = %s;\n",
		naming.Camel(d.ID.Renamed), b.genericParams(d.GenericParams), formatted)
	return err
}

// WriteConst implements emit.Backend.
func (b *Backend) WriteConst(w io.Writer, d *ir.Const) error {
	if err := emit.WriteComments(w, b.CommentStyle(), 0, d.Comments); err != nil {
		return err
	}
	formatted, err := b.FormatType(d.Type, nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "let %s = (%d: %s);\n",
		naming.ScreamingSnake(d.ID.Renamed), d.Value, formatted)
	return err
}

// WriteStruct implements emit.Backend.
func (b *Backend) WriteStruct(w io.Writer, d *ir.Struct) error {
	if err := emit.WriteComments(w, b.CommentStyle(), 0, d.Comments); err != nil {
		return err
	}

	// ReasonML has no empty record syntax; a field-less struct becomes
	// an opaque type.
	if len(d.Fields) == 0 {
		return b.WriteOpaqueType(w, d.ID)
	}

	if _, err := fmt.Fprintf(w, "type %s%s = {\n",
		naming.Camel(d.ID.Renamed), b.genericParams(d.GenericParams)); err != nil {
		return err
	}
	for i := range d.Fields {
		if err := b.writeField(w, &d.Fields[i], d.GenericParams, 1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "};\n")
	return err
}

// WriteOpaqueType implements emit.Backend.
func (b *Backend) WriteOpaqueType(w io.Writer, id ir.Identifier) error {
	_, err := fmt.Fprintf(w, "type %s;\n", naming.Camel(id.Renamed))
	return err
}

// WriteUnitEnum implements emit.Backend. Tags keep their original
// literal names: ReasonML constructors are the wire representation.
func (b *Backend) WriteUnitEnum(w io.Writer, d *ir.UnitEnum) error {
	if err := emit.WriteComments(w, b.CommentStyle(), 0, d.Comments); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "type %s%s =\n",
		naming.Camel(d.ID.Renamed), b.genericParams(d.GenericParams)); err != nil {
		return err
	}
	for _, variant := range d.Variants {
		unit, ok := variant.(*ir.UnitVariant)
		if !ok {
			return fmt.Errorf("unit enum %s: variant %q carries a payload",
				d.ID.Original, variant.Shared().ID.Original)
		}
		if err := emit.WriteComments(w, b.CommentStyle(), 1, unit.Comments); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  | %s\n", unit.ID.Renamed); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, ";\n")
	return err
}

// WriteAlgebraicEnum implements emit.Backend. The three payload shapes
// carry the tag key (and content key for non-unit variants) literally
// so decoded payloads type-check.
func (b *Backend) WriteAlgebraicEnum(w io.Writer, d *ir.AlgebraicEnum) error {
	if err := emit.WriteComments(w, b.CommentStyle(), 0, d.Comments); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "type %s%s =\n",
		naming.Camel(d.ID.Renamed), b.genericParams(d.GenericParams)); err != nil {
		return err
	}

	for _, variant := range d.Variants {
		if err := emit.WriteComments(w, b.CommentStyle(), 1, variant.Shared().Comments); err != nil {
			return err
		}

		name := variant.Shared().ID.Renamed
		switch variant := variant.(type) {
		case *ir.UnitVariant:
			if _, err := fmt.Fprintf(w, "  | %s(%s: string)\n", name, d.TagKey); err != nil {
				return err
			}
		case *ir.TupleVariant:
			formatted, err := b.FormatType(variant.Type, d.GenericParams)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "  | %s(%s: string, %s: %s)\n",
				name, d.TagKey, d.ContentKey, formatted); err != nil {
				return err
			}
		case *ir.StructVariant:
			if _, err := fmt.Fprintf(w, "  | %s(%s: string, %s: {\n",
				name, d.TagKey, d.ContentKey); err != nil {
				return err
			}
			for i := range variant.Fields {
				if err := b.writeField(w, &variant.Fields[i], d.GenericParams, 2); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "  })\n"); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported variant type: %T", variant)
		}
	}
	_, err := fmt.Fprintf(w, ";\n")
	return err
}

// writeField renders one record field at the given indent depth.
func (b *Backend) writeField(w io.Writer, f *ir.Field, generics []string, depth int) error {
	style := b.CommentStyle()
	if err := emit.WriteComments(w, style, depth, f.Comments); err != nil {
		return err
	}

	var formatted string
	if override, ok := f.TypeOverride(b.Name()); ok {
		formatted = override
	} else {
		var err error
		formatted, err = b.FormatType(f.Type, generics)
		if err != nil {
			return err
		}
	}

	// A default makes the field optional on the wire even when its
	// declared type is not.
	if f.HasDefault {
		if _, already := ir.IsOption(f.Type); !already {
			formatted = fmt.Sprintf("option(%s)", formatted)
		}
	}

	indent := ""
	for i := 0; i < depth; i++ {
		indent += style.Indent
	}
	_, err := fmt.Fprintf(w, "%s%s: %s,\n", indent, escapeIdent(f.ID.Renamed), formatted)
	return err
}

// genericParams renders the parameter skeleton, e.g. ('t, 'u).
func (b *Backend) genericParams(names []string) string {
	if len(names) == 0 {
		return ""
	}
	lowered := make([]string, len(names))
	for i, name := range names {
		lowered[i] = naming.Camel(name)
	}
	return emit.GenericParams(lowered, "(", "'", ", ", ")")
}

// escapeIdent emits the quoted literal form for names that cannot be
// bare identifiers, preserving the wire name exactly.
func escapeIdent(name string) string {
	if naming.NeedsQuoting(name, keywords) {
		return fmt.Sprintf("%q", name)
	}
	return name
}

// Package typescript emits TypeScript type declarations from IR modules.
//
// Conventions: type names are PascalCase, constants SCREAMING_SNAKE_CASE,
// fields keep their wire names (quoted when not a bare identifier).
// Optionality splits into two independent markers: absence renders as a
// `?` modifier and nullability as a `| null` union, so a double optional
// keeps both missing states distinct.
package typescript

import (
	"fmt"
	"io"
	"strings"

	"github.com/wiretype/wiretype/internal/emit"
	"github.com/wiretype/wiretype/internal/ir"
	"github.com/wiretype/wiretype/internal/naming"
)

// keywords is the TypeScript/ECMAScript reserved-word set. Contextual
// keywords (type, readonly, ...) are legal property names and are not
// listed.
var keywords = naming.KeywordSet(
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "enum", "export", "extends", "false",
	"finally", "for", "function", "if", "import", "in", "instanceof", "new",
	"null", "return", "super", "switch", "this", "throw", "true", "try",
	"typeof", "var", "void", "while", "with",
)

// Backend holds all configuration needed to generate TypeScript code.
// It is read-only during emission.
type Backend struct {
	// TypeMappings maps IR type names (and special-kind names) to
	// explicit TypeScript tokens, consulted before any convention.
	TypeMappings map[string]string

	// NoVersionHeader suppresses the banner at the top of generated
	// code.
	NoVersionHeader bool
}

// Name implements emit.Backend.
func (b *Backend) Name() string { return "typescript" }

// CommentStyle implements emit.Backend.
func (b *Backend) CommentStyle() emit.CommentStyle {
	return emit.CommentStyle{Open: "/**", Prefix: " * ", Close: " */", Indent: "\t"}
}

// SupportsTaggedUnions implements emit.Backend.
func (b *Backend) SupportsTaggedUnions() bool { return true }

// BeginModule writes the version banner unless suppressed.
func (b *Backend) BeginModule(w io.Writer, _ *ir.Module) error {
	if b.NoVersionHeader {
		return nil
	}
	_, err := fmt.Fprintf(w, "/** Generated by wiretype %s */\n\n", emit.Version)
	return err
}

// WriteImports renders cross-module references as named imports.
func (b *Backend) WriteImports(w io.Writer, imports []ir.Import) error {
	for _, imp := range imports {
		if _, err := fmt.Fprintf(w, "import { %s } from \"./%s\";\n",
			strings.Join(imp.Types, ", "), imp.Path); err != nil {
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

func (b *Backend) formatSimple(t ir.Simple, generics []string) (string, error) {
	if mapped, ok := b.TypeMappings[t.Name]; ok {
		return mapped, nil
	}
	for _, g := range generics {
		if t.Name == g {
			return t.Name, nil
		}
	}
	base := naming.Pascal(t.Name)
	if len(t.GenericArgs) == 0 {
		return base, nil
	}
	args := make([]string, len(t.GenericArgs))
	for i, arg := range t.GenericArgs {
		formatted, err := b.FormatType(arg, generics)
		if err != nil {
			return "", err
		}
		args[i] = formatted
	}
	return fmt.Sprintf("%s<%s>", base, strings.Join(args, ", ")), nil
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
		return wrapArray(elem), nil
	case ir.KindOption:
		elem, err := b.FormatType(t.Elem, generics)
		if err != nil {
			return "", err
		}
		return elem + " | undefined", nil
	case ir.KindMap:
		if err := emit.CheckMapKey(t.Key, generics); err != nil {
			return "", err
		}
		key, err := b.FormatType(t.Key, generics)
		if err != nil {
			return "", err
		}
		value, err := b.FormatType(t.Value, generics)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Record<%s, %s>", key, value), nil
	case ir.KindUnit:
		return "undefined", nil
	case ir.KindDateTime:
		return "Date", nil
	case ir.KindString, ir.KindChar:
		return "string", nil
	case ir.KindI8, ir.KindU8, ir.KindI16, ir.KindU16, ir.KindI32, ir.KindU32,
		ir.KindI54, ir.KindU53, ir.KindF32, ir.KindF64:
		return "number", nil
	case ir.KindBool:
		return "boolean", nil
	case ir.KindI64, ir.KindU64, ir.KindISize, ir.KindUSize:
		return "", emit.NewUnsupportedWidthError(t.Kind)
	default:
		return "", fmt.Errorf("unknown special kind: %q", t.Kind)
	}
}

// wrapArray applies the array wrapper to an element token,
// parenthesizing union tokens so precedence survives.
func wrapArray(elem string) string {
	if strings.ContainsAny(elem, " |") {
		return "(" + elem + ")[]"
	}
	return elem + "[]"
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
	_, err = fmt.Fprintf(w, "export type %s%s = %s;\n",
		naming.Pascal(d.ID.Renamed), genericParams(d.GenericParams), formatted)
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
	_, err = fmt.Fprintf(w, "export const %s: %s = %d;\n",
		naming.ScreamingSnake(d.ID.Renamed), formatted, d.Value)
	return err
}

// WriteStruct implements emit.Backend.
func (b *Backend) WriteStruct(w io.Writer, d *ir.Struct) error {
	if err := emit.WriteComments(w, b.CommentStyle(), 0, d.Comments); err != nil {
		return err
	}

	// An empty interface would match anything; emit a closed record
	// type instead.
	if len(d.Fields) == 0 {
		_, err := fmt.Fprintf(w, "export type %s = Record<string, never>;\n",
			naming.Pascal(d.ID.Renamed))
		return err
	}

	if _, err := fmt.Fprintf(w, "export interface %s%s {\n",
		naming.Pascal(d.ID.Renamed), genericParams(d.GenericParams)); err != nil {
		return err
	}
	for i := range d.Fields {
		if err := b.writeField(w, &d.Fields[i], d.GenericParams, 1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "}\n")
	return err
}

// WriteOpaqueType implements emit.Backend.
func (b *Backend) WriteOpaqueType(w io.Writer, id ir.Identifier) error {
	_, err := fmt.Fprintf(w, "export type %s = unknown;\n", naming.Pascal(id.Renamed))
	return err
}

// WriteUnitEnum implements emit.Backend. Member values keep the
// original literal tag so serialized values round-trip.
func (b *Backend) WriteUnitEnum(w io.Writer, d *ir.UnitEnum) error {
	if err := emit.WriteComments(w, b.CommentStyle(), 0, d.Comments); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "export enum %s {\n", naming.Pascal(d.ID.Renamed)); err != nil {
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
		if _, err := fmt.Fprintf(w, "\t%s = %q,\n",
			naming.Pascal(unit.ID.Renamed), unit.ID.Renamed); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "}\n")
	return err
}

// WriteAlgebraicEnum implements emit.Backend. Emits a discriminated
// union; the tag and content keys appear literally in every branch.
func (b *Backend) WriteAlgebraicEnum(w io.Writer, d *ir.AlgebraicEnum) error {
	if err := emit.WriteComments(w, b.CommentStyle(), 0, d.Comments); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "export type %s%s =\n",
		naming.Pascal(d.ID.Renamed), genericParams(d.GenericParams)); err != nil {
		return err
	}

	tag := escapeProperty(d.TagKey)
	content := escapeProperty(d.ContentKey)

	for i, variant := range d.Variants {
		suffix := ""
		if i == len(d.Variants)-1 {
			suffix = ";"
		}

		if err := emit.WriteComments(w, b.CommentStyle(), 1, variant.Shared().Comments); err != nil {
			return err
		}

		name := variant.Shared().ID.Renamed
		switch variant := variant.(type) {
		case *ir.UnitVariant:
			if _, err := fmt.Fprintf(w, "\t| { %s: %q }%s\n", tag, name, suffix); err != nil {
				return err
			}
		case *ir.TupleVariant:
			formatted, err := b.FormatType(variant.Type, d.GenericParams)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "\t| { %s: %q, %s: %s }%s\n",
				tag, name, content, formatted, suffix); err != nil {
				return err
			}
		case *ir.StructVariant:
			if _, err := fmt.Fprintf(w, "\t| { %s: %q, %s: {\n", tag, name, content); err != nil {
				return err
			}
			for i := range variant.Fields {
				if err := b.writeField(w, &variant.Fields[i], d.GenericParams, 2); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "\t} }%s\n", suffix); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported variant type: %T", variant)
		}
	}
	return nil
}

// writeField renders one interface field at the given indent depth.
//
// Optionality resolution: a field is optional (`?`) when its type is
// optional or it has a default; a double optional additionally widens
// the value type with `| null` so the two missing states stay distinct.
func (b *Backend) writeField(w io.Writer, f *ir.Field, generics []string, depth int) error {
	style := b.CommentStyle()
	if err := emit.WriteComments(w, style, depth, f.Comments); err != nil {
		return err
	}

	valueType := f.Type
	optional := f.HasDefault
	nullable := false
	if elem, ok := ir.IsOption(valueType); ok {
		optional = true
		valueType = elem
		if inner, again := ir.IsOption(valueType); again {
			nullable = true
			valueType = inner
		}
	}

	var formatted string
	if override, ok := f.TypeOverride(b.Name()); ok {
		formatted = override
	} else {
		var err error
		formatted, err = b.FormatType(valueType, generics)
		if err != nil {
			return err
		}
	}
	if nullable {
		formatted += " | null"
	}

	name := escapeProperty(f.ID.Renamed)
	if optional {
		name += "?"
	}
	if f.HasDecorator(b.Name(), "readonly") {
		name = "readonly " + name
	}

	_, err := fmt.Fprintf(w, "%s%s: %s;\n", strings.Repeat(style.Indent, depth), name, formatted)
	return err
}

// genericParams renders the parameter skeleton, e.g. <T, U>.
func genericParams(names []string) string {
	return emit.GenericParams(names, "<", "", ", ", ">")
}

// escapeProperty emits the quoted literal form for property names that
// cannot be bare identifiers, preserving the wire name exactly.
func escapeProperty(name string) string {
	if naming.NeedsQuoting(name, keywords) {
		return fmt.Sprintf("%q", name)
	}
	return name
}

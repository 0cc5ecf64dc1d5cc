// Package compiler parses CUE type-definition files into IR modules.
//
// Definitions are declarative data, not a source language: a file names
// its module and lists declarations with explicit type nodes.
//
//	module: "chat"
//	decls: [
//		{kind: "struct", name: "ChatMessage", fields: [
//			{name: "content", type: {kind: "string"}},
//			{name: "tags", type: {kind: "list", elem: {kind: "string"}}, has_default: true},
//		]},
//		{kind: "enum", name: "Event", tag_key: "type", content_key: "data", variants: [
//			{name: "Quit"},
//			{name: "Move", type: {kind: "simple", name: "Position"}},
//			{name: "Write", fields: [{name: "text", type: {kind: "string"}}]},
//		]},
//	]
//
// Type node kinds are the IR special vocabulary plus "simple" for
// nominal references. Uses the CUE SDK's Go API directly (not a CLI
// subprocess).
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/wiretype/wiretype/internal/ir"
)

// CompileModule parses a CUE value into an ir.Module. The value should
// be the root of one definition file.
func CompileModule(v cue.Value) (*ir.Module, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	mod := &ir.Module{}

	nameVal := v.LookupPath(cue.ParsePath("module"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "module",
			Message: "module name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	mod.Name = name

	mod.Imports, err = parseImports(v)
	if err != nil {
		return nil, err
	}

	declsVal := v.LookupPath(cue.ParsePath("decls"))
	if !declsVal.Exists() {
		return nil, &CompileError{
			Field:   "decls",
			Message: "at least one declaration is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := declsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		decl, err := parseDecl(iter.Value())
		if err != nil {
			return nil, err
		}
		mod.Decls = append(mod.Decls, decl)
	}

	return mod, nil
}

// parseImports extracts cross-module references.
func parseImports(v cue.Value) ([]ir.Import, error) {
	var imports []ir.Import

	importsVal := v.LookupPath(cue.ParsePath("imports"))
	if !importsVal.Exists() {
		return imports, nil
	}

	iter, err := importsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		impVal := iter.Value()
		path, err := impVal.LookupPath(cue.ParsePath("path")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		types, err := parseStringList(impVal.LookupPath(cue.ParsePath("types")))
		if err != nil {
			return nil, err
		}
		imports = append(imports, ir.Import{Path: path, Types: types})
	}

	return imports, nil
}

// parseDecl dispatches on the declaration kind.
func parseDecl(v cue.Value) (ir.Decl, error) {
	kind, err := v.LookupPath(cue.ParsePath("kind")).String()
	if err != nil {
		return nil, &CompileError{
			Field:   "kind",
			Message: "declaration kind is required",
			Pos:     v.Pos(),
		}
	}

	switch kind {
	case "struct":
		return parseStruct(v)
	case "alias":
		return parseAlias(v)
	case "enum":
		return parseEnum(v)
	case "const":
		return parseConst(v)
	default:
		return nil, &CompileError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown declaration kind: %q", kind),
			Pos:     v.Pos(),
		}
	}
}

func parseStruct(v cue.Value) (*ir.Struct, error) {
	id, err := parseIdentifier(v)
	if err != nil {
		return nil, err
	}
	comments, err := parseStringList(v.LookupPath(cue.ParsePath("comments")))
	if err != nil {
		return nil, err
	}
	generics, err := parseStringList(v.LookupPath(cue.ParsePath("generics")))
	if err != nil {
		return nil, err
	}
	fields, err := parseFields(v.LookupPath(cue.ParsePath("fields")))
	if err != nil {
		return nil, err
	}
	return &ir.Struct{ID: id, GenericParams: generics, Fields: fields, Comments: comments}, nil
}

func parseAlias(v cue.Value) (*ir.TypeAlias, error) {
	id, err := parseIdentifier(v)
	if err != nil {
		return nil, err
	}
	comments, err := parseStringList(v.LookupPath(cue.ParsePath("comments")))
	if err != nil {
		return nil, err
	}
	generics, err := parseStringList(v.LookupPath(cue.ParsePath("generics")))
	if err != nil {
		return nil, err
	}
	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return nil, &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("alias %q requires a type", id.Original),
			Pos:     v.Pos(),
		}
	}
	node, err := parseTypeNode(typeVal)
	if err != nil {
		return nil, err
	}
	return &ir.TypeAlias{ID: id, GenericParams: generics, Type: node, Comments: comments}, nil
}

func parseConst(v cue.Value) (*ir.Const, error) {
	id, err := parseIdentifier(v)
	if err != nil {
		return nil, err
	}
	comments, err := parseStringList(v.LookupPath(cue.ParsePath("comments")))
	if err != nil {
		return nil, err
	}
	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return nil, &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("const %q requires a type", id.Original),
			Pos:     v.Pos(),
		}
	}
	node, err := parseTypeNode(typeVal)
	if err != nil {
		return nil, err
	}
	value, err := v.LookupPath(cue.ParsePath("value")).Int64()
	if err != nil {
		return nil, &CompileError{
			Field:   "value",
			Message: fmt.Sprintf("const %q requires an integer value", id.Original),
			Pos:     v.Pos(),
		}
	}
	return &ir.Const{ID: id, Type: node, Value: value, Comments: comments}, nil
}

// parseEnum builds a unit or algebraic enum. Presence of tag_key and
// content_key selects the algebraic form.
func parseEnum(v cue.Value) (ir.Decl, error) {
	id, err := parseIdentifier(v)
	if err != nil {
		return nil, err
	}
	comments, err := parseStringList(v.LookupPath(cue.ParsePath("comments")))
	if err != nil {
		return nil, err
	}
	generics, err := parseStringList(v.LookupPath(cue.ParsePath("generics")))
	if err != nil {
		return nil, err
	}

	var variants []ir.Variant
	variantsVal := v.LookupPath(cue.ParsePath("variants"))
	if variantsVal.Exists() {
		iter, err := variantsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			variant, err := parseVariant(iter.Value())
			if err != nil {
				return nil, err
			}
			variants = append(variants, variant)
		}
	}

	shared := ir.EnumShared{ID: id, GenericParams: generics, Variants: variants, Comments: comments}

	tagVal := v.LookupPath(cue.ParsePath("tag_key"))
	contentVal := v.LookupPath(cue.ParsePath("content_key"))
	if !tagVal.Exists() && !contentVal.Exists() {
		return &ir.UnitEnum{EnumShared: shared}, nil
	}

	tagKey, err := tagVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	contentKey, err := contentVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	return &ir.AlgebraicEnum{EnumShared: shared, TagKey: tagKey, ContentKey: contentKey}, nil
}

// parseVariant selects the variant shape from the fields present: a
// type makes a tuple variant, fields make a struct variant, neither
// makes a unit variant.
func parseVariant(v cue.Value) (ir.Variant, error) {
	id, err := parseIdentifier(v)
	if err != nil {
		return nil, err
	}
	comments, err := parseStringList(v.LookupPath(cue.ParsePath("comments")))
	if err != nil {
		return nil, err
	}
	shared := ir.VariantShared{ID: id, Comments: comments}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	switch {
	case typeVal.Exists() && fieldsVal.Exists():
		return nil, &CompileError{
			Field:   "variants",
			Message: fmt.Sprintf("variant %q cannot carry both a type and fields", id.Original),
			Pos:     v.Pos(),
		}
	case typeVal.Exists():
		node, err := parseTypeNode(typeVal)
		if err != nil {
			return nil, err
		}
		return &ir.TupleVariant{VariantShared: shared, Type: node}, nil
	case fieldsVal.Exists():
		fields, err := parseFields(fieldsVal)
		if err != nil {
			return nil, err
		}
		return &ir.StructVariant{VariantShared: shared, Fields: fields}, nil
	default:
		return &ir.UnitVariant{VariantShared: shared}, nil
	}
}

func parseFields(v cue.Value) ([]ir.Field, error) {
	var fields []ir.Field
	if !v.Exists() {
		return fields, nil
	}

	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		field, err := parseField(iter.Value())
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func parseField(v cue.Value) (ir.Field, error) {
	var field ir.Field

	id, err := parseIdentifier(v)
	if err != nil {
		return field, err
	}
	field.ID = id

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return field, &CompileError{
			Field:   "fields",
			Message: fmt.Sprintf("field %q requires a type", id.Original),
			Pos:     v.Pos(),
		}
	}
	field.Type, err = parseTypeNode(typeVal)
	if err != nil {
		return field, err
	}

	field.Comments, err = parseStringList(v.LookupPath(cue.ParsePath("comments")))
	if err != nil {
		return field, err
	}

	if defVal := v.LookupPath(cue.ParsePath("has_default")); defVal.Exists() {
		field.HasDefault, err = defVal.Bool()
		if err != nil {
			return field, formatCUEError(err)
		}
	}

	field.TypeOverrides, err = parseStringMap(v.LookupPath(cue.ParsePath("overrides")))
	if err != nil {
		return field, err
	}

	if decVal := v.LookupPath(cue.ParsePath("decorators")); decVal.Exists() {
		field.Decorators = make(map[string][]string)
		fieldIter, err := decVal.Fields()
		if err != nil {
			return field, formatCUEError(err)
		}
		for fieldIter.Next() {
			list, err := parseStringList(fieldIter.Value())
			if err != nil {
				return field, err
			}
			field.Decorators[fieldIter.Label()] = list
		}
	}

	return field, nil
}

// parseTypeNode builds a TypeNode from its declarative form. "simple"
// references a nominal type; every other kind is the IR special
// vocabulary.
func parseTypeNode(v cue.Value) (ir.TypeNode, error) {
	kind, err := v.LookupPath(cue.ParsePath("kind")).String()
	if err != nil {
		return nil, &CompileError{
			Field:   "type",
			Message: "type node requires a kind",
			Pos:     v.Pos(),
		}
	}

	switch ir.SpecialKind(kind) {
	case "simple":
		name, err := v.LookupPath(cue.ParsePath("name")).String()
		if err != nil {
			return nil, &CompileError{
				Field:   "type",
				Message: "simple type requires a name",
				Pos:     v.Pos(),
			}
		}
		var args []ir.TypeNode
		argsVal := v.LookupPath(cue.ParsePath("args"))
		if argsVal.Exists() {
			iter, err := argsVal.List()
			if err != nil {
				return nil, formatCUEError(err)
			}
			for iter.Next() {
				arg, err := parseTypeNode(iter.Value())
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
		}
		return ir.Simple{Name: name, GenericArgs: args}, nil

	case ir.KindList, ir.KindSlice, ir.KindOption:
		elem, err := parseTypeNode(v.LookupPath(cue.ParsePath("elem")))
		if err != nil {
			return nil, err
		}
		return ir.Special{Kind: ir.SpecialKind(kind), Elem: elem}, nil

	case ir.KindArray:
		elem, err := parseTypeNode(v.LookupPath(cue.ParsePath("elem")))
		if err != nil {
			return nil, err
		}
		length, err := v.LookupPath(cue.ParsePath("len")).Int64()
		if err != nil {
			return nil, &CompileError{
				Field:   "type",
				Message: "array type requires a len",
				Pos:     v.Pos(),
			}
		}
		return ir.FixedArray(elem, int(length)), nil

	case ir.KindMap:
		key, err := parseTypeNode(v.LookupPath(cue.ParsePath("key")))
		if err != nil {
			return nil, err
		}
		value, err := parseTypeNode(v.LookupPath(cue.ParsePath("value")))
		if err != nil {
			return nil, err
		}
		return ir.Map(key, value), nil

	case ir.KindUnit, ir.KindDateTime, ir.KindString, ir.KindChar,
		ir.KindI8, ir.KindU8, ir.KindI16, ir.KindU16, ir.KindI32, ir.KindU32,
		ir.KindI54, ir.KindU53, ir.KindF32, ir.KindF64, ir.KindBool,
		ir.KindI64, ir.KindU64, ir.KindISize, ir.KindUSize:
		return ir.Primitive(ir.SpecialKind(kind)), nil

	default:
		return nil, &CompileError{
			Field:   "type",
			Message: fmt.Sprintf("unknown type kind: %q", kind),
			Pos:     v.Pos(),
		}
	}
}

// parseIdentifier reads the declared name and optional wire rename.
func parseIdentifier(v cue.Value) (ir.Identifier, error) {
	name, err := v.LookupPath(cue.ParsePath("name")).String()
	if err != nil {
		return ir.Identifier{}, &CompileError{
			Field:   "name",
			Message: "name is required",
			Pos:     v.Pos(),
		}
	}
	id := ir.Ident(name)
	if renameVal := v.LookupPath(cue.ParsePath("rename")); renameVal.Exists() {
		renamed, err := renameVal.String()
		if err != nil {
			return id, formatCUEError(err)
		}
		id.Renamed = renamed
	}
	return id, nil
}

func parseStringList(v cue.Value) ([]string, error) {
	var out []string
	if !v.Exists() {
		return out, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseStringMap(v cue.Value) (map[string]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	out := make(map[string]string)
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out[iter.Label()] = s
	}
	return out, nil
}

// CompileError represents a definition error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}

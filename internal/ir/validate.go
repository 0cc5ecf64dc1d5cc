package ir

import (
	"fmt"
	"regexp"
)

// ValidationError represents a structural violation found in a module.
type ValidationError struct {
	Code    ValidationErrorCode
	Decl    string // declaration identifier (original name)
	Message string
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode string

const (
	// ErrCodeDuplicateIdent indicates two declarations share a name.
	ErrCodeDuplicateIdent ValidationErrorCode = "DUPLICATE_IDENTIFIER"

	// ErrCodeUnboundTypeParam indicates a type variable that is not a
	// generic parameter of its enclosing declaration.
	ErrCodeUnboundTypeParam ValidationErrorCode = "UNBOUND_TYPE_PARAM"

	// ErrCodeMissingTagKey indicates an algebraic enum without the
	// agreed wire keys.
	ErrCodeMissingTagKey ValidationErrorCode = "MISSING_TAG_KEY"

	// ErrCodeBadVariant indicates a unit enum carrying a payload variant.
	ErrCodeBadVariant ValidationErrorCode = "BAD_VARIANT"
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Decl != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Decl, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// typeVarPattern matches the shape of open type variables as produced
// upstream: a single capital letter with an optional digit suffix
// (T, U, K1). Nominal type names are longer.
var typeVarPattern = regexp.MustCompile(`^[A-Z][0-9]*$`)

// Validate checks the module invariants the emitters rely on:
//
//  1. Declaration identifiers are unique within the module.
//  2. The only free type variables inside a declaration's type nodes
//     are its own declared generic parameters.
//  3. An algebraic enum carries non-empty tag and content keys.
//  4. A unit enum carries only unit variants.
//
// Validate is a pure function; it collects all violations instead of
// stopping at the first.
func Validate(m *Module) []error {
	v := &validator{seen: make(map[string]bool)}
	for _, d := range m.Decls {
		v.validateDecl(d)
	}
	return v.errs
}

// validator accumulates violations during traversal.
type validator struct {
	seen map[string]bool
	errs []error
}

func (v *validator) addError(code ValidationErrorCode, decl, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{
		Code:    code,
		Decl:    decl,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *validator) validateDecl(d Decl) {
	switch d := d.(type) {
	case *TypeAlias:
		v.checkName(d.ID)
		v.checkTypeVars(d.ID.Original, d.GenericParams, d.Type)
	case *Struct:
		v.checkName(d.ID)
		for i := range d.Fields {
			v.checkTypeVars(d.ID.Original, d.GenericParams, d.Fields[i].Type)
		}
	case *Const:
		v.checkName(d.ID)
		v.checkTypeVars(d.ID.Original, nil, d.Type)
	case *UnitEnum:
		v.checkName(d.ID)
		for _, variant := range d.Variants {
			if _, ok := variant.(*UnitVariant); !ok {
				v.addError(ErrCodeBadVariant, d.ID.Original,
					"unit enum variant %q carries a payload", variant.Shared().ID.Original)
			}
		}
	case *AlgebraicEnum:
		v.checkName(d.ID)
		if d.TagKey == "" || d.ContentKey == "" {
			v.addError(ErrCodeMissingTagKey, d.ID.Original,
				"algebraic enum requires tag_key and content_key")
		}
		for _, variant := range d.Variants {
			switch variant := variant.(type) {
			case *UnitVariant:
			case *TupleVariant:
				v.checkTypeVars(d.ID.Original, d.GenericParams, variant.Type)
			case *StructVariant:
				for i := range variant.Fields {
					v.checkTypeVars(d.ID.Original, d.GenericParams, variant.Fields[i].Type)
				}
			}
		}
	}
}

func (v *validator) checkName(id Identifier) {
	if v.seen[id.Original] {
		v.addError(ErrCodeDuplicateIdent, id.Original, "declared more than once")
		return
	}
	v.seen[id.Original] = true
}

// checkTypeVars walks a type node and flags type variables that are not
// declared generic parameters of the enclosing declaration.
func (v *validator) checkTypeVars(decl string, params []string, t TypeNode) {
	switch t := t.(type) {
	case Simple:
		if typeVarPattern.MatchString(t.Name) && len(t.GenericArgs) == 0 && !contains(params, t.Name) {
			v.addError(ErrCodeUnboundTypeParam, decl,
				"type variable %q is not a declared generic parameter", t.Name)
		}
		for _, arg := range t.GenericArgs {
			v.checkTypeVars(decl, params, arg)
		}
	case Special:
		for _, nested := range []TypeNode{t.Elem, t.Key, t.Value} {
			if nested != nil {
				v.checkTypeVars(decl, params, nested)
			}
		}
	}
}

func contains(set []string, s string) bool {
	for _, member := range set {
		if member == s {
			return true
		}
	}
	return false
}

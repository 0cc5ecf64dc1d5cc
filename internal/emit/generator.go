package emit

import (
	"fmt"
	"io"

	"github.com/wiretype/wiretype/internal/ir"
)

// Generator drives the shared emission pipeline for one backend.
//
// Generation is single-threaded and synchronous: one pass per module,
// declarations visited in source order, writing directly to the output
// stream. Any error aborts emission of the current module immediately;
// partial output for that module is not valid. The generator holds no
// per-module state, so distinct modules may be generated concurrently
// with separate writers.
type Generator struct {
	Backend Backend
}

// NewGenerator creates a Generator for the given backend.
func NewGenerator(b Backend) *Generator {
	return &Generator{Backend: b}
}

// GenerateModule emits the whole module: prologue, imports, then each
// declaration in source order followed by a blank line.
func (g *Generator) GenerateModule(w io.Writer, m *ir.Module) error {
	b := g.Backend

	if err := b.BeginModule(w, m); err != nil {
		return err
	}

	if len(m.Imports) > 0 {
		if err := b.WriteImports(w, m.Imports); err != nil {
			return err
		}
		if err := blankLine(w); err != nil {
			return err
		}
	}

	for _, d := range m.Decls {
		if err := g.writeDecl(w, d); err != nil {
			return fmt.Errorf("module %s: %w", m.Name, err)
		}
		if err := blankLine(w); err != nil {
			return err
		}
	}

	return nil
}

// writeDecl dispatches one declaration to its emitter. The declaration
// kind set is sealed; an unknown kind is a programming error.
func (g *Generator) writeDecl(w io.Writer, d ir.Decl) error {
	b := g.Backend

	switch d := d.(type) {
	case *ir.TypeAlias:
		return b.WriteTypeAlias(w, d)
	case *ir.Struct:
		return b.WriteStruct(w, d)
	case *ir.UnitEnum:
		return b.WriteUnitEnum(w, d)
	case *ir.AlgebraicEnum:
		if !b.SupportsTaggedUnions() {
			// Degrade visibly: an opaque placeholder keeps the rest of
			// the run alive and the gap reviewable. This is not an
			// error condition.
			if err := WriteComments(w, b.CommentStyle(), 0, []string{"Unsupported tagged union serialisation"}); err != nil {
				return err
			}
			return b.WriteOpaqueType(w, d.ID)
		}
		return b.WriteAlgebraicEnum(w, d)
	case *ir.Const:
		return b.WriteConst(w, d)
	default:
		return fmt.Errorf("unsupported declaration type: %T", d)
	}
}

func blankLine(w io.Writer) error {
	_, err := io.WriteString(w, "\n")
	return err
}

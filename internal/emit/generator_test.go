package emit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiretype/wiretype/internal/ir"
)

// lineBackend is a minimal test backend: one line per declaration,
// optionally without tagged-union support.
type lineBackend struct {
	unions bool
}

func (b *lineBackend) Name() string { return "line" }

func (b *lineBackend) CommentStyle() CommentStyle {
	return CommentStyle{Open: "//", Prefix: "// ", Close: "//", Indent: "  "}
}

func (b *lineBackend) FormatType(t ir.TypeNode, generics []string) (string, error) {
	return fmt.Sprintf("%v", t), nil
}

func (b *lineBackend) BeginModule(w io.Writer, m *ir.Module) error {
	_, err := fmt.Fprintf(w, "module %s\n", m.Name)
	return err
}

func (b *lineBackend) WriteImports(w io.Writer, imports []ir.Import) error {
	for _, imp := range imports {
		if _, err := fmt.Fprintf(w, "import %s\n", imp.Path); err != nil {
			return err
		}
	}
	return nil
}

func (b *lineBackend) WriteTypeAlias(w io.Writer, d *ir.TypeAlias) error {
	_, err := fmt.Fprintf(w, "alias %s\n", d.ID.Original)
	return err
}

func (b *lineBackend) WriteStruct(w io.Writer, d *ir.Struct) error {
	_, err := fmt.Fprintf(w, "struct %s\n", d.ID.Original)
	return err
}

func (b *lineBackend) WriteUnitEnum(w io.Writer, d *ir.UnitEnum) error {
	_, err := fmt.Fprintf(w, "enum %s\n", d.ID.Original)
	return err
}

func (b *lineBackend) WriteAlgebraicEnum(w io.Writer, d *ir.AlgebraicEnum) error {
	_, err := fmt.Fprintf(w, "union %s\n", d.ID.Original)
	return err
}

func (b *lineBackend) WriteConst(w io.Writer, d *ir.Const) error {
	_, err := fmt.Fprintf(w, "const %s\n", d.ID.Original)
	return err
}

func (b *lineBackend) SupportsTaggedUnions() bool { return b.unions }

func (b *lineBackend) WriteOpaqueType(w io.Writer, id ir.Identifier) error {
	_, err := fmt.Fprintf(w, "opaque %s\n", id.Original)
	return err
}

func testModule() *ir.Module {
	return &ir.Module{
		Name:    "chat",
		Imports: []ir.Import{{Path: "common", Types: []string{"Uuid"}}},
		Decls: []ir.Decl{
			&ir.TypeAlias{ID: ir.Ident("MessageId"), Type: ir.Primitive(ir.KindString)},
			&ir.Struct{ID: ir.Ident("Message")},
			&ir.AlgebraicEnum{
				EnumShared: ir.EnumShared{ID: ir.Ident("Event")},
				TagKey:     "type",
				ContentKey: "data",
			},
			&ir.Const{ID: ir.Ident("maxPinned"), Type: ir.Primitive(ir.KindU8), Value: 10},
		},
	}
}

func TestGenerateModule_Order(t *testing.T) {
	var buf bytes.Buffer
	g := NewGenerator(&lineBackend{unions: true})
	require.NoError(t, g.GenerateModule(&buf, testModule()))

	want := "module chat\n" +
		"import common\n" +
		"\n" +
		"alias MessageId\n" +
		"\n" +
		"struct Message\n" +
		"\n" +
		"union Event\n" +
		"\n" +
		"const maxPinned\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestGenerateModule_NoImportsNoBlank(t *testing.T) {
	mod := &ir.Module{
		Name:  "bare",
		Decls: []ir.Decl{&ir.Struct{ID: ir.Ident("Only")}},
	}

	var buf bytes.Buffer
	g := NewGenerator(&lineBackend{unions: true})
	require.NoError(t, g.GenerateModule(&buf, mod))

	assert.Equal(t, "module bare\nstruct Only\n\n", buf.String())
}

func TestGenerateModule_DegradesAlgebraicEnum(t *testing.T) {
	// A backend without union support gets an annotated opaque
	// placeholder, not an error.
	var buf bytes.Buffer
	g := NewGenerator(&lineBackend{unions: false})
	require.NoError(t, g.GenerateModule(&buf, testModule()))

	assert.Contains(t, buf.String(), "// Unsupported tagged union serialisation //\n")
	assert.Contains(t, buf.String(), "opaque Event\n")
	assert.NotContains(t, buf.String(), "union Event")
}

func TestGenerateModule_Deterministic(t *testing.T) {
	g := NewGenerator(&lineBackend{unions: true})

	var first, second bytes.Buffer
	require.NoError(t, g.GenerateModule(&first, testModule()))
	require.NoError(t, g.GenerateModule(&second, testModule()))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

// failWriter fails every write, standing in for a broken output stream.
type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestGenerateModule_WriterError(t *testing.T) {
	g := NewGenerator(&lineBackend{unions: true})

	err := g.GenerateModule(failWriter{}, testModule())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestGenerateModule_WrapsDeclErrors(t *testing.T) {
	g := NewGenerator(&lineBackend{unions: true})

	var buf bytes.Buffer
	mod := testModule()

	// Prologue, import and blank line pass; the first declaration hits
	// the broken stream and the error names the module.
	w := &tripWriter{inner: &buf, failAfter: 3}
	err := g.GenerateModule(w, mod)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module chat")
	assert.Contains(t, err.Error(), "stream closed")
}

// tripWriter forwards the first failAfter writes, then fails.
type tripWriter struct {
	inner     io.Writer
	failAfter int
	writes    int
}

func (w *tripWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.failAfter {
		return 0, errors.New("stream closed")
	}
	return w.inner.Write(p)
}

package compiler

import (
	"errors"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiretype/wiretype/internal/ir"
)

func compileString(t *testing.T, src string) (*ir.Module, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileModule(v)
}

func TestCompileModule_Basic(t *testing.T) {
	mod, err := compileString(t, `
module: "chat"
imports: [{path: "common", types: ["Uuid"]}]
decls: [
	{kind: "alias", name: "MessageId", type: {kind: "string"}},
	{kind: "struct", name: "ChatMessage", comments: ["A single message."], fields: [
		{name: "id", type: {kind: "simple", name: "MessageId"}},
		{name: "tags", type: {kind: "list", elem: {kind: "string"}}, has_default: true},
	]},
	{kind: "const", name: "maxPinned", type: {kind: "u8"}, value: 10},
]
`)
	require.NoError(t, err)

	assert.Equal(t, "chat", mod.Name)
	require.Len(t, mod.Imports, 1)
	assert.Equal(t, ir.Import{Path: "common", Types: []string{"Uuid"}}, mod.Imports[0])
	require.Len(t, mod.Decls, 3)

	alias, ok := mod.Decls[0].(*ir.TypeAlias)
	require.True(t, ok)
	assert.Equal(t, "MessageId", alias.ID.Original)
	assert.Equal(t, ir.Primitive(ir.KindString), alias.Type)

	st, ok := mod.Decls[1].(*ir.Struct)
	require.True(t, ok)
	assert.Equal(t, []string{"A single message."}, st.Comments)
	require.Len(t, st.Fields, 2)
	assert.Equal(t, ir.Named("MessageId"), st.Fields[0].Type)
	assert.True(t, st.Fields[1].HasDefault)
	assert.Equal(t, ir.List(ir.Primitive(ir.KindString)), st.Fields[1].Type)

	c, ok := mod.Decls[2].(*ir.Const)
	require.True(t, ok)
	assert.Equal(t, int64(10), c.Value)
}

func TestCompileModule_Enums(t *testing.T) {
	mod, err := compileString(t, `
module: "chat"
decls: [
	{kind: "enum", name: "Color", variants: [
		{name: "Red"},
		{name: "Green"},
	]},
	{kind: "enum", name: "Event", tag_key: "type", content_key: "data", variants: [
		{name: "Quit"},
		{name: "Move", type: {kind: "simple", name: "Position"}},
		{name: "Write", fields: [{name: "text", type: {kind: "string"}}]},
	]},
]
`)
	require.NoError(t, err)
	require.Len(t, mod.Decls, 2)

	unit, ok := mod.Decls[0].(*ir.UnitEnum)
	require.True(t, ok)
	require.Len(t, unit.Variants, 2)
	_, ok = unit.Variants[0].(*ir.UnitVariant)
	assert.True(t, ok)

	algebraic, ok := mod.Decls[1].(*ir.AlgebraicEnum)
	require.True(t, ok)
	assert.Equal(t, "type", algebraic.TagKey)
	assert.Equal(t, "data", algebraic.ContentKey)
	require.Len(t, algebraic.Variants, 3)

	_, ok = algebraic.Variants[0].(*ir.UnitVariant)
	assert.True(t, ok)
	tuple, ok := algebraic.Variants[1].(*ir.TupleVariant)
	require.True(t, ok)
	assert.Equal(t, ir.Named("Position"), tuple.Type)
	sv, ok := algebraic.Variants[2].(*ir.StructVariant)
	require.True(t, ok)
	require.Len(t, sv.Fields, 1)
}

func TestCompileModule_TypeNodes(t *testing.T) {
	mod, err := compileString(t, `
module: "shapes"
decls: [
	{kind: "struct", name: "Everything", generics: ["T"], fields: [
		{name: "fixed", type: {kind: "array", elem: {kind: "u8"}, len: 16}},
		{name: "lookup", type: {kind: "map", key: {kind: "string"}, value: {kind: "bool"}}},
		{name: "maybe", type: {kind: "option", elem: {kind: "datetime"}}},
		{name: "wrapped", type: {kind: "simple", name: "Paged", args: [{kind: "simple", name: "T"}]}},
	]},
]
`)
	require.NoError(t, err)

	st := mod.Decls[0].(*ir.Struct)
	assert.Equal(t, []string{"T"}, st.GenericParams)
	require.Len(t, st.Fields, 4)
	assert.Equal(t, ir.FixedArray(ir.Primitive(ir.KindU8), 16), st.Fields[0].Type)
	assert.Equal(t, ir.Map(ir.Primitive(ir.KindString), ir.Primitive(ir.KindBool)), st.Fields[1].Type)
	assert.Equal(t, ir.Option(ir.Primitive(ir.KindDateTime)), st.Fields[2].Type)
	assert.Equal(t, ir.Named("Paged", ir.Named("T")), st.Fields[3].Type)
}

func TestCompileModule_FieldExtras(t *testing.T) {
	mod, err := compileString(t, `
module: "chat"
decls: [
	{kind: "struct", name: "Message", fields: [
		{
			name: "body"
			rename: "message_body"
			type: {kind: "string"}
			comments: ["Raw body."]
			overrides: {typescript: "unknown"}
			decorators: {typescript: ["readonly"]}
		},
	]},
]
`)
	require.NoError(t, err)

	f := mod.Decls[0].(*ir.Struct).Fields[0]
	assert.Equal(t, "body", f.ID.Original)
	assert.Equal(t, "message_body", f.ID.Renamed)
	assert.Equal(t, []string{"Raw body."}, f.Comments)

	override, ok := f.TypeOverride("typescript")
	assert.True(t, ok)
	assert.Equal(t, "unknown", override)
	assert.True(t, f.HasDecorator("typescript", "readonly"))
}

func TestCompileModule_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "missing module name",
			src:  `decls: []`,
			want: "module name is required",
		},
		{
			name: "missing decls",
			src:  `module: "chat"`,
			want: "at least one declaration is required",
		},
		{
			name: "unknown declaration kind",
			src:  `module: "chat", decls: [{kind: "interface", name: "X"}]`,
			want: "unknown declaration kind",
		},
		{
			name: "unknown type kind",
			src:  `module: "chat", decls: [{kind: "alias", name: "X", type: {kind: "i1024"}}]`,
			want: "unknown type kind",
		},
		{
			name: "variant with both payload shapes",
			src: `module: "chat", decls: [{kind: "enum", name: "E", tag_key: "type", content_key: "data", variants: [
				{name: "Bad", type: {kind: "string"}, fields: [{name: "x", type: {kind: "string"}}]},
			]}]`,
			want: "cannot carry both",
		},
		{
			name: "field without type",
			src:  `module: "chat", decls: [{kind: "struct", name: "S", fields: [{name: "x"}]}]`,
			want: `field "x" requires a type`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileString(t, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var cerr *CompileError
			assert.True(t, errors.As(err, &cerr))
		})
	}
}

package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiretype/wiretype/internal/ir"
)

func TestGenericParams(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		open  string
		pre   string
		sep   string
		close string
		want  string
	}{
		{"none", nil, "(", "'", ", ", ")", ""},
		{"single quoted", []string{"t"}, "(", "'", ", ", ")", "('t)"},
		{"pair quoted", []string{"t", "u"}, "(", "'", ", ", ")", "('t, 'u)"},
		{"angle brackets", []string{"T", "U"}, "<", "", ", ", ">", "<T, U>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenericParams(tt.names, tt.open, tt.pre, tt.sep, tt.close)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckMapKey(t *testing.T) {
	generics := []string{"T", "U"}

	assert.NoError(t, CheckMapKey(ir.Primitive(ir.KindString), generics))
	assert.NoError(t, CheckMapKey(ir.Named("UserId"), generics))
	assert.NoError(t, CheckMapKey(ir.Named("T"), nil), "no open parameters in scope")
	// A single-letter nominal type applied to arguments is not a variable.
	assert.NoError(t, CheckMapKey(ir.Named("T", ir.Primitive(ir.KindString)), generics))

	err := CheckMapKey(ir.Named("T"), generics)
	require.Error(t, err)
	assert.True(t, IsGenericKey(err))
}

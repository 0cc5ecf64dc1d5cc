package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdent(t *testing.T) {
	id := Ident("ChatMessage")
	assert.Equal(t, "ChatMessage", id.Original)
	assert.Equal(t, "ChatMessage", id.Renamed)
}

func TestFieldTypeOverride(t *testing.T) {
	f := Field{
		ID:   Ident("payload"),
		Type: Primitive(KindString),
		TypeOverrides: map[string]string{
			"typescript": "unknown",
		},
	}

	override, ok := f.TypeOverride("typescript")
	assert.True(t, ok)
	assert.Equal(t, "unknown", override)

	_, ok = f.TypeOverride("reasonml")
	assert.False(t, ok)
}

func TestFieldHasDecorator(t *testing.T) {
	f := Field{
		ID:   Ident("id"),
		Type: Primitive(KindString),
		Decorators: map[string][]string{
			"typescript": {"readonly"},
		},
	}

	assert.True(t, f.HasDecorator("typescript", "readonly"))
	assert.False(t, f.HasDecorator("typescript", "frozen"))
	assert.False(t, f.HasDecorator("reasonml", "readonly"))
}

func TestEnumShared(t *testing.T) {
	unit := &UnitEnum{EnumShared: EnumShared{ID: Ident("Color")}}
	algebraic := &AlgebraicEnum{
		EnumShared: EnumShared{ID: Ident("Event")},
		TagKey:     "type",
		ContentKey: "data",
	}

	assert.Equal(t, "Color", unit.Shared().ID.Original)
	assert.Equal(t, "Event", algebraic.Shared().ID.Original)
}

func TestVariantShared(t *testing.T) {
	variants := []Variant{
		&UnitVariant{VariantShared: VariantShared{ID: Ident("Quit")}},
		&TupleVariant{VariantShared: VariantShared{ID: Ident("Move")}, Type: Named("Position")},
		&StructVariant{VariantShared: VariantShared{ID: Ident("Write")}},
	}

	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Shared().ID.Original
	}
	assert.Equal(t, []string{"Quit", "Move", "Write"}, names)
}

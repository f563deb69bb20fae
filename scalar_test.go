package urlform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarDecoderText(t *testing.T) {
	t.Run("Scalar", func(t *testing.T) {
		assert.Equal(t, "hello", NewDecoder(Scalar("hello")).Scalar().Text())
		assert.Equal(t, "", NewDecoder(Scalar("")).Scalar().Text())
	})

	t.Run("NonScalar", func(t *testing.T) {
		seq := NewDecoder(Sequence(Scalar("a"), Scalar("b")))
		assert.Equal(t, "", seq.Scalar().Text())

		m := NewDecoder(Mapping(map[string]Value{"a": Scalar("1")}))
		assert.Equal(t, "", m.Scalar().Text())
	})
}

// The tree has no null variant, so IsNull reports false over every node,
// including an empty scalar.
func TestScalarDecoderIsNull(t *testing.T) {
	nodes := []Value{
		Scalar(""),
		Scalar("x"),
		Sequence(),
		Sequence(Scalar("1")),
		Mapping(nil),
		Mapping(map[string]Value{"a": Scalar("1")}),
	}
	for _, n := range nodes {
		assert.False(t, NewDecoder(n).Scalar().IsNull(), "kind %s", n.Kind())
	}
}

func TestScalarDecoderDecode(t *testing.T) {
	t.Run("Leaf", func(t *testing.T) {
		var n int
		require.NoError(t, NewDecoder(Scalar("42")).Scalar().Decode(&n))
		assert.Equal(t, 42, n)
	})

	t.Run("InvalidDestination", func(t *testing.T) {
		err := NewDecoder(Scalar("42")).Scalar().Decode(nil)
		assert.ErrorIs(t, err, ErrInvalidUnmarshal)
	})
}

package urlform

import (
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertPrimitives(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		var dest struct {
			V string `form:"v"`
		}
		require.NoError(t, DecodeString("v=hello", &dest))
		assert.Equal(t, "hello", dest.V)
	})

	t.Run("Int", func(t *testing.T) {
		var dest struct {
			V int `form:"v"`
		}
		require.NoError(t, DecodeString("v=3", &dest))
		assert.Equal(t, 3, dest.V)
	})

	t.Run("IntMalformed", func(t *testing.T) {
		var dest struct {
			V int `form:"v"`
		}
		err := DecodeString("v=abc", &dest)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotConvertible)
	})

	t.Run("IntOverflow", func(t *testing.T) {
		var dest struct {
			V int8 `form:"v"`
		}
		err := DecodeString("v=300", &dest)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotConvertible)
	})

	t.Run("Uint", func(t *testing.T) {
		var dest struct {
			V uint16 `form:"v"`
		}
		require.NoError(t, DecodeString("v=65535", &dest))
		assert.Equal(t, uint16(65535), dest.V)
	})

	t.Run("UintNegative", func(t *testing.T) {
		var dest struct {
			V uint `form:"v"`
		}
		assert.ErrorIs(t, DecodeString("v=-1", &dest), ErrNotConvertible)
	})

	t.Run("Float", func(t *testing.T) {
		var dest struct {
			V float64 `form:"v"`
		}
		require.NoError(t, DecodeString("v=3.25", &dest))
		assert.Equal(t, 3.25, dest.V)
	})

	t.Run("Complex", func(t *testing.T) {
		var dest struct {
			V complex128 `form:"v"`
		}
		require.NoError(t, DecodeString("v=%281%2B2i%29", &dest))
		assert.Equal(t, complex(1, 2), dest.V)
	})

	t.Run("Bytes", func(t *testing.T) {
		var dest struct {
			V []byte `form:"v"`
		}
		require.NoError(t, DecodeString("v=raw", &dest))
		assert.Equal(t, []byte("raw"), dest.V)
	})
}

func TestConvertBool(t *testing.T) {
	truthy := []string{"true", "1", "yes", "on", "True", "TRUE", "YES", "ON"}
	falsy := []string{"false", "0", "no", "off", "False", "FALSE", "NO", "OFF"}

	for _, v := range truthy {
		var dest struct {
			V bool `form:"v"`
		}
		require.NoError(t, DecodeString("v="+v, &dest), "value %q", v)
		assert.True(t, dest.V, "value %q", v)
	}
	for _, v := range falsy {
		var dest struct {
			V bool `form:"v"`
		}
		require.NoError(t, DecodeString("v="+v, &dest), "value %q", v)
		assert.False(t, dest.V, "value %q", v)
	}

	var dest struct {
		V bool `form:"v"`
	}
	assert.ErrorIs(t, DecodeString("v=maybe", &dest), ErrNotConvertible)
}

func TestConvertTime(t *testing.T) {
	t.Run("RFC3339", func(t *testing.T) {
		var dest struct {
			V time.Time `form:"v"`
		}
		require.NoError(t, DecodeString("v=2024-06-01T10%3A30%3A00Z", &dest))
		assert.True(t, dest.V.Equal(time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)))
	})

	t.Run("DateOnly", func(t *testing.T) {
		var dest struct {
			V time.Time `form:"v"`
		}
		require.NoError(t, DecodeString("v=2024-06-01", &dest))
		assert.True(t, dest.V.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("Malformed", func(t *testing.T) {
		var dest struct {
			V time.Time `form:"v"`
		}
		assert.ErrorIs(t, DecodeString("v=not-a-time", &dest), ErrNotConvertible)
	})
}

func TestConvertUUID(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	var dest struct {
		V uuid.UUID `form:"v"`
	}
	require.NoError(t, DecodeString("v="+id.String(), &dest))
	assert.Equal(t, id, dest.V)

	assert.ErrorIs(t, DecodeString("v=nope", &dest), ErrNotConvertible)
}

// loudString uppercases itself from text, exercising the TextUnmarshaler
// leaf hook.
type loudString string

func (l *loudString) UnmarshalText(text []byte) error {
	*l = loudString(strings.ToUpper(string(text)))
	return nil
}

func TestConvertTextUnmarshaler(t *testing.T) {
	var dest struct {
		V loudString `form:"v"`
	}
	require.NoError(t, DecodeString("v=quiet", &dest))
	assert.Equal(t, loudString("QUIET"), dest.V)
}

type celsius float64

func TestRegisterConverter(t *testing.T) {
	RegisterConverter(reflect.TypeOf(celsius(0)), func(text string) (any, error) {
		f, err := strconv.ParseFloat(strings.TrimSuffix(text, "C"), 64)
		if err != nil {
			return nil, err
		}
		return celsius(f), nil
	})

	var dest struct {
		V celsius `form:"v"`
	}
	require.NoError(t, DecodeString("v=21.5C", &dest))
	assert.Equal(t, celsius(21.5), dest.V)
}

func TestConvertRejectsNonScalar(t *testing.T) {
	var dest struct {
		V int `form:"v"`
	}
	err := DecodeString("v[a]=1", &dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConvertible)
}

func TestIsLeafType(t *testing.T) {
	assert.True(t, isLeafType(reflect.TypeOf(""), nil))
	assert.True(t, isLeafType(reflect.TypeOf(0), nil))
	assert.True(t, isLeafType(reflect.TypeOf(false), nil))
	assert.True(t, isLeafType(reflect.TypeOf([]byte{}), nil))
	assert.True(t, isLeafType(TimeType, nil))
	assert.True(t, isLeafType(UUIDType, nil))
	assert.True(t, isLeafType(reflect.TypeOf(loudString("")), nil))

	assert.False(t, isLeafType(reflect.TypeOf(struct{}{}), nil))
	assert.False(t, isLeafType(reflect.TypeOf([]string{}), nil))
	assert.False(t, isLeafType(reflect.TypeOf(map[string]string{}), nil))

	// A per-call registry makes its types leaves without touching the
	// global one.
	type local struct{ n int }
	reg := NewConverterRegistry()
	reg.Register(reflect.TypeOf(local{}), func(text string) (any, error) {
		return local{}, nil
	})
	assert.True(t, isLeafType(reflect.TypeOf(local{}), reg))
	assert.False(t, isLeafType(reflect.TypeOf(local{}), nil))
}

type fahrenheit float64

func TestPerCallConverterRegistry(t *testing.T) {
	reg := NewConverterRegistry()
	reg.Register(reflect.TypeOf(fahrenheit(0)), func(text string) (any, error) {
		f, err := strconv.ParseFloat(strings.TrimSuffix(text, "F"), 64)
		if err != nil {
			return nil, err
		}
		return fahrenheit(f), nil
	})

	root, err := Parse("v=70F&nested[v]=32F", ParseOpts{})
	require.NoError(t, err)

	t.Run("ReachesEveryRecursionLevel", func(t *testing.T) {
		var dest struct {
			V      fahrenheit `form:"v"`
			Nested struct {
				V fahrenheit `form:"v"`
			} `form:"nested"`
		}
		require.NoError(t, DecodeValueWith(root, &dest, reg))
		assert.Equal(t, fahrenheit(70), dest.V)
		assert.Equal(t, fahrenheit(32), dest.Nested.V)
	})

	t.Run("InvisibleToPlainDecodes", func(t *testing.T) {
		var dest struct {
			V fahrenheit `form:"v"`
		}
		err := DecodeValue(root, &dest)
		assert.ErrorIs(t, err, ErrNotConvertible)
	})

	t.Run("OverridesGlobal", func(t *testing.T) {
		// Install a global converter for celsius, then shadow it locally.
		RegisterConverter(reflect.TypeOf(celsius(0)), func(text string) (any, error) {
			f, err := strconv.ParseFloat(strings.TrimSuffix(text, "C"), 64)
			if err != nil {
				return nil, err
			}
			return celsius(f), nil
		})
		local := NewConverterRegistry()
		local.Register(reflect.TypeOf(celsius(0)), func(text string) (any, error) {
			return celsius(-40), nil
		})

		r, err := Parse("v=21.5C", ParseOpts{})
		require.NoError(t, err)

		var dest struct {
			V celsius `form:"v"`
		}
		require.NoError(t, DecodeValueWith(r, &dest, local))
		assert.Equal(t, celsius(-40), dest.V)
	})
}

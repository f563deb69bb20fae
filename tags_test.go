package urlform

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldTag(t *testing.T) {
	t.Run("NameOnly", func(t *testing.T) {
		tag := parseFieldTag("email")
		assert.Equal(t, "email", tag.Name)
		assert.False(t, tag.OmitEmpty)
		assert.False(t, tag.Ignore)
	})

	t.Run("NameWithOmitEmpty", func(t *testing.T) {
		tag := parseFieldTag("age,omitempty")
		assert.Equal(t, "age", tag.Name)
		assert.True(t, tag.OmitEmpty)
	})

	t.Run("Ignore", func(t *testing.T) {
		assert.True(t, parseFieldTag("-").Ignore)
	})

	t.Run("Empty", func(t *testing.T) {
		tag := parseFieldTag("")
		assert.Equal(t, "", tag.Name)
		assert.False(t, tag.Ignore)
	})

	t.Run("WhitespaceTolerant", func(t *testing.T) {
		tag := parseFieldTag(" name , omitempty ")
		assert.Equal(t, "name", tag.Name)
		assert.True(t, tag.OmitEmpty)
	})
}

func TestFieldTags(t *testing.T) {
	type sample struct {
		Named     string `form:"named"`
		Untagged  string
		Skipped   string `form:"-"`
		Optional  int    `form:"opt,omitempty"`
		unexposed string
	}

	tags := fieldTags(reflect.TypeOf(sample{}))
	require.Len(t, tags, 5)

	assert.Equal(t, "named", tags[0].Name)
	// Untagged fields fall back to the Go field name.
	assert.Equal(t, "Untagged", tags[1].Name)
	assert.True(t, tags[2].Ignore)
	assert.Equal(t, "opt", tags[3].Name)
	assert.True(t, tags[3].OmitEmpty)
	assert.True(t, tags[4].Ignore)
}

func TestFieldTagsCached(t *testing.T) {
	type cachedSample struct {
		A string `form:"a"`
	}
	typ := reflect.TypeOf(cachedSample{})

	first := fieldTags(typ)
	second := fieldTags(typ)
	// Same backing slice comes out of the cache.
	assert.Equal(t, &first[0], &second[0])
}

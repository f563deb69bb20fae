package urlform

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchForm struct {
	Query string   `form:"q"`
	Page  int      `form:"page,omitempty"`
	Tags  []string `form:"tags,omitempty"`
}

func TestUnmarshalRequestQueryOnly(t *testing.T) {
	r := httptest.NewRequest("GET", "/search?q=golang&page=2", nil)

	var dest searchForm
	require.NoError(t, UnmarshalRequest(r, &dest))
	assert.Equal(t, "golang", dest.Query)
	assert.Equal(t, 2, dest.Page)
}

func TestUnmarshalRequestFormBody(t *testing.T) {
	body := strings.NewReader("q=golang&tags[]=web&tags[]=http")
	r := httptest.NewRequest("POST", "/search", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dest searchForm
	require.NoError(t, UnmarshalRequest(r, &dest))
	assert.Equal(t, "golang", dest.Query)
	assert.Equal(t, []string{"web", "http"}, dest.Tags)
}

func TestUnmarshalRequestJSONBody(t *testing.T) {
	body := strings.NewReader(`{"q":"golang","page":3}`)
	r := httptest.NewRequest("POST", "/search", body)
	r.Header.Set("Content-Type", "application/json; charset=utf-8")

	var dest searchForm
	require.NoError(t, UnmarshalRequest(r, &dest))
	assert.Equal(t, "golang", dest.Query)
	assert.Equal(t, 3, dest.Page)
}

func TestUnmarshalRequestBodyOverridesQuery(t *testing.T) {
	body := strings.NewReader("q=fromBody")
	r := httptest.NewRequest("POST", "/search?q=fromQuery&page=1", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dest searchForm
	require.NoError(t, UnmarshalRequest(r, &dest))
	assert.Equal(t, "fromBody", dest.Query)
	// Keys absent from the body keep their query value.
	assert.Equal(t, 1, dest.Page)
}

func TestUnmarshalRequestUnknownContentType(t *testing.T) {
	body := strings.NewReader("ignored bytes")
	r := httptest.NewRequest("POST", "/search?q=golang", body)
	r.Header.Set("Content-Type", "text/plain")

	var dest searchForm
	require.NoError(t, UnmarshalRequest(r, &dest))
	assert.Equal(t, "golang", dest.Query)
}

func TestUnmarshalRequestWithOpts(t *testing.T) {
	r := httptest.NewRequest("GET", "/search?q=golang&page=", nil)

	var dest searchForm
	require.NoError(t, UnmarshalRequestWith(r, &dest, ParseOpts{OmitEmptyValues: true}))
	assert.Equal(t, "golang", dest.Query)
	assert.Zero(t, dest.Page)
}

func TestRequestValueMergesNestedMappings(t *testing.T) {
	body := strings.NewReader("user[name]=Ada")
	r := httptest.NewRequest("POST", "/?user[age]=36", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	root, err := RequestValue(r, ParseOpts{})
	require.NoError(t, err)

	user, ok := root.Field("user")
	require.True(t, ok)
	name, _ := user.Field("name")
	assert.Equal(t, "Ada", name.Text())
	age, _ := user.Field("age")
	assert.Equal(t, "36", age.Text())
}

func TestUnmarshalRequestMalformedQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.URL.RawQuery = "a=%zz"

	var dest searchForm
	err := UnmarshalRequest(r, &dest)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

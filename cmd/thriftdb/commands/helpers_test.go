package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fivetwenty-io/thriftdb/internal/constants"
	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	t.Parallel()

	query, err := parseQuery(nil)
	require.NoError(t, err)
	assert.Nil(t, query)

	query, err = parseQuery([]string{"limit=5", "fields=a,b", "filter=x=y", "empty="})
	require.NoError(t, err)
	assert.Equal(t, thriftdb.Query{"limit": "5", "fields": "a,b", "filter": "x=y", "empty": ""}, query)

	for _, bad := range []string{"novalue", "=5"} {
		_, err = parseQuery([]string{bad})
		assert.ErrorIs(t, err, constants.ErrInvalidQueryPair, bad)
	}
}

func TestParseIDs(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parseIDs(""))
	assert.Equal(t, thriftdb.IDs("1", "2", "3"), parseIDs("1,2,3"))
	assert.Equal(t, thriftdb.IDs("a", "b"), parseIDs(" a , ,b,"))
}

func TestReadPayload(t *testing.T) {
	t.Parallel()

	errMissing := errors.New("missing")

	body, err := readPayload(`{"a":1}`, "", nil, errMissing)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, body)

	file := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"b":2}`), 0o600))

	body, err = readPayload("", file, nil, errMissing)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, body)

	body, err = readPayload("", "-", strings.NewReader(`[1]`), errMissing)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, body)

	_, err = readPayload("", "", nil, errMissing)
	assert.ErrorIs(t, err, errMissing)

	_, err = readPayload("x", file, nil, errMissing)
	assert.ErrorIs(t, err, constants.ErrPayloadConflict)
}

func TestNewResponseView(t *testing.T) {
	t.Parallel()

	view := newResponseView(&thriftdb.Response{StatusCode: 200, Body: []byte(`{"a":1}`)})
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, view.Body)

	view = newResponseView(&thriftdb.Response{StatusCode: 500, Body: []byte("oops")})
	assert.Equal(t, "oops", view.Body)

	view = newResponseView(&thriftdb.Response{StatusCode: 204})
	assert.Nil(t, view.Body)
}

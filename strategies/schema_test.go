package strategies

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchema(t *testing.T) {
	schema, err := LoadSchema(`type Query { hello: String }`)
	require.NoError(t, err)
	require.NotNil(t, schema.Query)
	assert.NotNil(t, schema.Query.Fields.ForName("hello"))
	// The prelude was merged in.
	assert.NotNil(t, schema.Types["String"])
}

func TestLoadSchemaCaching(t *testing.T) {
	const sdl = `type Query { cachedField: Int }`
	first, err := LoadSchema(sdl)
	require.NoError(t, err)
	second, err := LoadSchema(sdl)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func writeSchemaFile(t *testing.T, dir, name, sdl string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(sdl), 0o644))
	return filename
}

func TestLoadSchemaFiles(t *testing.T) {
	dir := t.TempDir()
	types := writeSchemaFile(t, dir, "types.graphql", `type Book { title: String }`)
	query := writeSchemaFile(t, dir, "query.graphql", `type Query { getBooks: [Book] }`)

	schema, err := LoadSchemaFiles(types, query)
	require.NoError(t, err)
	require.NotNil(t, schema.Query)
	assert.NotNil(t, schema.Types["Book"])
}

// With one source per file, a bad file is named in the error.
func TestLoadSchemaFilesErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	good := writeSchemaFile(t, dir, "query.graphql", `type Query { hello: String }`)
	bad := writeSchemaFile(t, dir, "broken.graphql", `type Book {`)

	_, err := LoadSchemaFiles(good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	assert.Contains(t, err.Error(), "invalid schema")
}

func TestLoadSchemaFilesUnreadable(t *testing.T) {
	_, err := LoadSchemaFiles(filepath.Join(t.TempDir(), "missing.graphql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable schema file")
}

func TestLoadSchemaParseError(t *testing.T) {
	_, err := LoadSchema(`type Query {`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema")
}

func TestLoadSchemaValidationError(t *testing.T) {
	_, err := LoadSchema(`type Query { hello: Missing }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema")
}

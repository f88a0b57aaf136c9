package strategies

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
	"pgregory.net/rapid"

	"github.com/cemkavuklu/hypothesis-graphql/nodes"
)

// baseSchema is the type zoo shared by most tests; individual tests append
// a Query (and sometimes Mutation) type.
const baseSchema = `
type Book {
  title: String
  author: Author
}

type Author {
  name: String
  books: [Book]
}

enum Color {
  RED
  GREEN
  BLUE
}

input EnumInput {
  color: Color!
}

input QueryInput {
  title: String
  pages: Int
}

input RequiredInput {
  id: Int!
  note: String
}

input NestedQueryInput {
  query: QueryInput
  nested: NestedQueryInput
}

interface Node {
  id: ID
}

interface Alone {
  name: String
}

type Model implements Node {
  id: ID
  int: Int
  float: Float
  string: String
  boolean: Boolean
  color: Color
}
`

type fataler interface {
	Fatalf(format string, args ...interface{})
}

func mustLoadSchema(t fataler, sdl string) *ast.Schema {
	schema, err := LoadSchema(sdl)
	if err != nil {
		t.Fatalf("invalid test schema: %v", err)
	}
	return schema
}

// checkOperationValid asserts that the generated document parses and
// validates against the schema it was generated from, and returns the
// parsed document.
func checkOperationValid(t fataler, schema *ast.Schema, query string) *ast.QueryDocument {
	doc, parseErr := parser.ParseQuery(&ast.Source{Input: query})
	if parseErr != nil {
		t.Fatalf("generated document does not parse: %v\n%s", parseErr, query)
	}
	if errs := validator.Validate(schema, doc); len(errs) > 0 {
		t.Fatalf("generated document does not validate: %v\n%s", errs, query)
	}
	return doc
}

func TestQueries(t *testing.T) {
	tests := []struct {
		name      string
		queryType string
	}{
		{"PlainFields", `type Query {
			getBooks: [Book]
			getAuthors: [Author]
		}`},
		{"WithArgument", `type Query {
			getBooksByAuthor(name: String): [Book]
		}`},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			schema := mustLoadSchema(t, baseSchema+test.queryType)
			gen, err := Queries(schema)
			require.NoError(t, err)

			rapid.Check(t, func(t *rapid.T) {
				checkOperationValid(t, schema, gen.Draw(t, "query"))
			})
		})
	}
}

func TestQueriesFieldSubset(t *testing.T) {
	schema := mustLoadSchema(t, baseSchema+`type Query {
		getBooks: [Book]
		getAuthors: [Author]
	}`)
	gen, err := Queries(schema, WithFields("getBooks"))
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		query := gen.Draw(t, "query")
		checkOperationValid(t, schema, query)
		if strings.Contains(query, "getAuthors") {
			t.Fatalf("field outside the requested subset was generated:\n%s", query)
		}
	})
}

func TestQueriesEmptyFields(t *testing.T) {
	schema := mustLoadSchema(t, baseSchema+`type Query { getBooks: [Book] }`)
	_, err := Queries(schema, WithFields())
	assert.EqualError(t, err, "fields cannot be empty")
}

func TestQueriesUnknownFields(t *testing.T) {
	schema := mustLoadSchema(t, baseSchema+`type Query { getBooks: [Book] }`)
	_, err := Queries(schema, WithFields("getBooks", "wrong"))
	assert.EqualError(t, err, "unknown fields: wrong")
}

func TestQueriesMissingQueryType(t *testing.T) {
	schema := mustLoadSchema(t, `type Author { name: String }`)
	_, err := Queries(schema)
	assert.EqualError(t, err, "Query type is not defined in the schema")
}

func TestArguments(t *testing.T) {
	tests := []struct {
		name      string
		arguments string
	}{
		{"Int", "int: Int"},
		{"Float", "float: Float"},
		{"String", "string: String"},
		{"ID", "id: ID"},
		{"Boolean", "boolean: Boolean"},
		{"Enum", "color: Color"},
		{"InputWithEnum", "input: EnumInput"},
		{"ListInt", "contain: [Int]"},
		{"ListIntNonNull", "contain: [Int!]"},
		{"ListFloat", "contain: [Float]"},
		{"ListString", "contain: [String]"},
		{"ListBoolean", "contain: [Boolean]"},
		{"ListEnum", "contain: [Color!]"},
		{"NestedList", "contain: [[Int]]"},
		{"InputObject", "contains: QueryInput"},
		{"RequiredInput", "contains: RequiredInput"},
		{"RecursiveInput", "contains: NestedQueryInput"},
	}

	for _, test := range tests {
		test := test
		for _, notNull := range []bool{false, true} {
			name, arguments := test.name, test.arguments
			if notNull {
				name, arguments = name+"NotNull", arguments+"!"
			}
			t.Run(name, func(t *testing.T) {
				schema := mustLoadSchema(t, baseSchema+`type Query {
					getModel(`+arguments+`): Model
				}`)
				gen, err := Queries(schema)
				require.NoError(t, err)

				rapid.Check(t, func(t *rapid.T) {
					query := gen.Draw(t, "query")
					doc := checkOperationValid(t, schema, query)

					field := doc.Operations[0].SelectionSet[0].(*ast.Field)
					if notNull {
						// A non-null argument must always be present.
						require.Len(t, field.Arguments, 1)
					}
					// At least one Model field is always selected.
					require.NotEmpty(t, field.SelectionSet)
				})
			})
		}
	}
}

func TestRequiredInputFieldsAlwaysPresent(t *testing.T) {
	schema := mustLoadSchema(t, baseSchema+`type Query {
		getModel(contains: RequiredInput!): Model
	}`)
	gen, err := Queries(schema)
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		query := gen.Draw(t, "query")
		doc := checkOperationValid(t, schema, query)

		field := doc.Operations[0].SelectionSet[0].(*ast.Field)
		require.Len(t, field.Arguments, 1)
		value := field.Arguments[0].Value
		require.Equal(t, ast.ObjectValue, value.Kind)
		var names []string
		for _, child := range value.Children {
			names = append(names, child.Name)
		}
		require.Contains(t, names, "id")
	})
}

func TestInterfaces(t *testing.T) {
	tests := []struct {
		name      string
		queryType string
	}{
		{"WithImplementations", "type Query { getModel: Node }"},
		{"WithoutImplementations", "type Query { getModel: Alone }"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			schema := mustLoadSchema(t, baseSchema+test.queryType)
			gen, err := Queries(schema)
			require.NoError(t, err)

			rapid.Check(t, func(t *rapid.T) {
				checkOperationValid(t, schema, gen.Draw(t, "query"))
			})
		})
	}
}

// Types selected on the same level may have same-named fields of different
// types; inline-fragment aliasing must keep such documents valid.
func TestConflictingFieldTypes(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{"Interface", `interface Conflict {
			id: ID
		}

		type FloatModel implements Conflict {
			id: ID
			query: Float!
		}

		type StringModel implements Conflict {
			id: ID
			query: String!
		}

		type Query {
			getData: Conflict
		}`},
		{"Union", `type FloatModel {
			query: Float!
		}

		type StringModel {
			query: String!
		}

		union Conflict = FloatModel | StringModel

		type Query {
			getData: Conflict
		}`},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			schema := mustLoadSchema(t, test.schema)
			gen, err := Queries(schema)
			require.NoError(t, err)

			rapid.Check(t, func(t *rapid.T) {
				checkOperationValid(t, schema, gen.Draw(t, "query"))
			})
		})
	}
}

const customScalarSchema = `
scalar Date

type Object {
  created: Date
}

type Query {
  %s
}
`

func TestCustomScalarNonArgument(t *testing.T) {
	// In a non-argument position a custom scalar is just a leaf.
	schema := mustLoadSchema(t, strings.Replace(customScalarSchema, "%s", "getObjects: [Object]", 1))
	gen, err := Queries(schema)
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		query := gen.Draw(t, "query")
		checkOperationValid(t, schema, query)
		if !strings.Contains(query, "created") {
			t.Fatalf("the only Object field was not selected:\n%s", query)
		}
	})
}

func TestCustomScalarNullableArgument(t *testing.T) {
	// A nullable argument of an unregistered custom scalar is omitted.
	schema := mustLoadSchema(t, strings.Replace(customScalarSchema, "%s", "getByDate(created: Date): Object", 1))
	gen, err := Queries(schema)
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		query := gen.Draw(t, "query")
		checkOperationValid(t, schema, query)
		if !strings.Contains(query, "getByDate {") {
			t.Fatalf("expected getByDate without arguments:\n%s", query)
		}
	})
}

func TestCustomScalarRequiredArgument(t *testing.T) {
	schema := mustLoadSchema(t, strings.Replace(customScalarSchema, "%s", "getByDate(created: Date!): Object", 1))
	_, err := Queries(schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-nullable custom scalar Date")
}

func TestCustomScalarRegistered(t *testing.T) {
	schema := mustLoadSchema(t, strings.Replace(customScalarSchema, "%s", "getByDate(created: Date!): Object", 1))
	dates := rapid.Custom(func(t *rapid.T) *ast.Value {
		return nodes.String(rapid.SampledFrom([]string{"2022-01-01", "1999-12-31"}).Draw(t, "date"))
	})
	gen, err := Queries(schema, WithCustomScalar("Date", dates))
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		query := gen.Draw(t, "query")
		checkOperationValid(t, schema, query)
		if !strings.Contains(query, "getByDate(created:") {
			t.Fatalf("expected getByDate with a Date argument:\n%s", query)
		}
	})
}

// GraphQL documents cannot carry unpaired surrogates or unprintable
// garbage; generated strings must survive a render/parse round trip.
func TestStringArgumentsRoundTrip(t *testing.T) {
	schema := mustLoadSchema(t, `type Query {
		hello(user: String!): String
	}`)
	gen, err := Queries(schema)
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		query := gen.Draw(t, "query")
		doc := checkOperationValid(t, schema, query)

		field := doc.Operations[0].SelectionSet[0].(*ast.Field)
		require.Len(t, field.Arguments, 1)
		value := field.Arguments[0].Value
		require.Equal(t, ast.StringValue, value.Kind)
		require.True(t, utf8.ValidString(value.Raw))
	})
}

func selectionDepth(selections ast.SelectionSet) int {
	depth := 0
	for _, selection := range selections {
		var child int
		switch sel := selection.(type) {
		case *ast.Field:
			child = 1 + selectionDepth(sel.SelectionSet)
		case *ast.InlineFragment:
			// A fragment's fields live on the same level.
			child = selectionDepth(sel.SelectionSet)
		}
		if child > depth {
			depth = child
		}
	}
	return depth
}

func TestMaxDepth(t *testing.T) {
	schema := mustLoadSchema(t, baseSchema+`type Query {
		getAuthors: [Author]
	}`)
	gen, err := Queries(schema, WithMaxDepth(2))
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		query := gen.Draw(t, "query")
		doc := checkOperationValid(t, schema, query)
		if depth := selectionDepth(doc.Operations[0].SelectionSet); depth > 2 {
			t.Fatalf("selection depth %v exceeds the limit:\n%s", depth, query)
		}
	})
}

func TestMaxDepthInvalid(t *testing.T) {
	schema := mustLoadSchema(t, baseSchema+`type Query { getBooks: [Book] }`)
	_, err := Queries(schema, WithMaxDepth(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max depth")
}

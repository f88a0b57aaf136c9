// Package strategies generates GraphQL query and mutation documents from a
// schema, as rapid generators.
//
// A generator draws syntactically and semantically valid operations for the
// schema it was built from: selection sets are non-empty subsets of the
// defined fields, abstract types get inline fragments, and argument values
// are drawn per their input types.  Because documents are assembled from
// rapid draws, failing documents shrink through rapid's engine like any
// other generated value.
//
// The usual entry points are Queries, Mutations, and FromSchema:
//
//	schema, err := strategies.LoadSchema(sdl)
//	...
//	gen, err := strategies.Queries(schema)
//	...
//	rapid.Check(t, func(t *rapid.T) {
//		query := gen.Draw(t, "query")
//		// run query against the system under test
//	})
package strategies

import (
	"bytes"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"pgregory.net/rapid"
)

const defaultMaxDepth = 5

// An Option adjusts how documents are generated.
type Option func(*builder)

// WithFields restricts the generated top-level fields to the given subset
// of the operation type's fields.
func WithFields(fields ...string) Option {
	return func(b *builder) {
		b.fieldsSet = true
		b.fields = fields
	}
}

// WithMaxDepth bounds selection-set nesting.  Past the limit only leaf
// fields are selected, so documents over recursive type definitions stay
// finite.  The default is 5.
func WithMaxDepth(depth int) Option {
	return func(b *builder) { b.maxDepth = depth }
}

// WithCustomScalar registers a value generator for a custom scalar type, so
// it can be used in argument position.  Value nodes are typically built
// with the nodes package:
//
//	WithCustomScalar("Date", rapid.Custom(func(t *rapid.T) *ast.Value {
//		return nodes.String(drawDate(t))
//	}))
func WithCustomScalar(name string, gen *rapid.Generator[*ast.Value]) Option {
	return func(b *builder) { b.scalars[name] = gen }
}

type builder struct {
	schema     *ast.Schema
	maxDepth   int
	fieldsSet  bool
	fields     []string
	scalars    map[string]*rapid.Generator[*ast.Value]
	leafDepths map[string]int
}

func newBuilder(schema *ast.Schema, opts []Option) (*builder, error) {
	b := &builder{
		schema:   schema,
		maxDepth: defaultMaxDepth,
		scalars:  map[string]*rapid.Generator[*ast.Value]{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.maxDepth < 1 {
		return nil, errorf(nil, "max depth must be at least 1, got %v", b.maxDepth)
	}
	b.computeLeafDepths()
	return b, nil
}

// Queries returns a generator of query documents for the given schema.
//
// Each document contains a single anonymous query operation selecting a
// non-empty subset of the fields defined on the Query type.
func Queries(schema *ast.Schema, opts ...Option) (*rapid.Generator[string], error) {
	b, err := newBuilder(schema, opts)
	if err != nil {
		return nil, err
	}
	if schema.Query == nil {
		return nil, errorf(nil, "Query type is not defined in the schema")
	}
	return b.operation(ast.Query, schema.Query)
}

// Mutations returns a generator of mutation documents for the given schema.
func Mutations(schema *ast.Schema, opts ...Option) (*rapid.Generator[string], error) {
	b, err := newBuilder(schema, opts)
	if err != nil {
		return nil, err
	}
	if schema.Mutation == nil {
		return nil, errorf(nil, "Mutation type is not defined in the schema")
	}
	return b.operation(ast.Mutation, schema.Mutation)
}

// FromSchema returns a generator of query and/or mutation documents,
// whichever operation types the schema defines.
//
// The fields option applies to the Query type only; all other options
// apply to both operation types.
func FromSchema(schema *ast.Schema, opts ...Option) (*rapid.Generator[string], error) {
	b, err := newBuilder(schema, opts)
	if err != nil {
		return nil, err
	}

	var gens []*rapid.Generator[string]
	if schema.Query != nil {
		gen, err := b.operation(ast.Query, schema.Query)
		if err != nil {
			return nil, err
		}
		gens = append(gens, gen)
	}
	if schema.Mutation != nil {
		mb := *b
		mb.fieldsSet = false
		mb.fields = nil
		gen, err := mb.operation(ast.Mutation, schema.Mutation)
		if err != nil {
			return nil, err
		}
		gens = append(gens, gen)
	}
	switch len(gens) {
	case 0:
		return nil, errorf(nil, "neither Query nor Mutation is defined in the schema")
	case 1:
		return gens[0], nil
	default:
		return rapid.OneOf(gens...), nil
	}
}

// operation builds the document generator for one operation type.  All
// schema walking that can fail happens here, before the first draw.
func (b *builder) operation(op ast.Operation, def *ast.Definition) (*rapid.Generator[string], error) {
	candidates, err := b.topLevelFields(def)
	if err != nil {
		return nil, err
	}
	if err := b.checkOperation(def, candidates); err != nil {
		return nil, err
	}

	return rapid.Custom(func(t *rapid.T) string {
		doc := &ast.QueryDocument{
			Operations: ast.OperationList{{
				Operation:    op,
				SelectionSet: b.selectionSet(t, def, candidates, 1, ""),
			}},
		}
		var buf bytes.Buffer
		formatter.NewFormatter(&buf).FormatQueryDocument(doc)
		return buf.String()
	}), nil
}

// topLevelFields resolves the fields option against the operation type.
func (b *builder) topLevelFields(def *ast.Definition) ([]string, error) {
	candidates := b.fieldNames(def)
	if !b.fieldsSet {
		if len(candidates) == 0 {
			return nil, errorf(nil, "type %v has no generatable fields", def.Name)
		}
		return candidates, nil
	}

	if len(b.fields) == 0 {
		return nil, errorf(nil, "fields cannot be empty")
	}
	var unknown []string
	for _, name := range b.fields {
		if def.Fields.ForName(name) == nil {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, errorf(nil, "unknown fields: %v", joinNames(unknown))
	}

	allowed := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		allowed[name] = true
	}
	var fields []string
	for _, name := range b.fields {
		if allowed[name] {
			fields = append(fields, name)
		}
	}
	if len(fields) == 0 {
		return nil, errorf(nil, "none of the requested fields can produce a finite selection")
	}
	sortNames(fields)
	return fields, nil
}

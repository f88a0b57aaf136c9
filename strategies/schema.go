package strategies

import (
	"os"

	lru "github.com/hashicorp/golang-lru"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// Parsing and validating a schema is far more expensive than drawing a
// document from it, and property-based tests tend to hand us the same SDL
// text over and over, so LoadSchema memoizes by source text.
var schemaCache, _ = lru.New(64)

// LoadSchema parses and validates a GraphQL schema given in SDL form.
//
// Repeated calls with the same source return the same *ast.Schema; callers
// must not mutate it.
func LoadSchema(input string) (*ast.Schema, error) {
	if cached, ok := schemaCache.Get(input); ok {
		return cached.(*ast.Schema), nil
	}

	schema, err := buildSchema(&ast.Source{Name: "schema", Input: input})
	if err != nil {
		return nil, err
	}

	schemaCache.Add(input, schema)
	return schema, nil
}

// LoadSchemaFiles parses and validates a schema spread over several SDL
// files, keeping one source per file so error positions name the file
// they came from.  Unlike LoadSchema, results are not cached.
func LoadSchemaFiles(filenames ...string) (*ast.Schema, error) {
	sources := make([]*ast.Source, len(filenames))
	for i, filename := range filenames {
		text, err := os.ReadFile(filename)
		if err != nil {
			return nil, errorf(nil, "unreadable schema file %v: %v", filename, err)
		}
		sources[i] = &ast.Source{Name: filename, Input: string(text)}
	}
	return buildSchema(sources...)
}

func buildSchema(sources ...*ast.Source) (*ast.Schema, error) {
	// Ideally here we'd just call gqlparser.LoadSchema.  But the schema we
	// are given may or may not contain the builtin types String, Int, etc.
	// (The spec says it shouldn't, but introspection will return those
	// types, and some introspection-to-SDL tools aren't smart enough to
	// remove them.)  So we inline LoadSchema and insert some checks.
	document, graphqlError := parser.ParseSchemas(sources...)
	if graphqlError != nil {
		return nil, errorf(nil, "invalid schema: %v", graphqlError)
	}

	// Check if we have a builtin type.  (String is an arbitrary choice.)
	hasBuiltins := false
	for _, def := range document.Definitions {
		if def.Name == "String" {
			hasBuiltins = true
			break
		}
	}

	if !hasBuiltins {
		preludeAST, preludeError := parser.ParseSchema(validator.Prelude)
		if preludeError != nil {
			return nil, errorf(nil, "invalid prelude (probably a gqlparser bug): %v", preludeError)
		}
		document.Merge(preludeAST)
	}

	schema, validateError := validator.ValidateSchemaDocument(document)
	if validateError != nil {
		return nil, errorf(nil, "invalid schema: %v", validateError)
	}

	return schema, nil
}

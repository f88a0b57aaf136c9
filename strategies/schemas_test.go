package strategies

import (
	"testing"

	"pgregory.net/rapid"
)

// Every generated schema loads, and documents generated from it validate
// against it.
func TestSchemasGenerateValidSchemas(t *testing.T) {
	schemas := Schemas()

	rapid.Check(t, func(t *rapid.T) {
		sdl := schemas.Draw(t, "schema")

		schema, err := LoadSchema(sdl)
		if err != nil {
			t.Fatalf("generated schema does not load: %v\n%s", err, sdl)
		}

		gen, err := Queries(schema)
		if err != nil {
			t.Fatalf("no query generator for generated schema: %v\n%s", err, sdl)
		}
		checkOperationValid(t, schema, gen.Draw(t, "query"))
	})
}

package strategies

import (
	"strings"

	"pgregory.net/rapid"
)

// Base names are lowercase words; casing distinguishes the categories
// (TitleCase types, UPPERCASE enum values, lowercase fields), so one
// distinct draw covers a whole namespace.
var baseName = rapid.StringOfN(rapid.RuneFrom([]rune("abcdefghijklmnopqrstuvwxyz")), 1, 8, -1).
	Filter(func(s string) bool {
		switch s {
		case "int", "float", "string", "id", "boolean", "query", "mutation", "subscription":
			return false
		}
		return true
	})

var builtinLeaves = []string{"Int", "Float", "String", "ID", "Boolean"}

// Schemas returns a generator of random valid SDL schemas: enum and object
// definitions, possibly cyclic object references, and a Query type whose
// fields may take arguments.  Every object carries at least one leaf
// field, so every generated schema admits finite queries.
func Schemas() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		numEnums := rapid.IntRange(0, 2).Draw(t, "enum count")
		numObjects := rapid.IntRange(1, 3).Draw(t, "object count")
		bases := rapid.SliceOfNDistinct(baseName, numEnums+numObjects, numEnums+numObjects, rapid.ID[string]).Draw(t, "type names")

		var sb strings.Builder

		leaves := append([]string(nil), builtinLeaves...)
		for _, base := range bases[:numEnums] {
			name := upperFirst(base)
			leaves = append(leaves, name)
			values := rapid.SliceOfNDistinct(baseName, 1, 4, rapid.ID[string]).Draw(t, "enum values")
			sb.WriteString("enum " + name + " {\n")
			for _, value := range values {
				sb.WriteString("  " + strings.ToUpper(value) + "\n")
			}
			sb.WriteString("}\n\n")
		}

		objects := make([]string, 0, numObjects)
		for _, base := range bases[numEnums:] {
			objects = append(objects, upperFirst(base))
		}

		for _, name := range objects {
			sb.WriteString("type " + name + " {\n")
			fields := rapid.SliceOfNDistinct(baseName, 1, 4, rapid.ID[string]).Draw(t, "field names")
			for i, field := range fields {
				// The first field is always a leaf, so selections of this
				// type can bottom out even when the rest cycle.
				var typ string
				if i == 0 {
					typ = rapid.SampledFrom(leaves).Draw(t, "leaf type")
				} else {
					typ = rapid.SampledFrom(append(append([]string(nil), leaves...), objects...)).Draw(t, "field type")
				}
				sb.WriteString("  " + lowerFirst(field) + ": " + wrapType(t, typ) + "\n")
			}
			sb.WriteString("}\n\n")
		}

		sb.WriteString("type Query {\n")
		queryFields := rapid.SliceOfNDistinct(baseName, 1, 3, rapid.ID[string]).Draw(t, "query fields")
		for _, field := range queryFields {
			typ := rapid.SampledFrom(append(append([]string(nil), leaves...), objects...)).Draw(t, "query field type")
			sb.WriteString("  " + lowerFirst(field))
			if rapid.Bool().Draw(t, "has argument") {
				argType := rapid.SampledFrom(leaves).Draw(t, "argument type")
				sb.WriteString("(" + lowerFirst(field) + "Arg: " + wrapType(t, argType) + ")")
			}
			sb.WriteString(": " + wrapType(t, typ) + "\n")
		}
		sb.WriteString("}\n")

		return sb.String()
	})
}

var typeWrappers = []string{"%s", "%s!", "[%s]", "[%s!]"}

func wrapType(t *rapid.T, name string) string {
	return strings.Replace(rapid.SampledFrom(typeWrappers).Draw(t, "type wrapper"), "%s", name, 1)
}

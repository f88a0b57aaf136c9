package strategies

import (
	"math"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"pgregory.net/rapid"
)

// Int is a signed 32-bit integer per the GraphQL spec.
const (
	minInt = math.MinInt32
	maxInt = math.MaxInt32
)

// graphqlRune admits runes that survive a quote/parse round trip: the
// formatter escapes strings with strconv.Quote, and of its escapes only
// \n, \r, \t, \" and \\ are valid GraphQL string escapes.  Everything
// printable is emitted literally and needs no escape at all.
var graphqlRune = rapid.Rune().Filter(func(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return true
	}
	return strconv.IsPrint(r)
})

var graphqlString = rapid.StringOf(graphqlRune)

func (b *builder) scalarValue(t *rapid.T, name string) *ast.Value {
	switch name {
	case "Int":
		return intValue(t)
	case "Float":
		return floatValue(t)
	case "String":
		return stringValue(t)
	case "ID":
		// An ID accepts both int and string literals.
		if rapid.Bool().Draw(t, "id as string") {
			return stringValue(t)
		}
		return intValue(t)
	case "Boolean":
		return booleanValue(t)
	}

	gen, ok := b.scalars[name]
	if !ok {
		// checkOperation rejects unregistered custom scalars in any
		// position that reaches here.
		panic("no value generator for custom scalar " + name)
	}
	return gen.Draw(t, name)
}

func (b *builder) enumValue(t *rapid.T, def *ast.Definition) *ast.Value {
	names := make([]string, 0, len(def.EnumValues))
	for _, value := range def.EnumValues {
		names = append(names, value.Name)
	}
	return &ast.Value{
		Kind: ast.EnumValue,
		Raw:  rapid.SampledFrom(names).Draw(t, "enum"),
	}
}

func intValue(t *rapid.T) *ast.Value {
	n := rapid.IntRange(minInt, maxInt).Draw(t, "int")
	return &ast.Value{Kind: ast.IntValue, Raw: strconv.Itoa(n)}
}

func floatValue(t *rapid.T) *ast.Value {
	// Bounded range: GraphQL has no literals for infinities or NaN.
	f := rapid.Float64Range(-math.MaxFloat64, math.MaxFloat64).Draw(t, "float")
	return &ast.Value{Kind: ast.FloatValue, Raw: strconv.FormatFloat(f, 'g', -1, 64)}
}

func stringValue(t *rapid.T) *ast.Value {
	return &ast.Value{Kind: ast.StringValue, Raw: graphqlString.Draw(t, "string")}
}

func booleanValue(t *rapid.T) *ast.Value {
	return &ast.Value{Kind: ast.BooleanValue, Raw: strconv.FormatBool(rapid.Bool().Draw(t, "boolean"))}
}

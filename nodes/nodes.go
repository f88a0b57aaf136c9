// Package nodes builds gqlparser value nodes, for use in custom scalar
// generators registered with strategies.WithCustomScalar.
package nodes

import (
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
)

// String returns a string value node; the value is escaped when the
// document is rendered.
func String(v string) *ast.Value {
	return &ast.Value{Kind: ast.StringValue, Raw: v}
}

// Int returns an int value node.  GraphQL ints are signed 32-bit.
func Int(v int32) *ast.Value {
	return &ast.Value{Kind: ast.IntValue, Raw: strconv.FormatInt(int64(v), 10)}
}

// Float returns a float value node.  GraphQL has no literals for
// infinities or NaN, so v must be finite.
func Float(v float64) *ast.Value {
	return &ast.Value{Kind: ast.FloatValue, Raw: strconv.FormatFloat(v, 'g', -1, 64)}
}

// Boolean returns a boolean value node.
func Boolean(v bool) *ast.Value {
	return &ast.Value{Kind: ast.BooleanValue, Raw: strconv.FormatBool(v)}
}

// Enum returns an enum value node for the given value name.
func Enum(name string) *ast.Value {
	return &ast.Value{Kind: ast.EnumValue, Raw: name}
}

// Null returns the null literal.
func Null() *ast.Value {
	return &ast.Value{Kind: ast.NullValue, Raw: "null"}
}

// List returns a list value node of the given items.
func List(items ...*ast.Value) *ast.Value {
	value := &ast.Value{Kind: ast.ListValue}
	for _, item := range items {
		value.Children = append(value.Children, &ast.ChildValue{Value: item})
	}
	return value
}

// Object returns an object value node of the given fields; build them with
// Field.
func Object(fields ...*ast.ChildValue) *ast.Value {
	return &ast.Value{Kind: ast.ObjectValue, Children: fields}
}

// Field names a value inside an Object node.
func Field(name string, value *ast.Value) *ast.ChildValue {
	return &ast.ChildValue{Name: name, Value: value}
}

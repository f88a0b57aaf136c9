package strategies

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"pgregory.net/rapid"
)

// selectionSet draws a non-empty subset of the candidate fields of def.
// An empty selection set is not a valid query, so at least one field is
// always selected.
//
// Past maxDepth, candidates are narrowed to the fields closest to a leaf,
// which makes the selection depth strictly decrease and therefore keeps
// documents over cyclic type definitions finite.
func (b *builder) selectionSet(t *rapid.T, def *ast.Definition, candidates []string, depth int, aliasPrefix string) ast.SelectionSet {
	if depth >= b.maxDepth {
		candidates = b.nearestToLeaf(def, candidates)
	}

	names := rapid.SliceOfNDistinct(rapid.SampledFrom(candidates), 1, -1, rapid.ID[string]).Draw(t, "fields")
	selections := make(ast.SelectionSet, 0, len(names))
	for _, name := range names {
		selections = append(selections, b.field(t, def.Fields.ForName(name), depth, aliasPrefix))
	}
	return selections
}

// field draws a single field node with arguments and, for composite field
// types, a child selection set.
func (b *builder) field(t *rapid.T, def *ast.FieldDefinition, depth int, aliasPrefix string) *ast.Field {
	alias := def.Name
	if aliasPrefix != "" {
		alias = aliasPrefix + "_" + def.Name
	}
	field := &ast.Field{
		Alias:     alias,
		Name:      def.Name,
		Arguments: b.arguments(t, def.Arguments),
	}

	typ := b.schema.Types[def.Type.Name()]
	switch typ.Kind {
	case ast.Object:
		field.SelectionSet = b.selectionSet(t, typ, b.fieldNames(typ), depth+1, "")
	case ast.Interface:
		field.SelectionSet = b.interfaceSelection(t, typ, depth+1)
	case ast.Union:
		field.SelectionSet = b.unionSelection(t, typ, depth+1)
	}
	// Scalars and enums are leaves and get no selection set.
	return field
}

// interfaceSelection draws a non-empty subset of the interface's own
// fields, plus inline fragments on a subset of the possible types.
func (b *builder) interfaceSelection(t *rapid.T, def *ast.Definition, depth int) ast.SelectionSet {
	selections := b.selectionSet(t, def, b.fieldNames(def), depth, "")
	impls := b.possibleTypeNames(def)
	if len(impls) == 0 || depth >= b.maxDepth {
		return selections
	}
	for _, name := range rapid.SliceOfNDistinct(rapid.SampledFrom(impls), 0, -1, rapid.ID[string]).Draw(t, "implementations") {
		selections = append(selections, b.inlineFragment(t, b.schema.Types[name], depth))
	}
	return selections
}

// unionSelection draws inline fragments on a non-empty distinct subset of
// the union's member types.  A union has no fields of its own, so the
// fragments are the whole selection.
func (b *builder) unionSelection(t *rapid.T, def *ast.Definition, depth int) ast.SelectionSet {
	members := b.possibleTypeNames(def)
	var selections ast.SelectionSet
	for _, name := range rapid.SliceOfNDistinct(rapid.SampledFrom(members), 1, -1, rapid.ID[string]).Draw(t, "members") {
		selections = append(selections, b.inlineFragment(t, b.schema.Types[name], depth))
	}
	return selections
}

// inlineFragment draws `... on T { ... }` for one concrete type.  Fields
// directly inside the fragment are aliased with the type name: sibling
// fragments may select same-named fields of different types, which would
// otherwise break the field-merging validation rule.
func (b *builder) inlineFragment(t *rapid.T, def *ast.Definition, depth int) *ast.InlineFragment {
	return &ast.InlineFragment{
		TypeCondition: def.Name,
		SelectionSet:  b.selectionSet(t, def, b.fieldNames(def), depth, def.Name),
	}
}

// arguments draws argument nodes for a field.  Non-null arguments are
// always present; nullable ones are included independently at random.
// Nullable arguments whose type has no value generator (unregistered
// custom scalars) are omitted; non-null ones were rejected when the
// generator was built.
func (b *builder) arguments(t *rapid.T, defs ast.ArgumentDefinitionList) ast.ArgumentList {
	var args ast.ArgumentList
	for _, def := range defs {
		if !b.supportedInput(def.Type) {
			continue
		}
		if !def.Type.NonNull && !rapid.Bool().Draw(t, "include "+def.Name) {
			continue
		}
		args = append(args, &ast.Argument{
			Name:  def.Name,
			Value: b.value(t, def.Type, 1),
		})
	}
	return args
}

// value draws a value node for an input type.  Nullable types may produce
// the null literal, lists recurse into their element type, and input
// objects recurse into their fields.
func (b *builder) value(t *rapid.T, typ *ast.Type, depth int) *ast.Value {
	if !typ.NonNull {
		if depth > b.maxDepth || rapid.Bool().Draw(t, "null") {
			return &ast.Value{Kind: ast.NullValue, Raw: "null"}
		}
	}
	if typ.Elem != nil {
		return b.listValue(t, typ, depth)
	}

	def := b.schema.Types[typ.NamedType]
	switch def.Kind {
	case ast.Scalar:
		return b.scalarValue(t, def.Name)
	case ast.Enum:
		return b.enumValue(t, def)
	case ast.InputObject:
		return b.inputObjectValue(t, def, depth)
	default:
		// checkOperation rejects anything else before the first draw.
		panic("unsupported input type " + def.Name)
	}
}

func (b *builder) listValue(t *rapid.T, typ *ast.Type, depth int) *ast.Value {
	n := 0
	if depth < b.maxDepth {
		n = rapid.IntRange(0, 3).Draw(t, "list length")
	}
	value := &ast.Value{Kind: ast.ListValue}
	for i := 0; i < n; i++ {
		value.Children = append(value.Children, &ast.ChildValue{
			Value: b.value(t, typ.Elem, depth+1),
		})
	}
	return value
}

// inputObjectValue draws an object literal: every required field, plus a
// random subset of the optional fields that have value generators.
func (b *builder) inputObjectValue(t *rapid.T, def *ast.Definition, depth int) *ast.Value {
	value := &ast.Value{Kind: ast.ObjectValue}
	var optional []string
	for _, field := range def.Fields {
		if isRequiredInput(field) {
			value.Children = append(value.Children, &ast.ChildValue{
				Name:  field.Name,
				Value: b.value(t, field.Type, depth+1),
			})
			continue
		}
		if b.supportedInput(field.Type) {
			optional = append(optional, field.Name)
		}
	}

	if depth < b.maxDepth && len(optional) > 0 {
		for _, name := range rapid.SliceOfNDistinct(rapid.SampledFrom(optional), 0, -1, rapid.ID[string]).Draw(t, "input fields") {
			field := def.Fields.ForName(name)
			value.Children = append(value.Children, &ast.ChildValue{
				Name:  field.Name,
				Value: b.value(t, field.Type, depth+1),
			})
		}
	}
	return value
}

func isRequiredInput(field *ast.FieldDefinition) bool {
	return field.Type.NonNull && field.DefaultValue == nil
}

// fieldNames lists def's generatable fields in a stable order: declared
// fields minus introspection fields and fields whose type admits no finite
// selection.
func (b *builder) fieldNames(def *ast.Definition) []string {
	names := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		if strings.HasPrefix(field.Name, "__") {
			continue
		}
		if _, ok := b.leafDepths[field.Type.Name()]; !ok {
			continue
		}
		names = append(names, field.Name)
	}
	sortNames(names)
	return names
}

func (b *builder) possibleTypeNames(def *ast.Definition) []string {
	types := b.schema.PossibleTypes[def.Name]
	names := make([]string, 0, len(types))
	for _, typ := range types {
		if len(b.fieldNames(typ)) > 0 {
			names = append(names, typ.Name)
		}
	}
	sortNames(names)
	return names
}

// nearestToLeaf narrows candidates for the depth cutoff: leaf-typed fields
// if there are any, otherwise the fields whose type is fewest hops from a
// leaf.
func (b *builder) nearestToLeaf(def *ast.Definition, candidates []string) []string {
	best := -1
	for _, name := range candidates {
		d := b.leafDepths[def.Fields.ForName(name).Type.Name()]
		if best == -1 || d < best {
			best = d
		}
	}
	var nearest []string
	for _, name := range candidates {
		if b.leafDepths[def.Fields.ForName(name).Type.Name()] == best {
			nearest = append(nearest, name)
		}
	}
	return nearest
}

package strategies

import (
	"github.com/vektah/gqlparser/v2/ast"
)

func builtinScalar(name string) bool {
	switch name {
	case "Int", "Float", "String", "ID", "Boolean":
		return true
	}
	return false
}

func innermost(typ *ast.Type) *ast.Type {
	for typ.Elem != nil {
		typ = typ.Elem
	}
	return typ
}

// supportedInput reports whether values of typ can be drawn: builtin or
// registered scalars, enums, and input objects with a finite value.
func (b *builder) supportedInput(typ *ast.Type) bool {
	return b.supportedInputVisiting(typ, nil)
}

func (b *builder) supportedInputVisiting(typ *ast.Type, visiting map[string]bool) bool {
	def := b.schema.Types[innermost(typ).NamedType]
	switch def.Kind {
	case ast.Scalar:
		if builtinScalar(def.Name) {
			return true
		}
		_, ok := b.scalars[def.Name]
		return ok
	case ast.Enum:
		return true
	case ast.InputObject:
		return b.inputObjectGeneratable(def, visiting)
	default:
		return false
	}
}

// inputObjectGeneratable reports whether a value of the input object can
// be drawn at all.  Every required field must itself be generatable, and a
// cycle of required fields admits no finite value.  Optional fields do not
// matter here: generation simply omits the unsupported ones, and cycles
// through them terminate at the depth bound.
func (b *builder) inputObjectGeneratable(def *ast.Definition, visiting map[string]bool) bool {
	if visiting == nil {
		visiting = map[string]bool{}
	}
	if visiting[def.Name] {
		return false
	}
	visiting[def.Name] = true
	defer delete(visiting, def.Name)

	for _, field := range def.Fields {
		if isRequiredInput(field) && !b.supportedInputVisiting(field.Type, visiting) {
			return false
		}
	}
	return true
}

// checkOperation walks everything reachable from the chosen top-level
// fields and rejects any argument the generator could be forced to draw
// but cannot.  Failing here keeps the generator itself panic-free: by the
// first draw the whole reachable schema is known good.
func (b *builder) checkOperation(def *ast.Definition, fields []string) error {
	visited := map[string]bool{}
	for _, name := range fields {
		if err := b.checkField(def.Fields.ForName(name), visited); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) checkField(field *ast.FieldDefinition, visited map[string]bool) error {
	for _, arg := range field.Arguments {
		if !b.supportedInput(arg.Type) && arg.Type.NonNull {
			named := innermost(arg.Type).NamedType
			if b.schema.Types[named].Kind == ast.Scalar {
				return errorf(nil,
					"non-nullable custom scalar %v of argument %q on field %q is not supported; register it with WithCustomScalar",
					named, arg.Name, field.Name)
			}
			return errorf(nil,
				"argument %q on field %q: no finite value of input type %v exists",
				arg.Name, field.Name, named)
		}
	}
	return b.checkType(b.schema.Types[field.Type.Name()], visited)
}

func (b *builder) checkType(def *ast.Definition, visited map[string]bool) error {
	if visited[def.Name] {
		return nil
	}
	visited[def.Name] = true

	switch def.Kind {
	case ast.Object, ast.Interface:
		for _, name := range b.fieldNames(def) {
			if err := b.checkField(def.Fields.ForName(name), visited); err != nil {
				return err
			}
		}
		if def.Kind == ast.Interface {
			for _, name := range b.possibleTypeNames(def) {
				if err := b.checkType(b.schema.Types[name], visited); err != nil {
					return err
				}
			}
		}
	case ast.Union:
		for _, name := range b.possibleTypeNames(def) {
			if err := b.checkType(b.schema.Types[name], visited); err != nil {
				return err
			}
		}
	}
	return nil
}

// computeLeafDepths assigns every output type its distance to a leaf:
// scalars and enums are 0, an object or interface is one more than its
// closest field, a union one more than its closest member.  Types with no
// entry cannot bottom out in a leaf, so no finite valid selection of them
// exists and they are excluded from generation entirely.  Fixpoint
// iteration handles cyclic definitions.
func (b *builder) computeLeafDepths() {
	depths := map[string]int{}
	for name, def := range b.schema.Types {
		if def.Kind == ast.Scalar || def.Kind == ast.Enum {
			depths[name] = 0
		}
	}

	for changed := true; changed; {
		changed = false
		for name, def := range b.schema.Types {
			var best = -1
			switch def.Kind {
			case ast.Object, ast.Interface:
				for _, field := range def.Fields {
					if d, ok := depths[field.Type.Name()]; ok && (best == -1 || d < best) {
						best = d
					}
				}
			case ast.Union:
				for _, member := range b.schema.PossibleTypes[name] {
					if d, ok := depths[member.Name]; ok && (best == -1 || d < best) {
						best = d
					}
				}
			default:
				continue
			}
			if best == -1 {
				continue
			}
			if cur, ok := depths[name]; !ok || best+1 < cur {
				depths[name] = best + 1
				changed = true
			}
		}
	}

	b.leafDepths = depths
}

package generator

import (
	"fmt"
	"strings"

	"schemaforge/internal/schema"
)

// Interface строит TypeScript interface со строкой аннотаций над каждым полем.
func Interface(s schema.Schema) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export interface %s {\n", s.Name)
	if members := tsMembers(s.Fields, 1, true); members != "" {
		b.WriteString(members)
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func tsMembers(fields []schema.Field, depth int, annotate bool) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		line := ""
		if annotate {
			if notes := Annotations(f); len(notes) > 0 {
				line = indent(depth) + "/** " + strings.Join(notes, " ") + " */\n"
			}
		}
		line += indent(depth) + f.Name + optional(f) + ": " + tsType(f.Type, depth, annotate) + ";"
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func optional(f schema.Field) string {
	if f.Required {
		return ""
	}
	return "?"
}

func tsType(t schema.Type, depth int, annotate bool) string {
	switch t := t.(type) {
	case schema.Primitive:
		return tsPrimitive(t.Of)
	case schema.Array:
		return tsElement(t.Elem) + "[]"
	case schema.Object:
		if len(t.Fields) == 0 {
			return "Record<string, any>"
		}
		return "{\n" + tsMembers(t.Fields, depth+1, annotate) + "\n" + indent(depth) + "}"
	default:
		return "any"
	}
}

func tsPrimitive(k schema.Kind) string {
	switch k {
	case schema.KindString:
		return "string"
	case schema.KindNumber:
		return "number"
	case schema.KindBoolean:
		return "boolean"
	case schema.KindDate:
		return "Date"
	default:
		return "any"
	}
}

func tsElement(k schema.Kind) string {
	if k == schema.KindObject {
		return "Record<string, any>"
	}
	return tsPrimitive(k)
}

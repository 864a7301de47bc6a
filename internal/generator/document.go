package generator

import (
	"fmt"
	"strings"

	"schemaforge/internal/schema"
)

// Document строит mongoose-модель: интерфейс документа, Schema с timestamps и model().
func Document(s schema.Schema) string {
	var b strings.Builder
	b.WriteString("import { Schema, model, Document } from 'mongoose';\n\n")

	fmt.Fprintf(&b, "export interface %sDocument extends Document {\n", s.Name)
	if members := tsMembers(s.Fields, 1, false); members != "" {
		b.WriteString(members)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "const %sSchema = new Schema<%sDocument>(%s, {\n  timestamps: true\n});\n\n",
		s.Name, s.Name, docFields(s.Fields, 0))
	fmt.Fprintf(&b, "export const %s = model<%sDocument>('%s', %sSchema);", s.Name, s.Name, s.Name, s.Name)
	return b.String()
}

func docFields(fields []schema.Field, depth int) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, indent(depth+1)+f.Name+": "+docClause(f, depth+1))
	}
	return block("{", "}", lines, ",", depth)
}

func docClause(f schema.Field, depth int) string {
	switch t := f.Type.(type) {
	case schema.Array:
		return "[" + docElement(t.Elem) + "]"
	case schema.Object:
		if len(t.Fields) > 0 {
			return docFields(t.Fields, depth)
		}
		return docOptions("Schema.Types.Mixed", f)
	case schema.Primitive:
		return docOptions(docNative(t.Of), f)
	default:
		return docOptions("Schema.Types.Mixed", f)
	}
}

func docNative(k schema.Kind) string {
	switch k {
	case schema.KindString:
		return "String"
	case schema.KindNumber:
		return "Number"
	case schema.KindBoolean:
		return "Boolean"
	case schema.KindDate:
		return "Date"
	default:
		return "Schema.Types.Mixed"
	}
}

func docElement(k schema.Kind) string {
	return "{ type: " + docNative(k) + " }"
}

// docOptions: type, required, unique, minlength/min, maxlength/max, default.
func docOptions(native string, f schema.Field) string {
	opts := []string{"type: " + native}
	if f.Required {
		opts = append(opts, "required: true")
	}
	if f.Unique {
		opts = append(opts, "unique: true")
	}
	isString := f.Kind() == schema.KindString
	v := f.Validation
	if v.Min != nil {
		key := "min"
		if isString {
			key = "minlength"
		}
		opts = append(opts, key+": "+num(*v.Min))
	}
	if v.Max != nil {
		key := "max"
		if isString {
			key = "maxlength"
		}
		opts = append(opts, key+": "+num(*v.Max))
	}
	if v.Default != nil {
		if isString {
			opts = append(opts, "default: "+jsSingle(*v.Default))
		} else {
			opts = append(opts, "default: "+*v.Default)
		}
	}
	return "{ " + strings.Join(opts, ", ") + " }"
}

package generator

import (
	"fmt"
	"strings"

	"schemaforge/internal/schema"
)

const (
	smartMin = 1
	smartMax = 155
)

// Validator строит zod-схему объекта и выведенный из неё тип.
func Validator(s schema.Schema, smartDefaults bool) string {
	var b strings.Builder
	b.WriteString("import { z } from 'zod';\n\n")
	fmt.Fprintf(&b, "export const %sSchema = %s;\n\n", s.Name, zodObject(s.Fields, 0, smartDefaults))
	fmt.Fprintf(&b, "export type %s = z.infer<typeof %sSchema>;", s.Name, s.Name)
	return b.String()
}

func zodObject(fields []schema.Field, depth int, smart bool) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, indent(depth+1)+f.Name+": "+zodField(f, depth+1, smart))
	}
	return block("z.object({", "})", lines, ",", depth)
}

// zodField: базовый валидатор, затем min, max, regex, default; optional снаружи.
func zodField(f schema.Field, depth int, smart bool) string {
	expr := zodBase(f.Type, depth, smart) + zodChecks(f, smart)
	if !f.Required {
		expr += ".optional()"
	}
	return expr
}

func zodBase(t schema.Type, depth int, smart bool) string {
	switch t := t.(type) {
	case schema.Primitive:
		return zodPrimitive(t.Of)
	case schema.Array:
		// элемент без имени и без ограничений: smart defaults к нему не применяются
		return "z.array(" + zodElement(t.Elem) + ")"
	case schema.Object:
		if len(t.Fields) == 0 {
			return "z.record(z.any())"
		}
		return zodObject(t.Fields, depth, smart)
	default:
		return "z.any()"
	}
}

func zodPrimitive(k schema.Kind) string {
	switch k {
	case schema.KindString:
		return "z.string()"
	case schema.KindNumber:
		return "z.number()"
	case schema.KindBoolean:
		return "z.boolean()"
	case schema.KindDate:
		return "z.date()"
	default:
		return "z.any()"
	}
}

func zodElement(k schema.Kind) string {
	if k == schema.KindObject {
		return "z.record(z.any())"
	}
	return zodPrimitive(k)
}

func zodChecks(f schema.Field, smart bool) string {
	var b strings.Builder
	v := f.Validation

	if f.Kind() == schema.KindString {
		if smart && f.Required && v.Min == nil && v.Max == nil {
			fmt.Fprintf(&b, ".min(%d, %s).max(%d, %s)", smartMin, jsString(f.Name+" is required"), smartMax, jsString(f.Name+" is too long"))
		} else {
			if v.Min != nil {
				b.WriteString(".min(" + num(*v.Min) + message(smart, f.Name+" is required") + ")")
			}
			if v.Max != nil {
				b.WriteString(".max(" + num(*v.Max) + message(smart, f.Name+" is too long") + ")")
			}
		}
		if v.Regex != "" {
			b.WriteString(".regex(/" + regexBody(v.Regex) + "/)")
		}
	} else {
		if v.Min != nil {
			b.WriteString(".min(" + num(*v.Min) + ")")
		}
		if v.Max != nil {
			b.WriteString(".max(" + num(*v.Max) + ")")
		}
	}

	if v.Default != nil {
		if f.Kind() == schema.KindString {
			b.WriteString(".default(" + jsString(*v.Default) + ")")
		} else {
			b.WriteString(".default(" + *v.Default + ")")
		}
	}
	return b.String()
}

func message(smart bool, text string) string {
	if !smart {
		return ""
	}
	return ", " + jsString(text)
}

package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"schemaforge/internal/schema"
)

// ParseStructured: строгий разбор документа вида {name, fields:[...]}.
// JSON определяется по первой скобке, остальное читается как YAML.
func ParseStructured(text string) (schema.Schema, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return ParseJSON(text)
	}
	return ParseYAML(text)
}

func ParseJSON(text string) (schema.Schema, error) {
	if strings.TrimSpace(text) == "" {
		return schema.Schema{}, syntaxErr(FormatJSON, nil, "Empty input")
	}
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return schema.Schema{}, syntaxErr(FormatJSON, err, "Invalid JSON format")
	}
	return fromDocument(FormatJSON, doc)
}

func ParseYAML(text string) (schema.Schema, error) {
	if strings.TrimSpace(text) == "" {
		return schema.Schema{}, syntaxErr(FormatYAML, nil, "Empty input")
	}
	var doc any
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return schema.Schema{}, syntaxErr(FormatYAML, err, "Invalid YAML format")
	}
	return fromDocument(FormatYAML, doc)
}

func fromDocument(format Format, doc any) (schema.Schema, error) {
	m, ok := asMap(doc)
	if !ok {
		return schema.Schema{}, syntaxErr(format, nil, "Schema must be an object with name and fields")
	}
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return schema.Schema{}, semanticErr(format, "Schema must have a valid name")
	}
	rawFields, ok := m["fields"].([]any)
	if !ok {
		return schema.Schema{}, semanticErr(format, "Schema must have a fields array")
	}

	fields := make([]schema.Field, 0, len(rawFields))
	for i, raw := range rawFields {
		f, err := structuredField(format, i, raw)
		if err != nil {
			return schema.Schema{}, err
		}
		fields = append(fields, f)
	}
	if dup, ok := schema.DuplicateName(fields); ok {
		return schema.Schema{}, semanticErr(format, "Duplicate field name '%s'", dup)
	}
	return schema.Schema{Name: name, Fields: fields}, nil
}

func structuredField(format Format, index int, raw any) (schema.Field, error) {
	fm, ok := asMap(raw)
	if !ok {
		return schema.Field{}, semanticErr(format, "Field at index %d must be an object", index)
	}
	name, ok := fm["name"].(string)
	if !ok || name == "" {
		return schema.Field{}, semanticErr(format, "Field at index %d must have a valid name", index)
	}
	kind := kindValue(fm["type"])
	if !kind.In(schema.Kinds) {
		return schema.Field{}, semanticErr(format, "Field '%s' has invalid type. Must be one of: %s", name, schema.JoinKinds(schema.Kinds))
	}

	f, err := baseField(format, name, kind, fm)
	if err != nil {
		return schema.Field{}, err
	}

	switch kind {
	case schema.KindArray:
		elem := kindValue(fm["arrayType"])
		if !elem.In(schema.ElementKinds) {
			return schema.Field{}, semanticErr(format, "Array field '%s' must have a valid arrayType", name)
		}
		f.Type = schema.ArrayOf(elem)
	case schema.KindObject:
		members, err := objectMembers(format, name, fm["objectFields"])
		if err != nil {
			return schema.Field{}, err
		}
		f.Type = schema.ObjectOf(members...)
	default:
		f.Type = schema.TypeOf(kind)
	}
	return f, nil
}

// objectMembers разбирает один уровень вложенности: только примитивные типы.
func objectMembers(format Format, parent string, raw any) ([]schema.Field, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, semanticErr(format, "Object field '%s' must have an objectFields array", parent)
	}
	members := make([]schema.Field, 0, len(items))
	for i, item := range items {
		om, ok := asMap(item)
		if !ok {
			return nil, semanticErr(format, "Object field at index %d in '%s' must be an object", i, parent)
		}
		name, ok := om["name"].(string)
		if !ok || name == "" {
			return nil, semanticErr(format, "Object field at index %d in '%s' must have a valid name", i, parent)
		}
		kind := kindValue(om["type"])
		if !kind.In(schema.MemberKinds) {
			return nil, semanticErr(format, "Object field '%s' has invalid type. Must be one of: %s", name, schema.JoinKinds(schema.MemberKinds))
		}
		m, err := baseField(format, name, kind, om)
		if err != nil {
			return nil, err
		}
		m.Type = schema.TypeOf(kind)
		members = append(members, m)
	}
	if dup, ok := schema.DuplicateName(members); ok {
		return nil, semanticErr(format, "Duplicate field name '%s' in '%s'", dup, parent)
	}
	if len(members) == 0 {
		return nil, nil
	}
	return members, nil
}

// baseField заполняет флаги и validation; required/unique: только при точном true.
func baseField(format Format, name string, kind schema.Kind, fm map[string]any) (schema.Field, error) {
	required, _ := fm["required"].(bool)
	unique, _ := fm["unique"].(bool)
	v, err := validation(format, name, fm["validation"])
	if err != nil {
		return schema.Field{}, err
	}
	return schema.Field{Name: name, Required: required, Unique: unique, Validation: v}, nil
}

func validation(format Format, field string, raw any) (schema.Validation, error) {
	var v schema.Validation
	if raw == nil {
		return v, nil
	}
	vm, ok := asMap(raw)
	if !ok {
		return v, semanticErr(format, "Field '%s' validation must be an object", field)
	}
	for _, key := range []string{"min", "max"} {
		val, present := vm[key]
		if !present || val == nil {
			continue
		}
		n, ok := number(val)
		if !ok {
			return v, semanticErr(format, "Field '%s' validation.%s must be a number", field, key)
		}
		if key == "min" {
			v.Min = &n
		} else {
			v.Max = &n
		}
	}
	if re, present := vm["regex"]; present && re != nil {
		s, ok := re.(string)
		if !ok {
			return v, semanticErr(format, "Field '%s' validation.regex must be a string", field)
		}
		v.Regex = s
	}
	if def, present := vm["default"]; present && def != nil {
		s := stringify(def)
		v.Default = &s
	}
	return v, nil
}

func kindValue(v any) schema.Kind {
	s, _ := v.(string)
	return schema.Kind(s)
}

// asMap: JSON даёт map[string]any, YAML иногда map[any]any.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// stringify приводит default к строке; значение не перетипизируется.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

package parser

import (
	"regexp"
	"strconv"
	"strings"

	"schemaforge/internal/schema"
)

var (
	declRe = regexp.MustCompile(`\b(?:interface|type)\s+([A-Za-z_$][\w$]*)`)
	docRe  = regexp.MustCompile(`^/\*\*(.*)\*/$`)
)

// ParseTypeDeclaration: построчный best-effort разбор `interface X { ... }` / `type X = { ... }`.
// Вложенные объекты распознаются как object без полей, их строки пропускаются.
func ParseTypeDeclaration(text string) (schema.Schema, error) {
	src := strings.TrimSpace(text)
	if src == "" {
		return schema.Schema{}, syntaxErr(FormatTypeScript, nil, "Empty input")
	}
	m := declRe.FindStringSubmatchIndex(src)
	if m == nil {
		return schema.Schema{}, syntaxErr(FormatTypeScript, nil, "No interface found in TypeScript code")
	}
	name := src[m[2]:m[3]]
	body, ok := braceBody(src, m[1])
	if !ok {
		return schema.Schema{}, syntaxErr(FormatTypeScript, nil, "Invalid interface format: body of '%s' not found", name)
	}

	fields := make([]schema.Field, 0)
	var pending *schema.Field // аннотации из /** ... */ для следующего поля
	skip := 0                 // глубина пропускаемого вложенного блока

	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if skip > 0 {
			skip += strings.Count(line, "{") - strings.Count(line, "}")
			continue
		}
		if line == "" {
			continue
		}
		if dm := docRe.FindStringSubmatch(line); dm != nil {
			pending = annotations(dm[1])
			continue
		}
		if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "/*") {
			continue
		}
		if i := strings.Index(line, "//"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		line = strings.TrimRight(line, ";,")

		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		namePart := strings.TrimSpace(line[:colon])
		typePart := strings.TrimSpace(line[colon+1:])
		if namePart == "" || typePart == "" {
			continue
		}

		optional := strings.Contains(namePart, "?")
		fieldName := strings.TrimSpace(strings.Replace(namePart, "?", "", 1))
		fieldName = unquote(strings.TrimSpace(strings.TrimPrefix(fieldName, "readonly ")))
		if fieldName == "" {
			continue
		}

		if open := strings.Count(typePart, "{") - strings.Count(typePart, "}"); open > 0 {
			skip = open
		}

		f := schema.Field{Name: fieldName, Type: tsFieldType(typePart), Required: !optional}
		if pending != nil {
			f.Unique = pending.Unique
			f.Validation = pending.Validation
			pending = nil
		}
		fields = append(fields, f)
	}

	if dup, ok := schema.DuplicateName(fields); ok {
		return schema.Schema{}, semanticErr(FormatTypeScript, "Duplicate field name '%s'", dup)
	}
	return schema.Schema{Name: name, Fields: fields}, nil
}

func tsFieldType(tok string) schema.Type {
	tok = strings.TrimSpace(tok)
	if strings.HasSuffix(tok, "[]") {
		return schema.ArrayOf(mapTSType(strings.TrimSpace(strings.TrimSuffix(tok, "[]"))))
	}
	return schema.TypeOf(mapTSType(tok))
}

// mapTSType: неизвестный тип молча становится string.
func mapTSType(tok string) schema.Kind {
	t := strings.ToLower(strings.TrimSpace(tok))
	switch {
	case t == "string":
		return schema.KindString
	case t == "number":
		return schema.KindNumber
	case t == "boolean":
		return schema.KindBoolean
	case t == "date":
		return schema.KindDate
	case strings.Contains(t, "{") || strings.Contains(t, "record"):
		return schema.KindObject
	}
	return schema.KindString
}

// annotations читает "@unique @min 1 @max 5 @pattern ^a$ @default x".
func annotations(doc string) *schema.Field {
	var f schema.Field
	found := false
	for _, part := range strings.Split(" "+strings.TrimSpace(doc), " @")[1:] {
		key, val, _ := strings.Cut(strings.TrimSpace(part), " ")
		val = strings.TrimSpace(val)
		switch key {
		case "unique":
			f.Unique, found = true, true
		case "min", "max":
			n, err := strconv.ParseFloat(val, 64)
			if err != nil {
				continue
			}
			if key == "min" {
				f.Validation.Min = &n
			} else {
				f.Validation.Max = &n
			}
			found = true
		case "pattern":
			f.Validation.Regex, found = val, true
		case "default":
			f.Validation.Default, found = &val, true
		}
	}
	if !found {
		return nil
	}
	return &f
}

package parser

import (
	"regexp"
	"strconv"
	"strings"

	"schemaforge/internal/schema"
)

var (
	newSchemaRe = regexp.MustCompile(`(\w+)Schema\s*=\s*new\s+(?:mongoose\.)?Schema\b`)
	entryRe     = regexp.MustCompile(`(?s)^['"]?([A-Za-z_$][\w$]*)['"]?\s*:\s*(.+)$`)
	requiredRe  = regexp.MustCompile(`\brequired\s*:\s*true\b`)
	uniqueRe    = regexp.MustCompile(`\bunique\s*:\s*true\b`)
	minRe       = regexp.MustCompile(`\bmin(?:length)?\s*:\s*(-?\d+(?:\.\d+)?)`)
	maxRe       = regexp.MustCompile(`\bmax(?:length)?\s*:\s*(-?\d+(?:\.\d+)?)`)
	defaultRe   = regexp.MustCompile(`\bdefault\s*:\s*([^,}]+)`)
	matchRe     = regexp.MustCompile(`\bmatch\s*:\s*/((?:\\.|[^/])+)/`)
)

// ParseDocumentModel: best-effort разбор `XSchema = new Schema({...})`.
// Вложенные объекты восстанавливаются на один уровень.
func ParseDocumentModel(text string) (schema.Schema, error) {
	if strings.TrimSpace(text) == "" {
		return schema.Schema{}, syntaxErr(FormatMongoose, nil, "Empty input")
	}
	m := newSchemaRe.FindStringSubmatchIndex(text)
	if m == nil {
		return schema.Schema{}, syntaxErr(FormatMongoose, nil, "No Mongoose schema found")
	}
	name := text[m[2]:m[3]]
	body, ok := braceBody(text, m[1])
	if !ok {
		return schema.Schema{}, syntaxErr(FormatMongoose, nil, "Invalid schema format: definition body of '%s' not found", name)
	}

	fields := docEntries(body, 0)
	if dup, ok := schema.DuplicateName(fields); ok {
		return schema.Schema{}, semanticErr(FormatMongoose, "Duplicate field name '%s'", dup)
	}
	return schema.Schema{Name: name, Fields: fields}, nil
}

func docEntries(body string, depth int) []schema.Field {
	fields := make([]schema.Field, 0)
	for _, entry := range splitTopLevel(stripLineComments(body), ',') {
		em := entryRe.FindStringSubmatch(entry)
		if em == nil {
			continue
		}
		fields = append(fields, docField(em[1], strings.TrimSpace(em[2]), depth))
	}
	return fields
}

func docField(name, clause string, depth int) schema.Field {
	f := schema.Field{Name: name, Type: schema.String()}

	if strings.HasPrefix(clause, "{") {
		inner := strings.TrimSuffix(strings.TrimPrefix(clause, "{"), "}")
		typeTok, isOptions := optionType(inner)
		if !isOptions {
			// вложенный объект вида { street: {...}, zip: {...} }
			if depth > 0 {
				f.Type = schema.Object{}
				return f
			}
			f.Type = schema.ObjectOf(docEntries(inner, depth+1)...)
			return f
		}
		f.Type = nativeType(typeTok)
	} else {
		f.Type = nativeType(clause)
	}

	f.Required = requiredRe.MatchString(clause)
	f.Unique = uniqueRe.MatchString(clause)
	if mm := minRe.FindStringSubmatch(clause); mm != nil {
		if n, err := strconv.ParseFloat(mm[1], 64); err == nil {
			f.Validation.Min = &n
		}
	}
	if mm := maxRe.FindStringSubmatch(clause); mm != nil {
		if n, err := strconv.ParseFloat(mm[1], 64); err == nil {
			f.Validation.Max = &n
		}
	}
	if mm := matchRe.FindStringSubmatch(clause); mm != nil {
		f.Validation.Regex = mm[1]
	}
	if mm := defaultRe.FindStringSubmatch(clause); mm != nil {
		def := strings.TrimSpace(mm[1])
		f.Validation.Default = &def
	}
	return f
}

// optionType ищет ключ type на верхнем уровне клаузы опций.
func optionType(inner string) (string, bool) {
	for _, entry := range splitTopLevel(inner, ',') {
		em := entryRe.FindStringSubmatch(entry)
		if em != nil && em[1] == "type" {
			return strings.TrimSpace(em[2]), true
		}
	}
	return "", false
}

// nativeType: [..] даёт массив, Mixed даёт object без полей, иначе по ключевому слову; по умолчанию string.
func nativeType(tok string) schema.Type {
	tok = strings.TrimSpace(tok)
	if strings.HasPrefix(tok, "[") {
		return schema.ArrayOf(nativeKind(tok))
	}
	return schema.TypeOf(nativeKind(tok))
}

func nativeKind(tok string) schema.Kind {
	switch {
	case strings.Contains(tok, "String"):
		return schema.KindString
	case strings.Contains(tok, "Number"):
		return schema.KindNumber
	case strings.Contains(tok, "Boolean"):
		return schema.KindBoolean
	case strings.Contains(tok, "Date"):
		return schema.KindDate
	case strings.Contains(tok, "Mixed"), strings.Contains(tok, "Object"), strings.HasPrefix(tok, "{"):
		return schema.KindObject
	}
	return schema.KindString
}

func stripLineComments(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "//") {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

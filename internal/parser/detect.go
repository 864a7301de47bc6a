package parser

import (
	"fmt"
	"regexp"
	"strings"

	"schemaforge/internal/schema"
)

// Format: вид исходного текста.
type Format string

const (
	FormatAuto       Format = "auto"
	FormatStructured Format = "structured" // JSON или YAML
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatTypeScript Format = "typescript"
	FormatMongoose   Format = "mongoose"
)

var tsDeclRe = regexp.MustCompile(`\b(?:interface|type)\s+[A-Za-z_$]`)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "structured", "schema":
		return FormatStructured, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "typescript", "ts", "interface":
		return FormatTypeScript, nil
	case "mongoose", "document", "model":
		return FormatMongoose, nil
	default:
		return "", fmt.Errorf("unknown input format %q (allowed: auto|json|yaml|typescript|mongoose)", s)
	}
}

// Detect угадывает формат: JSON по первой скобке, затем mongoose, затем TS, иначе YAML.
func Detect(text string) Format {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
		return FormatJSON
	case newSchemaRe.MatchString(trimmed):
		return FormatMongoose
	case tsDeclRe.MatchString(trimmed):
		return FormatTypeScript
	default:
		return FormatYAML
	}
}

// Parse разбирает текст в заданном формате; FormatAuto: через Detect.
// Возвращает фактически использованный формат.
func Parse(text string, format Format) (schema.Schema, Format, error) {
	if format == FormatAuto || format == "" {
		format = Detect(text)
	}
	var (
		s   schema.Schema
		err error
	)
	switch format {
	case FormatStructured:
		s, err = ParseStructured(text)
	case FormatJSON:
		s, err = ParseJSON(text)
	case FormatYAML:
		s, err = ParseYAML(text)
	case FormatTypeScript:
		s, err = ParseTypeDeclaration(text)
	case FormatMongoose:
		s, err = ParseDocumentModel(text)
	default:
		return schema.Schema{}, format, syntaxErr(format, nil, "Unsupported input format %q", format)
	}
	return s, format, err
}

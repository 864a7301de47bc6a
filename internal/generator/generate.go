package generator

import (
	"fmt"
	"strings"

	"schemaforge/internal/schema"
)

// Family: семейство модели хранения.
type Family string

const (
	FamilyDocument   Family = "document"
	FamilyRelational Family = "relational"
)

// ParseFamily принимает каноническое имя и привычные синонимы (nosql, sql, ...).
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "document", "nosql", "mongo", "mongoose":
		return FamilyDocument, nil
	case "relational", "sql", "postgres", "postgresql":
		return FamilyRelational, nil
	default:
		return "", fmt.Errorf("unknown persistence family %q (allowed: document|relational)", s)
	}
}

type Options struct {
	Family        Family
	SmartDefaults bool
	Pluralize     bool // имя таблицы через инфлектор вместо суффикса "s"
}

// Generate раскладывает схему на три артефакта. Не выдаёт ошибок: любое семейство,
// кроме relational, даёт документную модель.
func Generate(s schema.Schema, opts Options) schema.GeneratedCode {
	code := schema.GeneratedCode{
		Validator: Validator(s, opts.SmartDefaults),
		Interface: Interface(s),
	}
	if opts.Family == FamilyRelational {
		code.Model = Relational(s, opts.Pluralize)
	} else {
		code.Model = Document(s)
	}
	return code
}

// GenerateCode: фасад с минимальным набором параметров.
func GenerateCode(s schema.Schema, family Family, smartDefaults bool) schema.GeneratedCode {
	return Generate(s, Options{Family: family, SmartDefaults: smartDefaults})
}

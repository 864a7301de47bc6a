package schema

import (
	"fmt"
	"strings"
)

// Коды замечаний линтера
const (
	IssueEmptyName           = "empty_name"
	IssueDuplicateField      = "duplicate_field"
	IssueInvalidArrayElement = "invalid_array_element"
	IssueUnknownType         = "unknown_type"
	IssueRegexOnNonString    = "regex_on_non_string"
	IssueBoundsInverted      = "bounds_inverted"
	IssueUniqueOnComposite   = "unique_on_composite"
)

type Issue struct {
	Path    string `json:"path"` // Schema.field.member
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Lint проверяет базовые противоречия схемы. Генерацию не блокирует:
// генераторы выдают результат для любой схемы.
func Lint(s Schema) []Issue {
	var issues []Issue
	if strings.TrimSpace(s.Name) == "" {
		issues = append(issues, Issue{Path: "", Code: IssueEmptyName, Message: "schema has empty name"})
	}
	issues = lintFields(issues, s.Name, s.Fields)
	return issues
}

func lintFields(issues []Issue, prefix string, fields []Field) []Issue {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		path := prefix + "." + f.Name
		if strings.TrimSpace(f.Name) == "" {
			path = fmt.Sprintf("%s[%d]", prefix, i)
			issues = append(issues, Issue{Path: path, Code: IssueEmptyName, Message: fmt.Sprintf("field at index %d has empty name", i)})
		} else if _, dup := seen[f.Name]; dup {
			issues = append(issues, Issue{Path: path, Code: IssueDuplicateField, Message: fmt.Sprintf("field %q is declared more than once", f.Name)})
		}
		seen[f.Name] = struct{}{}

		switch t := f.Type.(type) {
		case Primitive:
			if !t.Of.IsPrimitive() {
				issues = append(issues, Issue{Path: path, Code: IssueUnknownType, Message: fmt.Sprintf("unknown type %q, generators fall back to any", t.Of)})
			}
		case Array:
			if !t.Elem.In(ElementKinds) {
				issues = append(issues, Issue{Path: path, Code: IssueInvalidArrayElement, Message: fmt.Sprintf("array element type %q is not one of %s", t.Elem, JoinKinds(ElementKinds))})
			}
		case Object:
			issues = lintFields(issues, path, t.Fields)
		case nil:
			issues = append(issues, Issue{Path: path, Code: IssueUnknownType, Message: "field has no type, generators fall back to any"})
		}

		if f.Validation.Regex != "" && f.Kind() != KindString {
			issues = append(issues, Issue{Path: path, Code: IssueRegexOnNonString, Message: "regex is applied to string fields only and is ignored here"})
		}
		if v := f.Validation; v.Min != nil && v.Max != nil && *v.Min > *v.Max {
			issues = append(issues, Issue{Path: path, Code: IssueBoundsInverted, Message: fmt.Sprintf("min %v is greater than max %v", *v.Min, *v.Max)})
		}
		if f.Unique && (f.Kind() == KindArray || f.Kind() == KindObject) {
			issues = append(issues, Issue{Path: path, Code: IssueUniqueOnComposite, Message: "unique on array/object column compares whole JSON values"})
		}
	}
	return issues
}

// DuplicateName возвращает первое повторяющееся имя среди полей (без рекурсии).
func DuplicateName(fields []Field) (string, bool) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Name]; ok {
			return f.Name, true
		}
		seen[f.Name] = struct{}{}
	}
	return "", false
}

// JoinKinds: перечисление типов через запятую для сообщений об ошибках.
func JoinKinds(ks []Kind) string {
	parts := make([]string, len(ks))
	for i, k := range ks {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

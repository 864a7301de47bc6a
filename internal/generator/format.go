package generator

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"schemaforge/internal/schema"
)

func indent(depth int) string { return strings.Repeat("  ", depth) }

// num печатает число без хвостовых нулей: 5, 2.5, -1.
func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// jsString: строковый литерал в двойных кавычках с JSON-экранированием.
func jsString(s string) string {
	b, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		return `""`
	}
	return string(b)
}

// regexBody экранирует неэкранированные '/' для литерала /.../.
func regexBody(re string) string {
	var b strings.Builder
	escaped := false
	for _, r := range re {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '/':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// jsSingle: строковый литерал в одинарных кавычках (стиль mongoose).
func jsSingle(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}

// block собирает многострочный литерал: open + строки + close на отступе depth.
// Пустой набор строк схлопывается в open+close.
func block(open, close string, lines []string, sep string, depth int) string {
	if len(lines) == 0 {
		return open + close
	}
	return open + "\n" + strings.Join(lines, sep+"\n") + "\n" + indent(depth) + close
}

// Annotations возвращает аннотации поля в фиксированном порядке:
// @unique, @min, @max, @pattern, @default.
func Annotations(f schema.Field) []string {
	var out []string
	if f.Unique {
		out = append(out, "@unique")
	}
	v := f.Validation
	if v.Min != nil {
		out = append(out, "@min "+num(*v.Min))
	}
	if v.Max != nil {
		out = append(out, "@max "+num(*v.Max))
	}
	if v.Regex != "" {
		out = append(out, "@pattern "+v.Regex)
	}
	if v.Default != nil {
		out = append(out, "@default "+*v.Default)
	}
	return out
}

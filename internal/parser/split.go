package parser

import "strings"

// splitTopLevel делит текст по sep, не рвёт внутри кавычек, /regex/ и скобок {} [] ().
func splitTopLevel(s string, sep rune) []string {
	var out []string
	var buf []rune
	inSingle, inDouble, inRegex := false, false, false
	depth := 0
	prev := rune(0)

	flush := func() {
		if t := strings.TrimSpace(string(buf)); t != "" {
			out = append(out, t)
		}
		buf = buf[:0]
	}

	for _, r := range s {
		escaped := prev == '\\'
		switch {
		case r == '\'' && !inDouble && !inRegex && !escaped:
			inSingle = !inSingle
		case r == '"' && !inSingle && !inRegex && !escaped:
			inDouble = !inDouble
		case r == '/' && !inSingle && !inDouble && !escaped:
			// регэксп-литерал стоит после ':' (match: /.../), закрывается следующим '/'
			if inRegex {
				inRegex = false
			} else if p := strings.TrimSpace(string(buf)); strings.HasSuffix(p, ":") {
				inRegex = true
			}
		case inSingle || inDouble || inRegex:
		case r == '{' || r == '[' || r == '(':
			depth++
		case r == '}' || r == ']' || r == ')':
			if depth > 0 {
				depth--
			}
		case r == sep && depth == 0:
			flush()
			prev = r
			continue
		}
		buf = append(buf, r)
		if escaped {
			prev = 0
		} else {
			prev = r
		}
	}
	flush()
	return out
}

// braceBody возвращает содержимое первой сбалансированной пары {} начиная с from.
func braceBody(s string, from int) (string, bool) {
	if from < 0 || from > len(s) {
		return "", false
	}
	open := strings.IndexByte(s[from:], '{')
	if open < 0 {
		return "", false
	}
	start := from + open + 1
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start:i], true
			}
		}
	}
	return "", false
}

// unquote снимает одну пару совпадающих кавычек.
func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '`' && v[len(v)-1] == '`') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

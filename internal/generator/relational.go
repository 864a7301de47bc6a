package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jinzhu/inflection"

	"schemaforge/internal/schema"
)

const (
	defaultVarcharWidth = 255
	maxVarcharWidth     = 10485760
)

var reserved = map[string]struct{}{
	"user": {}, "select": {}, "table": {}, "insert": {}, "update": {}, "delete": {},
	"where": {}, "join": {}, "group": {}, "order": {}, "limit": {}, "offset": {},
	"primary": {}, "foreign": {}, "key": {}, "constraint": {}, "default": {},
	"from": {}, "into": {}, "values": {}, "unique": {}, "index": {}, "create": {},
	"drop": {}, "alter": {}, "schema": {}, "grant": {}, "revoke": {},
}

func isReserved(s string) bool { _, ok := reserved[strings.ToLower(s)]; return ok }

// ident оставляет имя как есть, ключевые слова берёт в кавычки
func ident(s string) string {
	if isReserved(s) {
		return `"` + s + `"`
	}
	return s
}

// TableName: lower(name) + "s"; с pluralize через инфлектор (person -> people).
func TableName(name string, pluralize bool) string {
	t := strings.ToLower(name)
	if pluralize {
		return inflection.Plural(t)
	}
	return t + "s"
}

// Relational строит CREATE TABLE, уникальные индексы и триггер updated_at (PostgreSQL).
func Relational(s schema.Schema, pluralize bool) string {
	tbl := TableName(s.Name, pluralize)

	cols := make([]string, 0, len(s.Fields)+3)
	cols = append(cols, "id SERIAL PRIMARY KEY")
	for _, f := range s.Fields {
		cols = append(cols, ident(f.Name)+" "+columnDefinition(f))
	}
	cols = append(cols,
		"created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP",
		"updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP",
	)

	var b strings.Builder
	fmt.Fprintf(&b, "-- Create %s table\n", s.Name)
	fmt.Fprintf(&b, "CREATE TABLE %s (\n  %s\n);\n\n", ident(tbl), strings.Join(cols, ",\n  "))

	var idx []string
	for _, f := range s.Fields {
		if f.Unique {
			idx = append(idx, fmt.Sprintf("CREATE UNIQUE INDEX idx_%s_%s ON %s(%s);",
				tbl, strings.ToLower(f.Name), ident(tbl), ident(f.Name)))
		}
	}
	if len(idx) > 0 {
		b.WriteString("-- Create indexes for unique fields\n")
		b.WriteString(strings.Join(idx, "\n"))
		b.WriteString("\n\n")
	}

	b.WriteString(updatedAtTrigger(tbl))
	return b.String()
}

func updatedAtTrigger(tbl string) string {
	return `-- Create updated_at trigger
CREATE OR REPLACE FUNCTION update_updated_at_column()
RETURNS TRIGGER AS $$
BEGIN
  NEW.updated_at = CURRENT_TIMESTAMP;
  RETURN NEW;
END;
$$ language 'plpgsql';

CREATE TRIGGER update_` + tbl + `_updated_at
  BEFORE UPDATE ON ` + ident(tbl) + `
  FOR EACH ROW
  EXECUTE FUNCTION update_updated_at_column();`
}

// varcharWidth: целый max в пределах лимита Postgres, дробный или меньше 1 даёт ширину по умолчанию.
func varcharWidth(m *float64) int {
	if m == nil || *m < 1 || *m != math.Trunc(*m) {
		return defaultVarcharWidth
	}
	if *m > maxVarcharWidth {
		return maxVarcharWidth
	}
	return int(*m)
}

func columnType(f schema.Field) string {
	switch t := f.Type.(type) {
	case schema.Primitive:
		switch t.Of {
		case schema.KindString:
			return "VARCHAR(" + strconv.Itoa(varcharWidth(f.Validation.Max)) + ")"
		case schema.KindNumber:
			return "DECIMAL(10,2)"
		case schema.KindBoolean:
			return "BOOLEAN"
		case schema.KindDate:
			return "TIMESTAMP"
		}
	case schema.Array, schema.Object:
		return "JSONB"
	}
	return "TEXT"
}

// columnDefinition: тип, NOT NULL, UNIQUE, DEFAULT, затем CHECK только для чисел.
func columnDefinition(f schema.Field) string {
	parts := []string{columnType(f)}
	if f.Required {
		parts = append(parts, "NOT NULL")
	}
	if f.Unique {
		parts = append(parts, "UNIQUE")
	}
	v := f.Validation
	if v.Default != nil {
		if f.Kind() == schema.KindString {
			parts = append(parts, "DEFAULT '"+strings.ReplaceAll(*v.Default, "'", "''")+"'")
		} else {
			parts = append(parts, "DEFAULT "+*v.Default)
		}
	}
	if f.Kind() == schema.KindNumber {
		if v.Min != nil {
			parts = append(parts, fmt.Sprintf("CHECK (%s >= %s)", ident(f.Name), num(*v.Min)))
		}
		if v.Max != nil {
			parts = append(parts, fmt.Sprintf("CHECK (%s <= %s)", ident(f.Name), num(*v.Max)))
		}
	}
	return strings.Join(parts, " ")
}

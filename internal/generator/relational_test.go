package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"schemaforge/internal/schema"
)

func TestRelational_UniqueRequiredColumn(t *testing.T) {
	got := Relational(userSchema(), false)

	assert.True(t, strings.HasPrefix(got, "-- Create User table\nCREATE TABLE users (\n  id SERIAL PRIMARY KEY,\n"))
	assert.Contains(t, got, "  email VARCHAR(255) NOT NULL UNIQUE,\n")
	assert.Contains(t, got, "  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,\n  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP\n);")
	assert.Contains(t, got, "-- Create indexes for unique fields\nCREATE UNIQUE INDEX idx_users_email ON users(email);")
	assert.Contains(t, got, "CREATE TRIGGER update_users_updated_at\n  BEFORE UPDATE ON users\n")
}

func TestRelational_NoUniqueFieldsOmitsIndexes(t *testing.T) {
	s := schema.Schema{Name: "Note", Fields: []schema.Field{{Name: "body", Type: schema.String()}}}
	got := Relational(s, false)
	assert.NotContains(t, got, "INDEX")
	assert.Contains(t, got, "  body VARCHAR(255),\n")
}

func TestRelational_Columns(t *testing.T) {
	tests := []struct {
		name  string
		field schema.Field
		want  string
	}{
		{
			name:  "varchar width from max",
			field: schema.Field{Name: "code", Type: schema.String(), Validation: schema.Validation{Max: schema.Float(12)}},
			want:  "VARCHAR(12)",
		},
		{
			name:  "varchar width clamped to postgres limit",
			field: schema.Field{Name: "body", Type: schema.String(), Validation: schema.Validation{Max: schema.Float(1e20)}},
			want:  "VARCHAR(10485760)",
		},
		{
			name:  "fractional max falls back to default width",
			field: schema.Field{Name: "code", Type: schema.String(), Validation: schema.Validation{Max: schema.Float(2.5)}},
			want:  "VARCHAR(255)",
		},
		{
			name:  "string default quoted and escaped",
			field: schema.Field{Name: "nick", Type: schema.String(), Required: true, Validation: schema.Validation{Default: schema.Str("o'neil")}},
			want:  "VARCHAR(255) NOT NULL DEFAULT 'o''neil'",
		},
		{
			name:  "string bounds never become checks",
			field: schema.Field{Name: "s", Type: schema.String(), Validation: schema.Validation{Min: schema.Float(2)}},
			want:  "VARCHAR(255)",
		},
		{
			name:  "number with checks",
			field: schema.Field{Name: "price", Type: schema.Number(), Required: true, Validation: schema.Validation{Default: schema.Str("0"), Min: schema.Float(0), Max: schema.Float(999.99)}},
			want:  "DECIMAL(10,2) NOT NULL DEFAULT 0 CHECK (price >= 0) CHECK (price <= 999.99)",
		},
		{
			name:  "number only max",
			field: schema.Field{Name: "n", Type: schema.Number(), Validation: schema.Validation{Max: schema.Float(5)}},
			want:  "DECIMAL(10,2) CHECK (n <= 5)",
		},
		{
			name:  "boolean",
			field: schema.Field{Name: "ok", Type: schema.Boolean()},
			want:  "BOOLEAN",
		},
		{
			name:  "date",
			field: schema.Field{Name: "at", Type: schema.Date()},
			want:  "TIMESTAMP",
		},
		{
			name:  "array is jsonb",
			field: schema.Field{Name: "tags", Type: schema.ArrayOf(schema.KindString)},
			want:  "JSONB",
		},
		{
			name:  "object is jsonb",
			field: schema.Field{Name: "meta", Type: schema.ObjectOf(schema.Field{Name: "a", Type: schema.String()})},
			want:  "JSONB",
		},
		{
			name:  "unknown is text",
			field: schema.Field{Name: "x", Type: schema.Primitive{Of: "weird"}},
			want:  "TEXT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, columnDefinition(tt.field))
		})
	}
}

func TestRelational_ReservedIdentifiers(t *testing.T) {
	s := schema.Schema{Name: "Line", Fields: []schema.Field{
		{Name: "order", Type: schema.Number(), Required: true, Unique: true, Validation: schema.Validation{Min: schema.Float(1)}},
	}}
	got := Relational(s, false)

	assert.Contains(t, got, `  "order" DECIMAL(10,2) NOT NULL UNIQUE CHECK ("order" >= 1),`)
	assert.Contains(t, got, `CREATE UNIQUE INDEX idx_lines_order ON lines("order");`)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "users", TableName("User", false))
	assert.Equal(t, "categorys", TableName("Category", false))
	assert.Equal(t, "categories", TableName("Category", true))
	assert.Equal(t, "people", TableName("Person", true))
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/generator"
	"schemaforge/internal/schema"
)

func TestParseTypeDeclaration_EmptyBody(t *testing.T) {
	s, err := ParseTypeDeclaration("export interface Empty {}")
	require.NoError(t, err)
	assert.Equal(t, "Empty", s.Name)
	assert.NotNil(t, s.Fields)
	assert.Empty(t, s.Fields)
}

func TestParseTypeDeclaration_Members(t *testing.T) {
	src := `
// пользователь
export interface User {
  id: number;
  email: string;
  nickname?: string
  readonly createdAt: Date;
  tags?: string[];
  scores: number[],
  'full-name': string;
  profile: Record<string, any>;
  lines: Record<string, any>[];
  status: 'active' | 'blocked'; // union -> string
  /* блочный комментарий */
  noColonHere
}`
	s, err := ParseTypeDeclaration(src)
	require.NoError(t, err)

	want := schema.Schema{Name: "User", Fields: []schema.Field{
		{Name: "id", Type: schema.Number(), Required: true},
		{Name: "email", Type: schema.String(), Required: true},
		{Name: "nickname", Type: schema.String()},
		{Name: "createdAt", Type: schema.Date(), Required: true},
		{Name: "tags", Type: schema.ArrayOf(schema.KindString)},
		{Name: "scores", Type: schema.ArrayOf(schema.KindNumber), Required: true},
		{Name: "full-name", Type: schema.String(), Required: true},
		{Name: "profile", Type: schema.ObjectOf(), Required: true},
		{Name: "lines", Type: schema.ArrayOf(schema.KindObject), Required: true},
		{Name: "status", Type: schema.String(), Required: true},
	}}
	assert.Equal(t, want, s)
}

func TestParseTypeDeclaration_TypeAlias(t *testing.T) {
	s, err := ParseTypeDeclaration("type Point = {\n  x: number;\n  y: number;\n};")
	require.NoError(t, err)
	assert.Equal(t, "Point", s.Name)
	assert.Len(t, s.Fields, 2)
}

func TestParseTypeDeclaration_NestedObjectHasNoMembers(t *testing.T) {
	// вложенные поля не разбираются: object без полей, строки блока пропускаются
	s, err := ParseTypeDeclaration(generator.Interface(schema.Schema{Name: "Profile", Fields: []schema.Field{
		{Name: "address", Required: true, Type: schema.ObjectOf(
			schema.Field{Name: "city", Type: schema.String(), Required: true},
			schema.Field{Name: "geo", Type: schema.ObjectOf(schema.Field{Name: "lat", Type: schema.Number()})},
		)},
		{Name: "after", Type: schema.Boolean()},
	}}))
	require.NoError(t, err)

	assert.Equal(t, []schema.Field{
		{Name: "address", Type: schema.ObjectOf(), Required: true},
		{Name: "after", Type: schema.Boolean()},
	}, s.Fields)
}

func TestParseTypeDeclaration_RecoversAnnotations(t *testing.T) {
	in := schema.Schema{Name: "Account", Fields: []schema.Field{
		{Name: "email", Type: schema.String(), Required: true, Unique: true, Validation: schema.Validation{Min: schema.Float(5), Max: schema.Float(120), Regex: `^\S+@\S+$`}},
		{Name: "age", Type: schema.Number(), Validation: schema.Validation{Min: schema.Float(18), Default: schema.Str("21")}},
		{Name: "active", Type: schema.Boolean(), Required: true},
		{Name: "tags", Type: schema.ArrayOf(schema.KindDate)},
	}}

	got, err := ParseTypeDeclaration(generator.Interface(in))
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestParseTypeDeclaration_Errors(t *testing.T) {
	_, err := ParseTypeDeclaration("const x = 1;")
	require.True(t, IsSyntax(err))
	assert.Equal(t, "No interface found in TypeScript code", err.Error())

	_, err = ParseTypeDeclaration("interface Broken")
	require.True(t, IsSyntax(err))
	assert.Equal(t, "Invalid interface format: body of 'Broken' not found", err.Error())

	_, err = ParseTypeDeclaration("interface Open { a: string;")
	require.True(t, IsSyntax(err))

	_, err = ParseTypeDeclaration("interface D {\n a: string;\n a?: number;\n}")
	require.True(t, IsSemantic(err))
	assert.Equal(t, "Duplicate field name 'a'", err.Error())
}

func TestMapTSType(t *testing.T) {
	tests := map[string]schema.Kind{
		"string":              schema.KindString,
		"Number":              schema.KindNumber,
		"boolean":             schema.KindBoolean,
		"Date":                schema.KindDate,
		"Record<string, any>": schema.KindObject,
		"{ a: string }":       schema.KindObject,
		"bigint":              schema.KindString,
		"Map<string, number>": schema.KindString,
	}
	for in, want := range tests {
		assert.Equal(t, want, mapTSType(in), in)
	}
}

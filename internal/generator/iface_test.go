package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schemaforge/internal/schema"
)

func TestInterface_ArrayOptional(t *testing.T) {
	s := schema.Schema{Name: "Product", Fields: []schema.Field{
		{Name: "tags", Type: schema.ArrayOf(schema.KindString)},
	}}

	assert.Equal(t, "export interface Product {\n  tags?: string[];\n}", Interface(s))
	assert.Contains(t, Validator(s, true), "tags: z.array(z.string()).optional()")
}

func TestInterface_TypeMapping(t *testing.T) {
	s := schema.Schema{Name: "T", Fields: []schema.Field{
		{Name: "s", Type: schema.String(), Required: true},
		{Name: "n", Type: schema.Number(), Required: true},
		{Name: "b", Type: schema.Boolean(), Required: true},
		{Name: "d", Type: schema.Date(), Required: true},
		{Name: "objs", Type: schema.ArrayOf(schema.KindObject), Required: true},
		{Name: "meta", Type: schema.ObjectOf(), Required: true},
		{Name: "x", Type: schema.Primitive{Of: "weird"}, Required: true},
	}}

	want := "export interface T {\n" +
		"  s: string;\n" +
		"  n: number;\n" +
		"  b: boolean;\n" +
		"  d: Date;\n" +
		"  objs: Record<string, any>[];\n" +
		"  meta: Record<string, any>;\n" +
		"  x: any;\n" +
		"}"
	assert.Equal(t, want, Interface(s))
}

func TestInterface_Annotations(t *testing.T) {
	s := schema.Schema{Name: "User", Fields: []schema.Field{
		{Name: "email", Type: schema.String(), Required: true, Unique: true, Validation: schema.Validation{
			Min: schema.Float(5), Max: schema.Float(120), Regex: `^\S+@\S+$`, Default: schema.Str("a@b.c"),
		}},
		{Name: "age", Type: schema.Number(), Validation: schema.Validation{Max: schema.Float(150)}},
		{Name: "plain", Type: schema.Boolean(), Required: true},
	}}

	want := "export interface User {\n" +
		"  /** @unique @min 5 @max 120 @pattern ^\\S+@\\S+$ @default a@b.c */\n" +
		"  email: string;\n" +
		"  /** @max 150 */\n" +
		"  age?: number;\n" +
		"  plain: boolean;\n" +
		"}"
	assert.Equal(t, want, Interface(s))
}

func TestInterface_Nested(t *testing.T) {
	got := Interface(nestedSchema())

	want := "export interface Profile {\n" +
		"  address: {\n" +
		"    city: string;\n" +
		"    geo?: {\n" +
		"      lat?: number;\n" +
		"    };\n" +
		"  };\n" +
		"}"
	assert.Equal(t, want, got)
	assert.Equal(t, 3, braceDepth(got))
}

func TestInterface_Empty(t *testing.T) {
	assert.Equal(t, "export interface Empty {\n}", Interface(schema.Schema{Name: "Empty"}))
}

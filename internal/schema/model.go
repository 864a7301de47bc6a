package schema

// Kind это тег типа поля (string, number, boolean, date, array, object)
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Kinds: полный закрытый набор типов поля в каноническом порядке.
var Kinds = []Kind{KindString, KindNumber, KindBoolean, KindDate, KindArray, KindObject}

// ElementKinds: допустимые типы элементов массива (массивы массивов не поддерживаются).
var ElementKinds = []Kind{KindString, KindNumber, KindBoolean, KindDate, KindObject}

// MemberKinds: типы, допустимые для вложенных полей object при строгом разборе.
var MemberKinds = []Kind{KindString, KindNumber, KindBoolean, KindDate}

// IsPrimitive сообщает, что это скалярный тип.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindDate:
		return true
	}
	return false
}

// In проверяет принадлежность набору.
func (k Kind) In(set []Kind) bool {
	for _, s := range set {
		if s == k {
			return true
		}
	}
	return false
}

// Type это вариант типа поля, один из Primitive, Array или Object.
type Type interface {
	Kind() Kind
	isType()
}

// Primitive: скаляр. Of вне набора примитивов считается «неизвестным» типом,
// генераторы выводят для него any.
type Primitive struct {
	Of Kind
}

func (p Primitive) Kind() Kind { return p.Of }
func (Primitive) isType()      {}

// Array это плоский массив с типом элемента Elem.
type Array struct {
	Elem Kind
}

func (Array) Kind() Kind { return KindArray }
func (Array) isType()    {}

// Object: вложенная структура, пустой Fields означает «любой объект».
type Object struct {
	Fields []Field
}

func (Object) Kind() Kind { return KindObject }
func (Object) isType()    {}

func String() Type  { return Primitive{Of: KindString} }
func Number() Type  { return Primitive{Of: KindNumber} }
func Boolean() Type { return Primitive{Of: KindBoolean} }
func Date() Type    { return Primitive{Of: KindDate} }

func ArrayOf(elem Kind) Type { return Array{Elem: elem} }

func ObjectOf(fields ...Field) Type {
	if len(fields) == 0 {
		return Object{}
	}
	return Object{Fields: fields}
}

// TypeOf строит вариант по тегу; для array/object: без элемента и без полей.
func TypeOf(k Kind) Type {
	switch k {
	case KindArray:
		return Array{Elem: KindString}
	case KindObject:
		return Object{}
	default:
		return Primitive{Of: k}
	}
}

// Validation: ограничения поля. nil означает «не задано».
type Validation struct {
	Min     *float64
	Max     *float64
	Regex   string
	Default *string
}

// IsZero: ни одно ограничение не задано.
func (v Validation) IsZero() bool {
	return v.Min == nil && v.Max == nil && v.Regex == "" && v.Default == nil
}

// Field: именованное типизированное поле схемы.
type Field struct {
	Name       string
	Type       Type
	Required   bool
	Unique     bool
	Validation Validation
}

// Kind возвращает тег типа поля, "" для поля без типа.
func (f Field) Kind() Kind {
	if f.Type == nil {
		return ""
	}
	return f.Type.Kind()
}

// Schema: именованный набор полей; единица обмена между парсерами и генераторами.
type Schema struct {
	Name   string
	Fields []Field
}

// GeneratedCode: три текстовых артефакта генерации.
type GeneratedCode struct {
	Validator string `json:"validator" yaml:"validator"`
	Interface string `json:"interface" yaml:"interface"`
	Model     string `json:"model" yaml:"model"`
}

// Float и Str: удобные конструкторы указателей для Validation.
func Float(v float64) *float64 { return &v }
func Str(v string) *string      { return &v }

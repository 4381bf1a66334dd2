package variables

import (
	"fmt"
	"strconv"
)

// Value is either a literal of one of the four resolved types or an alias
// to another variable. Consumers are expected to use exhaustive type switch:
//
//	switch v := val.(type) {
//	case RGBA:
//	case Float:
//	case String:
//	case Boolean:
//	case Alias:
//	}
type Value interface {
	isValue()
}

// Literal is a typed scalar value.
type Literal interface {
	Value
	Type() ResolvedType
}

// RGBA is normalized color, every channel is in [0,1].
type RGBA struct {
	R, G, B, A float64
}

// Float is numeric literal.
type Float float64

// String is textual literal.
type String string

// Boolean is boolean literal.
type Boolean bool

// Alias references another variable, host re-evaluates it live.
type Alias struct {
	ID string
}

func (RGBA) isValue()    {}
func (Float) isValue()   {}
func (String) isValue()  {}
func (Boolean) isValue() {}
func (Alias) isValue()   {}

func (RGBA) Type() ResolvedType    { return TypeColor }
func (Float) Type() ResolvedType   { return TypeFloat }
func (String) Type() ResolvedType  { return TypeString }
func (Boolean) Type() ResolvedType { return TypeBoolean }

// Black is opaque black, default color literal.
var Black = RGBA{A: 1}

// Opaque returns true when color alpha is 1.
func (c RGBA) Opaque() bool {
	return c.A == 1
}

// Default returns type-appropriate default literal. For strings raw text is
// preserved.
func Default(t ResolvedType, raw string) Literal {
	switch t {
	case TypeColor:
		return Black
	case TypeFloat:
		return Float(0)
	case TypeBoolean:
		return Boolean(false)
	default:
		return String(raw)
	}
}

// FormatLiteral produces generic string representation of non-color literal.
func FormatLiteral(l Literal) string {
	switch v := l.(type) {
	case Float:
		return strconv.FormatFloat(float64(v), 'f', -1, 64)
	case String:
		return string(v)
	case Boolean:
		return strconv.FormatBool(bool(v))
	case RGBA:
		return fmt.Sprintf("{r:%g g:%g b:%g a:%g}", v.R, v.G, v.B, v.A)
	default:
		return fmt.Sprint(l)
	}
}

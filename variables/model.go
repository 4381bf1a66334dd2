// Package variables defines the host variable model: collections, modes,
// typed variables and their per-mode values, together with the capability
// interface through which the host store is read and mutated.
package variables

import "fmt"

// ResolvedType is the semantic type of a variable. It is fixed when variable
// is created.
type ResolvedType string

const (
	TypeColor   ResolvedType = "COLOR"
	TypeFloat   ResolvedType = "FLOAT"
	TypeString  ResolvedType = "STRING"
	TypeBoolean ResolvedType = "BOOLEAN"
)

// ParseResolvedType converts host type name to ResolvedType.
func ParseResolvedType(s string) (ResolvedType, error) {
	switch t := ResolvedType(s); t {
	case TypeColor, TypeFloat, TypeString, TypeBoolean:
		return t, nil
	}
	return "", fmt.Errorf("unknown variable type %q", s)
}

func (t ResolvedType) String() string {
	return string(t)
}

// Mode is a named value-set within a collection.
type Mode struct {
	ID   string `json:"modeId"`
	Name string `json:"name"`
}

// Collection groups variables sharing the same set of modes. The first mode
// is the default one.
type Collection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Modes []Mode `json:"modes"`
}

// ModeByName returns mode with requested name.
func (c *Collection) ModeByName(name string) (Mode, bool) {
	for _, m := range c.Modes {
		if m.Name == name {
			return m, true
		}
	}
	return Mode{}, false
}

// DefaultMode returns first mode of the collection.
func (c *Collection) DefaultMode() (Mode, bool) {
	if len(c.Modes) == 0 {
		return Mode{}, false
	}
	return c.Modes[0], true
}

// Variable is a named, typed slot living in exactly one collection.
type Variable struct {
	ID           string
	Name         string
	CollectionID string
	Type         ResolvedType
	// CodeSyntax is optional host specific name used by developers.
	CodeSyntax string
	// ValuesByMode maps mode id to value, modes without value are absent.
	ValuesByMode map[string]Value
}

// FindCollection looks collection up by name.
func FindCollection(all []Collection, name string) (Collection, bool) {
	for _, c := range all {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// FindVariable looks variable up by name within collection.
func FindVariable(all []Variable, name, collectionID string) (Variable, bool) {
	for _, v := range all {
		if v.Name == name && v.CollectionID == collectionID {
			return v, true
		}
	}
	return Variable{}, false
}

package importer

import "varcss/variables"

// VariableMap indexes host variables created or found during import. Every
// variable is recorded under collection scoped key and under bare name. The
// first collection processed wins the bare name, so references to a name
// declared in several collections resolve to the earliest one in input
// order.
type VariableMap struct {
	scoped map[string]variables.Variable
	bare   map[string]variables.Variable
}

// NewVariableMap returns empty map.
func NewVariableMap() *VariableMap {
	return &VariableMap{
		scoped: make(map[string]variables.Variable),
		bare:   make(map[string]variables.Variable),
	}
}

func scopedKey(collection, name string) string {
	return collection + ":" + name
}

func bareKey(name string) string {
	return "--" + name
}

// Record stores variable declared in collection.
func (m *VariableMap) Record(collection string, v variables.Variable) {
	m.scoped[scopedKey(collection, v.Name)] = v
	if _, ok := m.bare[bareKey(v.Name)]; !ok {
		m.bare[bareKey(v.Name)] = v
	}
}

// Scoped looks variable up by collection and name.
func (m *VariableMap) Scoped(collection, name string) (variables.Variable, bool) {
	v, ok := m.scoped[scopedKey(collection, name)]
	return v, ok
}

// Bare looks variable up by name only, used for references.
func (m *VariableMap) Bare(name string) (variables.Variable, bool) {
	v, ok := m.bare[bareKey(name)]
	return v, ok
}

// Len returns number of recorded scoped entries.
func (m *VariableMap) Len() int {
	return len(m.scoped)
}

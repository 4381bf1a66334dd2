package css

// Declaration is a single custom property: name without leading "--" and
// raw textual value.
type Declaration struct {
	Name  string
	Value string
}

// ModeBlock holds declarations of a single mode in source order.
type ModeBlock struct {
	Name         string
	Declarations []Declaration
}

// Collection is a parsed collection, modes are kept in insertion order.
type Collection struct {
	Name  string
	Modes []*ModeBlock
}

// Graph is transient result of parsing import text.
type Graph struct {
	Collections []*Collection
	Warnings    []string
}

// Mode returns mode block by name or nil.
func (c *Collection) Mode(name string) *ModeBlock {
	for _, m := range c.Modes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ensureMode returns existing mode block or appends a new one.
func (c *Collection) ensureMode(name string) *ModeBlock {
	if m := c.Mode(name); m != nil {
		return m
	}
	m := &ModeBlock{Name: name}
	c.Modes = append(c.Modes, m)
	return m
}

// FirstMode returns name of the first mode or empty string.
func (c *Collection) FirstMode() string {
	if len(c.Modes) == 0 {
		return ""
	}
	return c.Modes[0].Name
}

// Collection returns last parsed collection with given name or nil.
func (g *Graph) Collection(name string) *Collection {
	for i := len(g.Collections) - 1; i >= 0; i-- {
		if g.Collections[i].Name == name {
			return g.Collections[i]
		}
	}
	return nil
}

func (g *Graph) ensureCollection(name string) *Collection {
	if c := g.Collection(name); c != nil {
		return c
	}
	c := &Collection{Name: name}
	g.Collections = append(g.Collections, c)
	return c
}

// Len returns total number of declarations in the graph.
func (g *Graph) Len() int {
	n := 0
	for _, c := range g.Collections {
		for _, m := range c.Modes {
			n += len(m.Declarations)
		}
	}
	return n
}

// Merge appends other graph to g. Collections and modes with the same name
// are joined, declarations keep their relative order.
func (g *Graph) Merge(other *Graph) {
	if other == nil {
		return
	}
	for _, oc := range other.Collections {
		c := g.ensureCollection(oc.Name)
		for _, om := range oc.Modes {
			m := c.ensureMode(om.Name)
			m.Declarations = append(m.Declarations, om.Declarations...)
		}
	}
	g.Warnings = append(g.Warnings, other.Warnings...)
}

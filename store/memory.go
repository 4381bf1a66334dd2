// Package store provides host variable stores: in-memory one and SQLite
// backed document.
package store

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"varcss/variables"
)

// DefaultModeName is the name host gives to automatically created first mode.
const DefaultModeName = "Mode 1"

// Memory keeps variables in memory. It returns copies, so callers never
// observe later modifications through previously fetched values.
// NOTE: presently not to be used concurrently!
type Memory struct {
	// ReadOnly makes every mutation fail with variables.ErrReadOnly.
	ReadOnly bool

	collections []variables.Collection
	vars        []variables.Variable
}

var _ variables.Store = (*Memory)(nil)

// NewMemory returns empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("unable to generate id: %w", err)
	}
	return id.String(), nil
}

func (m *Memory) writable(op string) error {
	if m.ReadOnly {
		return fmt.Errorf("%s: %w", op, variables.ErrReadOnly)
	}
	return nil
}

func copyCollection(c variables.Collection) variables.Collection {
	c.Modes = slices.Clone(c.Modes)
	return c
}

func copyVariable(v variables.Variable) variables.Variable {
	v.ValuesByMode = maps.Clone(v.ValuesByMode)
	if v.ValuesByMode == nil {
		v.ValuesByMode = make(map[string]variables.Value)
	}
	return v
}

func (m *Memory) collection(id string) (*variables.Collection, error) {
	for i := range m.collections {
		if m.collections[i].ID == id {
			return &m.collections[i], nil
		}
	}
	return nil, fmt.Errorf("collection %s: %w", id, variables.ErrNotFound)
}

func (m *Memory) variable(id string) (*variables.Variable, error) {
	for i := range m.vars {
		if m.vars[i].ID == id {
			return &m.vars[i], nil
		}
	}
	return nil, fmt.Errorf("variable %s: %w", id, variables.ErrNotFound)
}

func (m *Memory) Collections(ctx context.Context) ([]variables.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := make([]variables.Collection, 0, len(m.collections))
	for _, c := range m.collections {
		res = append(res, copyCollection(c))
	}
	return res, nil
}

func (m *Memory) CreateCollection(ctx context.Context, name string) (variables.Collection, error) {
	if err := ctx.Err(); err != nil {
		return variables.Collection{}, err
	}
	if err := m.writable("create collection"); err != nil {
		return variables.Collection{}, err
	}
	cid, err := newID()
	if err != nil {
		return variables.Collection{}, err
	}
	mid, err := newID()
	if err != nil {
		return variables.Collection{}, err
	}
	c := variables.Collection{ID: cid, Name: name, Modes: []variables.Mode{{ID: mid, Name: DefaultModeName}}}
	m.collections = append(m.collections, c)
	return copyCollection(c), nil
}

func (m *Memory) AddMode(ctx context.Context, collectionID, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := m.writable("add mode"); err != nil {
		return "", err
	}
	c, err := m.collection(collectionID)
	if err != nil {
		return "", err
	}
	if _, ok := c.ModeByName(name); ok {
		return "", fmt.Errorf("mode %q already exists in collection %q", name, c.Name)
	}
	id, err := newID()
	if err != nil {
		return "", err
	}
	c.Modes = append(c.Modes, variables.Mode{ID: id, Name: name})
	return id, nil
}

func (m *Memory) RenameMode(ctx context.Context, collectionID, modeID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.writable("rename mode"); err != nil {
		return err
	}
	c, err := m.collection(collectionID)
	if err != nil {
		return err
	}
	for i := range c.Modes {
		if c.Modes[i].ID == modeID {
			c.Modes[i].Name = name
			return nil
		}
	}
	return fmt.Errorf("mode %s: %w", modeID, variables.ErrNotFound)
}

func (m *Memory) Variables(ctx context.Context) ([]variables.Variable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := make([]variables.Variable, 0, len(m.vars))
	for _, v := range m.vars {
		res = append(res, copyVariable(v))
	}
	return res, nil
}

func (m *Memory) Variable(ctx context.Context, id string) (variables.Variable, error) {
	if err := ctx.Err(); err != nil {
		return variables.Variable{}, err
	}
	v, err := m.variable(id)
	if err != nil {
		return variables.Variable{}, err
	}
	return copyVariable(*v), nil
}

func (m *Memory) CreateVariable(ctx context.Context, name, collectionID string, t variables.ResolvedType) (variables.Variable, error) {
	if err := ctx.Err(); err != nil {
		return variables.Variable{}, err
	}
	if err := m.writable("create variable"); err != nil {
		return variables.Variable{}, err
	}
	if _, err := m.collection(collectionID); err != nil {
		return variables.Variable{}, err
	}
	if _, err := variables.ParseResolvedType(string(t)); err != nil {
		return variables.Variable{}, err
	}
	id, err := newID()
	if err != nil {
		return variables.Variable{}, err
	}
	v := variables.Variable{ID: id, Name: name, CollectionID: collectionID, Type: t, ValuesByMode: make(map[string]variables.Value)}
	m.vars = append(m.vars, v)
	return copyVariable(v), nil
}

func (m *Memory) SetValue(ctx context.Context, variableID, modeID string, val variables.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.writable("set value"); err != nil {
		return err
	}
	v, err := m.variable(variableID)
	if err != nil {
		return err
	}
	c, err := m.collection(v.CollectionID)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(c.Modes, func(md variables.Mode) bool { return md.ID == modeID }) {
		return fmt.Errorf("mode %s in collection %q: %w", modeID, c.Name, variables.ErrNotFound)
	}
	var target *variables.Variable
	if a, ok := val.(variables.Alias); ok {
		if target, err = m.variable(a.ID); err != nil {
			target = nil
		}
	}
	if err := variables.CheckValue(*v, val, target); err != nil {
		return err
	}
	v.ValuesByMode[modeID] = val
	return nil
}

func (m *Memory) SetCodeSyntax(ctx context.Context, variableID, syntax string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.writable("set code syntax"); err != nil {
		return err
	}
	v, err := m.variable(variableID)
	if err != nil {
		return err
	}
	v.CodeSyntax = syntax
	return nil
}

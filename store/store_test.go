package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"varcss/variables"
)

type factory func(t *testing.T) variables.Store

func stores() map[string]factory {
	return map[string]factory{
		"memory": func(t *testing.T) variables.Store {
			return NewMemory()
		},
		"sqlite": func(t *testing.T) variables.Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "doc.db"), false)
			if err != nil {
				t.Fatalf("OpenSQLite() error = %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func TestStore_CollectionsAndModes(t *testing.T) {
	for name, open := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			c, err := s.CreateCollection(ctx, "Theme")
			if err != nil {
				t.Fatalf("CreateCollection() error = %v", err)
			}
			if len(c.Modes) != 1 || c.Modes[0].Name != DefaultModeName {
				t.Fatalf("new collection modes = %+v, want single %q", c.Modes, DefaultModeName)
			}
			if err := s.RenameMode(ctx, c.ID, c.Modes[0].ID, "Light"); err != nil {
				t.Fatalf("RenameMode() error = %v", err)
			}
			darkID, err := s.AddMode(ctx, c.ID, "Dark")
			if err != nil {
				t.Fatalf("AddMode() error = %v", err)
			}
			if _, err := s.AddMode(ctx, c.ID, "Dark"); err == nil {
				t.Error("AddMode() duplicate expected error")
			}

			all, err := s.Collections(ctx)
			if err != nil {
				t.Fatalf("Collections() error = %v", err)
			}
			if len(all) != 1 {
				t.Fatalf("Collections() len = %d, want 1", len(all))
			}
			got := all[0]
			if got.Name != "Theme" || len(got.Modes) != 2 {
				t.Fatalf("collection = %+v", got)
			}
			if got.Modes[0].Name != "Light" || got.Modes[1].Name != "Dark" || got.Modes[1].ID != darkID {
				t.Errorf("modes = %+v, want Light then Dark", got.Modes)
			}
			if err := s.RenameMode(ctx, c.ID, "nope", "X"); !errors.Is(err, variables.ErrNotFound) {
				t.Errorf("RenameMode() unknown mode error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_VariablesAndValues(t *testing.T) {
	for name, open := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			c, err := s.CreateCollection(ctx, "Primitives")
			if err != nil {
				t.Fatalf("CreateCollection() error = %v", err)
			}
			mode := c.Modes[0].ID

			brand, err := s.CreateVariable(ctx, "brand", c.ID, variables.TypeColor)
			if err != nil {
				t.Fatalf("CreateVariable() error = %v", err)
			}
			accent, err := s.CreateVariable(ctx, "accent", c.ID, variables.TypeColor)
			if err != nil {
				t.Fatalf("CreateVariable() error = %v", err)
			}
			size, err := s.CreateVariable(ctx, "size", c.ID, variables.TypeFloat)
			if err != nil {
				t.Fatalf("CreateVariable() error = %v", err)
			}
			label, err := s.CreateVariable(ctx, "label", c.ID, variables.TypeString)
			if err != nil {
				t.Fatalf("CreateVariable() error = %v", err)
			}
			flag, err := s.CreateVariable(ctx, "flag", c.ID, variables.TypeBoolean)
			if err != nil {
				t.Fatalf("CreateVariable() error = %v", err)
			}

			red := variables.RGBA{R: 1, A: 1}
			sets := []struct {
				id  string
				val variables.Value
			}{
				{brand.ID, red},
				{accent.ID, variables.Alias{ID: brand.ID}},
				{size.ID, variables.Float(16)},
				{label.ID, variables.String("Inter")},
				{flag.ID, variables.Boolean(true)},
			}
			for _, st := range sets {
				if err := s.SetValue(ctx, st.id, mode, st.val); err != nil {
					t.Fatalf("SetValue(%v) error = %v", st.val, err)
				}
			}
			if err := s.SetCodeSyntax(ctx, brand.ID, "var(--brand)"); err != nil {
				t.Fatalf("SetCodeSyntax() error = %v", err)
			}

			all, err := s.Variables(ctx)
			if err != nil {
				t.Fatalf("Variables() error = %v", err)
			}
			if len(all) != len(sets) {
				t.Fatalf("Variables() len = %d, want %d", len(all), len(sets))
			}
			for i, st := range sets {
				if all[i].ID != st.id {
					t.Errorf("variable %d id = %s, want %s (creation order)", i, all[i].ID, st.id)
				}
				if got := all[i].ValuesByMode[mode]; got != st.val {
					t.Errorf("variable %q value = %#v, want %#v", all[i].Name, got, st.val)
				}
			}
			if all[0].CodeSyntax != "var(--brand)" {
				t.Errorf("code syntax = %q", all[0].CodeSyntax)
			}

			one, err := s.Variable(ctx, accent.ID)
			if err != nil {
				t.Fatalf("Variable() error = %v", err)
			}
			if one.ValuesByMode[mode] != (variables.Alias{ID: brand.ID}) {
				t.Errorf("Variable() value = %#v", one.ValuesByMode[mode])
			}
			if _, err := s.Variable(ctx, "missing"); !errors.Is(err, variables.ErrNotFound) {
				t.Errorf("Variable() missing error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_SetValueValidation(t *testing.T) {
	for name, open := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			c, _ := s.CreateCollection(ctx, "C")
			mode := c.Modes[0].ID
			col, _ := s.CreateVariable(ctx, "col", c.ID, variables.TypeColor)
			num, _ := s.CreateVariable(ctx, "num", c.ID, variables.TypeFloat)

			tests := []struct {
				name string
				id   string
				mode string
				val  variables.Value
				want error
			}{
				{"literal type", col.ID, mode, variables.Float(1), variables.ErrTypeMismatch},
				{"alias type", num.ID, mode, variables.Alias{ID: col.ID}, variables.ErrTypeMismatch},
				{"alias self", col.ID, mode, variables.Alias{ID: col.ID}, variables.ErrTypeMismatch},
				{"alias missing", col.ID, mode, variables.Alias{ID: "nope"}, variables.ErrNotFound},
				{"unknown mode", col.ID, "nope", variables.Black, variables.ErrNotFound},
				{"unknown variable", "nope", mode, variables.Black, variables.ErrNotFound},
			}
			for _, tt := range tests {
				if err := s.SetValue(ctx, tt.id, tt.mode, tt.val); !errors.Is(err, tt.want) {
					t.Errorf("%s: SetValue() error = %v, want %v", tt.name, err, tt.want)
				}
			}
		})
	}
}

func TestMemory_ReadOnly(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	c, err := m.CreateCollection(ctx, "C")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}
	m.ReadOnly = true

	if _, err := m.CreateCollection(ctx, "D"); !errors.Is(err, variables.ErrReadOnly) {
		t.Errorf("CreateCollection() error = %v, want ErrReadOnly", err)
	}
	if _, err := m.CreateVariable(ctx, "v", c.ID, variables.TypeColor); !variables.IsPermission(err) {
		t.Errorf("CreateVariable() error = %v, want permission error", err)
	}
	if _, err := m.Collections(ctx); err != nil {
		t.Errorf("Collections() on read-only store error = %v", err)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	c, _ := m.CreateCollection(ctx, "C")
	v, _ := m.CreateVariable(ctx, "v", c.ID, variables.TypeFloat)

	v.ValuesByMode[c.Modes[0].ID] = variables.Float(3)
	c.Modes[0].Name = "changed"

	got, _ := m.Variable(ctx, v.ID)
	if len(got.ValuesByMode) != 0 {
		t.Errorf("store modified through returned variable: %+v", got.ValuesByMode)
	}
	all, _ := m.Collections(ctx)
	if all[0].Modes[0].Name != DefaultModeName {
		t.Errorf("store modified through returned collection: %+v", all[0].Modes)
	}
}

func TestSQLite_ReopenReadOnly(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.db")

	rw, err := OpenSQLite(path, false)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	c, err := rw.CreateCollection(ctx, "Theme")
	if err != nil {
		t.Fatalf("CreateCollection() error = %v", err)
	}
	v, err := rw.CreateVariable(ctx, "bg", c.ID, variables.TypeColor)
	if err != nil {
		t.Fatalf("CreateVariable() error = %v", err)
	}
	if err := rw.SetValue(ctx, v.ID, c.Modes[0].ID, variables.RGBA{R: 1, G: 1, B: 1, A: 1}); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	ro, err := OpenSQLite(path, true)
	if err != nil {
		t.Fatalf("OpenSQLite(read-only) error = %v", err)
	}
	defer ro.Close()

	if !ro.ReadOnly() {
		t.Error("ReadOnly() = false")
	}
	all, err := ro.Variables(ctx)
	if err != nil {
		t.Fatalf("Variables() error = %v", err)
	}
	if len(all) != 1 || all[0].ValuesByMode[c.Modes[0].ID] != (variables.RGBA{R: 1, G: 1, B: 1, A: 1}) {
		t.Errorf("Variables() = %+v", all)
	}
	if _, err := ro.CreateCollection(ctx, "Other"); !errors.Is(err, variables.ErrReadOnly) {
		t.Errorf("CreateCollection() error = %v, want ErrReadOnly", err)
	}
}

package variables

import (
	"errors"
	"fmt"
	"testing"
)

func TestDefault(t *testing.T) {
	tests := []struct {
		typ  ResolvedType
		raw  string
		want Literal
	}{
		{TypeColor, "var(--x)", Black},
		{TypeFloat, "var(--x)", Float(0)},
		{TypeBoolean, "var(--x)", Boolean(false)},
		{TypeString, "var(--x)", String("var(--x)")},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := Default(tt.typ, tt.raw); got != tt.want {
				t.Errorf("Default() = %#v, want %#v", got, tt.want)
			}
			if got := Default(tt.typ, tt.raw).Type(); got != tt.typ {
				t.Errorf("Default().Type() = %s, want %s", got, tt.typ)
			}
		})
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		in   Literal
		want string
	}{
		{Float(8), "8"},
		{Float(0.5), "0.5"},
		{Float(-1.25), "-1.25"},
		{String("Inter, sans-serif"), "Inter, sans-serif"},
		{Boolean(true), "true"},
		{RGBA{R: 1, A: 0.5}, "{r:1 g:0 b:0 a:0.5}"},
	}
	for _, tt := range tests {
		if got := FormatLiteral(tt.in); got != tt.want {
			t.Errorf("FormatLiteral(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseResolvedType(t *testing.T) {
	for _, s := range []string{"COLOR", "FLOAT", "STRING", "BOOLEAN"} {
		got, err := ParseResolvedType(s)
		if err != nil || got.String() != s {
			t.Errorf("ParseResolvedType(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseResolvedType("color"); err == nil {
		t.Error("expected error for lower case type name")
	}
}

func TestCheckValue(t *testing.T) {
	color := Variable{ID: "1", Name: "bg", Type: TypeColor}
	other := Variable{ID: "2", Name: "fg", Type: TypeColor}
	number := Variable{ID: "3", Name: "gap", Type: TypeFloat}

	tests := []struct {
		name    string
		val     Value
		target  *Variable
		wantErr error
	}{
		{"literal", RGBA{A: 1}, nil, nil},
		{"literal mismatch", Float(1), nil, ErrTypeMismatch},
		{"alias", Alias{ID: "2"}, &other, nil},
		{"alias missing target", Alias{ID: "9"}, nil, ErrNotFound},
		{"alias to self", Alias{ID: "1"}, &color, ErrTypeMismatch},
		{"alias type mismatch", Alias{ID: "3"}, &number, ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckValue(color, tt.val, tt.target)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CheckValue() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckValue() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := CheckValue(color, nil, nil); err == nil {
		t.Error("CheckValue(nil) should fail")
	}
}

func TestIsPermission(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrReadOnly, true},
		{fmt.Errorf("create collection: %w", ErrReadOnly), true},
		{errors.New("in read-only mode"), true},
		{errors.New("file is readonly"), true},
		{errors.New("Can't call createVariable in this context"), true},
		{ErrNotFound, false},
	}
	for _, tt := range tests {
		if got := IsPermission(tt.err); got != tt.want {
			t.Errorf("IsPermission(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestCollectionLookups(t *testing.T) {
	c := Collection{ID: "c", Name: "Theme", Modes: []Mode{{ID: "m1", Name: "Light"}, {ID: "m2", Name: "Dark"}}}

	if m, ok := c.DefaultMode(); !ok || m.ID != "m1" {
		t.Errorf("DefaultMode() = %v, %v", m, ok)
	}
	if m, ok := c.ModeByName("Dark"); !ok || m.ID != "m2" {
		t.Errorf("ModeByName(Dark) = %v, %v", m, ok)
	}
	if _, ok := (&Collection{}).DefaultMode(); ok {
		t.Error("DefaultMode() of empty collection should fail")
	}
	if _, ok := FindCollection([]Collection{c}, "Primitives"); ok {
		t.Error("FindCollection() found missing collection")
	}

	vars := []Variable{{ID: "v1", Name: "bg", CollectionID: "c"}, {ID: "v2", Name: "bg", CollectionID: "d"}}
	if v, ok := FindVariable(vars, "bg", "d"); !ok || v.ID != "v2" {
		t.Errorf("FindVariable() = %v, %v", v, ok)
	}
}

package importer_test

import (
	"testing"

	"varcss/importer"
	"varcss/variables"
)

func TestMaterialize(t *testing.T) {
	vars := importer.NewVariableMap()
	vars.Record("Primitives", variables.Variable{ID: "c1", Name: "brand", Type: variables.TypeColor})
	vars.Record("Primitives", variables.Variable{ID: "f1", Name: "space", Type: variables.TypeFloat})

	type warn int
	const (
		none warn = iota
		lookup
		mismatch
		conversion
	)
	kinds := map[warn]importer.WarningKind{
		lookup:     importer.LookupFailure,
		mismatch:   importer.AliasMismatch,
		conversion: importer.ConversionFailure,
	}

	tests := []struct {
		name     string
		raw      string
		expected variables.ResolvedType
		want     variables.Value
		warn     warn
	}{
		{"hex color", "#ff0000", variables.TypeColor, variables.RGBA{R: 1, A: 1}, none},
		{"bad color", "papayawhip", variables.TypeColor, variables.Black, conversion},
		{"alias", "var(--brand)", variables.TypeColor, variables.Alias{ID: "c1"}, none},
		{"alias with fallback", "var(--brand, #000)", variables.TypeColor, variables.Alias{ID: "c1"}, none},
		{"alias float", "var(--space)", variables.TypeFloat, variables.Alias{ID: "f1"}, none},
		{"mismatch string keeps text", "var(--brand)", variables.TypeString, variables.String("var(--brand)"), mismatch},
		{"mismatch float default", "var(--brand)", variables.TypeFloat, variables.Float(0), mismatch},
		{"mismatch color default", "var(--space)", variables.TypeColor, variables.Black, mismatch},
		{"missing color", "var(--missing)", variables.TypeColor, variables.Black, lookup},
		{"missing float", "var(--missing)", variables.TypeFloat, variables.Float(0), lookup},
		{"missing boolean", "var(--missing)", variables.TypeBoolean, variables.Boolean(false), lookup},
		{"missing string keeps text", "var(--missing)", variables.TypeString, variables.String("var(--missing)"), lookup},
		{"float with unit", "16px", variables.TypeFloat, variables.Float(16), none},
		{"negative float", "-1.5rem", variables.TypeFloat, variables.Float(-1.5), none},
		{"bare float", "0.75", variables.TypeFloat, variables.Float(0.75), none},
		{"bad float", "auto", variables.TypeFloat, variables.Float(0), conversion},
		{"boolean true", "TRUE", variables.TypeBoolean, variables.Boolean(true), none},
		{"boolean other", "yes", variables.TypeBoolean, variables.Boolean(false), none},
		{"string", "Inter, sans-serif", variables.TypeString, variables.String("Inter, sans-serif"), none},
		{"trimmed", "  bold ", variables.TypeString, variables.String("bold"), none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, w := importer.Materialize(tt.raw, tt.expected, vars)
			if got != tt.want {
				t.Errorf("Materialize(%q, %s) = %#v, want %#v", tt.raw, tt.expected, got, tt.want)
			}
			switch {
			case tt.warn == none && w != nil:
				t.Errorf("unexpected warning: %s", w)
			case tt.warn != none && w == nil:
				t.Errorf("expected %s warning, got none", kinds[tt.warn])
			case tt.warn != none && w.Kind != kinds[tt.warn]:
				t.Errorf("warning kind = %s, want %s", w.Kind, kinds[tt.warn])
			}
		})
	}
}

func TestVariableMap_BareKeyFirstWriterWins(t *testing.T) {
	vars := importer.NewVariableMap()
	vars.Record("Primitives", variables.Variable{ID: "p", Name: "accent", Type: variables.TypeColor})
	vars.Record("Theme", variables.Variable{ID: "t", Name: "accent", Type: variables.TypeColor})

	if v, ok := vars.Bare("accent"); !ok || v.ID != "p" {
		t.Errorf("Bare(accent) = %+v, %v, want first recorded", v, ok)
	}
	if v, ok := vars.Scoped("Theme", "accent"); !ok || v.ID != "t" {
		t.Errorf("Scoped(Theme, accent) = %+v, %v", v, ok)
	}
	if _, ok := vars.Scoped("Other", "accent"); ok {
		t.Error("Scoped(Other, accent) found")
	}
	if vars.Len() != 2 {
		t.Errorf("Len() = %d, want 2", vars.Len())
	}
}

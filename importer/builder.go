// Package importer reconciles parsed CSS graph with host variable store.
package importer

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"varcss/css"
	"varcss/infer"
	"varcss/variables"
)

// defaultModeName is used for collections without any declared mode.
const defaultModeName = "Default"

// Report summarizes import.
type Report struct {
	CollectionsCreated int
	ModesCreated       int
	VariablesCreated   int
	ValuesSet          int
	Warnings           []string
}

// Builder creates host structure for parsed graph and sets variable values.
type Builder struct {
	store variables.Store
	log   *zap.Logger
}

// NewBuilder returns builder working with host store.
func NewBuilder(store variables.Store, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{store: store, log: log.Named("importer")}
}

// Build runs four passes over the graph: it collects raw values, infers
// types, creates missing collections, modes and variables, and finally sets
// values. Structure is fully created before any value is set, so aliases may
// point anywhere in the graph. Failure to create structure aborts
// immediately with *StructuralError. Failures to set values are accumulated
// and returned as *ValuesError after all values were attempted, nothing is
// rolled back.
func (b *Builder) Build(ctx context.Context, g *css.Graph) (*Report, error) {
	rpt := &Report{}
	if g == nil || len(g.Collections) == 0 {
		return rpt, nil
	}

	known := collectValues(g)
	types := inferTypes(g, known)

	vars := NewVariableMap()
	if err := b.materializeStructure(ctx, g, types, vars, rpt); err != nil {
		return rpt, err
	}
	if err := b.setValues(ctx, g, vars, rpt); err != nil {
		return rpt, err
	}
	b.log.Debug("Import complete",
		zap.Int("collections", rpt.CollectionsCreated),
		zap.Int("modes", rpt.ModesCreated),
		zap.Int("variables", rpt.VariablesCreated),
		zap.Int("values", rpt.ValuesSet),
		zap.Int("warnings", len(rpt.Warnings)))
	return rpt, nil
}

// collectValues maps bare variable names to raw values, later declarations
// override earlier ones.
func collectValues(g *css.Graph) map[string]string {
	known := make(map[string]string)
	for _, c := range g.Collections {
		for _, m := range c.Modes {
			for _, d := range m.Declarations {
				known[d.Name] = d.Value
			}
		}
	}
	return known
}

// inferTypes decides type for every collection scoped variable using its
// first declaration.
func inferTypes(g *css.Graph, known map[string]string) map[string]variables.ResolvedType {
	types := make(map[string]variables.ResolvedType)
	for _, c := range g.Collections {
		for _, m := range c.Modes {
			for _, d := range m.Declarations {
				key := scopedKey(c.Name, d.Name)
				if _, ok := types[key]; ok {
					continue
				}
				types[key] = infer.Declaration(d.Name, d.Value, known)
			}
		}
	}
	return types
}

func (b *Builder) materializeStructure(ctx context.Context, g *css.Graph, types map[string]variables.ResolvedType, vars *VariableMap, rpt *Report) error {
	for _, pc := range g.Collections {
		// host state is re-fetched for every collection
		all, err := b.store.Collections(ctx)
		if err != nil {
			return fmt.Errorf("unable to retrieve collections: %w", err)
		}

		hc, found := variables.FindCollection(all, pc.Name)
		if !found {
			if hc, err = b.store.CreateCollection(ctx, pc.Name); err != nil {
				return &StructuralError{Kind: KindCollection, Name: pc.Name, Err: err}
			}
			rpt.CollectionsCreated++
			if def, ok := hc.DefaultMode(); ok {
				first := pc.FirstMode()
				if first == "" {
					first = defaultModeName
				}
				if err := b.store.RenameMode(ctx, hc.ID, def.ID, first); err != nil {
					return &StructuralError{Kind: KindMode, Name: first, Err: err}
				}
				hc.Modes[0].Name = first
			}
			b.log.Debug("Collection created", zap.String("collection", pc.Name), zap.String("id", hc.ID))
		}

		for _, pm := range pc.Modes {
			if _, ok := hc.ModeByName(pm.Name); !ok {
				id, err := b.store.AddMode(ctx, hc.ID, pm.Name)
				if err != nil {
					return &StructuralError{Kind: KindMode, Name: pm.Name, Err: err}
				}
				hc.Modes = append(hc.Modes, variables.Mode{ID: id, Name: pm.Name})
				rpt.ModesCreated++
				b.log.Debug("Mode created", zap.String("collection", pc.Name), zap.String("mode", pm.Name))
			}

			existing, err := b.store.Variables(ctx)
			if err != nil {
				return fmt.Errorf("unable to retrieve variables: %w", err)
			}
			for _, d := range pm.Declarations {
				if _, ok := vars.Scoped(pc.Name, d.Name); ok {
					continue
				}
				want := types[scopedKey(pc.Name, d.Name)]
				v, ok := variables.FindVariable(existing, d.Name, hc.ID)
				if !ok {
					if v, err = b.store.CreateVariable(ctx, d.Name, hc.ID, want); err != nil {
						return &StructuralError{Kind: KindVariable, Name: d.Name, Err: err}
					}
					rpt.VariablesCreated++
				} else if v.Type != want {
					b.log.Debug("Existing variable keeps its type",
						zap.String("variable", d.Name), zap.Stringer("type", v.Type), zap.Stringer("inferred", want))
				}
				vars.Record(pc.Name, v)
			}
		}
	}
	return nil
}

func (b *Builder) setValues(ctx context.Context, g *css.Graph, vars *VariableMap, rpt *Report) error {
	var errs error
	for _, pc := range g.Collections {
		all, err := b.store.Collections(ctx)
		if err != nil {
			return fmt.Errorf("unable to retrieve collections: %w", err)
		}
		hc, found := variables.FindCollection(all, pc.Name)
		if !found {
			b.log.Warn("Collection disappeared before values were set", zap.String("collection", pc.Name))
			continue
		}
		for _, pm := range pc.Modes {
			mode, ok := hc.ModeByName(pm.Name)
			if !ok {
				b.log.Warn("Mode disappeared before values were set", zap.String("collection", pc.Name), zap.String("mode", pm.Name))
				continue
			}
			for _, d := range pm.Declarations {
				v, ok := vars.Scoped(pc.Name, d.Name)
				if !ok || v.CollectionID != hc.ID {
					continue
				}
				val, w := Materialize(d.Value, v.Type, vars)
				if w != nil {
					msg := fmt.Sprintf("variable %q in mode %q: %s", d.Name, pm.Name, w.Message)
					rpt.Warnings = append(rpt.Warnings, msg)
					b.log.Warn("Value replaced by default",
						zap.String("variable", d.Name), zap.String("mode", pm.Name), zap.Stringer("reason", w.Kind), zap.String("details", w.Message))
				}
				if err := b.store.SetValue(ctx, v.ID, mode.ID, val); err != nil {
					b.log.Error("Unable to set value", zap.String("variable", d.Name), zap.String("mode", pm.Name), zap.Error(err))
					errs = multierr.Append(errs, fmt.Errorf("variable %q in mode %q: %w", d.Name, pm.Name, err))
					continue
				}
				rpt.ValuesSet++
			}
		}
	}
	if errs != nil {
		return &ValuesError{err: errs}
	}
	return nil
}

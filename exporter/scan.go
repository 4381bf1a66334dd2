// Package exporter reads host variables and produces CSS custom properties.
package exporter

import (
	"context"
	"fmt"
	"sort"

	"github.com/maruel/natural"

	"varcss/color"
	"varcss/common"
	"varcss/variables"
)

// AliasPrefix marks alias display values.
const AliasPrefix = "alias:"

// unknownAlias is shown for aliases whose target cannot be fetched.
const unknownAlias = "Unknown"

// Display is a variable with values rendered for every mode it has a value
// for.
type Display struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	CollectionID string                 `json:"collectionId"`
	Type         variables.ResolvedType `json:"resolvedType"`
	CodeSyntax   string                 `json:"codeSyntax"`
	// ModeValues maps mode id to display value, aliases are shown as
	// "alias:<target name>".
	ModeValues map[string]string `json:"modeValues"`
	// Aliases maps mode id to alias target name for modes holding an alias.
	Aliases map[string]string `json:"-"`
}

// Scan reads all host variables and renders their per-mode values.
func Scan(ctx context.Context, store variables.Store) ([]Display, error) {
	all, err := store.Variables(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve variables: %w", err)
	}
	res := make([]Display, 0, len(all))
	for _, v := range all {
		d := Display{
			ID:           v.ID,
			Name:         v.Name,
			CollectionID: v.CollectionID,
			Type:         v.Type,
			CodeSyntax:   v.CodeSyntax,
			ModeValues:   make(map[string]string, len(v.ValuesByMode)),
			Aliases:      make(map[string]string),
		}
		for modeID, val := range v.ValuesByMode {
			if a, ok := val.(variables.Alias); ok {
				name := unknownAlias
				// target may be gone, alias is still shown
				if target, err := store.Variable(ctx, a.ID); err == nil {
					name = target.Name
				}
				d.Aliases[modeID] = name
				d.ModeValues[modeID] = AliasPrefix + name
				continue
			}
			d.ModeValues[modeID] = color.ToCSS(val)
		}
		res = append(res, d)
	}
	return res, nil
}

// Collections lists host collections with their ordered modes.
func Collections(ctx context.Context, store variables.Store) ([]variables.Collection, error) {
	all, err := store.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve collections: %w", err)
	}
	return all, nil
}

// SortDisplays orders variables in place. Host order is kept as is.
func SortDisplays(list []Display, order common.VariableOrder) {
	if order != common.VariableOrderNatural {
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		return natural.Less(list[i].Name, list[j].Name)
	})
}

// SortCollections orders collections in place. Host order is kept as is.
func SortCollections(list []variables.Collection, order common.VariableOrder) {
	if order != common.VariableOrderNatural {
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		return natural.Less(list[i].Name, list[j].Name)
	})
}

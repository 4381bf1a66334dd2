package variables

import (
	"context"
	"fmt"
)

// Store is the host capability interface. Host owns all persisted state,
// callers must not cache results across calls since document may be edited
// by somebody else in between.
type Store interface {
	// Collections lists all local collections in creation order.
	Collections(ctx context.Context) ([]Collection, error)
	// CreateCollection creates new collection with single default mode.
	CreateCollection(ctx context.Context, name string) (Collection, error)
	// AddMode adds mode to the collection and returns its id.
	AddMode(ctx context.Context, collectionID, name string) (string, error)
	// RenameMode changes name of existing mode.
	RenameMode(ctx context.Context, collectionID, modeID, name string) error

	// Variables lists all local variables in creation order.
	Variables(ctx context.Context) ([]Variable, error)
	// Variable fetches variable by id.
	Variable(ctx context.Context, id string) (Variable, error)
	// CreateVariable creates variable of a given type in the collection.
	CreateVariable(ctx context.Context, name, collectionID string, t ResolvedType) (Variable, error)
	// SetValue sets variable value for a mode.
	SetValue(ctx context.Context, variableID, modeID string, val Value) error
	// SetCodeSyntax sets variable code syntax annotation.
	SetCodeSyntax(ctx context.Context, variableID, syntax string) error
}

// CheckValue verifies that val may be stored into variable v. For aliases
// target must be provided.
func CheckValue(v Variable, val Value, target *Variable) error {
	switch x := val.(type) {
	case Alias:
		if target == nil {
			return fmt.Errorf("alias target %s: %w", x.ID, ErrNotFound)
		}
		if target.ID == v.ID {
			return fmt.Errorf("variable %q cannot alias itself: %w", v.Name, ErrTypeMismatch)
		}
		if target.Type != v.Type {
			return fmt.Errorf("alias to %s variable %q from %s variable %q: %w", target.Type, target.Name, v.Type, v.Name, ErrTypeMismatch)
		}
	case Literal:
		if x.Type() != v.Type {
			return fmt.Errorf("%s value for %s variable %q: %w", x.Type(), v.Type, v.Name, ErrTypeMismatch)
		}
	case nil:
		return fmt.Errorf("empty value for variable %q", v.Name)
	}
	return nil
}

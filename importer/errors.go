package importer

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"varcss/variables"
)

// StructuralKind names host object which could not be created.
type StructuralKind string

const (
	KindCollection StructuralKind = "collection"
	KindMode       StructuralKind = "mode"
	KindVariable   StructuralKind = "variable"
)

// StructuralError aborts import: collection, mode or variable could not be
// created.
type StructuralError struct {
	Kind StructuralKind
	Name string
	Err  error
}

func (e *StructuralError) Error() string {
	if variables.IsPermission(e.Err) {
		switch e.Kind {
		case KindCollection:
			return "Unable to create variables: This file is in read-only mode. Please make sure you have edit permissions for this file. " +
				"You may need to duplicate the file to your drafts or request edit access from the file owner."
		case KindMode:
			return "Unable to create modes: This file is in read-only mode. Please make sure you have edit permissions for this file."
		default:
			return "Unable to create variables: This file is in read-only mode. Please make sure you have edit permissions for this file."
		}
	}
	return fmt.Sprintf("unable to create %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// ValuesError is returned when some values could not be set. Structure
// created before is kept.
type ValuesError struct {
	err error
}

func (e *ValuesError) Error() string {
	var sb strings.Builder
	sb.WriteString("Some variables could not be imported:")
	for _, err := range multierr.Errors(e.err) {
		sb.WriteString("\n")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Failures returns individual per-variable failures.
func (e *ValuesError) Failures() []error {
	return multierr.Errors(e.err)
}

func (e *ValuesError) Unwrap() []error {
	return multierr.Errors(e.err)
}

package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"varcss/color"
	"varcss/infer"
	"varcss/variables"
)

// WarningKind classifies recoverable materialization problems.
type WarningKind int

const (
	// LookupFailure - referenced variable does not exist.
	LookupFailure WarningKind = iota
	// AliasMismatch - referenced variable is of a different type.
	AliasMismatch
	// ConversionFailure - raw value could not be parsed as expected type.
	ConversionFailure
)

func (k WarningKind) String() string {
	switch k {
	case LookupFailure:
		return "lookup failure"
	case AliasMismatch:
		return "type mismatch"
	case ConversionFailure:
		return "conversion failure"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning describes value which was replaced by a default.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w *Warning) String() string {
	return w.Message
}

var reLeadingNumber = regexp.MustCompile(`^[-+]?\d+(\.\d+)?`)

// Materialize converts raw textual value into a value for variable of
// expected type. References become aliases when target is known and of the
// same type. It never fails: every problem degrades to a type appropriate
// default and a warning.
func Materialize(raw string, expected variables.ResolvedType, vars *VariableMap) (variables.Value, *Warning) {
	raw = strings.TrimSpace(raw)

	if infer.IsReference(raw) {
		if name, ok := infer.Reference(raw); ok {
			target, found := vars.Bare(name)
			if !found {
				return variables.Default(expected, raw), &Warning{
					Kind:    LookupFailure,
					Message: fmt.Sprintf("referenced variable %q not found, using default value", name),
				}
			}
			if target.Type != expected {
				return variables.Default(expected, raw), &Warning{
					Kind: AliasMismatch,
					Message: fmt.Sprintf("type mismatch for variable reference: expected %s but referenced variable %q is %s, using default value",
						expected, name, target.Type),
				}
			}
			return variables.Alias{ID: target.ID}, nil
		}
	}

	switch expected {
	case variables.TypeColor:
		c, ok := color.Parse(raw)
		if !ok {
			return c, &Warning{Kind: ConversionFailure, Message: fmt.Sprintf("unrecognized color %q, using black", raw)}
		}
		return c, nil
	case variables.TypeFloat:
		m := reLeadingNumber.FindString(raw)
		if m == "" {
			return variables.Float(0), &Warning{Kind: ConversionFailure, Message: fmt.Sprintf("unable to parse number %q, using 0", raw)}
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return variables.Float(0), &Warning{Kind: ConversionFailure, Message: fmt.Sprintf("unable to parse number %q, using 0", raw)}
		}
		return variables.Float(f), nil
	case variables.TypeBoolean:
		return variables.Boolean(strings.EqualFold(raw, "true")), nil
	default:
		return variables.String(raw), nil
	}
}

// Package infer decides variable type from textual hints when no explicit
// type is recorded. Name heuristics are expressed as ordered rule table:
// first matching rule wins.
package infer

import (
	"regexp"
	"strings"

	"varcss/variables"
)

// Rule maps any of the keywords (case-insensitive substrings) to a type.
type Rule struct {
	Type     variables.ResolvedType
	Keywords []string
}

// NameRules is ordered, color keywords take priority over numeric ones, so
// "border-width" is a color.
var NameRules = []Rule{
	{Type: variables.TypeColor, Keywords: []string{"color", "background", "bg-", "border", "fill", "stroke", "shadow"}},
	{Type: variables.TypeFloat, Keywords: []string{"weight", "size", "scale", "spacing", "radius", "opacity", "width", "height", "padding", "margin"}},
}

var colorPrefixes = []string{"#", "rgb", "rgba", "hsl", "hsla"}

var (
	reNumberWithUnit = regexp.MustCompile(`^[-+]?\d+(\.\d+)?(px|rem|em|%|vw|vh|vmin|vmax)$`)
	reNumber         = regexp.MustCompile(`^[-+]?\d+(\.\d+)?$`)
	reReference      = regexp.MustCompile(`^var\(--([^)]+)\)`)
)

// FromName infers type from variable name, STRING when nothing matches.
func FromName(name string) variables.ResolvedType {
	lower := strings.ToLower(name)
	for _, r := range NameRules {
		for _, k := range r.Keywords {
			if strings.Contains(lower, k) {
				return r.Type
			}
		}
	}
	return variables.TypeString
}

// FromValue infers type from direct (non-reference) CSS value.
func FromValue(text string) variables.ResolvedType {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, p := range colorPrefixes {
		if strings.HasPrefix(lower, p) {
			return variables.TypeColor
		}
	}
	if reNumberWithUnit.MatchString(lower) || reNumber.MatchString(lower) {
		return variables.TypeFloat
	}
	return variables.TypeString
}

// IsReference reports whether raw value is "var(--...)" reference.
func IsReference(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "var(--")
}

// Reference extracts referenced variable name from "var(--name)". Fallback
// part of "var(--name, fallback)" is dropped.
func Reference(raw string) (string, bool) {
	m := reReference.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	name, _, _ := strings.Cut(m[1], ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return name, true
}

// Declaration infers type of variable "name" declared with raw value. known
// maps bare variable names to their raw values and is used to look through
// references: one level of indirection is followed, deeper chains and
// unknown targets fall back to name heuristics of the referencing variable.
func Declaration(name, raw string, known map[string]string) variables.ResolvedType {
	if !IsReference(raw) {
		return FromValue(raw)
	}
	ref, ok := Reference(raw)
	if !ok {
		return FromName(name)
	}
	target, ok := known[ref]
	if !ok || target == "" || IsReference(target) {
		return FromName(name)
	}
	return FromValue(target)
}

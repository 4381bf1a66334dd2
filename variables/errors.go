package variables

import (
	"errors"
	"strings"
)

var (
	// ErrReadOnly is returned by stores when document cannot be modified.
	ErrReadOnly = errors.New("document is read-only")
	// ErrNotFound is returned when requested collection, mode or variable does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTypeMismatch is returned when value does not conform to the variable type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// messages some hosts use when document is not editable
var readOnlyMarkers = []string{"read-only", "readonly", "Can't call"}

// IsPermission reports whether err signals read-only document.
func IsPermission(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrReadOnly) {
		return true
	}
	msg := err.Error()
	for _, m := range readOnlyMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

package exporter

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"

	"varcss/common"
)

var reSpaces = regexp.MustCompile(`\s+`)

// PropertyName turns host variable or mode name into CSS identifier.
// Plain style replaces whitespace runs with "-" and lowercases, slug style
// additionally transliterates and drops everything except [a-z0-9-].
func PropertyName(name string, style common.NameStyle) string {
	if style == common.NameStyleSlug {
		return slug.Make(name)
	}
	return strings.ToLower(reSpaces.ReplaceAllString(name, "-"))
}

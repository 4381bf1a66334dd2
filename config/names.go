package config

import (
	"os"
	"strings"
	"unicode"
)

const defaultExportName = "variables"

// ExportFileName names stylesheet produced for collection: characters not
// allowed in file names on this platform are dropped, leading dots and
// spaces are trimmed.
func ExportFileName(collection string) string {
	name := strings.Map(func(r rune) rune {
		if r == os.PathSeparator || r == os.PathListSeparator || unicode.IsControl(r) || strings.ContainsRune(reservedNameChars, r) {
			return -1
		}
		return r
	}, collection)
	name = strings.TrimRight(strings.TrimLeft(name, ". "), " ")
	if len(name) == 0 {
		name = defaultExportName
	}
	return name + ".css"
}

// colorDisabled honors NO_COLOR convention.
func colorDisabled() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

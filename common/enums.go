// Enumerations shared between configuration and conversion engine. Values are
// generated by go-enum, see enums_enum.go.
package common

// How import text is interpreted.
// ENUM(auto, comments, blocks)
type ImportFormat int

// How variable names are turned into custom property names on export.
// ENUM(plain, slug)
type NameStyle int

// Order of variables inside exported blocks.
// ENUM(host, natural)
type VariableOrder int

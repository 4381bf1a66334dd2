package exporter

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"varcss/common"
	"varcss/variables"
)

// Options tune CSS output. Zero value produces plain output in host order.
type Options struct {
	Names    common.NameStyle
	Order    common.VariableOrder
	Annotate bool
	// Header is text/template (with sprig functions) rendered into leading
	// comment, see HeaderValues.
	Header string
}

// HeaderValues is available to header template.
type HeaderValues struct {
	Root      string
	Theme     string
	Modes     []string
	Variables int
}

// Serializer builds CSS text out of host variables.
type Serializer struct {
	store variables.Store
	opts  Options
	log   *zap.Logger
}

// NewSerializer returns serializer reading from host store.
func NewSerializer(store variables.Store, opts Options, log *zap.Logger) *Serializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Serializer{store: store, opts: opts, log: log.Named("exporter")}
}

// BuildCSS emits ":root" block with root collection variables evaluated at
// its default mode followed by one "[data-theme]" block per mode of theme
// collection. Every block is followed by an empty line. Host state is read
// fresh on every call.
func (s *Serializer) BuildCSS(ctx context.Context, rootID, themeID string, useCodeSyntax bool) (string, error) {
	displays, err := Scan(ctx, s.store)
	if err != nil {
		return "", err
	}
	SortDisplays(displays, s.opts.Order)

	colls, err := Collections(ctx, s.store)
	if err != nil {
		return "", err
	}
	var root, theme *variables.Collection
	for i := range colls {
		if colls[i].ID == rootID {
			root = &colls[i]
		}
		if colls[i].ID == themeID {
			theme = &colls[i]
		}
	}

	var lines []string

	if s.opts.Header != "" {
		header, err := s.header(root, theme, displays, rootID, themeID)
		if err != nil {
			return "", err
		}
		lines = append(lines, header...)
	}

	var defaultMode variables.Mode
	if root != nil {
		defaultMode, _ = root.DefaultMode()
		if s.opts.Annotate {
			lines = append(lines, fmt.Sprintf("/* Collection name: %s */", root.Name), fmt.Sprintf("/* Mode: %s */", defaultMode.Name))
		}
	} else {
		s.log.Debug("Root collection not found, emitting empty block", zap.String("id", rootID))
	}
	lines = append(lines, ":root {")
	for _, d := range displays {
		if d.CollectionID != rootID {
			continue
		}
		lines = append(lines, s.property(d, defaultMode.ID, useCodeSyntax))
	}
	lines = append(lines, "}", "")

	if theme != nil && len(theme.Modes) > 0 {
		if s.opts.Annotate {
			lines = append(lines, fmt.Sprintf("/* Collection name: %s */", theme.Name))
		}
		for _, m := range theme.Modes {
			if s.opts.Annotate {
				lines = append(lines, fmt.Sprintf("/* Mode: %s */", m.Name))
			}
			lines = append(lines, fmt.Sprintf(`[data-theme="%s"] {`, PropertyName(m.Name, s.opts.Names)))
			for _, d := range displays {
				if d.CollectionID != themeID {
					continue
				}
				lines = append(lines, s.property(d, m.ID, useCodeSyntax))
			}
			lines = append(lines, "}", "")
		}
	}
	return strings.Join(lines, "\n"), nil
}

// property renders single declaration line. Missing values are emitted as
// empty strings.
func (s *Serializer) property(d Display, modeID string, useCodeSyntax bool) string {
	var value string
	switch target, alias := d.Aliases[modeID]; {
	case useCodeSyntax && d.CodeSyntax != "":
		value = d.CodeSyntax
	case alias:
		value = "var(--" + PropertyName(target, s.opts.Names) + ")"
	default:
		value = d.ModeValues[modeID]
	}
	return fmt.Sprintf("  --%s: %s;", PropertyName(d.Name, s.opts.Names), value)
}

func (s *Serializer) header(root, theme *variables.Collection, displays []Display, rootID, themeID string) ([]string, error) {
	tmpl, err := template.New("header").Funcs(sprig.FuncMap()).Parse(s.opts.Header)
	if err != nil {
		return nil, fmt.Errorf("unable to parse header template: %w", err)
	}

	values := HeaderValues{}
	if root != nil {
		values.Root = root.Name
	}
	if theme != nil {
		values.Theme = theme.Name
		for _, m := range theme.Modes {
			values.Modes = append(values.Modes, m.Name)
		}
	}
	for _, d := range displays {
		if d.CollectionID == rootID || d.CollectionID == themeID {
			values.Variables++
		}
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return nil, fmt.Errorf("unable to expand header template: %w", err)
	}
	text := strings.TrimSpace(buf.String())
	if text == "" {
		return nil, nil
	}
	// comment terminator would end header early
	text = strings.ReplaceAll(text, "*/", "* /")

	lines := []string{"/*"}
	for l := range strings.SplitSeq(text, "\n") {
		lines = append(lines, " * "+strings.TrimRight(l, " \t"))
	}
	return append(lines, " */", ""), nil
}

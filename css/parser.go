// Package css reads CSS custom property text into a transient graph of
// collections, modes and raw declarations.
package css

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

var (
	reCollection  = regexp.MustCompile(`Collection name:\s*([^*]+)`)
	reMode        = regexp.MustCompile(`Mode:\s*([^*]+)`)
	reDeclaration = regexp.MustCompile(`--([^:]+):\s*([^;]+);?`)
	reStructure   = regexp.MustCompile(`(?m)^\s*/\*.*Collection name:`)
	reThemeSel    = regexp.MustCompile(`^\[\s*data-theme\s*=\s*["']?([^"'\]]*?)["']?\s*\]$`)
)

// Parser parses CSS text into Graph.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// HasStructureComments reports whether text carries "Collection name:"
// comments.
func HasStructureComments(data []byte) bool {
	return reStructure.Match(data)
}

// Parse reads text line by line. Collections and modes are delimited by
// structural comments:
//
//	/* Collection name: Theme */
//	/* Mode: Light */
//	--bg-primary: #ffffff;
//
// Mode name stays active across collection comments, so declarations after
// a new collection comment go to its mode of the same name. Repeated mode
// comment starts that mode over. Declarations seen before any collection
// and mode are dropped, all other lines are ignored. The optional source parameter identifies what's being
// parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Graph {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	g := &Graph{}
	var (
		collection *Collection
		mode       string
		dropped    int
	)

	for line := range strings.SplitSeq(string(data), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "/*") && strings.Contains(line, "Collection name:"):
			name := firstGroup(reCollection, line)
			if name == "" {
				continue
			}
			collection = &Collection{Name: name}
			g.Collections = append(g.Collections, collection)

		case strings.HasPrefix(line, "/*") && strings.Contains(line, "Mode:"):
			name := firstGroup(reMode, line)
			if name == "" || collection == nil {
				continue
			}
			mode = name
			collection.ensureMode(name).Declarations = nil

		case strings.Contains(line, "--") && strings.Contains(line, ":"):
			if collection == nil || mode == "" {
				dropped++
				continue
			}
			m := reDeclaration.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			block := collection.ensureMode(mode)
			block.Declarations = append(block.Declarations, Declaration{
				Name:  strings.TrimSpace(m[1]),
				Value: strings.TrimSpace(m[2]),
			})
		}
	}

	if dropped > 0 {
		g.Warnings = append(g.Warnings, "declarations outside of collection or mode were ignored")
		p.log.Debug("Declarations outside of collection or mode ignored", zap.Int("count", dropped))
	}
	p.log.Debug("Parsed CSS", zap.Int("collections", len(g.Collections)), zap.Int("declarations", g.Len()))
	return g
}

func firstGroup(re *regexp.Regexp, line string) string {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// BlockOptions names collections and default mode used by ParseBlocks.
type BlockOptions struct {
	RootCollection  string
	ThemeCollection string
	DefaultMode     string
}

// ParseBlocks reads stylesheet without structural comments: ":root"
// declarations go to the root collection default mode and every
// [data-theme="x"] block becomes mode "x" of the theme collection. Other
// rules are skipped.
func (p *Parser) ParseBlocks(data []byte, opts BlockOptions, source ...string) *Graph {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS blocks", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	g := &Graph{}
	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	for {
		gt, _, raw := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
				g.Warnings = append(g.Warnings, "parse error: "+err.Error())
				continue
			}
			p.log.Debug("Parsed CSS blocks", zap.Int("collections", len(g.Collections)), zap.Int("declarations", g.Len()))
			return g

		case css.BeginAtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(raw)))
			g.Warnings = append(g.Warnings, "unsupported at-rule: "+string(raw))
			if !p.skipAtRuleBlock(parser) {
				return g
			}

		case css.BeginRulesetGrammar:
			var blocks []*ModeBlock
			for _, sel := range parseSelectors(parser.Values()) {
				if b := p.blockFor(g, sel, opts); b != nil {
					blocks = append(blocks, b)
				}
			}
			if !p.parseCustomProperties(parser, g, blocks) {
				return g
			}
		}
	}
}

// blockFor maps selector to mode block, nil for unsupported selectors.
func (p *Parser) blockFor(g *Graph, sel string, opts BlockOptions) *ModeBlock {
	if sel == ":root" {
		return g.ensureCollection(opts.RootCollection).ensureMode(opts.DefaultMode)
	}
	if m := reThemeSel.FindStringSubmatch(sel); m != nil && strings.TrimSpace(m[1]) != "" {
		return g.ensureCollection(opts.ThemeCollection).ensureMode(strings.TrimSpace(m[1]))
	}
	g.Warnings = append(g.Warnings, "unsupported selector: "+sel)
	p.log.Debug("Skipping selector", zap.String("selector", sel))
	return nil
}

// parseSelectors builds selector strings from ruleset prelude tokens.
func parseSelectors(tokens []css.Token) []string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseCustomProperties consumes ruleset body. Returns false when input
// ended.
func (p *Parser) parseCustomProperties(parser *css.Parser, g *Graph, blocks []*ModeBlock) bool {
	for {
		gt, _, raw := parser.Next()

		switch gt {
		case css.EndRulesetGrammar:
			return true

		case css.ErrorGrammar:
			err := parser.Err()
			if err == nil || errors.Is(err, io.EOF) {
				return false
			}
			p.log.Debug("CSS parse error", zap.Error(err))
			g.Warnings = append(g.Warnings, "parse error: "+err.Error())

		case css.CustomPropertyGrammar:
			name := strings.TrimPrefix(string(raw), "--")
			var value string
			if vals := parser.Values(); len(vals) > 0 {
				value = strings.TrimSpace(string(vals[0].Data))
			}
			for _, b := range blocks {
				b.Declarations = append(b.Declarations, Declaration{Name: name, Value: value})
			}

		case css.DeclarationGrammar:
			p.log.Debug("Skipping regular property", zap.String("property", string(raw)))
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
// Returns false when input ended.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) bool {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err == nil || errors.Is(err, io.EOF) {
				return false
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
	return true
}

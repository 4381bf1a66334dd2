package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"varcss/config"
	"varcss/exporter"
	"varcss/state"
	"varcss/variables"
)

func Export(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")

	dst := cmd.Args().Get(0)
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	root, theme := env.Cfg.Import.RootCollection, env.Cfg.Import.ThemeCollection
	if cmd.IsSet("root") {
		root = cmd.String("root")
	}
	if cmd.IsSet("theme") {
		theme = cmd.String("theme")
	}
	useCodeSyntax := env.Cfg.Export.UseCodeSyntax
	if cmd.IsSet("code-syntax") {
		useCodeSyntax = cmd.Bool("code-syntax")
	}

	st, err := openStore(env)
	if err != nil {
		return err
	}

	text, err := exportCSS(ctx, env, st, root, theme, cmd.IsSet("theme"), useCodeSyntax, log)
	if err != nil {
		return err
	}
	out := outputPath(dst, root)
	if env.Rpt != nil {
		name := out
		if len(name) == 0 {
			name = config.ExportFileName(root)
		}
		env.Rpt.StoreExport(name, []byte(text))
	}
	return writeOutput(out, []byte(text), os.Stdout, log)
}

// outputPath names output file after root collection when dst is an
// existing directory.
func outputPath(dst, root string) string {
	if len(dst) == 0 {
		return dst
	}
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		return filepath.Join(dst, config.ExportFileName(root))
	}
	return dst
}

// exportCSS resolves collection names and serializes them. Missing theme
// collection is only an error when it was explicitly requested.
func exportCSS(ctx context.Context, env *state.LocalEnv, st variables.Store, root, theme string, themeRequired, useCodeSyntax bool, log *zap.Logger) (string, error) {
	colls, err := exporter.Collections(ctx, st)
	if err != nil {
		return "", err
	}

	rootColl, ok := variables.FindCollection(colls, root)
	if !ok {
		return "", notFound("root collection", root)
	}
	var themeID string
	if themeColl, ok := variables.FindCollection(colls, theme); ok {
		themeID = themeColl.ID
	} else if themeRequired {
		return "", notFound("theme collection", theme)
	} else {
		log.Debug("Theme collection not found, skipping theme blocks", zap.String("collection", theme))
	}

	log.Info("Exporting", zap.String("root", root), zap.String("theme", theme), zap.Bool("code-syntax", useCodeSyntax))
	return exporter.NewSerializer(st, exportOptions(env.Cfg), log).BuildCSS(ctx, rootColl.ID, themeID, useCodeSyntax)
}

// writeOutput writes data to file dst or to w when dst is empty.
func writeOutput(dst string, data []byte, w io.Writer, log *zap.Logger) error {
	if len(dst) == 0 {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("unable to write '%s': %w", dst, err)
	}
	log.Info("Output written", zap.String("file", dst), zap.Int("bytes", len(data)))
	return nil
}

func List(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	st, err := openStore(env)
	if err != nil {
		return err
	}
	return listVariables(ctx, env, st, os.Stdout)
}

// listVariables prints every collection as a table: variable name, type and
// value per mode.
func listVariables(ctx context.Context, env *state.LocalEnv, st variables.Store, out io.Writer) error {
	colls, err := exporter.Collections(ctx, st)
	if err != nil {
		return err
	}
	displays, err := exporter.Scan(ctx, st)
	if err != nil {
		return err
	}
	exporter.SortCollections(colls, env.Cfg.Export.Order)
	exporter.SortDisplays(displays, env.Cfg.Export.Order)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, c := range colls {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Collection %q\n", c.Name)

		header := []string{"NAME", "TYPE"}
		for _, m := range c.Modes {
			header = append(header, strings.ToUpper(m.Name))
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))

		for _, d := range displays {
			if d.CollectionID != c.ID {
				continue
			}
			row := []string{d.Name, d.Type.String()}
			for _, m := range c.Modes {
				v, ok := d.ModeValues[m.ID]
				if !ok {
					v = "-"
				}
				row = append(row, v)
			}
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
	}
	return w.Flush()
}

func Syntax(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("syntax")

	if cmd.Args().Len() != 3 {
		return errors.New("collection, variable and code syntax must be specified")
	}
	args := cmd.Args().Slice()

	st, err := openStore(env)
	if err != nil {
		return err
	}
	if err := setCodeSyntax(ctx, st, args[0], args[1], args[2]); err != nil {
		return err
	}
	log.Info("Code syntax set", zap.String("collection", args[0]), zap.String("variable", args[1]), zap.String("syntax", args[2]))
	return nil
}

// setCodeSyntax finds variable by collection and variable names.
func setCodeSyntax(ctx context.Context, st variables.Store, collection, name, syntax string) error {
	colls, err := st.Collections(ctx)
	if err != nil {
		return fmt.Errorf("unable to retrieve collections: %w", err)
	}
	c, ok := variables.FindCollection(colls, collection)
	if !ok {
		return notFound("collection", collection)
	}
	vars, err := st.Variables(ctx)
	if err != nil {
		return fmt.Errorf("unable to retrieve variables: %w", err)
	}
	v, ok := variables.FindVariable(vars, name, c.ID)
	if !ok {
		return notFound("variable", name)
	}
	return st.SetCodeSyntax(ctx, v.ID, syntax)
}

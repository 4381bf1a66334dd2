// Package convert implements command line actions: importing stylesheets
// into variable document, exporting document as CSS, listing and editing
// variables and serving UI requests.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"varcss/config"
	"varcss/css"
	"varcss/exporter"
	"varcss/importer"
	"varcss/plugin"
	"varcss/state"
	"varcss/variables"
)

// blockOptions names collections used for stylesheets without structural
// comments.
func blockOptions(cfg *config.Config) css.BlockOptions {
	return css.BlockOptions{
		RootCollection:  cfg.Import.RootCollection,
		ThemeCollection: cfg.Import.ThemeCollection,
		DefaultMode:     cfg.Import.DefaultMode,
	}
}

func exportOptions(cfg *config.Config) exporter.Options {
	return exporter.Options{
		Names:    cfg.Export.Names,
		Order:    cfg.Export.Order,
		Annotate: cfg.Export.Annotate,
		Header:   cfg.Export.HeaderTemplate,
	}
}

// Settings builds UI handler settings out of configuration.
func Settings(cfg *config.Config) plugin.Settings {
	return plugin.Settings{
		Format: cfg.Import.Format,
		Blocks: blockOptions(cfg),
		Export: exportOptions(cfg),
	}
}

// openStore opens document specified by configuration.
func openStore(env *state.LocalEnv) (variables.Store, error) {
	return env.OpenStore(env.Cfg.Store.Path, env.Cfg.Store.ReadOnly)
}

func Import(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("import")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	// Since neither zip "standard" nor CSS define encoding we may need to
	// force archaic code page for old files
	env.CodePage = codePage(cmd.String("force-cp"), log)

	st, err := openStore(env)
	if err != nil {
		return err
	}

	log.Info("Import starting", zap.String("source", src), zap.String("document", env.Cfg.Store.Path))
	defer func(start time.Time) {
		log.Info("Import completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	_, err = importSources(ctx, env, st, src, log)
	return err
}

// importSources parses all stylesheets found under src into single graph and
// builds it in the store.
func importSources(ctx context.Context, env *state.LocalEnv, st variables.Store, src string, log *zap.Logger) (*importer.Report, error) {
	sources, err := collectSources(ctx, src, env.CodePage, log)
	if err != nil {
		return nil, err
	}

	parser := css.NewParser(log)
	g := &css.Graph{}
	for _, s := range sources {
		g.Merge(parser.ParseAs(s.data, env.Cfg.Import.Format, blockOptions(env.Cfg), s.name))
		if env.Rpt != nil {
			env.Rpt.StoreSource(s.name, s.data)
		}
	}
	for _, w := range g.Warnings {
		log.Warn("Stylesheet", zap.String("warning", w))
	}
	if g.Len() == 0 {
		log.Warn("No variable declarations found", zap.Int("files", len(sources)))
	}

	rpt, err := importer.NewBuilder(st, log).Build(ctx, g)
	if rpt != nil {
		log.Info("Variables imported",
			zap.Int("files", len(sources)),
			zap.Int("collections", rpt.CollectionsCreated),
			zap.Int("modes", rpt.ModesCreated),
			zap.Int("variables", rpt.VariablesCreated),
			zap.Int("values", rpt.ValuesSet),
			zap.Int("warnings", len(rpt.Warnings)))
	}
	return rpt, err
}

func Serve(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("serve")

	var (
		st  variables.Store
		err error
	)
	if cmd.Bool("scratch") {
		// nothing is persisted
		st, err = env.OpenStore("", false)
	} else {
		st, err = openStore(env)
	}
	if err != nil {
		return err
	}

	log.Info("Serving requests", zap.String("document", env.StorePath))
	return plugin.NewHandler(st, Settings(env.Cfg), log).Serve(ctx, os.Stdin, os.Stdout)
}

// notFound formats failed lookup by name.
func notFound(what, name string) error {
	return fmt.Errorf("%s %q: %w", what, name, variables.ErrNotFound)
}

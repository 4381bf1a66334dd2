package plugin

import (
	"context"

	"go.uber.org/zap"

	"varcss/common"
	"varcss/css"
	"varcss/exporter"
	"varcss/importer"
	"varcss/variables"
)

// Settings configure import and export performed on behalf of UI.
type Settings struct {
	Format common.ImportFormat
	Blocks css.BlockOptions
	Export exporter.Options
}

// Handler dispatches requests. Failures never escape: they are turned into
// outbound error or status messages.
type Handler struct {
	store    variables.Store
	settings Settings
	log      *zap.Logger
}

// NewHandler returns handler operating on host store.
func NewHandler(store variables.Store, settings Settings, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, settings: settings, log: log.Named("plugin")}
}

// Init produces messages to be sent when UI starts.
func (h *Handler) Init(ctx context.Context) []any {
	var out []any

	vars, err := exporter.Scan(ctx, h.store)
	if err != nil {
		h.log.Error("Unable to scan variables", zap.Error(err))
		out = append(out, newError("Error scanning variables by mode: "+err.Error()))
	}
	colls, err := exporter.Collections(ctx, h.store)
	if err != nil {
		h.log.Error("Unable to list collections", zap.Error(err))
		out = append(out, newError("Error retrieving collections: "+err.Error()))
	}
	exporter.SortDisplays(vars, h.settings.Export.Order)
	exporter.SortCollections(colls, h.settings.Export.Order)
	return append(out, newInitData(vars, colls))
}

// Handle processes single request, done is set when UI asked to close.
func (h *Handler) Handle(ctx context.Context, req Request) (out []any, done bool) {
	h.log.Debug("Request", zap.String("type", req.Type))

	switch req.Type {
	case KindCreateCSS:
		s := exporter.NewSerializer(h.store, h.settings.Export, h.log)
		text, err := s.BuildCSS(ctx, req.SelectedRoot, req.SelectedTheme, req.UseCodeSyntax)
		if err != nil {
			h.log.Error("Unable to build CSS", zap.Error(err))
			return []any{newError(err.Error())}, false
		}
		return []any{DisplayCSS{Type: KindDisplayCSS, CSS: text}}, false

	case KindParseCSS:
		g := css.NewParser(h.log).ParseAs([]byte(req.CSSText), h.settings.Format, h.settings.Blocks, "ui")
		for _, w := range g.Warnings {
			h.log.Warn("CSS", zap.String("warning", w))
		}
		rpt, err := importer.NewBuilder(h.store, h.log).Build(ctx, g)
		if err != nil {
			h.log.Error("Import failed", zap.Error(err))
			return []any{newStatus(StatusError, "Error: "+err.Error())}, false
		}
		h.log.Info("Variables imported",
			zap.Int("created", rpt.VariablesCreated), zap.Int("values", rpt.ValuesSet), zap.Int("warnings", len(rpt.Warnings)))
		out = append(out, newStatus(StatusSuccess, "Variables created successfully!"))
		return append(out, h.Init(ctx)...), false

	case KindReload:
		return h.Init(ctx), false

	case KindClose:
		return nil, true

	default:
		h.log.Warn("Unknown request ignored", zap.String("type", req.Type))
		return nil, false
	}
}

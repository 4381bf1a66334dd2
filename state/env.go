// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"varcss/config"
	"varcss/store"
	"varcss/variables"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Store is the variable store all commands operate on, opened lazily by
	// OpenStore.
	Store variables.Store
	// StorePath is the path Store was opened from, empty for in-memory
	// stores.
	StorePath string

	// used by import subcommand
	CodePage encoding.Encoding

	start         time.Time
	restoreStdLog func()
	closeStore    func() error
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}

// OpenStore opens document database at path. Empty path selects in-memory
// store which lives as long as the process. Subsequent calls return already
// opened store.
func (e *LocalEnv) OpenStore(path string, readOnly bool) (variables.Store, error) {
	if e.Store != nil {
		return e.Store, nil
	}
	if path == "" {
		mem := store.NewMemory()
		mem.ReadOnly = readOnly
		e.Store = mem
		return mem, nil
	}
	db, err := store.OpenSQLite(path, readOnly)
	if err != nil {
		return nil, err
	}
	e.Store, e.StorePath, e.closeStore = db, path, db.Close
	if e.Log != nil {
		e.Log.Debug("Document opened", zap.String("path", path), zap.Bool("read-only", readOnly))
	}
	return db, nil
}

// CloseStore releases store if it was opened. Safe to call multiple times.
func (e *LocalEnv) CloseStore() error {
	closer := e.closeStore
	e.Store, e.StorePath, e.closeStore = nil, "", nil
	if closer == nil {
		return nil
	}
	return closer()
}

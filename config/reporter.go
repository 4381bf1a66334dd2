package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"varcss/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty debug report. When destination cannot be created
// report goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{file: f, entries: make(map[string]entry)}, nil
}

type entryKind int

const (
	// file is read when report is closed, absent files are skipped
	entryFile entryKind = iota
	entryData
	// file content captured at the time of the call
	entrySnapshot
)

func (k entryKind) String() string {
	switch k {
	case entryData:
		return "data"
	case entrySnapshot:
		return "snapshot"
	default:
		return "file"
	}
}

type entry struct {
	kind   entryKind
	source string
	path   string
	data   []byte
	stamp  time.Time
}

// Report collects artifacts of a single run (configuration, logs, import
// sources, export output, variable document) into zip archive. Not to be
// used concurrently.
type Report struct {
	file    *os.File
	entries map[string]entry
	// holds snapshots, removed on Close
	snapDir string
}

// Close writes the archive. Nil report means no report was requested.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.finalize()
	err = multierr.Append(err, r.file.Close())
	if r.snapDir != "" {
		err = multierr.Append(err, os.RemoveAll(r.snapDir))
		r.snapDir = ""
	}
	return err
}

// Name returns absolute name of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// add keeps every stored artifact: repeated names get "~N" suffix.
func (r *Report) add(name string, e entry) string {
	if r.entries == nil {
		r.entries = make(map[string]entry)
	}
	if e.stamp.IsZero() {
		e.stamp = time.Now()
	}
	unique := name
	for n := 2; ; n++ {
		if _, exists := r.entries[unique]; !exists {
			break
		}
		unique = fmt.Sprintf("%s~%d", name, n)
	}
	r.entries[unique] = e
	return unique
}

// Store references file to be read when report is closed, this is how logs
// get into report after they are synced.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	e := entry{kind: entryFile, source: path, path: path}
	if p, err := filepath.Abs(path); err == nil {
		e.path = p
	}
	r.add(name, e)
}

// StoreData puts data into report under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.add(name, entry{kind: entryData, data: data})
}

// StoreCopy takes snapshot of regular file, later changes to it do not
// affect the report.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}
	src, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("unable to snapshot %s: not a regular file", path)
	}
	if r.snapDir == "" {
		if r.snapDir, err = os.MkdirTemp("", misc.GetAppName()+"-r-"); err != nil {
			return err
		}
	}
	dst := filepath.Join(r.snapDir, fmt.Sprintf("%d-%s", len(r.entries), filepath.Base(src)))
	if err := snapshot(dst, src, info.ModTime()); err != nil {
		return err
	}
	r.add(name, entry{kind: entrySnapshot, source: path, path: dst, stamp: info.ModTime()})
	return nil
}

// StoreConfig saves processed configuration.
func (r *Report) StoreConfig(name string, data []byte) {
	r.StoreData("config/"+filepath.Base(name), data)
}

// StoreSource saves decoded import text, name is relative to import source.
func (r *Report) StoreSource(name string, data []byte) {
	r.StoreData("import/"+filepath.ToSlash(name), data)
}

// StoreExport saves produced stylesheet.
func (r *Report) StoreExport(name string, data []byte) {
	r.StoreData("export/"+filepath.Base(name), data)
}

// StoreDocument snapshots variable document, it should be closed by then.
func (r *Report) StoreDocument(path string) error {
	return r.StoreCopy("document/"+filepath.Base(path), path)
}

func snapshot(dst, src string, modTime time.Time) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
		if err == nil {
			err = os.Chtimes(dst, modTime, modTime)
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

func (r *Report) names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })
	return names
}

// finalize writes MANIFEST followed by entries in manifest order.
func (r *Report) finalize() (err error) {
	arc := zip.NewWriter(r.file)
	defer func() {
		err = multierr.Append(err, arc.Close())
	}()

	names := r.names()

	var manifest bytes.Buffer
	for _, name := range names {
		e := r.entries[name]
		source := e.source
		if len(source) == 0 {
			source = "-"
		}
		fmt.Fprintf(&manifest, "%s\t%s\t%s\t%s\n", e.stamp.UTC().Format(time.RFC3339), e.kind, name, source)
	}
	if err := writeEntry(arc, "MANIFEST", time.Now(), &manifest); err != nil {
		return err
	}

	for _, name := range names {
		e := r.entries[name]
		if e.kind == entryData {
			if err := writeEntry(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}
		info, err := os.Stat(e.path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if err := writeFileEntry(arc, name, e.path, info.ModTime()); err != nil {
			return err
		}
	}
	return nil
}

func writeFileEntry(dst *zip.Writer, name, path string, t time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeEntry(dst, name, t, f)
}

func writeEntry(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

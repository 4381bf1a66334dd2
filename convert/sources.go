package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"varcss/archive"
)

// @charset must be the very first thing in a stylesheet
var reCharset = regexp.MustCompile(`^@charset\s+"([^"]+)"\s*;`)

// source is a single stylesheet to be imported.
type source struct {
	// name is path relative to what was specified on command line, for
	// files it is base name
	name string
	data []byte
}

// collectSources finds stylesheets under src which could be a file, a
// directory, an archive or a path inside archive. Unreadable individual
// files are skipped with error logged.
func collectSources(ctx context.Context, src string, cp encoding.Encoding, log *zap.Logger) ([]source, error) {
	var (
		head, tail string
		res        []source
	)
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if res, err = collectDir(ctx, head, cp, log); err != nil {
				return nil, fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if res, err = collectArchive(ctx, head, filepath.ToSlash(tail), cp, log); err != nil {
				return nil, fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		sheet, enc, err := isStylesheetFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check file type: %w", err)
		}
		if sheet && len(tail) == 0 {
			data, err := readFile(head, enc, cp)
			if err != nil {
				return nil, err
			}
			res = append(res, source{name: filepath.Base(head), data: data})
			break
		}
		return nil, fmt.Errorf("input was not recognized as stylesheet with custom properties (%s)", head)
	}
	if len(head) == 0 {
		return nil, fmt.Errorf("input source was not found (%s)", src)
	}
	return res, nil
}

// collectDir walks directory tree finding stylesheets. Archives inside the
// directory are looked into as well.
func collectDir(ctx context.Context, dir string, cp encoding.Encoding, log *zap.Logger) (res []source, err error) {
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			found, err := collectArchive(ctx, path, "", cp, log)
			if err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
				return nil
			}
			prefix := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
			for _, s := range found {
				res = append(res, source{name: filepath.Join(prefix, s.name), data: s.data})
			}
			return nil
		}

		sheet, enc, err := isStylesheetFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !sheet {
			log.Debug("Skipping file, not recognized as stylesheet or archive", zap.String("file", path))
			return nil
		}

		data, err := readFile(path, enc, cp)
		if err != nil {
			log.Error("Unable to read file", zap.String("file", path), zap.Error(err))
			return nil
		}
		res = append(res, source{name: strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator)), data: data})
		return nil
	})
	if err == nil && len(res) == 0 {
		log.Debug("Nothing to import", zap.String("dir", dir))
	}
	return res, err
}

// collectArchive reads stylesheets inside archive located under pathIn.
func collectArchive(ctx context.Context, path, pathIn string, cp encoding.Encoding, log *zap.Logger) (res []source, err error) {
	match := func(name string) bool {
		return archive.Stylesheets(name) && (pathIn == "" || name == pathIn || strings.HasPrefix(name, strings.TrimSuffix(pathIn, "/")+"/"))
	}
	err = archive.Walk(path, match, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		sheet, enc, err := isStylesheetInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", arc), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if !sheet {
			log.Debug("Skipping file, not recognized as stylesheet", zap.String("archive", arc), zap.String("file", f.FileHeader.Name))
			return nil
		}

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to read file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		data, err := readText(r, enc, cp)
		if err != nil {
			log.Error("Unable to read file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}

		name := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(name); err == nil {
				name = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", name), zap.Error(err))
			}
		}
		res = append(res, source{name: name, data: data})
		return nil
	})
	if err == nil && len(res) == 0 {
		if pathIn != "" {
			return nil, fmt.Errorf("no stylesheets found in archive under %q", pathIn)
		}
		log.Debug("Nothing to import", zap.String("archive", path))
	}
	return res, err
}

func readFile(path string, enc srcEncoding, cp encoding.Encoding) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readText(f, enc, cp)
}

// readText returns UTF-8 text. Files without BOM which are not valid UTF-8
// are decoded using forced code page when one is specified or using
// encoding named by leading @charset rule.
func readText(r io.Reader, enc srcEncoding, cp encoding.Encoding) ([]byte, error) {
	data, err := io.ReadAll(selectReader(r, enc))
	if err != nil {
		return nil, err
	}
	if enc != encUnknown || utf8.Valid(data) {
		return data, nil
	}
	if cp != nil {
		return cp.NewDecoder().Bytes(data)
	}
	if m := reCharset.FindSubmatch(data); m != nil {
		if e, _ := charset.Lookup(string(m[1])); e != nil {
			return e.NewDecoder().Bytes(data)
		}
		return nil, fmt.Errorf("unknown @charset %q, use --force-cp to specify text encoding", m[1])
	}
	return nil, errors.New("text is not valid UTF-8, use --force-cp to specify its encoding")
}

// codePage resolves IANA character set name.
func codePage(name string, log *zap.Logger) encoding.Encoding {
	if len(name) == 0 {
		return nil
	}
	cp, err := ianaindex.IANA.Encoding(name)
	if err != nil || cp == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", name), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(cp)
	log.Debug("Forcefully converting all non UTF-8 text and file names in archives", zap.String("charset", n))
	return cp
}

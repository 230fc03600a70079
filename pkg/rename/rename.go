// Package rename moves and renames the per-variant image files that sit next
// to the datasets. Every operation reports what it did and can run as a dry run.
package rename

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/langgarden/pkg/constants"
	"github.com/agentstation/langgarden/pkg/errors"
	"github.com/agentstation/langgarden/pkg/logging"
)

const (
	standardSuffix = "_" + constants.StandardVariant
	doubleStandard = standardSuffix + standardSuffix
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Move is one rename or copy.
type Move struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Skip is a file left alone.
type Skip struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Report summarizes one operation. In a dry run Renamed lists the moves that
// would have been made.
type Report struct {
	DryRun  bool    `json:"dry_run" yaml:"dry_run"`
	Renamed []Move  `json:"renamed" yaml:"renamed"`
	Skipped []Skip  `json:"skipped" yaml:"skipped"`
	Errors  []error `json:"-" yaml:"-"`
}

// Err joins every per-file error, or returns nil.
func (r *Report) Err() error {
	return errors.Join(r.Errors...)
}

// Summary returns a one-line description of the report.
func (r *Report) Summary() string {
	verb := "Renamed"
	if r.DryRun {
		verb = "Would rename"
	}
	return fmt.Sprintf("%s %d files, skipped %d, %d errors", verb, len(r.Renamed), len(r.Skipped), len(r.Errors))
}

func (r *Report) skip(path, reason string) {
	r.Skipped = append(r.Skipped, Skip{Path: path, Reason: reason})
}

type options struct {
	dryRun bool
	logger *zerolog.Logger
}

// Option configures an operation.
type Option func(*options)

// WithDryRun reports moves without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(o *options) { o.dryRun = dryRun }
}

// WithLogger sets the logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: logging.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// move renames from to to unless to already exists.
func (o *options) move(r *Report, from, to string) {
	if _, err := os.Stat(to); err == nil {
		r.skip(from, filepath.Base(to)+" already exists")
		return
	}
	if !o.dryRun {
		if err := os.Rename(from, to); err != nil {
			o.logger.Warn().Err(err).Str("from", from).Str("to", to).Msg("Rename failed")
			r.Errors = append(r.Errors, errors.WrapIO("rename", from, err))
			return
		}
	}
	o.logger.Debug().Str("from", from).Str("to", to).Bool("dry_run", o.dryRun).Msg("Renamed")
	r.Renamed = append(r.Renamed, Move{From: from, To: to})
}

// images lists visible image files in dir, sorted by name.
func images(dir string, exts map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "directory", ID: dir}
		}
		return nil, errors.WrapIO("read", dir, err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(name))] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// StandardSuffix renames every image in dir to "<stem>_standard.png". Files
// whose stem already ends in "_standard" are skipped.
func StandardSuffix(dir string, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	names, err := images(dir, imageExtensions)
	if err != nil {
		return nil, err
	}

	r := &Report{DryRun: o.dryRun}
	for _, name := range names {
		from := filepath.Join(dir, name)
		s := stem(name)
		if strings.HasSuffix(s, standardSuffix) {
			r.skip(from, "already has "+standardSuffix+" suffix")
			continue
		}
		o.move(r, from, filepath.Join(dir, s+standardSuffix+".png"))
	}
	return r, nil
}

// FixDoubleStandard renames "*_standard_standard.png" to "*_standard.png".
func FixDoubleStandard(dir string, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	names, err := images(dir, map[string]bool{".png": true})
	if err != nil {
		return nil, err
	}

	r := &Report{DryRun: o.dryRun}
	for _, name := range names {
		s := stem(name)
		if !strings.HasSuffix(s, doubleStandard) {
			continue
		}
		fixed := strings.Replace(s, doubleStandard, standardSuffix, 1)
		o.move(r, filepath.Join(dir, name), filepath.Join(dir, fixed+".png"))
	}
	return r, nil
}

// Organize copies the first image of each visible subfolder of src to
// "<dst>/<subfolder>.png". Subfolders without images are skipped.
func Organize(src, dst string, opts ...Option) (*Report, error) {
	o := newOptions(opts)
	entries, err := os.ReadDir(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "directory", ID: src}
		}
		return nil, errors.WrapIO("read", src, err)
	}
	if !o.dryRun {
		if err := os.MkdirAll(dst, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", dst, err)
		}
	}

	r := &Report{DryRun: o.dryRun}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		sub := filepath.Join(src, e.Name())
		names, err := images(sub, imageExtensions)
		if err != nil {
			r.Errors = append(r.Errors, err)
			continue
		}
		if len(names) == 0 {
			r.skip(sub, "no images")
			continue
		}
		if len(names) > 1 {
			o.logger.Warn().Str("folder", e.Name()).Str("using", names[0]).Msg("Multiple images found")
		}

		from := filepath.Join(sub, names[0])
		to := filepath.Join(dst, e.Name()+".png")
		if !o.dryRun {
			if err := copyFile(from, to); err != nil {
				r.Errors = append(r.Errors, err)
				continue
			}
		}
		r.Renamed = append(r.Renamed, Move{From: from, To: to})
	}
	return r, nil
}

// copyFile copies the contents and modification time of from.
func copyFile(from, to string) error {
	in, err := os.Open(from) //nolint:gosec // paths come from a directory listing
	if err != nil {
		return errors.WrapIO("read", from, err)
	}
	defer in.Close() //nolint:errcheck

	info, err := in.Stat()
	if err != nil {
		return errors.WrapIO("read", from, err)
	}

	out, err := os.OpenFile(to, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions) //nolint:gosec
	if err != nil {
		return errors.WrapIO("create", to, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close() //nolint:errcheck,gosec
		return errors.WrapIO("copy", to, err)
	}
	if err := out.Close(); err != nil {
		return errors.WrapIO("write", to, err)
	}
	return errors.WrapIO("chtimes", to, os.Chtimes(to, info.ModTime(), info.ModTime()))
}

// Package builder turns a source tree of templates, assets and message
// catalogs into an output tree.
//
// A build runs in two passes over the source tree. The first pass registers
// every partial, the second renders templates and copies or minifies all
// other files. Templates may include partials from anywhere in the tree, so
// the second pass only starts once the first one has seen every file.
package builder

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/MarkoPapic/static-website-builder/messages"
	"github.com/MarkoPapic/static-website-builder/minifier"
	"github.com/MarkoPapic/static-website-builder/model"
	"github.com/MarkoPapic/static-website-builder/render"
	"github.com/adnsv/go-utils/fs"
	"github.com/google/uuid"
)

var ErrNoDirectives = errors.New("messages annotation not found")

// Issue records an output that was skipped.
type Issue struct {
	File string
	Lang string
	Err  error
}

func (i Issue) Error() string {
	if i.Lang != "" {
		return fmt.Sprintf("%s [%s]: %v", i.File, i.Lang, i.Err)
	}
	return fmt.Sprintf("%s: %v", i.File, i.Err)
}

func (i Issue) Unwrap() error {
	return i.Err
}

// Report summarizes a build.
type Report struct {
	BuildID  string
	Partials int
	Rendered int // outputs written from templates, one per language
	Copied   int
	Minified int // stylesheets and structured markup
	Ignored  int
	Skipped  int
	Issues   []Issue
	Duration time.Duration
}

// Builder runs builds for one configuration.
type Builder struct {
	cfg *model.Config
	log *slog.Logger

	Engine render.Engine

	// per-build state
	partials Partials
	dirs     map[string]struct{}
	report   *Report
}

// New creates a builder. cfg must have been normalized.
func New(cfg *model.Config, log *slog.Logger) *Builder {
	return &Builder{cfg: cfg, log: log, Engine: render.Handlebars{}}
}

// Build is a shorthand for New(cfg, log).Run().
func Build(cfg *model.Config, log *slog.Logger) (*Report, error) {
	return New(cfg, log).Run()
}

// Run clears the output directory and builds the site into it. Errors
// confined to one template and language are logged and listed in the
// report; everything else aborts the build.
func (b *Builder) Run() (*Report, error) {
	start := time.Now()
	b.report = &Report{BuildID: uuid.NewString()}
	b.partials = Partials{}
	b.dirs = map[string]struct{}{}
	log := b.log
	b.log = log.With("build", b.report.BuildID)
	defer func() { b.log = log }()

	src, out := b.cfg.SourceDir, b.cfg.OutputDir
	if err := checkSource(src); err != nil {
		return b.report, err
	}

	b.log.Info("cleaning output directory", "dir", out)
	if err := os.RemoveAll(out); err != nil {
		return b.report, err
	}
	if err := b.ensureDir(out); err != nil {
		return b.report, err
	}

	b.log.Info("registering partials", "dir", src)
	err := Walk(src, b.skip, func(fn string) error {
		_, err := b.partials.Register(model.ParsePath(fn), src, b.log)
		return err
	})
	if err != nil {
		return b.report, err
	}
	b.report.Partials = len(b.partials)

	b.log.Info("processing files", "dir", src)
	if err = Walk(src, b.skip, b.processFile); err != nil {
		return b.report, err
	}

	b.report.Duration = time.Since(start)
	b.log.Info("build finished",
		"partials", b.report.Partials,
		"rendered", b.report.Rendered,
		"copied", b.report.Copied,
		"minified", b.report.Minified,
		"ignored", b.report.Ignored,
		"skipped", b.report.Skipped,
		"duration", b.report.Duration)
	return b.report, nil
}

func checkSource(dir string) error {
	stat, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: source directory: %v", model.ErrInvalidConfig, err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("%w: source '%s' is not a directory", model.ErrInvalidConfig, dir)
	}
	return nil
}

// skip leaves out ignored entries and the output directory when it lies
// inside the source tree.
func (b *Builder) skip(fn string) bool {
	if fn == b.cfg.OutputDir {
		return true
	}
	if b.cfg.Ignored(fn) {
		b.log.Debug("ignoring", "path", fn)
		return true
	}
	return false
}

// ensureDir creates dir and its parents once per build.
func (b *Builder) ensureDir(dir string) error {
	if _, ok := b.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b.dirs[dir] = struct{}{}
	return nil
}

func (b *Builder) write(dst string, buf []byte) error {
	if err := b.ensureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	b.log.Debug("- writing", "file", dst)
	return fs.WriteFileIfChanged(dst, buf)
}

// skipOutput records an output that will not be produced.
func (b *Builder) skipOutput(pi model.PathInfo, lang string, err error) {
	b.report.Skipped++
	b.report.Issues = append(b.report.Issues, Issue{File: pi.Path(), Lang: lang, Err: err})
}

func (b *Builder) processFile(fn string) error {
	pi := model.ParsePath(fn)
	if pi.IsPartial() {
		return nil
	}

	switch model.KindOf(pi.Ext) {
	case model.KindIgnore:
		b.log.Debug("ignoring", "file", fn)
		b.report.Ignored++
		return nil

	case model.KindRender:
		return b.renderTemplate(pi)

	case model.KindStyles:
		if !b.cfg.Minify.CSS {
			return b.copyFile(pi)
		}
		return b.minifyFile(pi, minifier.CSS)

	case model.KindStructuredMarkup:
		if !b.cfg.Minify.XML {
			return b.copyFile(pi)
		}
		return b.minifyFile(pi, func(s string) (string, error) {
			return minifier.XML(s), nil
		})

	default:
		return b.copyFile(pi)
	}
}

func (b *Builder) copyFile(pi model.PathInfo) error {
	dst, err := model.OutputPath(pi, b.cfg, "", "")
	if err != nil {
		return err
	}
	b.log.Debug("copying", "from", pi.Path(), "to", dst)
	buf, err := os.ReadFile(pi.Path())
	if err != nil {
		return err
	}
	if err = b.write(dst, buf); err != nil {
		return err
	}
	b.report.Copied++
	return nil
}

// minifyFile writes the minified file under its original name. When the
// minifier rejects the input the file is copied verbatim.
func (b *Builder) minifyFile(pi model.PathInfo, minify func(string) (string, error)) error {
	src, err := os.ReadFile(pi.Path())
	if err != nil {
		return err
	}
	out, err := minify(string(src))
	if err != nil {
		b.log.Warn("cannot minify, copying instead", "file", pi.Path(), "err", err)
		return b.copyFile(pi)
	}
	dst, err := model.OutputPath(pi, b.cfg, "", "")
	if err != nil {
		return err
	}
	b.log.Debug("minifying", "from", pi.Path(), "to", dst)
	if err = b.write(dst, []byte(out)); err != nil {
		return err
	}
	b.report.Minified++
	return nil
}

// renderTemplate writes one html file per target language.
func (b *Builder) renderTemplate(pi model.PathInfo) error {
	fn := pi.Path()
	src, err := os.ReadFile(fn)
	if err != nil {
		return err
	}

	directives := model.ExtractDirectives(src)
	if len(directives) == 0 {
		b.log.Warn("messages annotation not found in template, skipping", "file", fn)
		b.skipOutput(pi, "", ErrNoDirectives)
		return nil
	}

	b.log.Debug("compiling template", "file", fn, "catalogs", model.DirectivePaths(directives))
	tpl, err := b.Engine.Compile(string(src), b.partials)
	if err != nil {
		b.log.Error("cannot compile template, skipping", "file", fn, "err", err)
		b.skipOutput(pi, "", err)
		return nil
	}

	for _, lang := range b.cfg.Targets() {
		ctx, err := messages.Resolve(directives, pi.Dir, lang)
		if errors.Is(err, messages.ErrUnresolvedPlaceholder) {
			return fmt.Errorf("%w: %s: %w", model.ErrInvalidConfig, fn, err)
		}
		if err != nil {
			b.log.Error("cannot resolve messages, skipping", "file", fn, "lang", lang, "err", err)
			b.skipOutput(pi, lang, err)
			continue
		}

		html, err := tpl.Exec(map[string]any(ctx))
		if err != nil {
			b.log.Error("cannot render template, skipping", "file", fn, "lang", lang, "err", err)
			b.skipOutput(pi, lang, err)
			continue
		}
		if b.cfg.Minify.HTML {
			html = minifier.HTML(html)
		}

		dst, err := model.OutputPath(pi, b.cfg, lang, model.RenderedExt)
		if err != nil {
			return err
		}
		if err = b.write(dst, []byte(html)); err != nil {
			return err
		}
		b.report.Rendered++
	}
	return nil
}

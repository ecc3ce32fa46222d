// Package site drives whole-corpus translation runs. A Runner walks a source
// tree, translates every HTML document into a parallel output tree, mirrors
// all other files verbatim, cross-links the document pairs and writes a CSV
// report of what it did.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/sitetrans"
	"github.com/ZaguanLabs/sitetrans/annotate"
	"github.com/ZaguanLabs/sitetrans/cache"
	"github.com/ZaguanLabs/sitetrans/processor"
)

// DefaultReportName is the report file written into the output root.
const DefaultReportName = "translation_report.csv"

// Config holds the parameters of a corpus run.
type Config struct {
	SourceRoot     string // root of the source-language corpus (required)
	OutputRoot     string // defaults to SourceRoot/<locale dir>
	SourceLang     string // e.g. "ru"
	TargetLang     string // e.g. "uz"
	LocaleDir      string // output subdirectory name, defaults to the target base code
	ReportName     string // defaults to DefaultReportName
	AnnotateSource bool   // also annotate source documents in place
	Clean          bool   // remove the output root before running
}

// Runner executes one corpus translation pass.
type Runner struct {
	cfg        Config
	translator *sitetrans.Translator
	annotator  *annotate.Annotator
	store      sitetrans.TranslationCache
	logger     *slog.Logger
}

// Option is a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithCache hands the runner the translation store so it can persist it when
// the run finishes. Pass the same store the translator was built with.
func WithCache(store sitetrans.TranslationCache) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// NewRunner creates a Runner. Unset optional config fields are filled with
// their defaults.
func NewRunner(cfg Config, translator *sitetrans.Translator, opts ...Option) (*Runner, error) {
	if cfg.SourceRoot == "" {
		return nil, errors.New("site: source root is required")
	}
	if translator == nil {
		return nil, errors.New("site: translator is required")
	}

	if cfg.LocaleDir == "" {
		cfg.LocaleDir = sitetrans.BaseLang(cfg.TargetLang)
	}
	if cfg.OutputRoot == "" {
		cfg.OutputRoot = filepath.Join(cfg.SourceRoot, cfg.LocaleDir)
	}
	if cfg.ReportName == "" {
		cfg.ReportName = DefaultReportName
	}

	r := &Runner{
		cfg:        cfg,
		translator: translator,
		annotator:  annotate.New(cfg.SourceLang, cfg.TargetLang, cfg.LocaleDir),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Result summarizes a finished run.
type Result struct {
	Translated int             // HTML documents translated
	Mirrored   int             // other files copied verbatim
	Annotated  int             // source documents annotated in place
	Skipped    int             // assets that could not be copied
	Stats      sitetrans.Stats // text units across all documents
	ReportPath string
}

// Run walks the source root once. Each HTML document is translated from its
// unmodified on-disk content and written under the output root; everything
// else is mirrored byte for byte. The output root itself is never descended
// into, so reruns with the output nested inside the source cannot recurse.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	srcRoot, err := filepath.Abs(r.cfg.SourceRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving source root: %w", err)
	}
	outRoot, err := filepath.Abs(r.cfg.OutputRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving output root: %w", err)
	}
	if outRoot == srcRoot {
		return nil, errors.New("site: output root equals source root")
	}

	if r.cfg.Clean {
		if err := os.RemoveAll(outRoot); err != nil {
			return nil, fmt.Errorf("cleaning output root: %w", err)
		}
		r.logger.Info("cleaned output root", "path", outRoot)
	}

	result := &Result{}
	report := &Report{}

	walkErr := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == outRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if IsHTML(path) {
			return r.processHTML(ctx, path, rel, outRoot, report, result)
		}
		return r.mirror(path, rel, outRoot, result)
	})
	if walkErr != nil {
		return result, walkErr
	}

	reportPath := filepath.Join(outRoot, r.cfg.ReportName)
	if err := report.WriteFile(reportPath); err != nil {
		return result, err
	}
	result.ReportPath = reportPath

	if err := r.persistCache(); err != nil {
		return result, err
	}

	r.logger.Info("run complete",
		"translated", result.Translated,
		"mirrored", result.Mirrored,
		"annotated", result.Annotated,
		"skipped", result.Skipped,
		"unique_texts", result.Stats.Unique,
		"cached", result.Stats.Cached,
		"requested", result.Stats.Translated,
		"report", reportPath)

	return result, nil
}

// processHTML translates one document and writes it to the output tree. The
// translation parse always reads the file as it sits on disk, before any
// source-side annotation of this run touches it.
func (r *Runner) processHTML(ctx context.Context, path, rel, outRoot string, report *Report, result *Result) error {
	doc, err := processor.ParseFile(path)
	if err != nil {
		return err
	}

	units := doc.ExtractUnits()
	finals, stats, err := r.translator.TranslateUnits(ctx, units)
	if err != nil {
		return fmt.Errorf("translating %s: %w", rel, err)
	}
	result.Stats.Add(stats)

	doc.Apply(units, finals)
	r.annotator.AnnotateOutput(doc, rel)

	out, err := doc.Render()
	if err != nil {
		return err
	}

	dst := filepath.Join(outRoot, filepath.FromSlash(rel))
	if err := writeFile(dst, []byte(out)); err != nil {
		return err
	}

	texts, attrs, metas := countKinds(units)
	report.Add(Record{
		RelPath:   rel,
		Src:       path,
		Dst:       dst,
		TextNodes: texts,
		AttrTexts: attrs,
		MetaTexts: metas,
	})
	result.Translated++

	r.logger.Info("translated",
		"path", rel,
		"units", len(units),
		"cached", stats.Cached,
		"requested", stats.Translated)

	if r.cfg.AnnotateSource {
		if err := r.annotateSource(path, rel); err != nil {
			return err
		}
		result.Annotated++
	}
	return nil
}

// annotateSource rewrites a source document in place with the forward link to
// its translation.
func (r *Runner) annotateSource(path, rel string) error {
	doc, err := processor.ParseFile(path)
	if err != nil {
		return err
	}

	r.annotator.AnnotateSource(doc, rel)

	out, err := doc.Render()
	if err != nil {
		return err
	}
	return writeFile(path, []byte(out))
}

// mirror copies a non-HTML file into the output tree unchanged. A file that
// cannot be copied is logged and skipped; it never aborts the walk.
func (r *Runner) mirror(path, rel, outRoot string, result *Result) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the walk
	if err != nil {
		result.Skipped++
		r.logger.Warn("skipping asset", "path", rel, "error", err)
		return nil
	}

	dst := filepath.Join(outRoot, filepath.FromSlash(rel))
	if err := writeFile(dst, data); err != nil {
		result.Skipped++
		r.logger.Warn("skipping asset", "path", rel, "error", err)
		return nil
	}

	result.Mirrored++
	r.logger.Debug("mirrored", "path", rel)
	return nil
}

func (r *Runner) persistCache() error {
	p, ok := r.store.(cache.Persister)
	if !ok {
		return nil
	}
	if err := p.Persist(); err != nil {
		return fmt.Errorf("persisting cache: %w", err)
	}
	return nil
}

// IsHTML reports whether path names an HTML document.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func countKinds(units []processor.Unit) (texts, attrs, metas int) {
	for _, u := range units {
		switch u.Kind {
		case sitetrans.UnitText:
			texts++
		case sitetrans.UnitAttr:
			attrs++
		case sitetrans.UnitMeta:
			metas++
		}
	}
	return texts, attrs, metas
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

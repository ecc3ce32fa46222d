// Command sitetrans mirrors a static HTML site into a second language.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/sitetrans"
	"github.com/ZaguanLabs/sitetrans/cache"
	"github.com/ZaguanLabs/sitetrans/config"
	"github.com/ZaguanLabs/sitetrans/glossary"
	"github.com/ZaguanLabs/sitetrans/processor"
	"github.com/ZaguanLabs/sitetrans/provider"
	"github.com/ZaguanLabs/sitetrans/site"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = sitetrans.Version
	commit    = sitetrans.GitCommit
	buildDate = sitetrans.BuildDate
)

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// execute builds the command tree and runs it against args. Split from main
// so tests can drive the CLI with their own argument lists and writers.
func execute(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sitetrans",
		Short: sitetrans.Description,
		Long: `sitetrans mirrors a static HTML site into a second language.

It walks a source tree, extracts the translatable text of every HTML
document, translates it in batches through an external service and writes
the translated mirror under a locale directory, annotated with hreflang
alternate links and a language switcher. Non-HTML assets are copied as-is.
Translations are cached, so re-runs only pay for texts that changed.

Configuration comes from a YAML file (CONFIG_PATH or ./config.yaml),
environment variables and an optional .env file; run flags override all
of them.`,
		Version:       sitetrans.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(),
		newExtractCmd(),
		newDiffCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", sitetrans.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", buildDate)
			}
		},
	}
}

func newRunCmd() *cobra.Command {
	var (
		cfgPath        string
		srcRoot        string
		outRoot        string
		sourceLang     string
		targetLang     string
		localeDir      string
		glossaryPath   string
		reportName     string
		providerName   string
		cachePath      string
		annotateSource bool
		clean          bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Translate the whole site tree",
		Long: `Walk the source root, translate every HTML document and write the
translated mirror under the output root. A CSV report of per-document unit
counts is written into the output root when the run finishes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath != "" {
				_ = os.Setenv("CONFIG_PATH", cfgPath)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override file and environment settings.
			flags := cmd.Flags()
			if flags.Changed("src") {
				cfg.Site.SourceRoot = srcRoot
			}
			if flags.Changed("dst") {
				cfg.Site.OutputRoot = outRoot
			}
			if flags.Changed("source-lang") {
				cfg.Site.SourceLang = sourceLang
			}
			if flags.Changed("target-lang") {
				cfg.Site.TargetLang = targetLang
			}
			if flags.Changed("locale-dir") {
				cfg.Site.LocaleDir = localeDir
			}
			if flags.Changed("glossary") {
				cfg.Site.GlossaryPath = glossaryPath
			}
			if flags.Changed("report") {
				cfg.Site.ReportName = reportName
			}
			if flags.Changed("provider") {
				cfg.Provider.Name = providerName
			}
			if flags.Changed("cache") {
				cfg.Cache.Path = cachePath
			}
			if flags.Changed("annotate-source") {
				cfg.Site.AnnotateSource = annotateSource
			}
			if flags.Changed("clean") {
				cfg.Site.Clean = clean
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runSite(cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to YAML config file (default: CONFIG_PATH env or ./config.yaml)")
	cmd.Flags().StringVar(&srcRoot, "src", "", "Source site root directory")
	cmd.Flags().StringVar(&outRoot, "dst", "", "Output root (default: <src>/<locale-dir>)")
	cmd.Flags().StringVar(&sourceLang, "source-lang", "", "Source language code (e.g. ru)")
	cmd.Flags().StringVar(&targetLang, "target-lang", "", "Target language code (e.g. uz)")
	cmd.Flags().StringVar(&localeDir, "locale-dir", "", "Locale directory name (default: target language base code)")
	cmd.Flags().StringVar(&glossaryPath, "glossary", "", "Glossary CSV file (default: <src>/translate_glossary.csv)")
	cmd.Flags().StringVar(&reportName, "report", "", "Report file name inside the output root")
	cmd.Flags().StringVar(&providerName, "provider", "", "Translation backend: yandex, openai, mock")
	cmd.Flags().StringVar(&cachePath, "cache", "", "Translation cache file (default: <src>/.cache/<src-lang>_<dst-lang>.json)")
	cmd.Flags().BoolVar(&annotateSource, "annotate-source", false, "Also annotate source documents in place with links to the translations")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove the output root before running")

	return cmd
}

// runSite wires a validated configuration into a runner and executes one
// translation pass.
func runSite(cfg *config.Config, stdout io.Writer) error {
	logger := config.NewLogger(cfg.Log)

	prov, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	store, err := buildCache(cfg, logger)
	if err != nil {
		return err
	}

	client := sitetrans.NewClient(prov, sitetrans.ClientConfig{
		SourceLang: cfg.Site.SourceLang,
		TargetLang: cfg.Site.TargetLang,
		Batch: sitetrans.BatchConfig{
			MaxTexts: cfg.Translate.BatchSize,
			MaxChars: cfg.Translate.MaxChars,
		},
		RateLimit: sitetrans.RateLimitConfig{
			RequestsPerWindow: cfg.Translate.RequestsPerMinute,
			Window:            time.Minute,
		},
		Retry: sitetrans.RetryConfig{
			MaxRetries: cfg.Translate.MaxRetries,
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
		},
	})

	opts := []sitetrans.TranslatorOption{sitetrans.WithCache(store)}

	glossaryPath := cfg.Site.GlossaryPath
	if glossaryPath == "" {
		glossaryPath = config.DefaultGlossaryPath(cfg.Site.SourceRoot)
	}
	rules, err := glossary.LoadFile(glossaryPath)
	if err != nil {
		return fmt.Errorf("loading glossary: %w", err)
	}
	if rules.Len() > 0 {
		logger.Info("glossary loaded", "path", glossaryPath, "rules", rules.Len())
		opts = append(opts, sitetrans.WithGlossary(rules))
	}

	translator := sitetrans.NewTranslator(client, opts...)

	runner, err := site.NewRunner(site.Config{
		SourceRoot:     cfg.Site.SourceRoot,
		OutputRoot:     cfg.Site.OutputRoot,
		SourceLang:     cfg.Site.SourceLang,
		TargetLang:     cfg.Site.TargetLang,
		LocaleDir:      cfg.Site.LocaleDir,
		ReportName:     cfg.Site.ReportName,
		AnnotateSource: cfg.Site.AnnotateSource,
		Clean:          cfg.Site.Clean,
	}, translator, site.WithLogger(logger), site.WithCache(store))
	if err != nil {
		return err
	}

	// Interrupt stops the walk after the current document; translations
	// already in the cache are persisted by a later run.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Warn("interrupted, stopping")
		cancel()
	}()

	start := time.Now()
	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(stdout, "Done in %v\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(stdout, "  Documents:   %d translated, %d assets mirrored\n", result.Translated, result.Mirrored)
	if result.Annotated > 0 {
		fmt.Fprintf(stdout, "  Annotated:   %d source documents\n", result.Annotated)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(stdout, "  Skipped:     %d assets\n", result.Skipped)
	}
	fmt.Fprintf(stdout, "  Texts:       %d unique (%d from cache, %d requested)\n",
		result.Stats.Unique, result.Stats.Cached, result.Stats.Translated)
	fmt.Fprintf(stdout, "  Report:      %s\n", result.ReportPath)

	return nil
}

// buildProvider selects the translation backend named by the configuration.
// Credential presence is already checked by Config.Validate.
func buildProvider(cfg *config.Config) (sitetrans.Provider, error) {
	switch strings.ToLower(cfg.Provider.Name) {
	case "yandex":
		return provider.NewYandexProvider(provider.YandexConfig{
			APIKey:   cfg.Provider.YandexAPIKey,
			FolderID: cfg.Provider.YandexFolderID,
		}), nil
	case "openai":
		return provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey: cfg.Provider.OpenAIAPIKey,
			Model:  cfg.Provider.OpenAIModel,
		}), nil
	case "mock":
		return provider.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider.Name)
	}
}

// buildCache picks Redis when a URL is configured, otherwise the JSON file
// cache at the configured or conventional path.
func buildCache(cfg *config.Config, logger *slog.Logger) (sitetrans.TranslationCache, error) {
	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			URL:       cfg.Cache.RedisURL,
			TTL:       cfg.Cache.RedisTTL,
			KeyPrefix: cache.PairPrefix(cfg.Site.SourceLang, cfg.Site.TargetLang),
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("cache backend", "redis", cfg.Cache.RedisURL)
		return rc, nil
	}

	path := cfg.Cache.Path
	if path == "" {
		path = config.DefaultCachePath(cfg.Site.SourceRoot, cfg.Site.SourceLang, cfg.Site.TargetLang)
	}
	fc := cache.NewFileCache(path)
	if n := fc.Load(); n > 0 {
		logger.Info("cache loaded", "path", path, "entries", n)
	}
	return fc, nil
}

func newExtractCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "extract <file.html>",
		Short: "List the translatable units of an HTML document",
		Long: `Parse one HTML document and list every unit a run would send for
translation: text runs, translatable attribute values and meta
descriptions, in document order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], cmd.OutOrStdout(), jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func runExtract(path string, stdout io.Writer, jsonOut bool) error {
	doc, err := processor.ParseFile(path)
	if err != nil {
		return err
	}
	units := doc.ExtractUnits()

	if jsonOut {
		type unitOutput struct {
			Kind string `json:"kind"`
			Attr string `json:"attr,omitempty"`
			Text string `json:"text"`
		}
		type extractOutput struct {
			InputFile string       `json:"input_file"`
			UnitCount int          `json:"unit_count"`
			Units     []unitOutput `json:"units"`
		}

		out := extractOutput{
			InputFile: filepath.Base(path),
			UnitCount: len(units),
			Units:     make([]unitOutput, len(units)),
		}
		for i, u := range units {
			out.Units[i] = unitOutput{Kind: string(u.Kind), Attr: u.Attr, Text: u.Text}
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(stdout, "%s: %d translatable units\n\n", filepath.Base(path), len(units))

	for i, u := range units {
		label := string(u.Kind)
		if u.Attr != "" {
			label += ":" + u.Attr
		}
		fmt.Fprintf(stdout, "%3d. [%s] %q\n", i+1, label, truncate(u.Text, 60))
	}

	return nil
}

func newDiffCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "diff <old.html> <new.html>",
		Short: "Compare the translatable text of two document versions",
		Long: `Compare what a run would extract from two versions of a page. Added
texts are the ones a fresh run would have to send to the translation
service; unchanged texts resolve from the persisted cache.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], cmd.OutOrStdout(), jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

func runDiff(oldPath, newPath string, stdout io.Writer, jsonOut bool) error {
	oldDoc, err := processor.ParseFile(oldPath)
	if err != nil {
		return fmt.Errorf("parsing previous version: %w", err)
	}
	newDoc, err := processor.ParseFile(newPath)
	if err != nil {
		return fmt.Errorf("parsing new version: %w", err)
	}

	diff := sitetrans.DiffUnits(oldDoc.ExtractUnits(), newDoc.ExtractUnits())
	stats := diff.Stats()

	if jsonOut {
		type diffOutput struct {
			OldFile string `json:"old_file"`
			NewFile string `json:"new_file"`
			Stats   struct {
				Added     int `json:"added"`
				Removed   int `json:"removed"`
				Unchanged int `json:"unchanged"`
			} `json:"stats"`
			NeedsTranslation []string `json:"needs_translation"`
			Removed          []string `json:"removed,omitempty"`
		}

		out := diffOutput{
			OldFile:          filepath.Base(oldPath),
			NewFile:          filepath.Base(newPath),
			NeedsTranslation: diff.NeedsTranslation(),
			Removed:          diff.Removed,
		}
		out.Stats.Added = stats.Added
		out.Stats.Removed = stats.Removed
		out.Stats.Unchanged = stats.Unchanged

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(stdout, "Diff: %s vs %s\n\n", filepath.Base(oldPath), filepath.Base(newPath))
	fmt.Fprintf(stdout, "Summary:\n")
	fmt.Fprintf(stdout, "  Unchanged: %d\n", stats.Unchanged)
	fmt.Fprintf(stdout, "  Added:     %d\n", stats.Added)
	fmt.Fprintf(stdout, "  Removed:   %d\n", stats.Removed)
	fmt.Fprintf(stdout, "\n")

	if !diff.HasChanges() {
		fmt.Fprintf(stdout, "No changes. A re-run would resolve every text from cache.\n")
		return nil
	}

	needs := diff.NeedsTranslation()
	fmt.Fprintf(stdout, "Needs translation: %d texts\n\n", len(needs))

	if len(diff.Added) > 0 {
		fmt.Fprintf(stdout, "Added:\n")
		for _, text := range diff.Added {
			fmt.Fprintf(stdout, "  + %q\n", truncate(text, 50))
		}
		fmt.Fprintf(stdout, "\n")
	}

	if len(diff.Removed) > 0 {
		fmt.Fprintf(stdout, "Removed:\n")
		for _, text := range diff.Removed {
			fmt.Fprintf(stdout, "  - %q\n", truncate(text, 50))
		}
		fmt.Fprintf(stdout, "\n")
	}

	return nil
}

// truncate shortens s to at most n runes for display.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

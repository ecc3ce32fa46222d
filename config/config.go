// Package config holds the runtime configuration of a translation run,
// loaded from a YAML file, environment variables and an optional env file.
package config

import (
	"path/filepath"

	"github.com/ZaguanLabs/sitetrans"
)

// Config is the root run configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Translate TranslateConfig `yaml:"translate"`
	Provider  ProviderConfig  `yaml:"provider"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

// SiteConfig describes the corpus being translated.
type SiteConfig struct {
	SourceRoot     string `yaml:"source_root"     env:"SITE_SOURCE_ROOT"`
	OutputRoot     string `yaml:"output_root"     env:"SITE_OUTPUT_ROOT"`
	SourceLang     string `yaml:"source_lang"     env:"SITE_SOURCE_LANG" env-default:"ru"`
	TargetLang     string `yaml:"target_lang"     env:"SITE_TARGET_LANG" env-default:"uz"`
	LocaleDir      string `yaml:"locale_dir"      env:"SITE_LOCALE_DIR"`
	GlossaryPath   string `yaml:"glossary"        env:"SITE_GLOSSARY"`
	ReportName     string `yaml:"report"          env:"SITE_REPORT"          env-default:"translation_report.csv"`
	AnnotateSource bool   `yaml:"annotate_source" env:"SITE_ANNOTATE_SOURCE" env-default:"false"`
	Clean          bool   `yaml:"clean"           env:"SITE_CLEAN"           env-default:"false"`
}

// TranslateConfig bounds request batching and pacing.
type TranslateConfig struct {
	BatchSize         int `yaml:"batch_size"          env:"TRANSLATE_BATCH_SIZE"  env-default:"80"`
	MaxChars          int `yaml:"max_chars"           env:"TRANSLATE_MAX_CHARS"   env-default:"9000"`
	RequestsPerMinute int `yaml:"requests_per_minute" env:"REQUESTS_PER_MINUTE"   env-default:"300"`
	MaxRetries        int `yaml:"max_retries"         env:"TRANSLATE_MAX_RETRIES" env-default:"5"`
}

// ProviderConfig selects the translation backend and carries its credentials.
type ProviderConfig struct {
	Name           string `yaml:"name"             env:"PROVIDER" env-default:"yandex"`
	YandexAPIKey   string `yaml:"yandex_api_key"   env:"YANDEX_API_KEY"`
	YandexFolderID string `yaml:"yandex_folder_id" env:"YANDEX_FOLDER_ID"`
	OpenAIAPIKey   string `yaml:"openai_api_key"   env:"OPENAI_API_KEY"`
	OpenAIModel    string `yaml:"openai_model"     env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
}

// CacheConfig selects the translation cache backend. A file path picks the
// JSON file cache; a Redis URL picks Redis instead.
type CacheConfig struct {
	Path     string `yaml:"path"      env:"CACHE_PATH"`
	RedisURL string `yaml:"redis_url" env:"CACHE_REDIS_URL"`
	RedisTTL int    `yaml:"redis_ttl" env:"CACHE_REDIS_TTL" env-default:"0"` // seconds, 0 = no expiry
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DefaultCachePath returns the conventional cache location for a corpus:
// a hidden .cache directory under the source root, one file per language
// pair.
func DefaultCachePath(sourceRoot, sourceLang, targetLang string) string {
	name := sitetrans.BaseLang(sourceLang) + "_" + sitetrans.BaseLang(targetLang) + ".json"
	return filepath.Join(sourceRoot, ".cache", name)
}

// DefaultGlossaryPath returns the conventional glossary location for a
// corpus.
func DefaultGlossaryPath(sourceRoot string) string {
	return filepath.Join(sourceRoot, "translate_glossary.csv")
}

// Package loader resolves message keys to compiled templates per locale. It
// is the consuming side of the artifact boundary: the pipeline writes
// compiled artifacts, the loader lazily reads them and exposes per-key
// message accessors for the formatting engine.
package loader

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"intlpipe/internal/template"
	"intlpipe/pkg/model"
)

// Loader maps locales to compiled-artifact paths and loads each artifact at
// most once, on first use. Safe for concurrent use.
type Loader struct {
	defaultLocale string
	defaultTag    language.Tag
	artifacts     map[string]string
	locales       []string
	matcher       language.Matcher

	mu     sync.Mutex
	tables map[string]*localeTable
}

// New builds a Loader over a locale-to-artifact map. The default locale is
// the fallback for unsupported or missing variants and should appear in the
// map.
func New(defaultLocale string, artifacts map[string]string) *Loader {
	def := strings.TrimSpace(defaultLocale)
	if def == "" {
		def = "en"
	}
	defTag, err := language.Parse(def)
	if err != nil {
		defTag = language.English
	}

	// The matcher's first tag is its fallback, so the default leads.
	locales := make([]string, 0, len(artifacts)+1)
	tags := make([]language.Tag, 0, len(artifacts)+1)
	locales = append(locales, def)
	tags = append(tags, defTag)
	for locale := range artifacts {
		if locale == def {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		locales = append(locales, locale)
		tags = append(tags, tag)
	}

	return &Loader{
		defaultLocale: def,
		defaultTag:    defTag,
		artifacts:     artifacts,
		locales:       locales,
		matcher:       language.NewMatcher(tags),
		tables:        make(map[string]*localeTable),
	}
}

// Message returns the lazy per-key accessor consumed by the formatting
// engine. Resolution picks the best artifact locale for the requested
// locale, falling back to the default locale, and yields
// model.ErrUnresolvedLocale when neither carries the key.
func (l *Loader) Message(key string) model.Message {
	return model.ResolveFunc(func(locale string) (model.Message, error) {
		tmpl, err := l.resolve(locale, key)
		if err != nil {
			return nil, err
		}
		return model.Compiled{Template: tmpl}, nil
	})
}

func (l *Loader) resolve(locale, key string) (model.Template, error) {
	chosen := l.pick(locale)

	tmpl, err := l.lookup(chosen, key)
	if err == nil {
		return tmpl, nil
	}
	if chosen != l.defaultLocale {
		if tmpl, defErr := l.lookup(l.defaultLocale, key); defErr == nil {
			return tmpl, nil
		}
	}
	return nil, err
}

// pick maps a requested locale onto the closest artifact locale.
func (l *Loader) pick(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return l.defaultLocale
	}
	_, index, confidence := l.matcher.Match(tag)
	if confidence == language.No || index >= len(l.locales) {
		return l.defaultLocale
	}
	return l.locales[index]
}

func (l *Loader) lookup(locale, key string) (model.Template, error) {
	table, err := l.table(locale)
	if err != nil {
		return nil, err
	}
	tmpl, ok := table.template(key)
	if !ok {
		return nil, fmt.Errorf("loader: message %q for locale %s: %w", key, locale, model.ErrUnresolvedLocale)
	}
	return tmpl, nil
}

func (l *Loader) table(locale string) (*localeTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if table, ok := l.tables[locale]; ok {
		return table, nil
	}

	path, ok := l.artifacts[locale]
	if !ok {
		return nil, fmt.Errorf("loader: no artifact for locale %s: %w", locale, model.ErrUnresolvedLocale)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read artifact %s: %w", path, err)
	}

	var table *localeTable
	if strings.HasSuffix(path, ".toml") {
		table, err = loadTOMLTable(l.defaultTag, locale, data)
	} else {
		table, err = loadJSONTable(data)
	}
	if err != nil {
		return nil, err
	}
	l.tables[locale] = table
	return table, nil
}

// localeTable is one loaded artifact: either native templates or a go-i18n
// localizer for TOML artifacts.
type localeTable struct {
	templates map[string]model.Template
	localizer *i18n.Localizer
}

func (t *localeTable) template(key string) (model.Template, bool) {
	if t.templates != nil {
		tmpl, ok := t.templates[key]
		return tmpl, ok
	}
	// Existence probe; the returned template localizes lazily with the
	// caller's bindings.
	if _, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: key}); err != nil {
		return nil, false
	}
	return &localizerTemplate{localizer: t.localizer, key: key}, true
}

func loadJSONTable(data []byte) (*localeTable, error) {
	artifact, err := template.DecodeArtifact(data)
	if err != nil {
		return nil, err
	}
	templates := make(map[string]model.Template, len(artifact.Messages))
	for key, tmpl := range artifact.Templates() {
		templates[key] = tmpl
	}
	return &localeTable{templates: templates}, nil
}

func loadTOMLTable(defaultTag language.Tag, locale string, data []byte) (*localeTable, error) {
	bundle := i18n.NewBundle(defaultTag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	if _, err := bundle.ParseMessageFileBytes(data, locale+".toml"); err != nil {
		return nil, fmt.Errorf("loader: parse toml artifact for %s: %w", locale, err)
	}
	return &localeTable{localizer: i18n.NewLocalizer(bundle, locale)}, nil
}

// localizerTemplate adapts a go-i18n localizer to the Template interface.
// TOML artifacts are flat text, so the parts projection is a single literal.
type localizerTemplate struct {
	localizer *i18n.Localizer
	key       string
}

var _ model.Template = (*localizerTemplate)(nil)

func (t *localizerTemplate) FormatToParts(cfg *model.FormatConfig, values model.Values) ([]model.Part, error) {
	text, err := t.FormatToString(cfg, values)
	if err != nil {
		return nil, err
	}
	return []model.Part{model.LiteralPart(text)}, nil
}

func (t *localizerTemplate) FormatToString(cfg *model.FormatConfig, values model.Values) (string, error) {
	data := make(map[string]any, len(values))
	for name, value := range values {
		if _, isRenderer := value.(model.RichRenderer); isRenderer {
			continue
		}
		data[name] = cfg.FormatValue(value)
	}
	text, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    t.key,
		TemplateData: data,
	})
	if err != nil {
		return "", fmt.Errorf("loader: localize %q: %w", t.key, err)
	}
	return text, nil
}

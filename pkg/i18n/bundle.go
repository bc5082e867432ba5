package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no other language is configured.
const DefaultLanguage = "en"

// Bundle holds messages of every loaded language.
type Bundle struct {
	mu       sync.RWMutex
	messages map[string]map[string]any
	langs    []string
	matcher  language.Matcher

	defaultLang string
	logger      *slog.Logger
}

// Option configures a Bundle.
type Option func(*Bundle)

// WithDefaultLanguage sets the language used when lookups in the requested
// language miss.
func WithDefaultLanguage(lang string) Option {
	return func(b *Bundle) {
		if lang != "" {
			b.defaultLang = lang
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bundle) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBundle loads messages through adapter.
func NewBundle(ctx context.Context, adapter Adapter, opts ...Option) (*Bundle, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	b := &Bundle{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}

	messages, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.set(messages); err != nil {
		return nil, err
	}

	b.logger.DebugContext(ctx, "message bundles loaded", slog.Any("languages", b.langs))
	return b, nil
}

func (b *Bundle) set(messages map[string]map[string]any) error {
	langs := make([]string, 0, len(messages))
	for lang := range messages {
		if lang == "" {
			return fmt.Errorf("%w: empty language code", ErrInvalidBundle)
		}
		langs = append(langs, lang)
	}
	slices.Sort(langs)

	// The default language goes first so the matcher falls back to it.
	tags := make([]language.Tag, 0, len(langs))
	if slices.Contains(langs, b.defaultLang) {
		tags = append(tags, language.Make(b.defaultLang))
	}
	for _, lang := range langs {
		if lang != b.defaultLang {
			tags = append(tags, language.Make(lang))
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = messages
	b.langs = langs
	b.matcher = language.NewMatcher(tags)
	return nil
}

// Languages returns the loaded languages, sorted.
func (b *Bundle) Languages() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.langs)
}

func (b *Bundle) DefaultLanguage() string { return b.defaultLang }

// Match returns the loaded language closest to lang. Locale spellings such
// as "ja_JP.UTF-8" are accepted.
func (b *Bundle) Match(lang string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.match(lang)
}

func (b *Bundle) match(lang string) string {
	if len(b.langs) == 0 {
		return b.defaultLang
	}
	if slices.Contains(b.langs, lang) {
		return lang
	}
	tag, err := language.Parse(NormalizeLocale(lang))
	if err != nil {
		return b.defaultLang
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return b.defaultLang
	}
	return b.tagLanguage(idx)
}

// tagLanguage maps a matcher index back to the language key.
func (b *Bundle) tagLanguage(idx int) string {
	i := 0
	if slices.Contains(b.langs, b.defaultLang) {
		if idx == 0 {
			return b.defaultLang
		}
		i = 1
	}
	for _, lang := range b.langs {
		if lang == b.defaultLang {
			continue
		}
		if i == idx {
			return lang
		}
		i++
	}
	return b.defaultLang
}

// Lookup returns the message for key in the language closest to lang,
// then in the default language.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	matched := b.match(lang)
	for _, l := range []string{matched, b.defaultLang} {
		if msg, ok := b.lookupIn(l, key); ok {
			return msg, true
		}
	}
	return "", false
}

// Has reports whether key exists in exactly lang.
func (b *Bundle) Has(lang, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.lookupIn(lang, key)
	return ok
}

func (b *Bundle) lookupIn(lang, key string) (string, bool) {
	messages, ok := b.messages[lang]
	if !ok {
		return "", false
	}

	// Flat keys win over nested ones.
	if v, ok := messages[key]; ok {
		return asMessage(v)
	}

	current := messages
	parts := strings.Split(key, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			return asMessage(v)
		}
		next, ok := v.(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}

func asMessage(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	default:
		return "", false
	}
}

// NormalizeLocale turns POSIX locale names such as "ja_JP.UTF-8" into BCP 47
// tags ("ja-JP"). Empty input, "C" and "POSIX" yield "".
func NormalizeLocale(locale string) string {
	locale, _, _ = strings.Cut(locale, ".")
	locale, _, _ = strings.Cut(locale, "@")
	if locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}

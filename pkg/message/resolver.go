package message

import (
	"log/slog"

	"github.com/dmitrymomot/csvbind/pkg/cache"
	"github.com/dmitrymomot/csvbind/pkg/cellproc"
	"github.com/dmitrymomot/csvbind/pkg/i18n"
	"github.com/dmitrymomot/csvbind/pkg/logger"
)

// Resolver renders validation failures in one language.
type Resolver struct {
	bundle    *i18n.Bundle
	lang      string
	logger    *slog.Logger
	templates *cache.LRU[string, *Template]
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLanguage selects the message language. Defaults to the bundle default.
func WithLanguage(lang string) Option {
	return func(r *Resolver) {
		if lang != "" {
			r.lang = lang
		}
	}
}

// WithLogger sets the logger that reports unresolved template tokens.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCacheSize bounds the number of compiled templates kept. Default 256.
func WithCacheSize(n int) Option {
	return func(r *Resolver) { r.templates = cache.NewLRU[string, *Template](n) }
}

// NewResolver returns a Resolver rendering bundle messages in the bundle
// default language unless WithLanguage says otherwise.
func NewResolver(bundle *i18n.Bundle, opts ...Option) *Resolver {
	r := &Resolver{
		bundle:    bundle,
		lang:      bundle.DefaultLanguage(),
		logger:    logger.Discard(),
		templates: cache.NewLRU[string, *Template](256),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Language returns the bundle language messages are rendered in.
func (r *Resolver) Language() string { return r.bundle.Match(r.lang) }

// Template returns the template for ve and whether it comes from the bundle.
// An empty override counts as no override.
func (r *Resolver) Template(ve *cellproc.ValidationError) (string, bool) {
	if ve.Message != "" {
		return ve.Message, false
	}
	if tmpl, ok := r.bundle.Lookup(r.lang, ve.MessageKey); ok {
		return tmpl, true
	}
	if tmpl, ok := r.bundle.Lookup(r.lang, KeyDefault); ok {
		r.logger.Debug("no message for key, using default", slog.String("key", ve.MessageKey))
		return tmpl, true
	}
	return ve.MessageKey, true
}

// Resolve renders the message for ve.
func (r *Resolver) Resolve(ve *cellproc.ValidationError) string {
	tmpl, fromBundle := r.Template(ve)
	vars := ve.MessageVariables()
	body := r.render(ve, tmpl, vars)
	if !fromBundle {
		return body
	}

	frame, ok := r.bundle.Lookup(r.lang, KeyFrame)
	if !ok {
		return body
	}
	vars["message"] = body
	return r.render(ve, frame, vars)
}

func (r *Resolver) render(ve *cellproc.ValidationError, src string, vars map[string]any) string {
	t, ok := r.templates.Get(src)
	if !ok {
		t = Compile(src)
		r.templates.Put(src, t)
		if err := t.Err(); err != nil {
			r.logger.Warn("message template has invalid expressions",
				slog.String("template", src), logger.Error(err))
		}
	}

	out, err := t.Execute(vars)
	if err != nil {
		r.logger.Warn("message template token left unresolved",
			logger.Field(ve.Field), logger.Row(ve.RowNumber), logger.Column(ve.ColumnNumber),
			logger.Error(err))
	}
	return out
}

package message

import (
	"context"
	"embed"

	"github.com/dmitrymomot/csvbind/pkg/i18n"
)

//go:embed bundles/*.yaml
var bundleFS embed.FS

// Bundle keys used by the resolver.
const (
	KeyFrame   = "csv.frame"
	KeyDefault = "csv.default"
)

// DefaultAdapter serves the embedded bundles.
func DefaultAdapter() i18n.Adapter {
	return i18n.NewFSAdapter(i18n.NewYAMLParser(), bundleFS, "bundles")
}

// LoadBundle loads the embedded bundles, overridden key by key by the
// bundle files in dir when dir is not empty.
func LoadBundle(ctx context.Context, dir string, opts ...i18n.Option) (*i18n.Bundle, error) {
	adapters := i18n.MultiAdapter{DefaultAdapter()}
	if dir != "" {
		adapters = append(adapters, i18n.NewDirectoryAdapter(nil, dir))
	}
	return i18n.NewBundle(ctx, adapters, opts...)
}

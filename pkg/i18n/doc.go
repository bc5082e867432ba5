// Package i18n loads localized message bundles and looks messages up by
// dot-separated key with language fallback.
//
// Bundles are YAML or JSON documents keyed by language at the root:
//
//	en:
//	  csv:
//	    required: "value is required"
//	ja:
//	  csv:
//	    required: "値は必須です"
//
// Adapters read them from a file, a directory or any fs.FS (usually an
// embed.FS); MultiAdapter layers several sources so user bundles can
// override built-in ones key by key.
//
//	bundle, err := i18n.NewBundle(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), files, "bundles"),
//		i18n.WithDefaultLanguage("en"),
//	)
//	msg, ok := bundle.Lookup("ja-JP", "csv.required")
//
// Language matching uses golang.org/x/text/language, so "ja_JP.UTF-8",
// "ja-JP" and "ja" all resolve to a "ja" bundle.
package i18n

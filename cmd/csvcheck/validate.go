package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/csvbind/pkg/cellproc"
	"github.com/dmitrymomot/csvbind/pkg/config"
	"github.com/dmitrymomot/csvbind/pkg/i18n"
	"github.com/dmitrymomot/csvbind/pkg/logger"
	"github.com/dmitrymomot/csvbind/pkg/mapping"
	"github.com/dmitrymomot/csvbind/pkg/message"
	"github.com/dmitrymomot/csvbind/pkg/seen"
)

// errInvalidRows reports that at least one cell failed; the messages
// have already been printed.
var errInvalidRows = errors.New("invalid rows")

type validateOptions struct {
	definition  string
	envFiles    []string
	locale      string
	messagesDir string
	groups      []string
	header      bool
	comma       string
}

func newValidateCmd() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate CSV files",
		Example: `  csvcheck validate -d products.yaml products.csv
  CSVBIND_LOCALE=ja csvcheck validate -d products.yaml --group import a.csv b.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			return runValidate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), settings, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.definition, "definition", "d", "", "YAML column definition")
	f.StringSliceVar(&opts.envFiles, "env-file", nil, ".env files to load before reading settings")
	f.StringVar(&opts.locale, "locale", "", "message language, e.g. en or ja-JP")
	f.StringVar(&opts.messagesDir, "messages-dir", "", "directory of message bundles overriding the built-in ones")
	f.StringSliceVar(&opts.groups, "group", nil, "constraint groups to enable")
	f.BoolVar(&opts.header, "header", true, "first record is a header matching the column labels")
	f.StringVar(&opts.comma, "comma", ",", "field delimiter")
	_ = cmd.MarkFlagRequired("definition")

	return cmd
}

// loadSettings reads the environment and applies the flags that were set.
func loadSettings(cmd *cobra.Command, opts validateOptions) (config.Settings, error) {
	var s config.Settings
	if len(opts.envFiles) > 0 {
		if err := config.LoadEnv(opts.envFiles...); err != nil {
			return s, err
		}
	}
	if err := config.Load(&s); err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("locale") {
		s.Locale = opts.locale
	}
	if flags.Changed("messages-dir") {
		s.MessagesDir = opts.messagesDir
	}
	if flags.Changed("group") {
		s.Groups = opts.groups
	}
	if flags.Changed("header") {
		s.SkipHeader = opts.header
	}

	return s, s.Validate()
}

func runValidate(ctx context.Context, stdout, stderr io.Writer, s config.Settings, opts validateOptions, files []string) error {
	log := logger.New(append(s.LoggerOptions(),
		logger.WithOutput(stderr),
		logger.WithAttr(logger.Component("csvcheck")),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			return logger.Session(seen.SessionID(ctx)), true
		}),
	)...)

	comma := []rune(opts.comma)
	if len(comma) != 1 {
		return fmt.Errorf("comma must be a single character, got %q", opts.comma)
	}

	bundle, err := message.LoadBundle(ctx, s.MessagesDir, i18n.WithLogger(log))
	if err != nil {
		return err
	}
	conv := message.NewConverter(message.NewResolver(bundle,
		message.WithLanguage(s.Locale),
		message.WithLogger(log),
	))

	store, closeStore, err := openStore(ctx, s)
	if err != nil {
		return err
	}
	defer closeStore()

	def, err := mapping.LoadDefinitionFile(opts.definition)
	if err != nil {
		return err
	}
	m, err := mapping.NewBuilder(
		mapping.WithSeenStore(store),
		mapping.WithLogger(log),
		mapping.WithGroups(s.Groups...),
		mapping.WithIgnoreWriteValidation(s.IgnoreWriteValidation),
	).Build(def)
	if err != nil {
		return err
	}

	c := checker{
		mapping: m,
		conv:    conv,
		store:   store,
		log:     log,
		readerOpts: []mapping.ReaderOption{
			mapping.WithComma(comma[0]),
		},
	}
	if s.SkipHeader {
		c.readerOpts = append(c.readerOpts, mapping.WithHeader(true))
	}

	results := make([][]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i, path := range files {
		g.Go(func() error {
			msgs, err := c.checkFile(seen.NewSession(gctx), path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = msgs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, path := range files {
		for _, msg := range results[i] {
			fmt.Fprintf(stdout, "%s: %s\n", path, msg)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d failures", errInvalidRows, failed)
	}
	return nil
}

func openStore(ctx context.Context, s config.Settings) (seen.Store, func(), error) {
	if !s.UsesRedis() {
		return seen.NewMemoryStore(), func() {}, nil
	}

	client, err := seen.ConnectRedis(ctx, s.Redis)
	if err != nil {
		return nil, nil, err
	}
	store := seen.NewRedisStore(client, seen.WithTTL(s.Redis.TTL))
	return store, func() { _ = client.Close() }, nil
}

type checker struct {
	mapping    *mapping.BeanMapping
	conv       *message.Converter
	store      seen.Store
	log        *slog.Logger
	readerOpts []mapping.ReaderOption
}

// checkFile reads path to the end and returns the messages of every
// failing row. The session table is dropped afterwards.
func (c checker) checkFile(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	defer func() {
		if err := c.store.Reset(context.WithoutCancel(ctx)); err != nil {
			c.log.WarnContext(ctx, "failed to reset unique table", logger.File(path), logger.Error(err))
		}
	}()

	r := c.mapping.NewReader(f, c.readerOpts...)
	var msgs []string
	rows := 0
	for {
		_, err := r.Read(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !cellproc.IsValidationError(err) {
			return nil, err
		}
		rows++
		msgs = append(msgs, c.conv.ConvertAndFormat(err, c.mapping)...)
	}

	c.log.InfoContext(ctx, "file checked",
		logger.File(path),
		slog.Int("rows", rows),
		slog.Int("failures", len(msgs)),
	)
	return msgs, nil
}

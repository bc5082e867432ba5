package message_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvbind/pkg/cellproc"
	"github.com/dmitrymomot/csvbind/pkg/column"
	"github.com/dmitrymomot/csvbind/pkg/constraint"
	"github.com/dmitrymomot/csvbind/pkg/format"
	"github.com/dmitrymomot/csvbind/pkg/i18n"
	"github.com/dmitrymomot/csvbind/pkg/message"
)

// rangeFailure runs "999" through a number_range column and returns the failure.
func rangeFailure(t *testing.T, label string, columnNumber int, anno column.Annotation) *cellproc.ValidationError {
	t.Helper()

	f := format.MustNew(format.Spec{Type: "int", Pattern: "#,###"})
	field := column.Field{Name: "col", Label: label, Constraints: []column.Annotation{anno}}
	chain, err := constraint.DefaultRegistry().Apply(
		cellproc.NewChain(field.Name, field.Label, cellproc.Parse(f)), field, f, constraint.BuildOptions{})
	require.NoError(t, err)

	_, err = chain.Execute(context.Background(), "999", cellproc.Cell{LineNumber: 1, RowNumber: 2, ColumnNumber: columnNumber})
	var ve *cellproc.ValidationError
	require.True(t, errors.As(err, &ve))
	return ve
}

func numberRange() column.Annotation {
	return column.New(constraint.KindNumberRange, "min", "1,000", "max", "1,010")
}

func defaultBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := message.LoadBundle(context.Background(), "")
	require.NoError(t, err)
	return b
}

func TestResolveDefaultMessage(t *testing.T) {
	t.Parallel()

	bundle := defaultBundle(t)
	assert.Equal(t, []string{"en", "ja"}, bundle.Languages())

	ve := rangeFailure(t, "カラム1", 1, numberRange())

	ja := message.NewResolver(bundle, message.WithLanguage("ja"))
	assert.Equal(t, "[2行, 1列] : 項目「カラム1」の値（999）は、1,000～1,010の範囲でなければなりません。", ja.Resolve(ve))

	en := message.NewResolver(bundle)
	assert.Equal(t, "[row 2, column 1] カラム1: value (999) must be between 1,000 and 1,010", en.Resolve(ve))
}

func TestResolveExclusive(t *testing.T) {
	t.Parallel()

	bundle := defaultBundle(t)
	anno := column.New(constraint.KindNumberRange, "min", "1,000", "max", "1,010", "inclusive", "false")
	ve := rangeFailure(t, "col_inclusive_false", 2, anno)

	ja := message.NewResolver(bundle, message.WithLanguage("ja_JP.UTF-8"))
	assert.Equal(t, "ja", ja.Language())
	assert.Equal(t, "[2行, 2列] : 項目「col_inclusive_false」の値（999）は、1,000～1,010の範囲でなければなりません。", ja.Resolve(ve))

	en := message.NewResolver(bundle, message.WithLanguage("en"))
	assert.Equal(t, "[row 2, column 2] col_inclusive_false: value (999) must be between 1,000 and 1,010 (exclusive)", en.Resolve(ve))
}

func TestResolveOverride(t *testing.T) {
	t.Parallel()

	bundle := defaultBundle(t)
	r := message.NewResolver(bundle, message.WithLanguage("ja"))

	t.Run("override used verbatim", func(t *testing.T) {
		t.Parallel()
		ve := rangeFailure(t, "col_message", 1, numberRange().WithMessage("テストメッセージ"))
		assert.Equal(t, "テストメッセージ", r.Resolve(ve))
	})

	t.Run("empty override falls back", func(t *testing.T) {
		t.Parallel()
		ve := rangeFailure(t, "col_message_empty", 11, numberRange().WithMessage(""))
		assert.Equal(t, "[2行, 11列] : 項目「col_message_empty」の値（999）は、1,000～1,010の範囲でなければなりません。", r.Resolve(ve))
	})

	t.Run("override variables", func(t *testing.T) {
		t.Parallel()
		anno := numberRange().WithMessage("lineNumber={lineNumber}, rowNumber={rowNumber}, columnNumber={columnNumber}, label={label}, validatedValue=${printer.print(validatedValue)}, min=${printer.print(min)}, max=${printer.print(max)}, inclusive={inclusive}")
		ve := rangeFailure(t, "col_message_variables", 12, anno)
		assert.Equal(t, "lineNumber=1, rowNumber=2, columnNumber=12, label=col_message_variables, validatedValue=999, min=1,000, max=1,010, inclusive=true", r.Resolve(ve))
	})
}

func TestResolveFallbacks(t *testing.T) {
	t.Parallel()

	bundle, err := i18n.NewBundle(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {"csv.default": "bad value {value}"},
	}})
	require.NoError(t, err)

	ve := &cellproc.ValidationError{MessageKey: "csv.constraint.custom", RawValue: "x"}
	r := message.NewResolver(bundle)
	assert.Equal(t, "bad value x", r.Resolve(ve), "no frame in bundle leaves the body alone")

	empty, err := i18n.NewBundle(context.Background(), &i18n.MapAdapter{})
	require.NoError(t, err)
	assert.Equal(t, "csv.constraint.custom", message.NewResolver(empty).Resolve(ve))
}

func TestResolveParseAndRequired(t *testing.T) {
	t.Parallel()

	f := format.MustNew(format.Spec{Type: "int", Pattern: "#,###"})
	chain := cellproc.NewChain("qty", "Qty", cellproc.Required(), cellproc.Parse(f))
	r := message.NewResolver(defaultBundle(t))
	cell := cellproc.Cell{LineNumber: 4, RowNumber: 4, ColumnNumber: 3}

	_, err := chain.Execute(context.Background(), "abc", cell)
	assert.Equal(t, []string{"[row 4, column 3] Qty: value (abc) is not a valid int (#,###)"},
		message.NewConverter(r).ConvertAndFormat(err, nil))

	_, err = chain.Execute(context.Background(), "", cell)
	assert.Equal(t, []string{"[row 4, column 3] Qty: value is required"},
		message.NewConverter(r).ConvertAndFormat(err, nil))
}

type labels map[int]string

func (l labels) Label(n int) string { return l[n] }

func TestConvertAndFormat(t *testing.T) {
	t.Parallel()

	r := message.NewResolver(defaultBundle(t))
	c := message.NewConverter(r)

	a := rangeFailure(t, "", 1, numberRange())
	b := rangeFailure(t, "", 1, numberRange())
	err := errors.Join(a, errors.New("not a validation error"), cellproc.ValidationErrors{b})

	got := c.ConvertAndFormat(err, labels{1: "Amount"})
	want := "[row 2, column 1] Amount: value (999) must be between 1,000 and 1,010"
	assert.Equal(t, []string{want, want}, got, "identical failures are not merged")
	assert.Empty(t, a.Label, "the failure itself is not modified")

	assert.Nil(t, c.ConvertAndFormat(nil, nil))
	assert.Nil(t, c.ConvertAndFormat(errors.New("io"), nil))
}

func TestLoadBundleOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(`
en:
  csv:
    frame: "{label}@{rowNumber}: {message}"
`), 0o600))

	bundle, err := message.LoadBundle(context.Background(), dir)
	require.NoError(t, err)

	ve := rangeFailure(t, "Amount", 1, numberRange())
	assert.Equal(t, "Amount@2: value (999) must be between 1,000 and 1,010", message.NewResolver(bundle).Resolve(ve))
}

func TestResolverLogsUnresolvedTokens(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ve := rangeFailure(t, "col", 1, numberRange())
	ve.Message = "{label} needs {missing}"

	r := message.NewResolver(defaultBundle(t), message.WithLanguage("en"), message.WithLogger(log))
	assert.Contains(t, r.Resolve(ve), "col needs {missing}")
	assert.Contains(t, buf.String(), "message template token left unresolved")

	quiet := message.NewResolver(defaultBundle(t), message.WithLogger(nil))
	assert.Contains(t, quiet.Resolve(ve), "{missing}")
}

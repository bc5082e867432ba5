// Package logger builds *slog.Logger values for csvbind tools.
//
// New takes functional options for format, level, output and static
// attributes, and wraps the handler so attributes carried by a context (such
// as the processing session) are added to every record logged with a
// *Context method:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			return logger.Session(seen.SessionID(ctx)), true
//		}),
//	)
//	log.WarnContext(ctx, "row rejected", logger.Row(12), logger.Field("price"))
//
// The attribute helpers in attr.go keep key names consistent.
package logger

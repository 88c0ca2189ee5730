package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/banking_backoffice_app/internal/middleware"
)

// BaseService gives services the request-scoped logger carried by ctx.
// Jobs and the error record handler run outside a request and fall back to the default logger.
type BaseService struct{}

// GetLogger returns the logger stored in ctx by the logging middleware or the scheduler.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

func (s *BaseService) log(ctx context.Context, level slog.Level, msg string, keyvals []any) {
	s.GetLogger(ctx).Log(ctx, level, msg, keyvals...)
}

// LogError logs msg with err attached under the "error" key.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	if err != nil {
		keyvals = append([]any{slog.String("error", err.Error())}, keyvals...)
	}
	s.log(ctx, slog.LevelError, msg, keyvals)
}

func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.log(ctx, slog.LevelWarn, msg, keyvals)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.log(ctx, slog.LevelInfo, msg, keyvals)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.log(ctx, slog.LevelDebug, msg, keyvals)
}

package logging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's logging through zap. Statements are logged at
// debug; slow statements and failures other than record-not-found at warn.
type GormLogger struct {
	log  *zap.Logger
	slow time.Duration
}

func NewGormLogger(log *zap.Logger, slow time.Duration) *GormLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &GormLogger{log: log, slow: slow}
}

// LogMode is a no-op; the level comes from the zap logger.
func (g *GormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface { return g }

func (g *GormLogger) Info(_ context.Context, msg string, data ...any) {
	g.log.Debug(fmt.Sprintf(msg, data...))
}

func (g *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	g.log.Warn(fmt.Sprintf(msg, data...))
}

func (g *GormLogger) Error(_ context.Context, msg string, data ...any) {
	g.log.Error(fmt.Sprintf(msg, data...))
}

func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		g.log.Warn("query error", append(fields, zap.Error(err))...)
	case g.slow > 0 && elapsed > g.slow:
		g.log.Warn("slow query", fields...)
	default:
		g.log.Debug("query", fields...)
	}
}

package db

import (
	"context"
	"time"

	"github.com/smallbiznis/mall/internal/config"
	obslogger "github.com/smallbiznis/mall/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

// New opens the gorm connection, instruments it and registers shutdown.
func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialect, &gorm.Config{
		Logger: obslogger.NewGormLogger(obslogger.DefaultGormLoggerConfig()),
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.DBName))); err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(valueOrDefault(cfg.DBMaxIdleConn, 5))
	sqlDB.SetMaxOpenConns(valueOrDefault(cfg.DBMaxOpenConn, 25))
	sqlDB.SetConnMaxLifetime(time.Duration(valueOrDefault(cfg.DBConnMaxLifetime, 300)) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(valueOrDefault(cfg.DBConnMaxIdleTime, 60)) * time.Second)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing database connection")
			return sqlDB.Close()
		},
	})

	return conn, nil
}

func valueOrDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InstrumentGORM adds a span per statement. Bound variables are left out of
// span attributes.
func InstrumentGORM(db *gorm.DB, dbName string, enabled bool, logger *zap.Logger) error {
	if !enabled {
		return nil
	}
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}
	if logger != nil {
		logger.Info("Database tracing enabled", zap.String("db", dbName))
	}
	return nil
}

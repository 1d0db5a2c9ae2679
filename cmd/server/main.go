package main

import (
	"github.com/storefront/platform/internal/infrastructure/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	_ "github.com/storefront/platform/docs"
)

//	@title			Storefront Platform API
//	@version		1.0
//	@description	Backend API for an online storefront: catalog, carts, payments, shipping, content, accounting and staff.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/storefront/platform

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	fx.New(
		fx.Provide(config.Load),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		telemetryModule,
		infrastructureModule,
		applicationModule,
		httpModule,
	).Run()
}

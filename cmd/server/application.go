package main

import (
	accountingapp "github.com/storefront/platform/internal/application/accounting"
	cartapp "github.com/storefront/platform/internal/application/cart"
	catalogapp "github.com/storefront/platform/internal/application/catalog"
	contentapp "github.com/storefront/platform/internal/application/content"
	employeeapp "github.com/storefront/platform/internal/application/employee"
	i18napp "github.com/storefront/platform/internal/application/i18n"
	identityapp "github.com/storefront/platform/internal/application/identity"
	paymentapp "github.com/storefront/platform/internal/application/payment"
	performanceapp "github.com/storefront/platform/internal/application/performance"
	shippingapp "github.com/storefront/platform/internal/application/shipping"
	"github.com/storefront/platform/internal/domain/content"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/auth"
	"github.com/storefront/platform/internal/infrastructure/cache"
	"github.com/storefront/platform/internal/infrastructure/config"
	"github.com/storefront/platform/internal/infrastructure/persistence"
	"github.com/storefront/platform/internal/interfaces/http/handler"
	"github.com/storefront/platform/internal/interfaces/http/router"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var applicationModule = fx.Module("application",
	fx.Provide(
		newServices,
		newHandlers,
		func(s *services) *identityapp.AuthService { return s.auth },
	),
)

// services holds the application services of every domain
type services struct {
	accounts     *accountingapp.AccountService
	journal      *accountingapp.JournalEntryService
	products     *catalogapp.ProductService
	categories   *catalogapp.CategoryService
	payments     *paymentapp.PaymentService
	refunds      *paymentapp.RefundService
	methods      *paymentapp.MethodService
	shipments    *shippingapp.ShipmentService
	languages    *i18napp.LanguageService
	translations *i18napp.TranslationService
	employees    *employeeapp.EmployeeService
	payroll      *employeeapp.PayrollService
	content      *contentapp.ContentService
	auth         *identityapp.AuthService
	metrics      *performanceapp.MetricService
	carts        *cartapp.CartService
}

type serviceDeps struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Database *persistence.Database
	Stores   *cache.Stores
	Gateway  payment.Gateway
	Events   shared.EventPublisher
	Store    content.ObjectStore
	Renderer content.Renderer
}

func newServices(d serviceDeps) *services {
	db := d.Database.DB
	log := d.Logger
	cfg := d.Config

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db)
	journalRepo := persistence.NewGormJournalEntryRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	refundRepo := persistence.NewGormRefundRepository(db)
	methodRepo := persistence.NewGormPaymentMethodRepository(db)
	shipmentRepo := persistence.NewGormShipmentRepository(db)
	trackingRepo := persistence.NewGormTrackingEventRepository(db)
	languageRepo := persistence.NewGormLanguageRepository(db)
	translationRepo := persistence.NewGormTranslationRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	payrollRepo := persistence.NewGormPayrollRepository(db)
	contentRepo := persistence.NewGormContentRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	metricRepo := persistence.NewGormMetricRepository(db)

	// Transaction scopes for multi-row writes
	accountingTx := persistence.NewAccountingTransactionScope(db)
	paymentTx := persistence.NewPaymentTransactionScope(db)
	shippingTx := persistence.NewShippingTransactionScope(db)
	i18nTx := persistence.NewI18nTransactionScope(db)

	jwtService := auth.NewJWTService(cfg.JWT)
	authConfig := identityapp.DefaultAuthServiceConfig()
	if cfg.Auth.MaxLoginAttempts > 0 {
		authConfig.MaxLoginAttempts = cfg.Auth.MaxLoginAttempts
	}
	if cfg.Auth.LockDuration > 0 {
		authConfig.LockDuration = cfg.Auth.LockDuration
	}

	return &services{
		accounts:   accountingapp.NewAccountService(accountRepo, log),
		journal:    accountingapp.NewJournalEntryService(journalRepo, accountingTx, d.Events, log),
		products:   catalogapp.NewProductService(productRepo, categoryRepo, d.Events, log),
		categories: catalogapp.NewCategoryService(categoryRepo, productRepo, d.Events, log),
		payments: paymentapp.NewPaymentService(paymentapp.PaymentServiceConfig{
			PaymentRepo:    paymentRepo,
			Gateway:        d.Gateway,
			Idempotency:    d.Stores.Idempotency,
			IdempotencyTTL: cfg.Payment.IdempotencyTTL,
			Events:         d.Events,
			Logger:         log,
		}),
		refunds:      paymentapp.NewRefundService(refundRepo, paymentTx, d.Events, log),
		methods:      paymentapp.NewMethodService(methodRepo, paymentTx),
		shipments:    shippingapp.NewShipmentService(shipmentRepo, trackingRepo, shippingTx, d.Events, log),
		languages:    i18napp.NewLanguageService(languageRepo, i18nTx, log),
		translations: i18napp.NewTranslationService(languageRepo, translationRepo, i18nTx, log),
		employees:    employeeapp.NewEmployeeService(employeeRepo, log),
		payroll:      employeeapp.NewPayrollService(employeeRepo, payrollRepo, log),
		content:      contentapp.NewContentService(contentRepo, d.Store, d.Renderer, log),
		auth:         identityapp.NewAuthService(userRepo, jwtService, d.Stores.Revocations, authConfig, log),
		metrics:      performanceapp.NewMetricService(metricRepo, log),
		carts:        cartapp.NewCartService(d.Stores.Carts, log),
	}
}

func newHandlers(s *services) router.Handlers {
	return router.Handlers{
		Accounting:  handler.NewAccountingHandler(s.accounts, s.journal),
		Product:     handler.NewProductHandler(s.products),
		Category:    handler.NewCategoryHandler(s.categories),
		Payment:     handler.NewPaymentHandler(s.payments, s.refunds, s.methods),
		Shipping:    handler.NewShippingHandler(s.shipments),
		I18n:        handler.NewI18nHandler(s.languages, s.translations),
		Employee:    handler.NewEmployeeHandler(s.employees, s.payroll),
		Content:     handler.NewContentHandler(s.content),
		Auth:        handler.NewAuthHandler(s.auth),
		Performance: handler.NewPerformanceHandler(s.metrics),
		Cart:        handler.NewCartHandler(s.carts),
	}
}

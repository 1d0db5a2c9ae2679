package persistence

import (
	"github.com/storefront/platform/internal/domain/accounting"
	"github.com/storefront/platform/internal/domain/catalog"
	"github.com/storefront/platform/internal/domain/content"
	"github.com/storefront/platform/internal/domain/employee"
	"github.com/storefront/platform/internal/domain/i18n"
	"github.com/storefront/platform/internal/domain/identity"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/performance"
	"github.com/storefront/platform/internal/domain/shipping"
)

// Models returns every persisted entity in dependency order. It feeds
// AutoMigrate for the sqlite driver and for tests.
func Models() []any {
	return []any{
		&identity.User{},
		&accounting.Account{},
		&accounting.JournalEntry{},
		&accounting.JournalEntryLine{},
		&catalog.Category{},
		&catalog.Product{},
		&payment.Payment{},
		&payment.Refund{},
		&payment.PaymentMethod{},
		&shipping.Shipment{},
		&shipping.TrackingEvent{},
		&i18n.Language{},
		&i18n.Translation{},
		&employee.Employee{},
		&employee.PayrollRecord{},
		&content.Item{},
		&content.Asset{},
		&performance.Metric{},
	}
}

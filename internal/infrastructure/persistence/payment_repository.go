package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/payment"
	"gorm.io/gorm"
)

// GormPaymentRepository implements payment.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Payment")
	}
	return &p, nil
}

// FindAll lists payments newest first
func (r *GormPaymentRepository) FindAll(ctx context.Context, f payment.Filter) ([]payment.Payment, error) {
	q := r.db.WithContext(ctx).Model(&payment.Payment{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.OrderID != "" {
		q = q.Where("order_id = ?", f.OrderID)
	}
	var payments []payment.Payment
	if err := q.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, classify(err, "Payment")
	}
	return payments, nil
}

// FindByOrder lists every attempt made against an order
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, orderID string) ([]payment.Payment, error) {
	return r.FindAll(ctx, payment.Filter{OrderID: orderID})
}

// FindPendingBefore returns pending payments created before cutoff
func (r *GormPaymentRepository) FindPendingBefore(ctx context.Context, cutoff time.Time) ([]payment.Payment, error) {
	var payments []payment.Payment
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", payment.StatusPending, cutoff).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, classify(err, "Payment")
	}
	return payments, nil
}

// Save creates a payment or updates it under a version check
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return saveVersioned(ctx, r.db, p, "Payment")
}

type summaryRow struct {
	Key    string
	Count  int64
	Amount decimal.Decimal
}

// SummaryByStatus counts and sums payments per status
func (r *GormPaymentRepository) SummaryByStatus(ctx context.Context) ([]payment.StatusSummary, error) {
	return r.summary(ctx, "status")
}

// SummaryByMethod counts and sums payments per method
func (r *GormPaymentRepository) SummaryByMethod(ctx context.Context) ([]payment.StatusSummary, error) {
	return r.summary(ctx, "method")
}

func (r *GormPaymentRepository) summary(ctx context.Context, column string) ([]payment.StatusSummary, error) {
	var rows []summaryRow
	if err := r.db.WithContext(ctx).Model(&payment.Payment{}).
		Select(column + " AS key, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group(column).
		Order(column).
		Scan(&rows).Error; err != nil {
		return nil, classify(err, "Payment")
	}
	out := make([]payment.StatusSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, payment.StatusSummary{Key: row.Key, Count: row.Count, Amount: row.Amount})
	}
	return out, nil
}

// GormRefundRepository implements payment.RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// FindByID finds a refund by its ID
func (r *GormRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Refund, error) {
	var refund payment.Refund
	if err := r.db.WithContext(ctx).First(&refund, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Refund")
	}
	return &refund, nil
}

// FindAll lists refunds newest first
func (r *GormRefundRepository) FindAll(ctx context.Context) ([]payment.Refund, error) {
	var refunds []payment.Refund
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&refunds).Error; err != nil {
		return nil, classify(err, "Refund")
	}
	return refunds, nil
}

// FindByPayment lists refunds booked against a payment
func (r *GormRefundRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]payment.Refund, error) {
	var refunds []payment.Refund
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).Order("created_at ASC").Find(&refunds).Error; err != nil {
		return nil, classify(err, "Refund")
	}
	return refunds, nil
}

// Save creates or updates a refund
func (r *GormRefundRepository) Save(ctx context.Context, refund *payment.Refund) error {
	return saveVersioned(ctx, r.db, refund, "Refund")
}

// GormPaymentMethodRepository implements payment.PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID finds a saved method by its ID
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.PaymentMethod, error) {
	var m payment.PaymentMethod
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, classify(err, "Payment method")
	}
	return &m, nil
}

// FindByCustomer lists a customer's methods, default first
func (r *GormPaymentMethodRepository) FindByCustomer(ctx context.Context, customerID string) ([]payment.PaymentMethod, error) {
	var methods []payment.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("is_default DESC, created_at ASC").
		Find(&methods).Error; err != nil {
		return nil, classify(err, "Payment method")
	}
	return methods, nil
}

// CountByCustomer counts a customer's saved methods
func (r *GormPaymentMethodRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&payment.PaymentMethod{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
		return 0, classify(err, "Payment method")
	}
	return count, nil
}

// ClearDefault unsets the default flag on every method of the customer
func (r *GormPaymentMethodRepository) ClearDefault(ctx context.Context, customerID string) error {
	err := r.db.WithContext(ctx).Model(&payment.PaymentMethod{}).
		Where("customer_id = ? AND is_default = ?", customerID, true).
		Updates(map[string]any{"is_default": false, "updated_at": time.Now()}).Error
	return classify(err, "Payment method")
}

// Save creates or updates a saved method
func (r *GormPaymentMethodRepository) Save(ctx context.Context, m *payment.PaymentMethod) error {
	return saveVersioned(ctx, r.db, m, "Payment method")
}

// Delete removes a saved method
func (r *GormPaymentMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&payment.PaymentMethod{}, "id = ?", id)
	if res.Error != nil {
		return classify(res.Error, "Payment method")
	}
	if res.RowsAffected == 0 {
		return classify(gorm.ErrRecordNotFound, "Payment method")
	}
	return nil
}

package handler

import (
	"github.com/gin-gonic/gin"
	apppay "github.com/storefront/platform/internal/application/payment"
	"github.com/storefront/platform/internal/domain/payment"
	"github.com/storefront/platform/internal/domain/shared"
)

// IdempotencyKeyHeader names the header that deduplicates payment processing
const IdempotencyKeyHeader = "Idempotency-Key"

// PaymentHandler serves payments, refunds and saved payment methods
type PaymentHandler struct {
	BaseHandler
	payments *apppay.PaymentService
	refunds  *apppay.RefundService
	methods  *apppay.MethodService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *apppay.PaymentService, refunds *apppay.RefundService, methods *apppay.MethodService) *PaymentHandler {
	return &PaymentHandler{payments: payments, refunds: refunds, methods: methods}
}

// CreatePayment godoc
// @Summary      Open a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body apppay.CreatePaymentRequest true "Payment"
// @Success      201 {object} dto.Response{data=apppay.PaymentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req apppay.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	p, err := h.payments.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// ListPayments godoc
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Param        status     query string false "Payment status"
// @Param        customerId query string false "Customer ID"
// @Param        orderId    query string false "Order ID"
// @Success      200 {object} dto.Response{data=[]apppay.PaymentResponse}
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	filter := payment.Filter{
		CustomerID: c.Query("customerId"),
		OrderID:    c.Query("orderId"),
	}
	if raw := c.Query("status"); raw != "" {
		status := payment.Status(raw)
		if !status.IsValid() {
			h.HandleError(c, shared.NewValidationError("INVALID_STATUS", "Unknown payment status: "+raw))
			return
		}
		filter.Status = &status
	}
	payments, err := h.payments.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, payments, len(payments))
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} dto.Response{data=apppay.PaymentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	p, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// ListByOrder godoc
// @Summary      Payments of an order
// @Tags         payments
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Success      200 {object} dto.Response{data=[]apppay.PaymentResponse}
// @Security     BearerAuth
// @Router       /payments/order/{orderId} [get]
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	payments, err := h.payments.ListByOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, payments, len(payments))
}

// Stats godoc
// @Summary      Payment counts and sums per status and method
// @Tags         payments
// @Produce      json
// @Success      200 {object} dto.Response{data=apppay.StatsResponse}
// @Security     BearerAuth
// @Router       /payments/stats [get]
func (h *PaymentHandler) Stats(c *gin.Context) {
	stats, err := h.payments.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Process godoc
// @Summary      Authorize and capture a pending payment
// @Description  Replays with the same Idempotency-Key return the stored payment
// @Tags         payments
// @Produce      json
// @Param        id              path   string true  "Payment ID"
// @Param        Idempotency-Key header string false "Deduplication key"
// @Success      200 {object} dto.Response{data=apppay.PaymentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id}/process [post]
func (h *PaymentHandler) Process(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	p, err := h.payments.Process(c.Request.Context(), id, c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Callback godoc
// @Summary      Processor notification
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Payment ID"
// @Param        request body apppay.CallbackRequest true "Event"
// @Success      200 {object} dto.Response{data=apppay.PaymentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payments/{id}/callback [post]
func (h *PaymentHandler) Callback(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req apppay.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	p, err := h.payments.HandleCallback(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// PaymentRefunds godoc
// @Summary      Refunds of a payment
// @Tags         refunds
// @Produce      json
// @Param        id path string true "Payment ID"
// @Success      200 {object} dto.Response{data=[]apppay.RefundResponse}
// @Security     BearerAuth
// @Router       /payments/{id}/refunds [get]
func (h *PaymentHandler) PaymentRefunds(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	refunds, err := h.refunds.ListByPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, refunds, len(refunds))
}

// CreateRefund godoc
// @Summary      Refund a completed payment
// @Tags         refunds
// @Accept       json
// @Produce      json
// @Param        request body apppay.CreateRefundRequest true "Refund"
// @Success      201 {object} dto.Response{data=apppay.RefundResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /refunds [post]
func (h *PaymentHandler) CreateRefund(c *gin.Context) {
	var req apppay.CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	refund, err := h.refunds.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, refund)
}

// ListRefunds godoc
// @Summary      List refunds
// @Tags         refunds
// @Produce      json
// @Success      200 {object} dto.Response{data=[]apppay.RefundResponse}
// @Security     BearerAuth
// @Router       /refunds [get]
func (h *PaymentHandler) ListRefunds(c *gin.Context) {
	refunds, err := h.refunds.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, refunds, len(refunds))
}

// GetRefund godoc
// @Summary      Get a refund
// @Tags         refunds
// @Produce      json
// @Param        id path string true "Refund ID"
// @Success      200 {object} dto.Response{data=apppay.RefundResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /refunds/{id} [get]
func (h *PaymentHandler) GetRefund(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	refund, err := h.refunds.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, refund)
}

// CreateMethod godoc
// @Summary      Save a payment method
// @Description  The first method of a customer becomes the default
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        request body apppay.CreateMethodRequest true "Payment method"
// @Success      201 {object} dto.Response{data=apppay.MethodResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payment-methods [post]
func (h *PaymentHandler) CreateMethod(c *gin.Context) {
	var req apppay.CreateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	method, err := h.methods.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, method)
}

// CustomerMethods godoc
// @Summary      Payment methods of a customer
// @Tags         payment-methods
// @Produce      json
// @Param        customerId path string true "Customer ID"
// @Success      200 {object} dto.Response{data=[]apppay.MethodResponse}
// @Security     BearerAuth
// @Router       /payment-methods/customer/{customerId} [get]
func (h *PaymentHandler) CustomerMethods(c *gin.Context) {
	methods, err := h.methods.ListByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Collection(c, methods, len(methods))
}

// SetDefaultMethod godoc
// @Summary      Make a payment method the customer's default
// @Tags         payment-methods
// @Produce      json
// @Param        id path string true "Payment method ID"
// @Success      200 {object} dto.Response{data=apppay.MethodResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payment-methods/{id}/default [patch]
func (h *PaymentHandler) SetDefaultMethod(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	method, err := h.methods.SetDefault(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, method)
}

// DeleteMethod godoc
// @Summary      Remove a payment method
// @Tags         payment-methods
// @Produce      json
// @Param        id path string true "Payment method ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payment-methods/{id} [delete]
func (h *PaymentHandler) DeleteMethod(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.methods.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Deleted(c, "Payment method removed")
}

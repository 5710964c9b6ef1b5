package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service port.Service
	logger  *zap.Logger
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{service: service, logger: logger}, nil
}

type historyResponse struct {
	Field    string    `json:"field"`
	OldValue string    `json:"old_value"`
	NewValue string    `json:"new_value"`
	Date     time.Time `json:"date"`
	User     string    `json:"user"`
}

type orderResponse struct {
	ID              uint64            `json:"id"`
	InvoiceCode     string            `json:"invoice_code"`
	ClientName      string            `json:"client_name"`
	DeliveryMethod  string            `json:"delivery_method"`
	PaymentMethod   string            `json:"payment_method"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	BilledBy        string            `json:"billed_by"`
	Weight          string            `json:"weight,omitempty"`
	Recipient       string            `json:"recipient,omitempty"`
	Address         string            `json:"address,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	PaymentProof    string            `json:"payment_proof,omitempty"`
	DeliveryProof   string            `json:"delivery_proof,omitempty"`
	AmountCollected decimal.Decimal   `json:"amount_collected"`
	DeliveryDate    *time.Time        `json:"delivery_date,omitempty"`
	DeliveredBy     string            `json:"delivered_by,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	MoneyReceivedAt *time.Time        `json:"money_received_at,omitempty"`
	MoneyReceivedBy string            `json:"money_received_by,omitempty"`
	ReceiptID       *uint64           `json:"receipt_id,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	History         []historyResponse `json:"history"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	history := make([]historyResponse, 0, len(o.History))
	for _, h := range o.History {
		history = append(history, historyResponse{
			Field:    h.Field,
			OldValue: h.OldValue,
			NewValue: h.NewValue,
			Date:     h.Date,
			User:     h.User,
		})
	}

	return orderResponse{
		ID:              o.ID,
		InvoiceCode:     o.InvoiceCode,
		ClientName:      o.ClientName,
		DeliveryMethod:  string(o.DeliveryMethod),
		PaymentMethod:   string(o.PaymentMethod),
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		BilledBy:        o.BilledBy,
		Weight:          o.Weight,
		Recipient:       o.Recipient,
		Address:         o.Address,
		Phone:           o.Phone,
		PaymentProof:    o.PaymentProof,
		DeliveryProof:   o.DeliveryProof,
		AmountCollected: o.AmountCollected,
		DeliveryDate:    o.DeliveryDate,
		DeliveredBy:     o.DeliveredBy,
		Notes:           o.Notes,
		MoneyReceivedAt: o.MoneyReceivedAt,
		MoneyReceivedBy: o.MoneyReceivedBy,
		ReceiptID:       o.ReceiptID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		History:         history,
	}
}

func orderListResponse(list []*domain.Order) []orderResponse {
	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResponse(o))
	}
	return result
}

type createOrderRequest struct {
	InvoiceCode    string  `json:"invoice_code" binding:"required"`
	ClientName     string  `json:"client_name" binding:"required"`
	DeliveryMethod string  `json:"delivery_method" binding:"required"`
	PaymentMethod  string  `json:"payment_method" binding:"required"`
	TotalAmount    float64 `json:"total_amount" binding:"required"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Notes          string  `json:"notes"`
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleValidationError(ctx, err)
		return
	}

	total, err := decimal.NewFromFloat64(req.TotalAmount)
	if err != nil {
		handleValidationError(ctx, err)
		return
	}

	order := &domain.Order{
		InvoiceCode:    req.InvoiceCode,
		ClientName:     req.ClientName,
		DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		TotalAmount:    total,
		Address:        req.Address,
		Phone:          req.Phone,
		Notes:          req.Notes,
	}

	created, err := oh.service.CreateOrder(ctx, order, getAuthPayload(ctx).Username)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccessWithStatus(ctx, newOrderResponse(created), 201)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	id := parseID(ctx)
	if id == 0 {
		return
	}

	order, err := oh.service.GetOrder(ctx, id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	list, err := oh.service.ListOrders(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, orderListResponse(list))
}

func (oh *OrderHandler) ListOrdersByStatus(ctx *gin.Context) {
	status := domain.OrderStatus(ctx.Param("status"))

	list, err := oh.service.ListOrdersByStatus(ctx, status)
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, orderListResponse(list))
}

func (oh *OrderHandler) OrderStatistics(ctx *gin.Context) {
	stats, err := oh.service.OrderStatistics(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, stats)
}

type updateOrderRequest struct {
	ClientName      *string  `json:"client_name"`
	DeliveryMethod  *string  `json:"delivery_method"`
	PaymentMethod   *string  `json:"payment_method"`
	TotalAmount     *float64 `json:"total_amount"`
	Status          *string  `json:"status"`
	PaymentStatus   *string  `json:"payment_status"`
	Weight          *string  `json:"weight"`
	Recipient       *string  `json:"recipient"`
	Address         *string  `json:"address"`
	Phone           *string  `json:"phone"`
	PaymentProof    *string  `json:"payment_proof"`
	DeliveryProof   *string  `json:"delivery_proof"`
	AmountCollected *float64 `json:"amount_collected"`
	DeliveredBy     *string  `json:"delivered_by"`
	Notes           *string  `json:"notes"`
}

func (req *updateOrderRequest) toPatch() (domain.OrderPatch, error) {
	patch := domain.OrderPatch{
		ClientName:    req.ClientName,
		Weight:        req.Weight,
		Recipient:     req.Recipient,
		Address:       req.Address,
		Phone:         req.Phone,
		PaymentProof:  req.PaymentProof,
		DeliveryProof: req.DeliveryProof,
		DeliveredBy:   req.DeliveredBy,
		Notes:         req.Notes,
	}
	if req.DeliveryMethod != nil {
		m := domain.DeliveryMethod(*req.DeliveryMethod)
		patch.DeliveryMethod = &m
	}
	if req.PaymentMethod != nil {
		m := domain.PaymentMethod(*req.PaymentMethod)
		patch.PaymentMethod = &m
	}
	if req.Status != nil {
		s := domain.OrderStatus(*req.Status)
		patch.Status = &s
	}
	if req.PaymentStatus != nil {
		s := domain.PaymentStatus(*req.PaymentStatus)
		patch.PaymentStatus = &s
	}
	if req.TotalAmount != nil {
		d, err := decimal.NewFromFloat64(*req.TotalAmount)
		if err != nil {
			return patch, err
		}
		patch.TotalAmount = &d
	}
	if req.AmountCollected != nil {
		d, err := decimal.NewFromFloat64(*req.AmountCollected)
		if err != nil {
			return patch, err
		}
		patch.AmountCollected = &d
	}
	return patch, nil
}

func (oh *OrderHandler) UpdateOrder(ctx *gin.Context) {
	id := parseID(ctx)
	if id == 0 {
		return
	}

	req := updateOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleValidationError(ctx, err)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		handleValidationError(ctx, err)
		return
	}

	updated, err := oh.service.UpdateOrder(ctx, id, patch, getAuthPayload(ctx).Username)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, newOrderResponse(updated))
}

func (oh *OrderHandler) DeleteOrder(ctx *gin.Context) {
	id := parseID(ctx)
	if id == 0 {
		return
	}

	if err := oh.service.DeleteOrder(ctx, id); err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccessMessage(ctx, "order deleted")
}

type verifyPaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
	PaymentProof  string `json:"payment_proof"`
	Notes         string `json:"notes"`
}

func (oh *OrderHandler) VerifyPayment(ctx *gin.Context) {
	id := parseID(ctx)
	if id == 0 {
		return
	}

	req := verifyPaymentRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.VerifyPayment(ctx, id, domain.VerifyPaymentInput{
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
		PaymentProof:  req.PaymentProof,
		Notes:         req.Notes,
	}, getAuthPayload(ctx).Username)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, newOrderResponse(order))
}

type assignRequest struct {
	Weight   string `json:"weight"`
	NoWeight bool   `json:"no_weight"`
	Carrier  string `json:"carrier"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
}

func (oh *OrderHandler) AssignLogistics(ctx *gin.Context) {
	id := parseID(ctx)
	if id == 0 {
		return
	}

	req := assignRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.AssignLogistics(ctx, id, domain.AssignmentInput{
		Weight:   req.Weight,
		NoWeight: req.NoWeight,
		Carrier:  req.Carrier,
		Address:  req.Address,
		Phone:    req.Phone,
		Notes:    req.Notes,
	}, getAuthPayload(ctx).Username)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, newOrderResponse(order))
}

type deliverRequest struct {
	DeliveryProof   string  `json:"delivery_proof" binding:"required"`
	AmountCollected float64 `json:"amount_collected"`
	Notes           string  `json:"notes"`
}

func (oh *OrderHandler) Deliver(ctx *gin.Context) {
	id := parseID(ctx)
	if id == 0 {
		return
	}

	req := deliverRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		handleValidationError(ctx, err)
		return
	}

	collected, err := decimal.NewFromFloat64(req.AmountCollected)
	if err != nil {
		handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.Deliver(ctx, id, domain.DeliveryInput{
		DeliveryProof:   req.DeliveryProof,
		AmountCollected: collected,
		Notes:           req.Notes,
	}, getAuthPayload(ctx).Username)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, newOrderResponse(order))
}

func (oh *OrderHandler) CashSummary(ctx *gin.Context) {
	summary, err := oh.service.CourierCashSummary(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, summary)
}

func (oh *OrderHandler) OutstandingOrders(ctx *gin.Context) {
	list, err := oh.service.OutstandingOrders(ctx, ctx.Param("courier"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, orderListResponse(list))
}

package http

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/port"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	service port.Service
	files   port.FileStore
	logger  *zap.Logger
}

func NewReceiptHandler(service port.Service, files port.FileStore, logger *zap.Logger) (*ReceiptHandler, error) {
	return &ReceiptHandler{service: service, files: files, logger: logger}, nil
}

type receiptResponse struct {
	ID           uint64          `json:"id"`
	CourierName  string          `json:"messenger_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	InvoiceCodes []string        `json:"invoice_codes"`
	ReceiptPhoto string          `json:"receipt_photo,omitempty"`
	ReceivedBy   string          `json:"received_by"`
	ReceivedAt   time.Time       `json:"received_at"`
	Notes        string          `json:"notes,omitempty"`
}

func newReceiptResponse(r *domain.MoneyReceipt) receiptResponse {
	return receiptResponse{
		ID:           r.ID,
		CourierName:  r.CourierName,
		TotalAmount:  r.TotalAmount,
		InvoiceCodes: r.InvoiceCodes,
		ReceiptPhoto: r.ReceiptPhoto,
		ReceivedBy:   r.ReceivedBy,
		ReceivedAt:   r.ReceivedAt,
		Notes:        r.Notes,
	}
}

func receiptListResponse(list []*domain.MoneyReceipt) []receiptResponse {
	result := make([]receiptResponse, 0, len(list))
	for _, r := range list {
		result = append(result, newReceiptResponse(r))
	}
	return result
}

// CreateReceipt takes a multipart form: messenger_name, invoice_codes
// (JSON-encoded array), optional receipt_photo file and notes. The
// photo must be stored before the ledger write happens.
func (rh *ReceiptHandler) CreateReceipt(ctx *gin.Context) {
	courier := ctx.PostForm("messenger_name")
	codesRaw := ctx.PostForm("invoice_codes")
	notes := ctx.PostForm("notes")

	var codes []string
	if err := json.Unmarshal([]byte(codesRaw), &codes); err != nil {
		handleValidationError(ctx, err)
		return
	}

	var stored string
	if file, err := ctx.FormFile("receipt_photo"); err == nil {
		src, err := file.Open()
		if err != nil {
			handleValidationError(ctx, err)
			return
		}
		defer src.Close()

		stored, err = rh.files.Save(file.Filename, file.Size, src)
		if err != nil {
			handleError(ctx, err)
			return
		}
	}

	receipt, err := rh.service.ConfirmReceipt(ctx, domain.ReceiptInput{
		CourierName:  courier,
		InvoiceCodes: codes,
		ReceiptPhoto: stored,
		Notes:        notes,
	}, getAuthPayload(ctx).Username)
	if err != nil {
		if stored != "" {
			if rmErr := rh.files.Remove(stored); rmErr != nil {
				rh.logger.Warn("Remove orphaned photo", zap.Error(rmErr))
			}
		}
		handleError(ctx, err)
		return
	}

	handleSuccessWithStatus(ctx, newReceiptResponse(receipt), 201)
}

func (rh *ReceiptHandler) GetReceipt(ctx *gin.Context) {
	id := parseID(ctx)
	if id == 0 {
		return
	}

	receipt, err := rh.service.GetReceipt(ctx, id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccess(ctx, newReceiptResponse(receipt))
}

func (rh *ReceiptHandler) ListReceipts(ctx *gin.Context) {
	list, err := rh.service.ListReceipts(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, receiptListResponse(list))
}

func (rh *ReceiptHandler) ListReceiptsToday(ctx *gin.Context) {
	list, err := rh.service.ListReceiptsToday(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, receiptListResponse(list))
}

const dateLayout = "2006-01-02"

func (rh *ReceiptHandler) ListReceiptsByDateRange(ctx *gin.Context) {
	from, err := time.ParseInLocation(dateLayout, ctx.Query("start_date"), time.Local)
	if err != nil {
		handleValidationError(ctx, err)
		return
	}
	to, err := time.ParseInLocation(dateLayout, ctx.Query("end_date"), time.Local)
	if err != nil {
		handleValidationError(ctx, err)
		return
	}

	// end_date is inclusive.
	list, err := rh.service.ListReceiptsByDateRange(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, receiptListResponse(list))
}

func (rh *ReceiptHandler) ListReceiptsByCourier(ctx *gin.Context) {
	list, err := rh.service.ListReceiptsByCourier(ctx, ctx.Param("name"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, receiptListResponse(list))
}

func (rh *ReceiptHandler) ReceiptStatistics(ctx *gin.Context) {
	stats, err := rh.service.ReceiptStatistics(ctx)
	if err != nil {
		handleError(ctx, err)
		return
	}
	handleSuccess(ctx, stats)
}

func (rh *ReceiptHandler) ReceiptPhoto(ctx *gin.Context) {
	path, err := rh.files.Path(ctx.Param("filename"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.File(path)
}

func (rh *ReceiptHandler) DeleteReceipt(ctx *gin.Context) {
	id := parseID(ctx)
	if id == 0 {
		return
	}

	if err := rh.service.DeleteReceipt(ctx, id); err != nil {
		handleError(ctx, err)
		return
	}

	handleSuccessMessage(ctx, "receipt deleted")
}

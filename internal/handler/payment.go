package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/middleware"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

// PaymentHandler handles HTTP requests for membership payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, logger: logger}
}

// ProcessPaymentRequest is the HTTP request body for a membership renewal.
type ProcessPaymentRequest struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

// PaymentResponse is the HTTP response for a payment record.
type PaymentResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Amount          float64 `json:"amount"`
	MembershipType  string  `json:"membership_type"`
	PaymentDate     string  `json:"payment_date"`
	MembershipStart string  `json:"membership_start"`
	MembershipEnd   string  `json:"membership_end"`
	TransactionID   string  `json:"transaction_id"`
}

func paymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              payment.ID,
		UserID:          payment.UserID,
		Amount:          payment.Amount,
		MembershipType:  string(payment.MembershipType),
		PaymentDate:     payment.PaymentDate.Format(time.RFC3339),
		MembershipStart: payment.MembershipStart.Format(time.RFC3339),
		MembershipEnd:   payment.MembershipEnd.Format(time.RFC3339),
		TransactionID:   payment.TransactionID,
	}
}

// ProcessPayment handles POST /v1/payments
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	payment, err := h.paymentService.ProcessPayment(c.Request.Context(), middleware.CurrentUser(c), service.ProcessPaymentRequest{
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondJSON(c, http.StatusCreated, paymentResponse(payment))
}

// GetHistory handles GET /v1/payments
func (h *PaymentHandler) GetHistory(c *gin.Context) {
	payments, err := h.paymentService.GetPaymentHistory(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		response = append(response, paymentResponse(payment))
	}

	respondJSON(c, http.StatusOK, response)
}

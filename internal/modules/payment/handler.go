package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/response"
)

type Handler struct {
	settings SettingsReader
	clk      clock.Clock
}

func NewHandler(settings SettingsReader, clk clock.Clock) *Handler {
	return &Handler{settings: settings, clk: clk}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/quote", h.Quote)
	rg.POST("/payments/refund-preview", h.RefundPreview)
}

// Quote previews the online/at-property split for a property without
// creating a booking.
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	settings, err := h.settings.GetPaymentSettings(c.Request.Context(), req.PropertyID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "PROPERTY_NOT_FOUND", "Payment settings unavailable for property")
		return
	}

	split, err := ComputeSplit(req.TotalAmount, settings, req.Percent)
	if err != nil {
		if errors.Is(err, ErrInvalidPercentage) {
			response.Error(c, http.StatusBadRequest, "INVALID_PERCENTAGE", err.Error())
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, split)
}

// RefundPreview evaluates the cancellation policy as if the booking were
// cancelled right now.
func (h *Handler) RefundPreview(c *gin.Context) {
	var req RefundPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	settings, err := h.settings.GetPaymentSettings(c.Request.Context(), req.PropertyID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "PROPERTY_NOT_FOUND", "Payment settings unavailable for property")
		return
	}

	res := ComputeRefund(req.OriginalAmount, req.RequestedRefund, req.CheckInDate, h.clk.Now(), settings.CancellationPolicy)
	response.Success(c, http.StatusOK, res)
}

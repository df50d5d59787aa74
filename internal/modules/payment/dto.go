package payment

import "time"

type QuoteRequest struct {
	PropertyID  int64    `json:"property_id" binding:"required"`
	TotalAmount float64  `json:"total_amount" binding:"required,gt=0"`
	Percent     *float64 `json:"percent"`
}

type RefundPreviewRequest struct {
	PropertyID      int64     `json:"property_id" binding:"required"`
	OriginalAmount  float64   `json:"original_amount" binding:"required,gt=0"`
	RequestedRefund float64   `json:"requested_refund"`
	CheckInDate     time.Time `json:"check_in_date" binding:"required"`
}

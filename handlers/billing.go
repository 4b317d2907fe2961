package handlers

import (
	"net/http"

	"table-service-api/billing"
	"table-service-api/events"
	"table-service-api/models"

	"github.com/gin-gonic/gin"
)

type CloseBillingRequest struct {
	SessionID      uint                 `json:"session_id" binding:"required"`
	PaymentMethod  models.PaymentMethod `json:"payment_method" binding:"required,oneof=CASH QR CREDIT"`
	ExtraChargeIDs []uint               `json:"extra_charge_ids"`
}

// CloseBilling closes out a session into its immutable billing
// summary. The engine runs the whole close in one transaction; the
// event goes out only after the commit.
func (h *Handler) CloseBilling(c *gin.Context) {
	var req CloseBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := billing.Close(h.DB, billing.CloseRequest{
		SessionID:      req.SessionID,
		PaymentMethod:  req.PaymentMethod,
		ExtraChargeIDs: req.ExtraChargeIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logAction(c, "CLOSE_BILLING", gin.H{
		"session_id":     summary.SessionID,
		"billing_id":     summary.ID,
		"grand_total":    summary.GrandTotal,
		"payment_method": summary.PaymentMethod,
	})

	h.Bus.Publish(events.Event{
		Topic: events.TopicBillingClosed,
		Payload: events.BillingEvent{
			BillingID:  summary.ID,
			SessionID:  summary.SessionID,
			GrandTotal: summary.GrandTotal,
		},
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Billing closed", "billing": summary})
}

// GetBilling returns the frozen summary for a closed session, keyed by
// the session id.
func (h *Handler) GetBilling(c *gin.Context) {
	var summary models.BillingSummary
	if err := h.DB.Preload("Items").
		Where("session_id = ?", c.Param("sessionId")).
		First(&summary).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No billing summary for this session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"billing": summary})
}

package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rake87226-cmyk/vercel-backend/models"
	"github.com/rake87226-cmyk/vercel-backend/notify"
)

// recordPayment writes a completed ledger entry for whatever the caller
// claims was paid. No gateway is involved and amounts are not checked.
func (h *api) recordPayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	p := req.ToPayment()
	if err := h.store.RecordPayment(c.Request.Context(), &p); err != nil {
		fail(c, err)
		return
	}

	h.notifier.PaymentRecorded(notify.PaymentNotice{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        p.Method,
	})

	c.JSON(http.StatusOK, gin.H{"paymentId": p.ID})
}

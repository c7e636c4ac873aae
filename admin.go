package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rake87226-cmyk/vercel-backend/models"
)

// listAdminOrders attaches the latest payment to every order. One payment
// query per order.
func (h *api) listAdminOrders(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]models.AdminOrder, 0, len(orders))
	for _, o := range orders {
		lines, err := h.store.OrderLines(ctx, o.ID)
		if err != nil {
			fail(c, err)
			return
		}
		pay, err := h.store.LatestOrderPayment(ctx, o.ID)
		if err != nil {
			fail(c, err)
			return
		}
		out = append(out, models.AdminOrder{
			ID:             o.ID,
			Name:           o.CustomerName,
			Phone:          o.CustomerPhone,
			Email:          o.CustomerEmail,
			Total:          o.Total,
			Status:         o.Status,
			CreatedAt:      o.CreatedAt,
			Items:          lines,
			PaymentSummary: models.Summarize(pay),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *api) listAdminReservations(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.store.ListReservations(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]models.AdminReservation, 0, len(rows))
	for _, r := range rows {
		pay, err := h.store.LatestReservationPayment(ctx, r.ID)
		if err != nil {
			fail(c, err)
			return
		}
		out = append(out, models.AdminReservation{Reservation: r, PaymentSummary: models.Summarize(pay)})
	}
	c.JSON(http.StatusOK, out)
}

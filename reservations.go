package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rake87226-cmyk/vercel-backend/models"
	"github.com/rake87226-cmyk/vercel-backend/notify"
)

// createReservation accepts every request; there is no capacity or
// date/time checking.
func (h *api) createReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	r := models.Reservation{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Date:      req.Date,
		Time:      req.Time,
		PartySize: req.PartySize,
		Status:    models.ReservationPending,
	}
	if err := h.store.CreateReservation(c.Request.Context(), &r); err != nil {
		fail(c, err)
		return
	}

	h.notifier.ReservationPlaced(notify.ReservationNotice{
		ReservationID: r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		Email:         r.Email,
		Date:          r.Date,
		Time:          r.Time,
		PartySize:     r.PartySize,
	})

	c.JSON(http.StatusOK, gin.H{"reservationId": r.ID})
}

func (h *api) listReservations(c *gin.Context) {
	rows, err := h.store.ListReservations(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

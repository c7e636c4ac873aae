package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rake87226-cmyk/vercel-backend/models"
	"github.com/rake87226-cmyk/vercel-backend/notify"
)

func (h *api) listMenu(c *gin.Context) {
	items, err := h.store.ListMenu(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// createOrder stores the order with menu prices and confirms it to the
// customer in the background. The client total is stored as sent.
func (h *api) createOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	order := models.Order{
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		CustomerPhone: req.Customer.Phone,
		Total:         req.Total,
		Status:        models.OrderPending,
	}
	placed, err := h.store.PlaceOrder(c.Request.Context(), &order, req.Items)
	if err != nil {
		fail(c, err)
		return
	}

	notice := notify.OrderNotice{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Total:         order.Total,
	}
	for _, l := range placed {
		notice.Items = append(notice.Items, notify.LineNotice{Name: *l.Name, Quantity: l.Quantity, Price: l.Price})
	}
	h.notifier.OrderPlaced(notice)

	c.JSON(http.StatusOK, gin.H{"orderId": order.ID})
}

func (h *api) listOrders(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := h.store.ListOrders(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]models.OrderWithItems, 0, len(orders))
	for _, o := range orders {
		lines, err := h.store.OrderLines(ctx, o.ID)
		if err != nil {
			fail(c, err)
			return
		}
		out = append(out, models.OrderWithItems{Order: o, Items: lines})
	}
	c.JSON(http.StatusOK, out)
}

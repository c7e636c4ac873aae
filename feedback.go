package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rake87226-cmyk/vercel-backend/models"
)

func (h *api) createFeedback(c *gin.Context) {
	var req models.CreateFeedbackRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	f := models.Feedback{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Rating:  req.RatingOrDefault(),
		Comment: req.Comment,
	}
	if err := h.store.CreateFeedback(c.Request.Context(), &f); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedbackId": f.ID})
}

// listFeedback serves both the public and the admin route.
func (h *api) listFeedback(c *gin.Context) {
	rows, err := h.store.ListFeedback(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

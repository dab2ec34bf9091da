package handlers

import (
	"net/http"

	"bookiteasy/models"
	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
)

func (h *BusinessHandler) AddReview(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	review, err := h.Service.AddReview(c.Request.Context(), identity(c), c.Param("businessId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *BusinessHandler) ListReviews(c *gin.Context) {
	reviews, err := h.Service.ListReviews(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *BusinessHandler) HasReviewed(c *gin.Context) {
	ok, err := h.Service.HasReviewed(c.Request.Context(), identity(c), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": ok})
}

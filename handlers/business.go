package handlers

import (
	"errors"
	"net/http"

	"bookiteasy/models"
	"bookiteasy/services/business"
	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BusinessHandler exposes business management and the public catalogue.
type BusinessHandler struct {
	Service business.BusinessService
}

func NewBusinessHandler(service business.BusinessService) *BusinessHandler {
	return &BusinessHandler{Service: service}
}

// respondBusinessError adds the missing requirements when publishing was refused.
func respondBusinessError(c *gin.Context, err error) {
	var notReady *business.NotPublishableError
	if errors.As(err, &notReady) {
		getLogger(c).Info("Publish refused", zap.Strings("missing", notReady.Missing))
		c.JSON(http.StatusBadRequest, gin.H{"error": notReady.Error(), "missing": notReady.Missing})
		return
	}
	utils.RespondError(c, err)
}

// RegisterBusiness handles POST /api/businesses.
func (h *BusinessHandler) RegisterBusiness(c *gin.Context) {
	var req models.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.RegisterBusiness(c.Request.Context(), identity(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetOwnBusiness handles GET /api/businesses.
func (h *BusinessHandler) GetOwnBusiness(c *gin.Context) {
	b, err := h.Service.GetOwnBusiness(c.Request.Context(), identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBusiness handles GET /api/businesses/:businessId.
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	detail, err := h.Service.GetBusinessDetail(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateBusiness handles PUT /api/businesses/:businessId.
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	var req models.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.UpdateBusiness(c.Request.Context(), identity(c), c.Param("businessId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBusinesses handles GET /api/businesses/list.
func (h *BusinessHandler) ListBusinesses(c *gin.Context) {
	var query models.BusinessListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	list, err := h.Service.ListBusinesses(c.Request.Context(), query)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// TogglePublish handles PUT /api/businesses/:businessId/toggle-publish.
func (h *BusinessHandler) TogglePublish(c *gin.Context) {
	status, err := h.Service.TogglePublish(c.Request.Context(), identity(c), c.Param("businessId"))
	if err != nil {
		respondBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// SetWorkingHours handles PUT /api/businesses/:businessId/working-hours.
func (h *BusinessHandler) SetWorkingHours(c *gin.Context) {
	var req models.SetWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	hours, status, err := h.Service.SetBusinessHours(c.Request.Context(), identity(c), c.Param("businessId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workingHours": hours, "publishStatus": status})
}

// GetWorkingHours handles GET /api/businesses/:businessId/working-hours.
func (h *BusinessHandler) GetWorkingHours(c *gin.Context) {
	hours, err := h.Service.GetBusinessHours(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workingHours": hours})
}

// SetEmployeeHours handles PUT /api/businesses/:businessId/employees/:id/working-hours.
func (h *BusinessHandler) SetEmployeeHours(c *gin.Context) {
	var req models.SetWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	hours, err := h.Service.SetEmployeeHours(c.Request.Context(), identity(c), c.Param("businessId"), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workingHours": hours})
}

// GetEmployeeHours handles GET /api/businesses/:businessId/employees/:id/working-hours.
func (h *BusinessHandler) GetEmployeeHours(c *gin.Context) {
	hours, err := h.Service.GetEmployeeHours(c.Request.Context(), c.Param("businessId"), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workingHours": hours})
}

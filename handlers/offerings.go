package handlers

import (
	"net/http"

	"bookiteasy/models"
	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
)

func (h *BusinessHandler) AddService(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	svc, err := h.Service.AddService(c.Request.Context(), identity(c), c.Param("businessId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *BusinessHandler) ListServices(c *gin.Context) {
	list, err := h.Service.ListServices(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": list})
}

func (h *BusinessHandler) GetService(c *gin.Context) {
	svc, err := h.Service.GetService(c.Request.Context(), c.Param("businessId"), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *BusinessHandler) UpdateService(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	svc, err := h.Service.UpdateService(c.Request.Context(), identity(c), c.Param("businessId"), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *BusinessHandler) DeleteService(c *gin.Context) {
	status, err := h.Service.DeleteService(c.Request.Context(), identity(c), c.Param("businessId"), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted", "publishStatus": status})
}

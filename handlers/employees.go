package handlers

import (
	"net/http"

	"bookiteasy/models"
	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
)

func (h *BusinessHandler) AddEmployee(c *gin.Context) {
	var req models.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := h.Service.AddEmployee(c.Request.Context(), identity(c), c.Param("businessId"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *BusinessHandler) ListEmployees(c *gin.Context) {
	list, err := h.Service.ListEmployees(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": list})
}

func (h *BusinessHandler) UpdateEmployee(c *gin.Context) {
	var req models.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := h.Service.UpdateEmployee(c.Request.Context(), identity(c), c.Param("businessId"), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *BusinessHandler) DeleteEmployee(c *gin.Context) {
	status, err := h.Service.DeleteEmployee(c.Request.Context(), identity(c), c.Param("businessId"), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted", "publishStatus": status})
}

// UploadEmployeeAvatar handles POST /api/businesses/:businessId/employees/:id/upload-avatar.
func (h *BusinessHandler) UploadEmployeeAvatar(c *gin.Context) {
	upload, closeFile, err := formUpload(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	defer closeFile()

	e, err := h.Service.UploadEmployeeAvatar(c.Request.Context(), identity(c), c.Param("businessId"), c.Param("id"), upload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

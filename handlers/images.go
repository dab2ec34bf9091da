package handlers

import (
	"net/http"

	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadImage handles POST /api/businesses/:businessId/upload-image (multipart field "file").
func (h *BusinessHandler) UploadImage(c *gin.Context) {
	upload, closeFile, err := formUpload(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	defer closeFile()

	img, err := h.Service.UploadImage(c.Request.Context(), identity(c), c.Param("businessId"), upload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Image uploaded", zap.String("imageID", img.ID), zap.Int64("bytes", upload.Size))
	c.JSON(http.StatusCreated, img)
}

func (h *BusinessHandler) ListImages(c *gin.Context) {
	images, err := h.Service.ListImages(c.Request.Context(), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (h *BusinessHandler) SetPrimaryImage(c *gin.Context) {
	if err := h.Service.SetPrimaryImage(c.Request.Context(), identity(c), c.Param("businessId"), c.Param("imageId")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Primary image updated"})
}

func (h *BusinessHandler) DeleteImage(c *gin.Context) {
	status, err := h.Service.DeleteImage(c.Request.Context(), identity(c), c.Param("businessId"), c.Param("imageId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted", "publishStatus": status})
}

package handlers

import (
	"net/http"

	"bookiteasy/models"
	"bookiteasy/services/user"
	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the caller's profile, favorites and reviews.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{UserService: service}
}

// GetProfile handles GET /api/users/me.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.UserService.GetProfile(c.Request.Context(), identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile handles PUT /api/users/me.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.UserService.UpdateProfile(c.Request.Context(), identity(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UploadAvatar handles POST /api/users/avatar.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	upload, closeFile, err := formUpload(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	defer closeFile()

	u, err := h.UserService.UploadAvatar(c.Request.Context(), identity(c), upload)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteAvatar handles DELETE /api/users/avatar.
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	if err := h.UserService.DeleteAvatar(c.Request.Context(), identity(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Avatar removed"})
}

// ListFavorites handles GET /api/users/favorites.
func (h *UserHandler) ListFavorites(c *gin.Context) {
	list, err := h.UserService.ListFavorites(c.Request.Context(), identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": list})
}

// SetFavorite handles PATCH /api/users/favorites.
func (h *UserHandler) SetFavorite(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.UserService.SetFavorite(c.Request.Context(), identity(c), req); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"businessId": req.BusinessID, "isFavorite": *req.IsFavorite})
}

// IsFavorite handles GET /api/users/favorites/:businessId/exists.
func (h *UserHandler) IsFavorite(c *gin.Context) {
	ok, err := h.UserService.IsFavorite(c.Request.Context(), identity(c), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": ok})
}

// ListReviews handles GET /api/users/reviews.
func (h *UserHandler) ListReviews(c *gin.Context) {
	reviews, err := h.UserService.ListReviews(c.Request.Context(), identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

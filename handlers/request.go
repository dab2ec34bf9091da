package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"bookiteasy/middleware"
	"bookiteasy/models"
	"bookiteasy/services/storage"
	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

var errMissingFile = errors.New("file not provided")

// identity returns the caller set by the auth middleware, or the zero identity.
func identity(c *gin.Context) models.Identity {
	return middleware.IdentityFrom(c)
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}

// parseDateTime accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (read as UTC midnight).
func parseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, raw)
}

// formUpload reads the multipart "file" field into a storage.Upload. The caller must close the returned file.
func formUpload(c *gin.Context) (storage.Upload, func(), error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return storage.Upload{}, nil, errMissingFile
	}
	f, err := fileHeader.Open()
	if err != nil {
		return storage.Upload{}, nil, err
	}
	upload := storage.Upload{Filename: fileHeader.Filename, Size: fileHeader.Size, File: f}
	return upload, func() { f.Close() }, nil
}

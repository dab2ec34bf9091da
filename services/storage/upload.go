package storage

import (
	"io"
	"path/filepath"
	"strings"

	"bookiteasy/utils"
)

var (
	ErrFileTooLarge     = utils.Validation("file is too large")
	ErrUnsupportedImage = utils.Validation("only jpg, jpeg and png images are accepted")
)

var allowedImageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// Upload is an image received from a client.
type Upload struct {
	Filename string
	Size     int64
	File     io.Reader
}

// Validate checks the extension and, when maxBytes is positive, the size.
func (u Upload) Validate(maxBytes int64) error {
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(u.Filename))] {
		return ErrUnsupportedImage
	}
	if maxBytes > 0 && u.Size > maxBytes {
		return ErrFileTooLarge
	}
	return nil
}

package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for form boundaries and other fields on top of
// the file itself.
const multipartOverhead = 1 << 20

type upload struct {
	filename string
	data     []byte
}

// readUpload reads the "file" form field. It responds with 413 when the file
// exceeds maxSize and 400 when the field is missing.
func readUpload(c *gin.Context, maxSize int64, fallbackName string) (*upload, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondTooLarge(c, maxSize)
			return nil, false
		}
		respondError(c, http.StatusBadRequest, "Invalid upload", "INVALID_PARAMS", "file is required")
		return nil, false
	}
	if fileHeader.Size > maxSize {
		respondTooLarge(c, maxSize)
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid upload", "INVALID_PARAMS", "failed to read upload")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid upload", "INVALID_PARAMS", "failed to read upload")
		return nil, false
	}

	name := fileHeader.Filename
	if name == "" {
		name = fallbackName
	}
	return &upload{filename: name, data: data}, true
}

func respondTooLarge(c *gin.Context, maxSize int64) {
	respondError(c, http.StatusRequestEntityTooLarge, "File too large", "FILE_TOO_LARGE",
		fmt.Sprintf("maximum upload size is %d bytes", maxSize))
}

func respondUploadFailed(c *gin.Context, err error) {
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, "Upload failed", "UPLOAD_FAILED", err.Error())
}

package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
	apperrors "github.com/yanqian/fitcheck/pkg/errors"
)

type upload struct {
	filename string
	mimeType string
	content  []byte
}

// ListItems returns the caller's wardrobe.
func (h *Handler) ListItems(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	items, err := h.wardrobeSvc.ListItems(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddItem digitizes an uploaded garment photo.
func (h *Handler) AddItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	file, httpErr := h.readUpload(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	item, err := h.wardrobeSvc.AddItem(c.Request.Context(), userID, wardrobe.AddItemRequest{
		Filename: file.filename,
		Name:     c.PostForm("name"),
		Gender:   c.PostForm("gender"),
		MimeType: file.mimeType,
		Content:  file.content,
	})
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteItem removes an item identified by its image URL.
func (h *Handler) DeleteItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	imageURL := c.Query("imageUrl")
	if strings.TrimSpace(imageURL) == "" {
		abortWithError(c, badRequest("imageUrl is required", nil))
		return
	}
	if err := h.wardrobeSvc.DeleteItem(c.Request.Context(), userID, imageURL); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": imageURL})
}

// ServeImage streams a stored garment photo.
func (h *Handler) ServeImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "image not found", nil))
		return
	}
	reader, mimeType, err := h.images.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, wardrobe.ErrImageNotFound) {
			abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "image not found", err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "storage_error", "failed to load image", err))
		return
	}
	defer reader.Close()
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, -1, mimeType, reader, nil)
}

func (h *Handler) readUpload(c *gin.Context) (upload, *HTTPError) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return upload{}, badRequest("file is required", err)
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return upload{}, NewHTTPError(http.StatusRequestEntityTooLarge, apperrors.CodeInvalidInput, "file exceeds maximum allowed size", nil)
	}
	data, err := readFile(fileHeader)
	if err != nil {
		return upload{}, badRequest("failed to read upload", err)
	}
	return upload{
		filename: fileHeader.Filename,
		mimeType: fileHeader.Header.Get("Content-Type"),
		content:  data,
	}, nil
}

func readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

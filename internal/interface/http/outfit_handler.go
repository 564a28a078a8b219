package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitcheck/internal/domain/stylist"
)

var errNotFinite = errors.New("coordinate must be a finite number")

// OutfitFromPrompt recommends an outfit from the existing wardrobe.
func (h *Handler) OutfitFromPrompt(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req stylist.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(errMessage(err), err))
		return
	}
	rec, err := h.stylistSvc.FromPrompt(c.Request.Context(), userID, req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, rec)
}

// OutfitFromImage adds an uploaded base garment and builds an outfit around it.
func (h *Handler) OutfitFromImage(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	lat, err := optionalFloat(c.PostForm("lat"))
	if err != nil {
		abortWithError(c, badRequest("lat must be a number", err))
		return
	}
	lon, err := optionalFloat(c.PostForm("lon"))
	if err != nil {
		abortWithError(c, badRequest("lon must be a number", err))
		return
	}
	file, httpErr := h.readUpload(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	rec, err := h.stylistSvc.FromImage(c.Request.Context(), userID, stylist.ImageRequest{
		Prompt:   c.PostForm("prompt"),
		Lat:      lat,
		Lon:      lon,
		Filename: file.filename,
		MimeType: file.mimeType,
		Content:  file.content,
	})
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, rec)
}

func optionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errNotFinite
	}
	return &v, nil
}

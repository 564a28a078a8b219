package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitcheck/internal/domain/auth"
	"github.com/yanqian/fitcheck/internal/domain/stylist"
	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc        auth.Service
	wardrobeSvc    wardrobe.Service
	stylistSvc     stylist.Service
	images         wardrobe.ImageStore
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	authSvc auth.Service,
	wardrobeSvc wardrobe.Service,
	stylistSvc stylist.Service,
	images wardrobe.ImageStore,
	maxUploadBytes int64,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authSvc:        authSvc,
		wardrobeSvc:    wardrobeSvc,
		stylistSvc:     stylistSvc,
		images:         images,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

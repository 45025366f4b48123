package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
	"github.com/yanqian/betterrest/internal/domain/form"
	apperrors "github.com/yanqian/betterrest/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	bedtimeSvc bedtime.Service
	formSvc    form.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(bedtimeSvc bedtime.Service, formSvc form.Service, logger *slog.Logger) *Handler {
	return &Handler{
		bedtimeSvc: bedtimeSvc,
		formSvc:    formSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Estimate handles the one-shot bedtime estimation endpoint.
func (h *Handler) Estimate(c *gin.Context) {
	var req bedtime.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.bedtimeSvc.Estimate(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "estimation_failed"
		switch {
		case apperrors.IsCode(err, apperrors.CodeInvalidInput):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, apperrors.CodeEstimationError):
			status = http.StatusBadGateway
		}
		abortWithError(c, NewHTTPError(status, code, publicMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// publicMessage never leaks the wrapped cause of a domain error.
func publicMessage(err error) string {
	if msg := apperrors.PublicMessage(err); msg != "" {
		return msg
	}
	return "something went wrong"
}

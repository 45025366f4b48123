package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/betterrest/internal/domain/form"
	apperrors "github.com/yanqian/betterrest/pkg/errors"
)

// OpenForm starts a form session with default inputs.
func (h *Handler) OpenForm(c *gin.Context) {
	view, err := h.formSvc.Open(c.Request.Context())
	if err != nil {
		abortWithFormError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetForm returns the current form with a freshly computed recommendation.
func (h *Handler) GetForm(c *gin.Context) {
	view, err := h.formSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ApplyFormEvent applies one input change and returns the recomputed form.
func (h *Handler) ApplyFormEvent(c *gin.Context) {
	var event form.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	view, err := h.formSvc.Apply(c.Request.Context(), c.Param("id"), event)
	if err != nil {
		abortWithFormError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CloseForm drops the session.
func (h *Handler) CloseForm(c *gin.Context) {
	if err := h.formSvc.Close(c.Request.Context(), c.Param("id")); err != nil {
		abortWithFormError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func abortWithFormError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "form_failed"
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, apperrors.CodeNotFound):
		status = http.StatusNotFound
		code = "form_not_found"
	case apperrors.IsCode(err, apperrors.CodeStoreError):
		status = http.StatusServiceUnavailable
		code = "form_store_unavailable"
	}
	abortWithError(c, NewHTTPError(status, code, publicMessage(err), err))
}

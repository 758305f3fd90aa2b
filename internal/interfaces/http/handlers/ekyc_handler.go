package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cred-vault.backend/internal/domain/entities"
	"cred-vault.backend/internal/interfaces/http/middleware"
	"cred-vault.backend/internal/interfaces/http/response"
	"cred-vault.backend/internal/usecases"
)

// EkycHandler handles identity-verification session endpoints
type EkycHandler struct {
	ekycUsecase *usecases.EkycUsecase
}

// NewEkycHandler creates a new eKYC handler
func NewEkycHandler(ekycUsecase *usecases.EkycUsecase) *EkycHandler {
	return &EkycHandler{ekycUsecase: ekycUsecase}
}

type startEkycInput struct {
	Provider string `json:"provider"`
}

// Start opens a pending verification session for the caller
// POST /api/v1/ekyc/sessions
func (h *EkycHandler) Start(c *gin.Context) {
	var input startEkycInput
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)

	session, err := h.ekycUsecase.Start(c.Request.Context(), userID, input.Provider, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, session)
}

// RecordResult records a provider callback outcome on a session. Routed on
// the provider callback surface, not the user-facing one.
// POST /api/v1/webhooks/ekyc/sessions/:id/result
func (h *EkycHandler) RecordResult(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.RecordEkycResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	session, err := h.ekycUsecase.RecordResult(c.Request.Context(), sessionID, &input, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, session)
}

// GetLatest returns the caller's most recent verification session
// GET /api/v1/ekyc/sessions/latest
func (h *EkycHandler) GetLatest(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	session, err := h.ekycUsecase.GetLatest(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, session)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cred-vault.backend/internal/domain/entities"
	"cred-vault.backend/internal/interfaces/http/middleware"
	"cred-vault.backend/internal/interfaces/http/response"
	"cred-vault.backend/internal/usecases"
)

// ShareHandler handles share endpoints
type ShareHandler struct {
	shareUsecase *usecases.ShareUsecase
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareUsecase *usecases.ShareUsecase) *ShareHandler {
	return &ShareHandler{shareUsecase: shareUsecase}
}

// Grant creates or replaces a share on an owned credential
// POST /api/v1/credentials/:id/shares
func (h *ShareHandler) Grant(c *gin.Context) {
	credentialID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.GrantShareInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)

	share, err := h.shareUsecase.Grant(c.Request.Context(), credentialID, userID, &input, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, share)
}

// Revoke removes a grantee's share from an owned credential
// DELETE /api/v1/credentials/:id/shares/:granteeId
func (h *ShareHandler) Revoke(c *gin.Context) {
	credentialID, ok := pathID(c, "id")
	if !ok {
		return
	}
	granteeID, ok := pathID(c, "granteeId")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.shareUsecase.Revoke(c.Request.Context(), credentialID, userID, granteeID, auditMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List returns every share on an owned credential, expired grants included
// GET /api/v1/credentials/:id/shares
func (h *ShareHandler) List(c *gin.Context) {
	credentialID, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	shares, err := h.shareUsecase.ListForCredential(c.Request.Context(), credentialID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"shares": shares})
}

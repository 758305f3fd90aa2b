package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cred-vault.backend/internal/domain/entities"
	"cred-vault.backend/internal/interfaces/http/middleware"
	"cred-vault.backend/internal/interfaces/http/response"
	"cred-vault.backend/internal/usecases"
)

// CredentialHandler handles credential endpoints
type CredentialHandler struct {
	credentialUsecase *usecases.CredentialUsecase
}

// NewCredentialHandler creates a new credential handler
func NewCredentialHandler(credentialUsecase *usecases.CredentialUsecase) *CredentialHandler {
	return &CredentialHandler{credentialUsecase: credentialUsecase}
}

func auditMeta(c *gin.Context) entities.AuditMeta {
	return entities.AuditMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_argument",
			"message": "invalid " + name,
		})
		return 0, false
	}
	return id, true
}

// Create stores a new encrypted credential for the caller
// POST /api/v1/credentials
func (h *CredentialHandler) Create(c *gin.Context) {
	var input entities.CreateCredentialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)

	credential, err := h.credentialUsecase.Create(c.Request.Context(), userID, &input, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, credential)
}

// Get returns one credential the caller can read
// GET /api/v1/credentials/:id
func (h *CredentialHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)

	credential, err := h.credentialUsecase.Get(c.Request.Context(), id, userID, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, credential)
}

// Update replaces the credential's ciphertext
// PUT /api/v1/credentials/:id
func (h *CredentialHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateCredentialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)

	credential, err := h.credentialUsecase.Update(c.Request.Context(), id, userID, &input, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, credential)
}

// Delete removes an owned credential and its shares
// DELETE /api/v1/credentials/:id
func (h *CredentialHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)

	if err := h.credentialUsecase.Delete(c.Request.Context(), id, userID, auditMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List returns the credentials the caller owns or holds a live share on
// GET /api/v1/credentials
func (h *CredentialHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	credentials, err := h.credentialUsecase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"credentials": credentials})
}

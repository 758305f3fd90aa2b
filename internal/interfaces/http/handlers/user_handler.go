package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cred-vault.backend/internal/domain/entities"
	"cred-vault.backend/internal/interfaces/http/middleware"
	"cred-vault.backend/internal/interfaces/http/response"
	"cred-vault.backend/internal/usecases"
)

// UserHandler handles account record endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// Register creates an account record. Called by the identity service after
// it has verified the signup; passwordHash arrives pre-hashed.
// POST /api/v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var input entities.RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	user, err := h.userUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Get returns one account record
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// Deactivate soft-disables an account; its data stays in place
// POST /api/v1/users/:id/deactivate
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	if err := h.userUsecase.Deactivate(c.Request.Context(), id, actorID, auditMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes the account and cascades over everything it owns
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userUsecase.Delete(c.Request.Context(), id, auditMeta(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

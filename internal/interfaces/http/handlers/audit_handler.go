package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cred-vault.backend/internal/domain/entities"
	"cred-vault.backend/internal/interfaces/http/middleware"
	"cred-vault.backend/internal/interfaces/http/response"
	"cred-vault.backend/internal/usecases"
)

// AuditHandler handles audit trail endpoints
type AuditHandler struct {
	auditUsecase *usecases.AuditUsecase
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditUsecase *usecases.AuditUsecase) *AuditHandler {
	return &AuditHandler{auditUsecase: auditUsecase}
}

type appendAuditInput struct {
	Action       string `json:"action" binding:"required"`
	ResourceType string `json:"resourceType"`
	ResourceID   int64  `json:"resourceId"`
}

// Append writes one audit entry on behalf of the caller. Used by external
// collaborators (the auth service) for events this core does not see.
// POST /api/v1/audit
func (h *AuditHandler) Append(c *gin.Context) {
	var input appendAuditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)

	entry, err := h.auditUsecase.Append(c.Request.Context(), userID,
		input.Action, input.ResourceType, input.ResourceID, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

// Query returns audit entries newest first
// GET /api/v1/audit?userId=&action=&since=&until=&page=&limit=
func (h *AuditHandler) Query(c *gin.Context) {
	filter := entities.AuditQueryFilter{
		ActionPrefix: c.Query("action"),
	}

	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "invalid_argument",
				"message": "invalid userId",
			})
			return
		}
		filter.UserID = id
	}

	for param, dst := range map[string]*time.Time{
		"since": &filter.Since,
		"until": &filter.Until,
	} {
		if raw := c.Query(param); raw != "" {
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"code":    "invalid_argument",
					"message": "invalid " + param + ", want RFC3339",
				})
				return
			}
			*dst = ts
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, meta, err := h.auditUsecase.Query(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"entries":    entries,
		"pagination": meta,
	})
}

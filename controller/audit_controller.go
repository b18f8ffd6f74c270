// controller/audit_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harborworks/causeway-api/audit"
	"github.com/harborworks/causeway-api/middleware"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/util"
	helper_util "github.com/harborworks/causeway-api/util/helper"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes for the audit trail
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", middleware.RequireScope(model.ScopeAuditRead), ac.SearchAudit)
}

// SearchAudit endpoint. All filters are optional; results are newest-first.
func (ac *AuditController) SearchAudit(c *gin.Context) {
	q := audit.Query{
		ActorID:      c.Query("actorId"),
		Action:       c.Query("action"),
		Category:     c.Query("category"),
		ResourceType: c.Query("resourceType"),
	}

	if from := c.Query("from"); from != "" {
		t, err := helper_util.ParseTime(from)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid from timestamp", err)
			return
		}
		q.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := helper_util.ParseTime(to)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid to timestamp", err)
			return
		}
		q.To = t
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		q.Limit = n
	}

	entries, err := ac.auditService.Search(c.Request.Context(), q)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to search audit trail", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// controller/role_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cw_errors "github.com/harborworks/causeway-api/errors"
	"github.com/harborworks/causeway-api/middleware"
	"github.com/harborworks/causeway-api/model"
	"github.com/harborworks/causeway-api/service"
	"github.com/harborworks/causeway-api/util"
	helper_util "github.com/harborworks/causeway-api/util/helper"
)

type RoleController struct {
	roleService service.IRoleService
}

func NewRoleController(roleService service.IRoleService) *RoleController {
	return &RoleController{
		roleService: roleService,
	}
}

// RegisterRoutes registers the API routes for roles
func (rc *RoleController) RegisterRoutes(r *gin.RouterGroup) {
	roles := r.Group("/roles")
	{
		roles.POST("", middleware.RequireScope(model.ScopeRolesWrite), rc.CreateRole)
		roles.PATCH("/:id", middleware.RequireScope(model.ScopeRolesWrite), rc.UpdateRole)
		roles.DELETE("/:id", middleware.RequireScope(model.ScopeRolesWrite), rc.DeleteRole)
		roles.GET("/:id", middleware.RequireScope(model.ScopeRolesRead), rc.GetRole)
		roles.GET("", middleware.RequireScope(model.ScopeRolesRead), rc.ListRoles)
	}
}

// CreateRole endpoint
func (rc *RoleController) CreateRole(c *gin.Context) {
	var role model.Role
	if err := c.ShouldBindJSON(&role); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role data", cw_errors.ErrInvalidRoleData)
		return
	}
	if role.OrganizationID == "" {
		role.OrganizationID = util.GetOrgID(c)
	}
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	createdRole, err := rc.roleService.CreateRole(c.Request.Context(), role, actor)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"roleId": createdRole.ID})
}

// UpdateRole endpoint
func (rc *RoleController) UpdateRole(c *gin.Context) {
	roleID := c.Param("id")
	var upd model.RoleUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role data", cw_errors.ErrInvalidRoleData)
		return
	}
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedRole, err := rc.roleService.UpdateRole(c.Request.Context(), util.GetOrgID(c), roleID, upd, actor)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedRole)
}

// DeleteRole endpoint
func (rc *RoleController) DeleteRole(c *gin.Context) {
	roleID := c.Param("id")
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := rc.roleService.DeleteRole(c.Request.Context(), util.GetOrgID(c), roleID, actor); err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetRole endpoint
func (rc *RoleController) GetRole(c *gin.Context) {
	roleID := c.Param("id")

	role, err := rc.roleService.GetRole(c.Request.Context(), util.GetOrgID(c), roleID)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, role)
}

// ListRoles endpoint
func (rc *RoleController) ListRoles(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	roles, err := rc.roleService.ListRoles(c.Request.Context(), util.GetOrgID(c), limit, offset)
	if err != nil {
		util.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, roles)
}
